package views

import (
	"fmt"

	"github.com/albapepper/capvalue/internal/frame"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline"
)

// MarketFilter selects a slice of next season's contract market.
type MarketFilter string

const (
	MarketAll        MarketFilter = ""
	MarketUpcomingFA MarketFilter = "upcoming-fa" // one season left under contract
	MarketDeadWeight MarketFilter = "dead-weight" // multi-year deals worth less than they cost
)

// ParseMarketFilter accepts "", "all", "upcoming-fa" and "dead-weight".
func ParseMarketFilter(s string) (MarketFilter, error) {
	switch MarketFilter(s) {
	case MarketAll, "all":
		return MarketAll, nil
	case MarketUpcomingFA, MarketDeadWeight:
		return MarketFilter(s), nil
	}
	return "", fmt.Errorf("unknown market filter %q", s)
}

// MarketQuery narrows the market. Zero values match everything.
type MarketQuery struct {
	Filter   MarketFilter
	TeamID   *int
	Position model.Position
}

// Market lists next season's rows by total contract value.
func Market(p *pipeline.Panel, q MarketQuery) []model.RankedSeason {
	rows := filter(p.SeasonRows(p.Season()+1), func(r model.RankedSeason) bool {
		switch q.Filter {
		case MarketUpcomingFA:
			if r.Years != 1 {
				return false
			}
		case MarketDeadWeight:
			if r.Years <= 1 || r.CVTotal >= 0 {
				return false
			}
		}
		if q.TeamID != nil && r.TeamID != *q.TeamID {
			return false
		}
		return !q.Position.Valid() || r.Position == q.Position
	})
	byDesc(rows, func(r model.RankedSeason) *float64 { return model.Float(r.CVTotal) })
	return rows
}

// SigningLimits bounds the terms the evaluator accepts.
type SigningLimits struct {
	MaxYears  int
	MaxSalary float64
}

// SigningSeason is one season of an evaluated deal.
type SigningSeason struct {
	Season  int      `json:"season"`
	Value   *float64 `json:"value"`
	Surplus *float64 `json:"surplus"`
}

// Signing is the outcome of offering a flat salary for a number of years
// starting next season.
type Signing struct {
	PlayerID    int             `json:"pid"`
	Name        string          `json:"player"`
	Years       int             `json:"years"`
	Salary      float64         `json:"salary"`
	TotalCost   float64         `json:"total_cost"`
	PlayerValue float64         `json:"player_value"`
	Surplus     float64         `json:"surplus"`
	Seasons     []SigningSeason `json:"seasons"`
}

// EvaluateSigning prices a deal of years seasons at salary per season.
// Seasons without a projected value count toward cost only.
func EvaluateSigning(p *pipeline.Panel, pid, years int, salary float64, limits SigningLimits) (*Signing, error) {
	if years < 1 || years > limits.MaxYears {
		return nil, fmt.Errorf("%w: years must be between 1 and %d, got %d", ErrInvalidSigning, limits.MaxYears, years)
	}
	if salary < 0 || salary > limits.MaxSalary {
		return nil, fmt.Errorf("%w: salary must be between 0 and %g, got %g", ErrInvalidSigning, limits.MaxSalary, salary)
	}
	rows, err := PlayerHistory(p, pid)
	if err != nil {
		return nil, err
	}

	s := &Signing{
		PlayerID:  pid,
		Name:      rows[0].Name,
		Years:     years,
		Salary:    salary,
		TotalCost: salary * float64(years),
	}
	bySeason := frame.IndexBy(rows, func(r model.RankedSeason) int { return r.Season })
	cost := model.Float(salary)
	for season := p.Season() + 1; season <= p.Season()+years; season++ {
		ss := SigningSeason{Season: season}
		if r, ok := bySeason[season]; ok {
			ss.Value = r.Value
			ss.Surplus = frame.Sub(r.Value, cost)
		}
		s.PlayerValue += frame.Sum(ss.Value)
		s.Surplus += frame.Sum(ss.Surplus)
		s.Seasons = append(s.Seasons, ss)
	}
	return s, nil
}
