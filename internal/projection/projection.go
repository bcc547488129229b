// Package projection expands each player's reference-season rating into a
// fixed multi-season horizon, joining realized salaries and draft years and
// looking up projected rating and cap value on the progression curves.
package projection

import (
	"fmt"
	"sort"

	"github.com/albapepper/capvalue/internal/frame"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/reference"
)

// DefaultHorizon is the number of seasons projected, reference season included.
const DefaultHorizon = 10

// Projector turns realized ratings into ProjectedSeason rows.
type Projector struct {
	Curves  *reference.Progression
	Models  reference.PositionModels
	Horizon int
}

// New builds a Projector from loaded artifacts.
func New(art *reference.Artifacts, horizon int) *Projector {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Projector{Curves: art.Progression, Models: art.PositionModels, Horizon: horizon}
}

// Result holds projected rows plus counters for run statistics.
type Result struct {
	Rows              []model.ProjectedSeason
	Players           int
	SkippedPlayers    int // no rating snapshot at the reference season
	MissingRatings    int // future seasons without a rating curve match
	MissingCapValues  int // future seasons without a value curve match
	RealizedSalaries  int
	DraftYearsMatched int
}

// Project builds the (player × horizon) spine for reference season ref.
// Every baseline player gets exactly Horizon rows, ordered by
// (player id, season); unmatched lookups become nil, never dropped rows.
func (p *Projector) Project(ref int, ds *model.Dataset) (*Result, error) {
	if p.Curves == nil {
		return nil, fmt.Errorf("projector: progression curves not loaded")
	}

	baselines := make([]model.PlayerRatingRecord, 0, len(ds.Ratings))
	seen := make(map[int]bool)
	for _, r := range ds.Ratings {
		if r.Season == ref {
			if seen[r.PlayerID] {
				return nil, fmt.Errorf("projector: duplicate rating for player %d season %d", r.PlayerID, ref)
			}
			seen[r.PlayerID] = true
			baselines = append(baselines, r)
		}
	}
	sort.SliceStable(baselines, func(i, j int) bool { return baselines[i].PlayerID < baselines[j].PlayerID })

	res := &Result{Players: len(baselines)}
	for _, pid := range distinctPlayers(ds.Ratings) {
		if !seen[pid] {
			res.SkippedPlayers++
		}
	}

	salaries := frame.IndexBy(ds.Salaries, func(s model.SalaryRecord) model.SeasonKey {
		return model.SeasonKey{PlayerID: s.PlayerID, Season: s.Season}
	})
	drafts := frame.IndexBy(ds.Drafts, func(d model.DraftRecord) int { return d.PlayerID })
	seasons := frame.Horizon(ref, p.Horizon)

	res.Rows = make([]model.ProjectedSeason, 0, len(baselines)*len(seasons))
	for _, b := range baselines {
		realizedValue, err := p.Models.CapValue(b.Position, float64(b.Ovr))
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", b.PlayerID, err)
		}

		var draftYear *int
		if d, ok := drafts[b.PlayerID]; ok {
			draftYear = model.Int(d.Year)
			res.DraftYearsMatched++
		}

		for _, season := range seasons {
			offset := season - ref
			row := model.ProjectedSeason{
				PlayerID:  b.PlayerID,
				TeamID:    b.TeamID,
				Name:      b.Name,
				Season:    season,
				Age:       b.Age + offset,
				Position:  b.Position,
				DraftYear: draftYear,
			}
			if s, ok := salaries[row.Key()]; ok {
				row.Salary = model.Float(s.Amount)
				res.RealizedSalaries++
			}

			if offset == 0 {
				row.Ovr = model.Float(float64(b.Ovr))
				row.CapValue = model.Float(realizedValue)
			} else {
				key := reference.CurveKey{Position: b.Position, Age: b.Age, Ovr: b.Ovr, Offset: offset}
				if v, ok := p.Curves.Rating(key); ok {
					row.Ovr = model.Float(v)
				} else {
					res.MissingRatings++
				}
				if v, ok := p.Curves.Value(key); ok {
					row.CapValue = model.Float(clipZero(v))
				} else {
					res.MissingCapValues++
				}
			}
			res.Rows = append(res.Rows, row)
		}
	}
	return res, nil
}

// clipZero keeps curve values on the same non-negative scale as realized ones.
func clipZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func distinctPlayers(ratings []model.PlayerRatingRecord) []int {
	seen := make(map[int]bool)
	var out []int
	for _, r := range ratings {
		if !seen[r.PlayerID] {
			seen[r.PlayerID] = true
			out = append(out, r.PlayerID)
		}
	}
	return out
}
