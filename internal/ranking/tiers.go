package ranking

import (
	"fmt"

	"github.com/albapepper/capvalue/internal/model"
)

// ReserveLabel is given to any rank past the last tier, and to unranked rows.
const ReserveLabel = "Reserve"

// Tier is one depth-chart bucket holding PerTeam players for every team.
type Tier struct {
	Label   string `json:"label"`
	PerTeam int    `json:"per_team"`
}

// Tiers holds the depth-chart buckets per position, best first.
type Tiers struct {
	Center  []Tier `json:"C"`
	Wing    []Tier `json:"W"`
	Defense []Tier `json:"D"`
	Goalie  []Tier `json:"G"`
}

// DefaultTiers mirrors an NHL dressed roster: one starting and one backup
// goalie, four centers, eight wings and six defensemen per team.
func DefaultTiers() Tiers {
	lines := func(perTeam int, labels ...string) []Tier {
		out := make([]Tier, len(labels))
		for i, l := range labels {
			out[i] = Tier{Label: l, PerTeam: perTeam}
		}
		return out
	}
	return Tiers{
		Center:  lines(1, "1st Line", "2nd Line", "3rd Line", "4th Line"),
		Wing:    lines(2, "1st Line", "2nd Line", "3rd Line", "4th Line"),
		Defense: lines(2, "1st Pair", "2nd Pair", "3rd Pair"),
		Goalie:  lines(1, "Starter", "Backup"),
	}
}

// For returns the tiers of one position.
func (t Tiers) For(pos model.Position) ([]Tier, error) {
	switch pos {
	case model.Center:
		return t.Center, nil
	case model.Wing:
		return t.Wing, nil
	case model.Defense:
		return t.Defense, nil
	case model.Goalie:
		return t.Goalie, nil
	default:
		return nil, fmt.Errorf("role tiers: %w: %d", model.ErrUnknownPosition, int(pos))
	}
}

// Label buckets a positional rank. Tier boundaries are cumulative multiples
// of teams, so with 32 teams centers 1..32 are 1st Line, 33..64 2nd Line.
func (t Tiers) Label(pos model.Position, rank *int, teams int) (string, error) {
	tiers, err := t.For(pos)
	if err != nil {
		return "", err
	}
	if rank == nil {
		return ReserveLabel, nil
	}
	bound := 0
	for _, tier := range tiers {
		bound += tier.PerTeam * teams
		if *rank <= bound {
			return tier.Label, nil
		}
	}
	return ReserveLabel, nil
}
