// Package views derives the read-only boards and summaries consumers show
// from a finished Panel: draft and prospect boards, team rollups, the
// contract market, player history and the signing evaluator.
package views

import (
	"errors"
	"fmt"
	"sort"

	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline"
)

var (
	// ErrPlayerNotFound is returned for a player id the panel does not hold.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidSigning is returned for contract terms outside the limits.
	ErrInvalidSigning = errors.New("invalid signing")
)

// byDesc orders by a nullable metric, highest first, nulls last, then by
// player id.
func byDesc(rows []model.RankedSeason, metric func(model.RankedSeason) *float64) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := metric(rows[i]), metric(rows[j])
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case (a == nil) != (b == nil):
			return a != nil
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}

func filter(rows []model.RankedSeason, keep func(model.RankedSeason) bool) []model.RankedSeason {
	out := make([]model.RankedSeason, 0)
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// DraftBoard lists the current draft class, best peak value first.
func DraftBoard(p *pipeline.Panel) []model.RankedSeason {
	rows := filter(p.SeasonRows(p.Season()), func(r model.RankedSeason) bool {
		return r.TeamID == model.DraftTeamID && r.DraftYear != nil && *r.DraftYear == p.Season()
	})
	byDesc(rows, func(r model.RankedSeason) *float64 { return r.MaxValue })
	return rows
}

// ProspectFilter narrows the prospect board. Zero values match everything.
type ProspectFilter struct {
	TeamID    *int
	Position  model.Position
	DraftYear *int
}

// Prospects lists reference-season prospects by career value.
func Prospects(p *pipeline.Panel, f ProspectFilter) []model.RankedSeason {
	rows := filter(p.SeasonRows(p.Season()), func(r model.RankedSeason) bool {
		if !r.IsProspect {
			return false
		}
		if f.TeamID != nil && r.TeamID != *f.TeamID {
			return false
		}
		if f.Position.Valid() && r.Position != f.Position {
			return false
		}
		if f.DraftYear != nil && (r.DraftYear == nil || *r.DraftYear != *f.DraftYear) {
			return false
		}
		return true
	})
	byDesc(rows, func(r model.RankedSeason) *float64 { return model.Float(r.SumValue) })
	return rows
}

// PlayerHistory returns every horizon row of one player.
func PlayerHistory(p *pipeline.Panel, pid int) ([]model.RankedSeason, error) {
	rows, ok := p.Player(pid)
	if !ok {
		return nil, fmt.Errorf("player %d: %w", pid, ErrPlayerNotFound)
	}
	return rows, nil
}

// UserTeam returns the team the export was saved as.
func UserTeam(p *pipeline.Panel) (model.Team, bool) {
	abbrev, ok := p.TeamAbbrev(p.UserTeamID())
	return model.Team{ID: p.UserTeamID(), Abbrev: abbrev}, ok
}
