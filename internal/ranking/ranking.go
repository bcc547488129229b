// Package ranking attaches team metadata, cross-sectional ranks and role
// labels to valued rows.
package ranking

import (
	"fmt"

	"github.com/albapepper/capvalue/internal/frame"
	"github.com/albapepper/capvalue/internal/model"
)

// Options configures prospect and role classification.
type Options struct {
	LeagueTeams    int
	ProspectMaxAge int
	Tiers          Tiers
}

// DefaultOptions is a 32-team league with prospects aged 21 and under.
func DefaultOptions() Options {
	return Options{LeagueTeams: 32, ProspectMaxAge: 21, Tiers: DefaultTiers()}
}

type rankKey struct {
	season   int
	position model.Position
}

// Rank classifies every row. Output order matches rows.
//
// Ranks are ordinal: equal ratings (or sum values) are ordered by player id,
// so a group never repeats a rank and reruns give the same result.
func Rank(rows []model.ValuedSeason, teams []model.Team, birthplaces map[int]string, opts Options) ([]model.RankedSeason, error) {
	if opts.LeagueTeams <= 0 {
		return nil, fmt.Errorf("league teams must be positive, got %d", opts.LeagueTeams)
	}
	abbrevs := frame.IndexBy(teams, func(t model.Team) int { return t.ID })

	out := make([]model.RankedSeason, len(rows))
	for i, r := range rows {
		out[i] = model.RankedSeason{
			ValuedSeason: r,
			Team:         abbrevs[r.TeamID].Abbrev,
			Country:      birthplaces[r.PlayerID],
			IsCurrent:    r.Status == model.StatusCurrent,
		}
	}

	players := frame.GroupBy(rows, func(r model.ValuedSeason) int { return r.PlayerID })
	value := func(r model.ValuedSeason) *float64 { return r.Value }
	for _, pid := range players.Keys() {
		idx := players.Rows(pid)
		values := frame.Column(rows, idx, value)
		maxValue := frame.Max(values...)
		sumValue := frame.Sum(values...)
		years := 0
		for _, i := range idx {
			if out[i].IsCurrent {
				years++
			}
		}
		for _, i := range idx {
			out[i].MaxValue = maxValue
			out[i].SumValue = sumValue
			out[i].Years = years
		}
	}

	for i := range out {
		_, known := abbrevs[out[i].TeamID]
		out[i].IsProspect = out[i].Age <= opts.ProspectMaxAge && known && out[i].TeamID != model.DraftTeamID
	}

	byRating := func(a, b model.RankedSeason) bool {
		if *a.Ovr != *b.Ovr {
			return *a.Ovr > *b.Ovr
		}
		return a.PlayerID < b.PlayerID
	}
	bySumValue := func(a, b model.RankedSeason) bool {
		if a.SumValue != b.SumValue {
			return a.SumValue > b.SumValue
		}
		return a.PlayerID < b.PlayerID
	}
	rated := func(r model.RankedSeason) bool { return r.Ovr != nil }
	prospect := func(r model.RankedSeason) bool { return r.IsProspect }

	positionRanks := frame.RankOrdinal(out, func(r model.RankedSeason) rankKey {
		return rankKey{r.Season, r.Position}
	}, rated, byRating)
	prospectRanks := frame.RankOrdinal(out, func(r model.RankedSeason) int { return r.Season }, prospect, bySumValue)
	prospectPosRanks := frame.RankOrdinal(out, func(r model.RankedSeason) rankKey {
		return rankKey{r.Season, r.Position}
	}, prospect, bySumValue)

	for i := range out {
		out[i].PositionRank = positionRanks[i]
		out[i].ProspectRank = prospectRanks[i]
		out[i].ProspectRankPos = prospectPosRanks[i]

		line, err := opts.Tiers.Label(out[i].Position, out[i].PositionRank, opts.LeagueTeams)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", out[i].PlayerID, err)
		}
		out[i].Line = line
	}
	return out, nil
}
