package pipeline

import (
	"sort"

	"github.com/albapepper/capvalue/internal/model"
)

// Panel is the finished valuation table. It is never modified after Run
// returns, so any number of readers may share it. Accessors hand out copies.
type Panel struct {
	runID      string
	season     int
	horizon    int
	userTeamID int
	teams      []model.Team
	rows       []model.RankedSeason // sorted by (player, season)
	byPlayer   map[int][2]int       // half-open row range per player
	players    []int
}

func newPanel(runID string, ds *model.Dataset, horizon int, rows []model.RankedSeason) *Panel {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PlayerID != rows[j].PlayerID {
			return rows[i].PlayerID < rows[j].PlayerID
		}
		return rows[i].Season < rows[j].Season
	})

	p := &Panel{
		runID:      runID,
		season:     ds.Season,
		horizon:    horizon,
		userTeamID: ds.UserTeamID,
		teams:      append([]model.Team(nil), ds.Teams...),
		rows:       rows,
		byPlayer:   make(map[int][2]int),
	}
	for start := 0; start < len(rows); {
		end := start
		for end < len(rows) && rows[end].PlayerID == rows[start].PlayerID {
			end++
		}
		p.byPlayer[rows[start].PlayerID] = [2]int{start, end}
		p.players = append(p.players, rows[start].PlayerID)
		start = end
	}
	return p
}

// RunID identifies the run that built the panel.
func (p *Panel) RunID() string { return p.runID }

// Season is the reference season.
func (p *Panel) Season() int { return p.season }

// Horizon is the number of seasons per player.
func (p *Panel) Horizon() int { return p.horizon }

// Len is the number of rows.
func (p *Panel) Len() int { return len(p.rows) }

// Players returns player ids in ascending order.
func (p *Panel) Players() []int { return append([]int(nil), p.players...) }

// Teams returns the league teams, sentinel pools included.
func (p *Panel) Teams() []model.Team { return append([]model.Team(nil), p.teams...) }

// UserTeamID is the team the league export was saved as.
func (p *Panel) UserTeamID() int { return p.userTeamID }

// TeamAbbrev resolves a team id; ok is false for unknown ids.
func (p *Panel) TeamAbbrev(tid int) (string, bool) {
	for _, t := range p.teams {
		if t.ID == tid {
			return t.Abbrev, true
		}
	}
	return "", false
}

// Rows returns every row, ordered by (player, season).
func (p *Panel) Rows() []model.RankedSeason {
	return append([]model.RankedSeason(nil), p.rows...)
}

// Player returns one player's rows by season, or ok=false when the player
// is not in the panel.
func (p *Panel) Player(pid int) ([]model.RankedSeason, bool) {
	r, ok := p.byPlayer[pid]
	if !ok {
		return nil, false
	}
	return append([]model.RankedSeason(nil), p.rows[r[0]:r[1]]...), true
}

// SeasonRows returns the rows of one season, ordered by player.
func (p *Panel) SeasonRows(season int) []model.RankedSeason {
	out := make([]model.RankedSeason, 0, len(p.players))
	for _, r := range p.rows {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}
