// Package league decodes a league-simulation export into the canonical
// model.Dataset the valuation pipeline consumes. The export is JSON with
// players (nested ratings, salaries, draft and birth info), teams and game
// attributes; everything else in the file is ignored.
package league

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/albapepper/capvalue/internal/model"
)

// Export mirrors the subset of the export file used here.
type Export struct {
	GameAttributes GameAttributes `json:"gameAttributes"`
	Players        []Player       `json:"players"`
	Teams          []Team         `json:"teams"`
}

// Player is one roster entry with its nested histories.
type Player struct {
	PID       int        `json:"pid"`
	TID       int        `json:"tid"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Born      Born       `json:"born"`
	Ratings   []Rating   `json:"ratings"`
	Salaries  []Salary   `json:"salaries"`
	Draft     *DraftInfo `json:"draft,omitempty"`
}

// Born is the player's birth metadata.
type Born struct {
	Year int    `json:"year"`
	Loc  string `json:"loc"`
}

// Rating is one rating snapshot.
type Rating struct {
	Season int    `json:"season"`
	Pos    string `json:"pos"`
	Ovr    int    `json:"ovr"`
}

// Salary is one salary amendment, in export units (thousands).
type Salary struct {
	Season int     `json:"season"`
	Amount float64 `json:"amount"`
}

// DraftInfo holds the draft class year.
type DraftInfo struct {
	Year *int `json:"year"`
}

// Team is one franchise row.
type Team struct {
	TID      int    `json:"tid"`
	Abbrev   string `json:"abbrev"`
	Disabled bool   `json:"disabled"`
}

// Name joins first and last name the way the roster displays it.
func (p Player) Name() string {
	return p.FirstName + " " + p.LastName
}

// ReadFile decodes an export from disk.
func ReadFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads an export from r.
func Decode(r io.Reader) (*Export, error) {
	var e Export
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if e.GameAttributes.Season == 0 {
		return nil, fmt.Errorf("decode export: gameAttributes.season is missing")
	}
	return &e, nil
}

// Dataset flattens the export into canonical records. Salary amounts are
// divided by salaryDivisor (export thousands → millions). Any rating with an
// unknown position code fails the whole conversion.
func (e *Export) Dataset(salaryDivisor float64) (*model.Dataset, error) {
	if salaryDivisor <= 0 {
		return nil, fmt.Errorf("salary divisor must be positive, got %g", salaryDivisor)
	}
	ds := &model.Dataset{
		Season:      e.GameAttributes.Season,
		UserTeamID:  e.GameAttributes.UserTeamID,
		Teams:       Teams(e.Teams),
		Birthplaces: make(map[int]string, len(e.Players)),
	}

	for _, p := range e.Players {
		ratings, err := ratingRecords(p)
		if err != nil {
			return nil, err
		}
		ds.Ratings = append(ds.Ratings, ratings...)
		ds.Salaries = append(ds.Salaries, salaryRecords(p, salaryDivisor)...)
		if p.Draft != nil && p.Draft.Year != nil {
			ds.Drafts = append(ds.Drafts, model.DraftRecord{PlayerID: p.PID, Year: *p.Draft.Year})
		}
		ds.Birthplaces[p.PID] = Country(p.Born.Loc)
	}

	sort.SliceStable(ds.Ratings, func(i, j int) bool {
		a, b := ds.Ratings[i], ds.Ratings[j]
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.Season < b.Season
	})
	return ds, nil
}

// ratingRecords keeps one snapshot per season: the last one listed.
func ratingRecords(p Player) ([]model.PlayerRatingRecord, error) {
	bySeason := make(map[int]model.PlayerRatingRecord, len(p.Ratings))
	for _, r := range p.Ratings {
		pos, err := model.ParsePosition(r.Pos)
		if err != nil {
			return nil, fmt.Errorf("player %d season %d: %w", p.PID, r.Season, err)
		}
		bySeason[r.Season] = model.PlayerRatingRecord{
			PlayerID:  p.PID,
			TeamID:    p.TID,
			Name:      p.Name(),
			BirthYear: p.Born.Year,
			Position:  pos,
			Season:    r.Season,
			Age:       r.Season - p.Born.Year,
			Ovr:       r.Ovr,
		}
	}
	out := make([]model.PlayerRatingRecord, 0, len(bySeason))
	for _, rec := range bySeason {
		out = append(out, rec)
	}
	return out, nil
}

// salaryRecords keeps the last amendment per season.
func salaryRecords(p Player, divisor float64) []model.SalaryRecord {
	last := make(map[int]float64, len(p.Salaries))
	var seasons []int
	for _, s := range p.Salaries {
		if _, ok := last[s.Season]; !ok {
			seasons = append(seasons, s.Season)
		}
		last[s.Season] = s.Amount
	}
	sort.Ints(seasons)
	out := make([]model.SalaryRecord, 0, len(seasons))
	for _, season := range seasons {
		out = append(out, model.SalaryRecord{
			PlayerID: p.PID,
			Season:   season,
			Amount:   last[season] / divisor,
		})
	}
	return out
}

// Teams drops disabled franchises and appends the Draft and free agent pools.
func Teams(teams []Team) []model.Team {
	out := make([]model.Team, 0, len(teams)+2)
	for _, t := range teams {
		if t.Disabled {
			continue
		}
		out = append(out, model.Team{ID: t.TID, Abbrev: t.Abbrev})
	}
	return append(out,
		model.Team{ID: model.DraftTeamID, Abbrev: model.DraftTeamAbbrev},
		model.Team{ID: model.FreeAgentTeamID, Abbrev: model.FreeAgentAbbrev},
	)
}

// Country returns the last ", "-separated segment of a birth location.
func Country(loc string) string {
	parts := strings.Split(loc, ", ")
	return strings.TrimSpace(parts[len(parts)-1])
}
