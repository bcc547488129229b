// Package pipelinetest provides a small synthetic league and reference
// artifacts for tests of the pipeline and its consumers.
package pipelinetest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline"
	"github.com/albapepper/capvalue/internal/reference"
)

// Season is the fixture's reference season.
const Season = 2025

// Player ids in the fixture.
const (
	Ada = 1 // C, TOR, signed through 2026
	Bo  = 2 // D, draft pool, 2025 class
	Cy  = 3 // C, BOS, one expensive year left, same rating as Ada
	Di  = 4 // G, free agent, short curves
	Ed  = 5 // W, BOS, 20 years old, signed through 2027
)

// Team ids in the fixture.
const (
	BOS = 0
	TOR = 1
)

type baseline struct {
	pid, tid int
	name     string
	pos      model.Position
	age, ovr int
	salaries map[int]float64
	curves   int // offsets covered by the progression table
}

var baselines = []baseline{
	{Ada, TOR, "Ada Stone", model.Center, 24, 80, map[int]float64{2025: 4, 2026: 4}, 9},
	{Bo, model.DraftTeamID, "Bo Lind", model.Defense, 18, 45, nil, 9},
	{Cy, BOS, "Cy Park", model.Center, 27, 80, map[int]float64{2025: 12}, 9},
	{Di, model.FreeAgentTeamID, "Di Moss", model.Goalie, 30, 60, nil, 3},
	{Ed, BOS, "Ed Vale", model.Wing, 20, 70, map[int]float64{2025: 1, 2026: 1, 2027: 1}, 9},
}

// PositionModels returns per-position value models; a rating-80 center is
// worth 42.
func PositionModels() reference.PositionModels {
	return reference.PositionModels{
		Center:  reference.LinearModel{Coef: 0.5, Intercept: 2.0},
		Wing:    reference.LinearModel{Coef: 0.4, Intercept: -10},
		Defense: reference.LinearModel{Coef: 0.3, Intercept: -10},
		Goalie:  reference.LinearModel{Coef: 0.2, Intercept: -5},
	}
}

// Artifacts returns a progression table built from the position models, a
// linear salary model and the position models themselves.
func Artifacts(t testing.TB) *reference.Artifacts {
	t.Helper()
	models := PositionModels()
	prog := reference.NewProgression()
	for _, b := range baselines {
		for off := 1; off <= b.curves; off++ {
			ovr := float64(b.ovr + growth(b.age, off))
			value, err := models.CapValue(b.pos, ovr)
			if err != nil {
				t.Fatal(err)
			}
			if err := prog.Add(reference.Variable(reference.VariableRating, off), b.pos, b.age, b.ovr, ovr); err != nil {
				t.Fatal(err)
			}
			if err := prog.Add(reference.Variable(reference.VariableValue, off), b.pos, b.age, b.ovr, value); err != nil {
				t.Fatal(err)
			}
		}
	}
	return &reference.Artifacts{
		Progression:    prog,
		PositionModels: models,
		SalaryModel: &reference.LinearSalaryModel{
			Coef:      [4]float64{0, 0, 0.1, 0.5},
			Intercept: -2,
			Impute:    &[4]float64{0, 0, 0, 0},
		},
	}
}

// growth is +1 per season up to 27, then -1 per season.
func growth(age, offset int) int {
	g := 0
	for a := age; a < age+offset; a++ {
		if a < 27 {
			g++
		} else {
			g--
		}
	}
	return g
}

// Dataset returns the fixture league. Each call builds a fresh copy.
func Dataset() *model.Dataset {
	ds := &model.Dataset{
		Season:     Season,
		UserTeamID: TOR,
		Teams: []model.Team{
			{ID: BOS, Abbrev: "BOS"},
			{ID: TOR, Abbrev: "TOR"},
			{ID: model.DraftTeamID, Abbrev: model.DraftTeamAbbrev},
			{ID: model.FreeAgentTeamID, Abbrev: model.FreeAgentAbbrev},
		},
		Birthplaces: map[int]string{Ada: "Canada", Bo: "Sweden", Cy: "USA", Di: "Finland", Ed: "Canada"},
		Drafts:      []model.DraftRecord{{PlayerID: Ada, Year: 2019}, {PlayerID: Bo, Year: Season}},
	}
	for _, b := range baselines {
		ds.Ratings = append(ds.Ratings,
			model.PlayerRatingRecord{
				PlayerID: b.pid, TeamID: b.tid, Name: b.name, BirthYear: Season - b.age,
				Position: b.pos, Season: Season - 1, Age: b.age - 1, Ovr: b.ovr - 1,
			},
			model.PlayerRatingRecord{
				PlayerID: b.pid, TeamID: b.tid, Name: b.name, BirthYear: Season - b.age,
				Position: b.pos, Season: Season, Age: b.age, Ovr: b.ovr,
			})
		for season := Season; season < Season+10; season++ {
			if amount, ok := b.salaries[season]; ok {
				ds.Salaries = append(ds.Salaries, model.SalaryRecord{PlayerID: b.pid, Season: season, Amount: amount})
			}
		}
	}
	return ds
}

// Panel runs the pipeline over the fixture with default options.
func Panel(t testing.TB) *pipeline.Panel {
	t.Helper()
	panel, _, err := pipeline.Run(context.Background(), Artifacts(t), Dataset(), pipeline.DefaultOptions(), Logger())
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	return panel
}

// Logger discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
