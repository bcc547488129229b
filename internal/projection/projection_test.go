package projection

import (
	"errors"
	"testing"

	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/reference"
)

func testArtifacts(t *testing.T) *reference.Artifacts {
	t.Helper()
	prog := reference.NewProgression()
	add := func(variable string, pos model.Position, age, ovr int, v float64) {
		if err := prog.Add(variable, pos, age, ovr, v); err != nil {
			t.Fatal(err)
		}
	}
	add("ovr_1", model.Center, 24, 80, 81)
	add("value_1", model.Center, 24, 80, 43.5)
	add("ovr_2", model.Center, 24, 80, 82)
	add("value_2", model.Center, 24, 80, -1) // clipped
	add("ovr_1", model.Goalie, 30, 50, 49)

	return &reference.Artifacts{
		Progression: prog,
		PositionModels: reference.PositionModels{
			Center:  reference.LinearModel{Coef: 0.5, Intercept: 2.0},
			Wing:    reference.LinearModel{Coef: 0.5, Intercept: 2.0},
			Defense: reference.LinearModel{Coef: 0.5, Intercept: 2.0},
			Goalie:  reference.LinearModel{Coef: 0.1, Intercept: -20},
		},
		SalaryModel: &reference.LinearSalaryModel{},
	}
}

func dataset() *model.Dataset {
	return &model.Dataset{
		Season: 2025,
		Ratings: []model.PlayerRatingRecord{
			{PlayerID: 1, TeamID: 3, Name: "Ada", Position: model.Center, Season: 2024, Age: 23, Ovr: 75},
			{PlayerID: 1, TeamID: 3, Name: "Ada", Position: model.Center, Season: 2025, Age: 24, Ovr: 80},
			{PlayerID: 2, TeamID: -1, Name: "Gus", Position: model.Goalie, Season: 2025, Age: 30, Ovr: 50},
			{PlayerID: 9, TeamID: 5, Name: "Old", Position: model.Wing, Season: 2020, Age: 38, Ovr: 60},
		},
		Salaries: []model.SalaryRecord{
			{PlayerID: 1, Season: 2025, Amount: 4},
			{PlayerID: 1, Season: 2026, Amount: 4},
			{PlayerID: 1, Season: 2040, Amount: 9}, // outside horizon
		},
		Drafts: []model.DraftRecord{{PlayerID: 1, Year: 2019}},
	}
}

func TestProject_SpineAndJoins(t *testing.T) {
	p := New(testArtifacts(t), 0)
	res, err := p.Project(2025, dataset())
	if err != nil {
		t.Fatalf("Project error: %v", err)
	}
	if res.Players != 2 || res.SkippedPlayers != 1 {
		t.Errorf("players/skipped = %d/%d, want 2/1", res.Players, res.SkippedPlayers)
	}
	if len(res.Rows) != 2*DefaultHorizon {
		t.Fatalf("rows = %d, want %d", len(res.Rows), 2*DefaultHorizon)
	}

	seen := make(map[model.SeasonKey]bool)
	for _, r := range res.Rows {
		if seen[r.Key()] {
			t.Errorf("duplicate row %+v", r.Key())
		}
		seen[r.Key()] = true
		if r.CapValue != nil && *r.CapValue < 0 {
			t.Errorf("negative cap value %v for %+v", *r.CapValue, r.Key())
		}
	}

	ada := res.Rows[:DefaultHorizon]
	if ada[0].Season != 2025 || ada[9].Season != 2034 {
		t.Errorf("horizon = %d..%d", ada[0].Season, ada[9].Season)
	}
	// realized season: 80*0.5+2 = 42
	if ada[0].CapValue == nil || *ada[0].CapValue != 42.0 || *ada[0].Ovr != 80 {
		t.Errorf("reference row ovr/value = %v/%v, want 80/42", ada[0].Ovr, ada[0].CapValue)
	}
	if *ada[1].Ovr != 81 || *ada[1].CapValue != 43.5 || ada[1].Age != 25 {
		t.Errorf("season+1 = %+v", ada[1])
	}
	if *ada[2].CapValue != 0 {
		t.Errorf("season+2 value = %v, want clipped 0", *ada[2].CapValue)
	}
	if ada[3].Ovr != nil || ada[3].CapValue != nil {
		t.Errorf("season+3 should have no projection, got %v/%v", ada[3].Ovr, ada[3].CapValue)
	}
	if ada[0].Salary == nil || *ada[0].Salary != 4 || ada[2].Salary != nil {
		t.Errorf("salary join wrong: %v %v", ada[0].Salary, ada[2].Salary)
	}
	if ada[5].DraftYear == nil || *ada[5].DraftYear != 2019 {
		t.Errorf("draft year = %v, want 2019", ada[5].DraftYear)
	}

	gus := res.Rows[DefaultHorizon:]
	// 50*0.1-20 < 0 → clipped
	if *gus[0].CapValue != 0 {
		t.Errorf("goalie realized value = %v, want 0", *gus[0].CapValue)
	}
	if gus[1].Ovr == nil || *gus[1].Ovr != 49 || gus[1].CapValue != nil {
		t.Errorf("goalie +1 = %v/%v", gus[1].Ovr, gus[1].CapValue)
	}
	if gus[0].DraftYear != nil {
		t.Errorf("goalie draft year = %v, want nil", gus[0].DraftYear)
	}
}

func TestProject_UnknownPosition(t *testing.T) {
	ds := &model.Dataset{Ratings: []model.PlayerRatingRecord{
		{PlayerID: 5, Position: model.PositionUnknown, Season: 2025, Age: 20, Ovr: 50},
	}}
	_, err := New(testArtifacts(t), 3).Project(2025, ds)
	if !errors.Is(err, model.ErrUnknownPosition) {
		t.Errorf("error = %v, want ErrUnknownPosition", err)
	}
}

func TestProject_DuplicateBaseline(t *testing.T) {
	ds := &model.Dataset{Ratings: []model.PlayerRatingRecord{
		{PlayerID: 5, Position: model.Center, Season: 2025, Ovr: 50},
		{PlayerID: 5, Position: model.Center, Season: 2025, Ovr: 51},
	}}
	if _, err := New(testArtifacts(t), 3).Project(2025, ds); err == nil {
		t.Error("duplicate baseline should fail")
	}
}
