package ranking

import (
	"errors"
	"testing"

	"github.com/albapepper/capvalue/internal/model"
)

var teams = []model.Team{
	{ID: 0, Abbrev: "BOS"},
	{ID: 1, Abbrev: "TOR"},
	{ID: model.DraftTeamID, Abbrev: model.DraftTeamAbbrev},
	{ID: model.FreeAgentTeamID, Abbrev: model.FreeAgentAbbrev},
}

func valued(pid, tid, season, age int, pos model.Position, ovr, value *float64, status model.Status) model.ValuedSeason {
	return model.ValuedSeason{
		PlayerID: pid, TeamID: tid, Season: season, Age: age,
		Position: pos, Ovr: ovr, Value: value, Status: status,
	}
}

func TestRank_PositionRanksAreOrdinal(t *testing.T) {
	f := model.Float
	rows := []model.ValuedSeason{
		valued(9, 0, 2025, 25, model.Center, f(70), f(10), model.StatusCurrent),
		valued(3, 1, 2025, 25, model.Center, f(70), f(10), model.StatusCurrent),
		valued(5, 0, 2025, 25, model.Center, f(75), f(12), model.StatusCurrent),
		valued(7, 0, 2025, 25, model.Center, nil, nil, model.StatusNone),
		valued(8, 0, 2025, 25, model.Wing, f(50), f(1), model.StatusNone),
	}
	got, err := Rank(rows, teams, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}

	wantRank := []int{3, 2, 1}
	for i, w := range wantRank {
		if got[i].PositionRank == nil || *got[i].PositionRank != w {
			t.Errorf("pid %d p_rk = %v, want %d", got[i].PlayerID, got[i].PositionRank, w)
		}
	}
	if got[3].PositionRank != nil || got[3].Line != ReserveLabel {
		t.Errorf("unrated row p_rk/line = %v/%q", got[3].PositionRank, got[3].Line)
	}
	if *got[4].PositionRank != 1 || got[4].Line != "1st Line" {
		t.Errorf("wing p_rk/line = %v/%q", *got[4].PositionRank, got[4].Line)
	}

	again, _ := Rank(rows, teams, nil, DefaultOptions())
	for i := range got {
		if (got[i].PositionRank == nil) != (again[i].PositionRank == nil) ||
			(got[i].PositionRank != nil && *got[i].PositionRank != *again[i].PositionRank) {
			t.Errorf("row %d rank differs between runs", i)
		}
	}
}

func TestRank_PlayerRollups(t *testing.T) {
	f := model.Float
	rows := []model.ValuedSeason{
		valued(1, 0, 2025, 20, model.Defense, f(60), f(4), model.StatusCurrent),
		valued(1, 0, 2026, 21, model.Defense, f(62), f(6), model.StatusCurrent),
		valued(1, 0, 2027, 22, model.Defense, nil, nil, model.StatusNext),
		valued(2, model.DraftTeamID, 2025, 18, model.Defense, f(45), f(0), model.StatusNone),
		valued(3, 1, 2025, 19, model.Defense, f(50), f(1), model.StatusNone),
		valued(4, 42, 2025, 19, model.Defense, f(50), f(1), model.StatusNone),
	}
	got, err := Rank(rows, teams, map[int]string{1: "Canada"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}

	first := got[0]
	if first.Team != "BOS" || first.Country != "Canada" || !first.IsCurrent {
		t.Errorf("metadata = %q/%q/%v", first.Team, first.Country, first.IsCurrent)
	}
	if first.Years != 2 || *first.MaxValue != 6 || first.SumValue != 10 {
		t.Errorf("rollups = years %d max %v sum %v", first.Years, *first.MaxValue, first.SumValue)
	}
	if got[2].IsCurrent || got[2].Years != 2 {
		t.Errorf("broadcast years on next row = %d", got[2].Years)
	}

	if !got[1].IsProspect || got[2].IsProspect {
		t.Errorf("prospect flags by age = %v/%v", got[1].IsProspect, got[2].IsProspect)
	}
	if got[3].IsProspect {
		t.Error("draft pool player should not be a prospect")
	}
	if got[5].IsProspect || got[5].Team != "" {
		t.Error("unknown team should not be a prospect")
	}

	// 2025 prospects: pid 1 (sum 10) and pid 3 (sum 1)
	if got[0].ProspectRank == nil || *got[0].ProspectRank != 1 || *got[4].ProspectRank != 2 {
		t.Errorf("pr_rk = %v/%v", got[0].ProspectRank, got[4].ProspectRank)
	}
	if *got[4].ProspectRankPos != 2 {
		t.Errorf("pr_rk_pos = %v, want 2", *got[4].ProspectRankPos)
	}
	if got[3].ProspectRank != nil {
		t.Error("non-prospect should have null pr_rk")
	}
}

func TestTiers_Label(t *testing.T) {
	tiers := DefaultTiers()
	tests := []struct {
		pos  model.Position
		rank int
		want string
	}{
		{model.Goalie, 1, "Starter"},
		{model.Goalie, 32, "Starter"},
		{model.Goalie, 33, "Backup"},
		{model.Goalie, 65, ReserveLabel},
		{model.Center, 64, "2nd Line"},
		{model.Center, 128, "4th Line"},
		{model.Center, 129, ReserveLabel},
		{model.Wing, 64, "1st Line"},
		{model.Wing, 256, "4th Line"},
		{model.Wing, 257, ReserveLabel},
		{model.Defense, 65, "2nd Pair"},
		{model.Defense, 192, "3rd Pair"},
		{model.Defense, 193, ReserveLabel},
	}
	for _, tt := range tests {
		rank := tt.rank
		got, err := tiers.Label(tt.pos, &rank, 32)
		if err != nil {
			t.Fatalf("Label(%s, %d) error: %v", tt.pos, tt.rank, err)
		}
		if got != tt.want {
			t.Errorf("Label(%s, %d) = %q, want %q", tt.pos, tt.rank, got, tt.want)
		}
	}

	if _, err := tiers.Label(model.PositionUnknown, nil, 32); !errors.Is(err, model.ErrUnknownPosition) {
		t.Errorf("unknown position error = %v", err)
	}
}

func TestRank_Errors(t *testing.T) {
	rows := []model.ValuedSeason{valued(1, 0, 2025, 25, model.PositionUnknown, nil, nil, model.StatusNone)}
	if _, err := Rank(rows, teams, nil, DefaultOptions()); !errors.Is(err, model.ErrUnknownPosition) {
		t.Errorf("error = %v, want ErrUnknownPosition", err)
	}
	if _, err := Rank(nil, teams, nil, Options{}); err == nil {
		t.Error("zero league teams should fail")
	}
}
