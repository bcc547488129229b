package views

import (
	"errors"
	"math"
	"testing"

	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline/pipelinetest"
)

func pids(rows []model.RankedSeason) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.PlayerID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDraftBoard(t *testing.T) {
	panel := pipelinetest.Panel(t)
	got := DraftBoard(panel)
	if !equalInts(pids(got), []int{pipelinetest.Bo}) {
		t.Errorf("draft board = %v, want [Bo]", pids(got))
	}
	if got[0].Season != pipelinetest.Season {
		t.Errorf("season = %d", got[0].Season)
	}
}

func TestProspects(t *testing.T) {
	panel := pipelinetest.Panel(t)
	tests := []struct {
		name string
		f    ProspectFilter
		want []int
	}{
		{"all", ProspectFilter{}, []int{pipelinetest.Ed}},
		{"team", ProspectFilter{TeamID: model.Int(pipelinetest.BOS)}, []int{pipelinetest.Ed}},
		{"other team", ProspectFilter{TeamID: model.Int(pipelinetest.TOR)}, nil},
		{"position", ProspectFilter{Position: model.Center}, nil},
		{"draft year", ProspectFilter{DraftYear: model.Int(2019)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pids(Prospects(panel, tt.f)); !equalInts(got, tt.want) {
				t.Errorf("Prospects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeamValues(t *testing.T) {
	panel := pipelinetest.Panel(t)
	got := TeamValues(panel)
	if len(got) != 2 {
		t.Fatalf("teams = %d, want 2 (pools excluded)", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CVTotal > got[i-1].CVTotal {
			t.Errorf("not sorted by cv_total: %+v", got)
		}
	}
	for _, tv := range got {
		switch tv.Team {
		case "BOS":
			if tv.Players != 2 || !near(tv.Value, 42+18) {
				t.Errorf("BOS = %+v", tv)
			}
		case "TOR":
			if tv.Players != 1 || tv.Value != 42 {
				t.Errorf("TOR = %+v", tv)
			}
		default:
			t.Errorf("unexpected team %+v", tv)
		}
		if tv.CVNext < 0 {
			t.Errorf("%s cv_next = %v, want non-negative", tv.Team, tv.CVNext)
		}
	}
}

func TestTeamProspectDepth(t *testing.T) {
	panel := pipelinetest.Panel(t)
	got := TeamProspectDepth(panel)
	if len(got) != 1 || got[0].Team != "BOS" {
		t.Fatalf("depth = %+v", got)
	}
	if got[0].Top10 != 1 || got[0].Top100 != 1 || got[0].Total != 1 || got[0].SumValue <= 0 {
		t.Errorf("BOS depth = %+v", got[0])
	}
}

func TestMarket(t *testing.T) {
	panel := pipelinetest.Panel(t)
	tests := []struct {
		name string
		q    MarketQuery
		want []int
	}{
		{"upcoming fa", MarketQuery{Filter: MarketUpcomingFA}, []int{pipelinetest.Cy}},
		{"dead weight", MarketQuery{Filter: MarketDeadWeight}, nil},
		{"goalies", MarketQuery{Position: model.Goalie}, []int{pipelinetest.Di}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Market(panel, tt.q)
			if !equalInts(pids(got), tt.want) {
				t.Errorf("Market = %v, want %v", pids(got), tt.want)
			}
			for _, r := range got {
				if r.Season != pipelinetest.Season+1 {
					t.Errorf("season = %d", r.Season)
				}
			}
		})
	}

	all := Market(panel, MarketQuery{TeamID: model.Int(pipelinetest.BOS)})
	if len(all) != 2 || all[0].CVTotal < all[1].CVTotal {
		t.Errorf("BOS market = %v", pids(all))
	}
}

func TestParseMarketFilter(t *testing.T) {
	for in, want := range map[string]MarketFilter{"": MarketAll, "all": MarketAll, "upcoming-fa": MarketUpcomingFA, "dead-weight": MarketDeadWeight} {
		if got, err := ParseMarketFilter(in); err != nil || got != want {
			t.Errorf("ParseMarketFilter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMarketFilter("bargains"); err == nil {
		t.Error("unknown filter should fail")
	}
}

var limits = SigningLimits{MaxYears: 5, MaxSalary: 13}

func TestEvaluateSigning(t *testing.T) {
	panel := pipelinetest.Panel(t)

	// 2026: 0.5*81+2, 2027: 0.5*82+2
	s, err := EvaluateSigning(panel, pipelinetest.Ada, 2, 5, limits)
	if err != nil {
		t.Fatalf("EvaluateSigning error: %v", err)
	}
	if s.TotalCost != 10 || !near(s.PlayerValue, 85.5) || !near(s.Surplus, 75.5) {
		t.Errorf("signing = %+v", s)
	}
	if len(s.Seasons) != 2 || s.Seasons[0].Season != 2026 {
		t.Errorf("seasons = %+v", s.Seasons)
	}

	// Di's curves stop after three seasons; the rest cost without value.
	s, err = EvaluateSigning(panel, pipelinetest.Di, 5, 1, limits)
	if err != nil {
		t.Fatalf("EvaluateSigning error: %v", err)
	}
	if s.TotalCost != 5 || !near(s.PlayerValue, 6.8+6.6+6.4) || !near(s.Surplus, 5.8+5.6+5.4) {
		t.Errorf("signing = %+v", s)
	}
	if s.Seasons[3].Value != nil || s.Seasons[3].Surplus != nil {
		t.Errorf("season without projection = %+v", s.Seasons[3])
	}
}

func TestEvaluateSigning_Errors(t *testing.T) {
	panel := pipelinetest.Panel(t)
	tests := []struct {
		years  int
		salary float64
	}{
		{0, 1}, {6, 1}, {1, -1}, {1, 13.5},
	}
	for _, tt := range tests {
		if _, err := EvaluateSigning(panel, pipelinetest.Ada, tt.years, tt.salary, limits); !errors.Is(err, ErrInvalidSigning) {
			t.Errorf("EvaluateSigning(%d, %v) error = %v, want ErrInvalidSigning", tt.years, tt.salary, err)
		}
	}
	if _, err := EvaluateSigning(panel, 999, 1, 1, limits); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("unknown player error = %v", err)
	}
}

func TestPlayerHistoryAndUserTeam(t *testing.T) {
	panel := pipelinetest.Panel(t)
	rows, err := PlayerHistory(panel, pipelinetest.Ed)
	if err != nil || len(rows) != 10 {
		t.Fatalf("PlayerHistory = %d rows, %v", len(rows), err)
	}
	team, ok := UserTeam(panel)
	if !ok || team.Abbrev != "TOR" {
		t.Errorf("UserTeam = %+v, %v", team, ok)
	}
}
