package views

import (
	"math"
	"sort"

	"github.com/albapepper/capvalue/internal/frame"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline"
)

// TeamValue totals a roster's reference-season valuation.
type TeamValue struct {
	TeamID    int     `json:"tid"`
	Team      string  `json:"team"`
	Players   int     `json:"players"`
	Value     float64 `json:"value"`
	CVCurrent float64 `json:"cv_current"`
	CVNext    float64 `json:"cv_next"` // positive next-contract surplus only
	CVTotal   float64 `json:"cv_total"`
}

// TeamValues ranks rostered teams by total contract value. The draft and
// free agent pools are left out.
func TeamValues(p *pipeline.Panel) []TeamValue {
	rows := filter(p.SeasonRows(p.Season()), func(r model.RankedSeason) bool { return r.TeamID >= 0 })
	teams := frame.GroupBy(rows, func(r model.RankedSeason) int { return r.TeamID })

	out := make([]TeamValue, 0, teams.Len())
	for _, tid := range teams.Keys() {
		abbrev, _ := p.TeamAbbrev(tid)
		tv := TeamValue{TeamID: tid, Team: abbrev}
		for _, i := range teams.Rows(tid) {
			r := rows[i]
			tv.Players++
			tv.Value += frame.Sum(r.Value)
			tv.CVCurrent += r.CVCurrent
			tv.CVNext += math.Max(r.CVNext, 0)
			tv.CVTotal += r.CVTotal
		}
		out = append(out, tv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CVTotal != out[j].CVTotal {
			return out[i].CVTotal > out[j].CVTotal
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

// TeamProspects counts a team's prospects by league-wide prospect rank.
type TeamProspects struct {
	TeamID   int     `json:"tid"`
	Team     string  `json:"team"`
	Top10    int     `json:"top_10"`
	Top50    int     `json:"top_50"`
	Top100   int     `json:"top_100"`
	Total    int     `json:"prospects"`
	SumValue float64 `json:"sum_value"`
}

// TeamProspectDepth ranks teams by the career value of their prospects.
func TeamProspectDepth(p *pipeline.Panel) []TeamProspects {
	rows := filter(p.SeasonRows(p.Season()), func(r model.RankedSeason) bool { return r.ProspectRank != nil })
	teams := frame.GroupBy(rows, func(r model.RankedSeason) int { return r.TeamID })

	out := make([]TeamProspects, 0, teams.Len())
	for _, tid := range teams.Keys() {
		abbrev, _ := p.TeamAbbrev(tid)
		tp := TeamProspects{TeamID: tid, Team: abbrev}
		for _, i := range teams.Rows(tid) {
			r := rows[i]
			rank := *r.ProspectRank
			tp.Total++
			tp.SumValue += r.SumValue
			if rank <= 10 {
				tp.Top10++
			}
			if rank <= 50 {
				tp.Top50++
			}
			if rank <= 100 {
				tp.Top100++
			}
		}
		out = append(out, tp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SumValue != out[j].SumValue {
			return out[i].SumValue > out[j].SumValue
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
