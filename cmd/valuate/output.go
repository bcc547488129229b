package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/views"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func rank(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func writeRows(w io.Writer, rows []model.RankedSeason) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "pid\tplayer\tteam\tseason\tpos\tage\tovr\tvalue\tsalary\tsurplus\tstatus\tcv_total\tsum_value\tp_rk\tpr_rk\tline\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\t%s\t%s\t\n",
			r.PlayerID, r.Name, r.Team, r.Season, r.Position, r.Age,
			num(r.Ovr), num(r.Value), num(r.Salary), num(r.Surplus), r.Status,
			r.CVTotal, r.SumValue, rank(r.PositionRank), rank(r.ProspectRank), r.Line)
	}
	return tw.Flush()
}

func writeTeamValues(w io.Writer, teams []views.TeamValue) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "team\tplayers\tvalue\tcv_current\tcv_next\tcv_total\t")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			t.Team, t.Players, t.Value, t.CVCurrent, t.CVNext, t.CVTotal)
	}
	return tw.Flush()
}

func writeTeamProspects(w io.Writer, teams []views.TeamProspects) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "team\ttop_10\ttop_50\ttop_100\tprospects\tsum_value\t")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t\n",
			t.Team, t.Top10, t.Top50, t.Top100, t.Total, t.SumValue)
	}
	return tw.Flush()
}

func writeSigning(w io.Writer, s *views.Signing) error {
	fmt.Fprintf(w, "%s (pid %d): %d x %.2f = %.2f, value %.2f, surplus %.2f\n",
		s.Name, s.PlayerID, s.Years, s.Salary, s.TotalCost, s.PlayerValue, s.Surplus)
	tw := newTable(w)
	fmt.Fprintln(tw, "season\tvalue\tsurplus\t")
	for _, ss := range s.Seasons {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", ss.Season, num(ss.Value), num(ss.Surplus))
	}
	return tw.Flush()
}
