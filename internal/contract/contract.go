// Package contract turns placeholder-filled rows into valued rows: per-season
// surplus against the realized or placeholder salary, plus per-player
// contract value rollups.
package contract

import (
	"math"

	"github.com/albapepper/capvalue/internal/frame"
	"github.com/albapepper/capvalue/internal/model"
)

// Classify returns the row status: current when a realized salary exists,
// next when only a placeholder does, none otherwise.
func Classify(salary, salaryNext *float64) model.Status {
	switch {
	case salary != nil:
		return model.StatusCurrent
	case salaryNext != nil:
		return model.StatusNext
	default:
		return model.StatusNone
	}
}

// Total combines the two rollups; negative next-contract surplus is not
// charged against the player.
func Total(cvCurrent, cvNext float64) float64 {
	return cvCurrent + math.Max(cvNext, 0)
}

// Value computes the valuation for every row, preserving input order.
func Value(rows []model.PlaceholderSeason) []model.ValuedSeason {
	out := make([]model.ValuedSeason, len(rows))
	surplus := make([]*float64, len(rows))
	nextSurplus := make([]*float64, len(rows))

	for i, r := range rows {
		surplus[i] = frame.Sub(r.CapValue, r.Salary)
		nextSurplus[i] = frame.Sub(r.CapValue, r.SalaryNext)

		status := Classify(r.Salary, r.SalaryNext)
		v := model.ValuedSeason{
			PlayerID:  r.PlayerID,
			Name:      r.Name,
			TeamID:    r.TeamID,
			Season:    r.Season,
			DraftYear: r.DraftYear,
			Position:  r.Position,
			Age:       r.Age,
			Status:    status,
			Ovr:       r.Ovr,
			Value:     r.CapValue,
		}
		switch status {
		case model.StatusCurrent:
			v.Salary, v.Surplus = r.Salary, surplus[i]
		case model.StatusNext:
			v.Salary, v.Surplus = r.SalaryNext, nextSurplus[i]
		}
		out[i] = v
	}

	players := frame.GroupBy(rows, func(r model.PlaceholderSeason) int { return r.PlayerID })
	ovr := func(r model.PlaceholderSeason) *float64 { return r.Ovr }
	for _, pid := range players.Keys() {
		idx := players.Rows(pid)
		pot := frame.Max(frame.Column(rows, idx, ovr)...)

		var cvCurrent, cvNext float64
		for _, i := range idx {
			cvCurrent += frame.Sum(surplus[i])
			cvNext += frame.Sum(nextSurplus[i])
		}
		cvTotal := Total(cvCurrent, cvNext)

		for _, i := range idx {
			out[i].Pot = pot
			out[i].CVCurrent = cvCurrent
			out[i].CVNext = cvNext
			out[i].CVTotal = cvTotal
		}
	}
	return out
}
