// Package placeholder synthesizes next-contract salaries for seasons that have
// no realized salary, using the salary model and a list of contract-window
// strategies tried in priority order.
package placeholder

import (
	"fmt"
	"math"
	"sort"

	"github.com/albapepper/capvalue/internal/frame"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/reference"
)

// Calibration scales and bounds raw model output. Years is the length of the
// synthetic contract window.
type Calibration struct {
	Scale   float64
	Floor   float64
	Ceiling float64
	Years   int
}

// DefaultCalibration matches a 13M cap-hit ceiling and five-year deals.
func DefaultCalibration() Calibration {
	return Calibration{Scale: 1.25, Floor: 0, Ceiling: 13, Years: 5}
}

// Apply scales v and clips it to [Floor, Ceiling].
func (c Calibration) Apply(v float64) float64 {
	return math.Min(math.Max(v*c.Scale, c.Floor), c.Ceiling)
}

// Validate rejects windows and ranges that cannot produce a placeholder.
func (c Calibration) Validate() error {
	if c.Years <= 0 {
		return fmt.Errorf("placeholder window must be at least one season, got %d", c.Years)
	}
	if c.Floor > c.Ceiling {
		return fmt.Errorf("placeholder floor %g above ceiling %g", c.Floor, c.Ceiling)
	}
	return nil
}

// Window is where one strategy wants to place a contract: model features
// come from Anchor, and the prediction covers Start .. Start+Years-1.
type Window struct {
	Anchor model.ProjectedSeason
	Start  int
}

// Strategy picks a contract window from one player's rows, sorted by season.
type Strategy interface {
	Name() string
	Window(rows []model.ProjectedSeason) (Window, bool)
}

// LastContract extends the player's last realized contract: the window
// starts the season after the last row with a salary.
type LastContract struct{}

func (LastContract) Name() string { return "last_contract" }

func (LastContract) Window(rows []model.ProjectedSeason) (Window, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Salary != nil {
			return Window{Anchor: rows[i], Start: rows[i].Season + 1}, true
		}
	}
	return Window{}, false
}

// NoContract covers players without a salary in their first horizon season;
// the window starts at that season.
type NoContract struct{}

func (NoContract) Name() string { return "no_contract" }

func (NoContract) Window(rows []model.ProjectedSeason) (Window, bool) {
	if len(rows) == 0 || rows[0].Salary != nil {
		return Window{}, false
	}
	return Window{Anchor: rows[0], Start: rows[0].Season}, true
}

// DefaultStrategies lists the strategies in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{LastContract{}, NoContract{}}
}

// Estimator fills SalaryNext on rows without a realized salary.
type Estimator struct {
	Model       reference.SalaryModel
	Strategies  []Strategy
	Calibration Calibration
}

// New returns an Estimator with the default strategy order.
func New(m reference.SalaryModel, cal Calibration) *Estimator {
	return &Estimator{Model: m, Strategies: DefaultStrategies(), Calibration: cal}
}

// Result holds the filled rows and how many rows each strategy covered.
type Result struct {
	Rows        []model.PlaceholderSeason
	Placed      map[string]int
	Unpredicted int // windows dropped because the model gave no value
}

// Estimate returns one PlaceholderSeason per input row, in input order.
// Strategies are evaluated in order for every season; the first one whose
// window covers a season without realized salary sets it.
func (e *Estimator) Estimate(rows []model.ProjectedSeason) (*Result, error) {
	if e.Model == nil {
		return nil, fmt.Errorf("placeholder: salary model not loaded")
	}
	if err := e.Calibration.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Rows:   make([]model.PlaceholderSeason, len(rows)),
		Placed: make(map[string]int, len(e.Strategies)),
	}
	for i, r := range rows {
		res.Rows[i] = model.PlaceholderSeason{ProjectedSeason: r}
	}
	for _, s := range e.Strategies {
		res.Placed[s.Name()] = 0
	}

	players := frame.GroupBy(rows, func(r model.ProjectedSeason) int { return r.PlayerID })
	for _, pid := range players.Keys() {
		idx := append([]int(nil), players.Rows(pid)...)
		sort.SliceStable(idx, func(a, b int) bool { return rows[idx[a]].Season < rows[idx[b]].Season })
		history := make([]model.ProjectedSeason, len(idx))
		for j, i := range idx {
			history[j] = rows[i]
		}

		bySeason := make(map[int]int, len(idx))
		for _, i := range idx {
			bySeason[rows[i].Season] = i
		}

		for _, s := range e.Strategies {
			w, ok := s.Window(history)
			if !ok {
				continue
			}
			salary, ok, err := e.predict(w.Anchor)
			if err != nil {
				return nil, fmt.Errorf("player %d: %w", pid, err)
			}
			if !ok {
				res.Unpredicted++
				continue
			}
			for season := w.Start; season < w.Start+e.Calibration.Years; season++ {
				i, ok := bySeason[season]
				if !ok {
					continue
				}
				row := &res.Rows[i]
				if row.Salary != nil || row.SalaryNext != nil {
					continue
				}
				row.SalaryNext = model.Float(salary)
				res.Placed[s.Name()]++
			}
		}
	}
	return res, nil
}

func (e *Estimator) predict(anchor model.ProjectedSeason) (float64, bool, error) {
	code, err := anchor.Position.Code()
	if err != nil {
		return 0, false, err
	}
	raw, ok := e.Model.Predict(reference.NewFeatures(code, anchor.Age, anchor.Ovr, anchor.Salary))
	if !ok {
		return 0, false, nil
	}
	return e.Calibration.Apply(raw), true, nil
}
