// Package reference holds the read-only artifacts the valuation pipeline is
// parameterized by: progression curves, per-position value models and the
// salary model. Artifacts are built once per run by the loaders in load.go
// and postgres.go and passed explicitly into the pipeline.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/albapepper/capvalue/internal/model"
)

// Curve variable prefixes in the long-format progression table.
const (
	VariableRating = "ovr"
	VariableValue  = "value"
)

// CurveKey identifies one progression prediction. Offset is relative to the
// reference season; Age and Ovr are the player's baseline at that season.
type CurveKey struct {
	Position model.Position
	Age      int
	Ovr      int
	Offset   int
}

// Progression holds the rating and value sub-tables of the progression curve.
type Progression struct {
	ratings map[CurveKey]float64
	values  map[CurveKey]float64
}

// NewProgression returns an empty curve table.
func NewProgression() *Progression {
	return &Progression{
		ratings: make(map[CurveKey]float64),
		values:  make(map[CurveKey]float64),
	}
}

// ParseVariable splits "ovr_3" / "value_3" into its kind and season offset.
func ParseVariable(variable string) (kind string, offset int, err error) {
	i := strings.LastIndex(variable, "_")
	if i <= 0 || i == len(variable)-1 {
		return "", 0, fmt.Errorf("malformed curve variable %q", variable)
	}
	kind = variable[:i]
	if kind != VariableRating && kind != VariableValue {
		return "", 0, fmt.Errorf("unknown curve variable %q", variable)
	}
	offset, err = strconv.Atoi(variable[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("curve variable %q offset: %w", variable, err)
	}
	return kind, offset, nil
}

// Variable is the inverse of ParseVariable.
func Variable(kind string, offset int) string {
	return kind + "_" + strconv.Itoa(offset)
}

// Add records one long-format row. Duplicate keys are rejected so every
// left join against the curve matches at most one row.
func (p *Progression) Add(variable string, pos model.Position, age, ovr int, value float64) error {
	kind, offset, err := ParseVariable(variable)
	if err != nil {
		return err
	}
	if !pos.Valid() {
		return fmt.Errorf("curve row %s: %w", variable, model.ErrUnknownPosition)
	}
	key := CurveKey{Position: pos, Age: age, Ovr: ovr, Offset: offset}
	table := p.ratings
	if kind == VariableValue {
		table = p.values
	}
	if _, dup := table[key]; dup {
		return fmt.Errorf("duplicate curve row %s pos=%s age=%d ovr=%d", variable, pos, age, ovr)
	}
	table[key] = value
	return nil
}

// Rating returns the predicted rating for key.
func (p *Progression) Rating(key CurveKey) (float64, bool) {
	v, ok := p.ratings[key]
	return v, ok
}

// Value returns the predicted cap value for key.
func (p *Progression) Value(key CurveKey) (float64, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of rating and value rows.
func (p *Progression) Len() (ratings, values int) {
	return len(p.ratings), len(p.values)
}

// ReadProgressionCSV parses a long-format curve table with the header
// pos,age,ovr,variable,value (column order is free).
func ReadProgressionCSV(r io.Reader) (*Progression, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"pos", "age", "ovr", "variable", "value"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	prog := NewProgression()
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		pos, err := model.ParsePosition(rec[cols["pos"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		age, err := parseWhole(rec[cols["age"]])
		if err != nil {
			return nil, fmt.Errorf("line %d age: %w", line, err)
		}
		ovr, err := parseWhole(rec[cols["ovr"]])
		if err != nil {
			return nil, fmt.Errorf("line %d ovr: %w", line, err)
		}
		value, err := strconv.ParseFloat(rec[cols["value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d value: %w", line, err)
		}
		if err := prog.Add(rec[cols["variable"]], pos, age, ovr, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return prog, nil
}

// parseWhole accepts "23" and "23.0" but rejects fractional values.
func parseWhole(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}
