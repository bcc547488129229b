package reference

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/albapepper/capvalue/internal/model"
)

// fakeRows serves fixed rows through the pgx.Rows subset the scanners use.
type fakeRows struct {
	rows    [][]any
	next    int
	scanErr error
	err     error
}

func (r *fakeRows) Next() bool {
	if r.next >= len(r.rows) {
		return false
	}
	r.next++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.next-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		var ok bool
		switch d := d.(type) {
		case *string:
			var v string
			v, ok = row[i].(string)
			*d = v
		case *int:
			var v int
			v, ok = row[i].(int)
			*d = v
		case *float64:
			var v float64
			v, ok = row[i].(float64)
			*d = v
		}
		if !ok {
			return fmt.Errorf("scan column %d: cannot assign %T to %T", i, row[i], d)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }

func TestScanProgression(t *testing.T) {
	rows := &fakeRows{rows: [][]any{
		{"C", 22, 60, "ovr_1", 63.5},
		{"C", 22, 60, "value_1", 4.25},
		{"G", 30, 70, "value_3", 2.0},
	}}
	prog, err := scanProgression(rows)
	if err != nil {
		t.Fatalf("scanProgression error: %v", err)
	}
	if ratings, values := prog.Len(); ratings != 1 || values != 2 {
		t.Errorf("Len = %d,%d want 1,2", ratings, values)
	}
	if v, ok := prog.Value(CurveKey{Position: model.Goalie, Age: 30, Ovr: 70, Offset: 3}); !ok || v != 2 {
		t.Errorf("Value = %v,%v want 2", v, ok)
	}
}

func TestScanProgression_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows *fakeRows
		want string
	}{
		{"duplicate row", &fakeRows{rows: [][]any{
			{"C", 22, 60, "ovr_1", 63.5},
			{"C", 22, 60, "ovr_1", 64.0},
		}}, "duplicate curve row"},
		{"unknown position", &fakeRows{rows: [][]any{{"F", 22, 60, "ovr_1", 63.5}}}, "unknown position"},
		{"bad variable", &fakeRows{rows: [][]any{{"C", 22, 60, "pot_1", 63.5}}}, "pot_1"},
		{"scan failure", &fakeRows{rows: [][]any{{"C"}}, scanErr: errors.New("conn reset")}, "scan progression curve"},
		{"iteration failure", &fakeRows{err: errors.New("conn reset")}, "conn reset"},
	}
	for _, tt := range tests {
		_, err := scanProgression(tt.rows)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func positionModelRows() [][]any {
	return [][]any{
		{"C", 0.5, 2.0},
		{"W", 0.4, -10.0},
		{"D", 0.3, -10.0},
		{"G", 0.2, -5.0},
	}
}

func TestScanPositionModels(t *testing.T) {
	models, err := scanPositionModels(&fakeRows{rows: positionModelRows()})
	if err != nil {
		t.Fatalf("scanPositionModels error: %v", err)
	}
	got, err := models.CapValue(model.Center, 80)
	if err != nil || got != 42 {
		t.Errorf("CapValue(C, 80) = %v, %v want 42", got, err)
	}
	if models.Goalie.Intercept != -5 {
		t.Errorf("Goalie intercept = %v, want -5", models.Goalie.Intercept)
	}
}

func TestScanPositionModels_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want string
	}{
		{"missing position", positionModelRows()[:3], "missing model for G"},
		{"duplicate position", append(positionModelRows(), []any{"W", 0.1, 0.0}), "duplicate model for W"},
		{"unknown position", append(positionModelRows(), []any{"LW", 0.1, 0.0}), "unknown position"},
	}
	for _, tt := range tests {
		_, err := scanPositionModels(&fakeRows{rows: tt.rows})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
	if _, err := scanPositionModels(&fakeRows{err: errors.New("conn reset")}); err == nil {
		t.Error("iteration failure should be returned")
	}
}
