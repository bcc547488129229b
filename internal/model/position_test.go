package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
		code int
	}{
		{"C", Center, 1},
		{"W", Wing, 2},
		{"D", Defense, 3},
		{"G", Goalie, 4},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if err != nil {
			t.Fatalf("ParsePosition(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePosition(%q) = %v, want %v", tt.in, got, tt.want)
		}
		code, err := got.Code()
		if err != nil || code != tt.code {
			t.Errorf("%v.Code() = %d, %v; want %d", got, code, err, tt.code)
		}
		if got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestParsePosition_Unknown(t *testing.T) {
	for _, in := range []string{"", "F", "c", "LW"} {
		_, err := ParsePosition(in)
		if !errors.Is(err, ErrUnknownPosition) {
			t.Errorf("ParsePosition(%q) error = %v, want ErrUnknownPosition", in, err)
		}
	}
	if _, err := PositionUnknown.Code(); !errors.Is(err, ErrUnknownPosition) {
		t.Errorf("PositionUnknown.Code() error = %v, want ErrUnknownPosition", err)
	}
	if PositionUnknown.Valid() {
		t.Error("PositionUnknown.Valid() = true")
	}
}

func TestPositionJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Pos Position `json:"pos"`
	}{Defense})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"pos":"D"}` {
		t.Errorf("marshal = %s", b)
	}

	var out struct {
		Pos Position `json:"pos"`
	}
	if err := json.Unmarshal([]byte(`{"pos":"G"}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.Pos != Goalie {
		t.Errorf("unmarshal = %v, want G", out.Pos)
	}
	if err := json.Unmarshal([]byte(`{"pos":"X"}`), &out); !errors.Is(err, ErrUnknownPosition) {
		t.Errorf("unmarshal X error = %v", err)
	}
}
