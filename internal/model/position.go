// Package model defines the records flowing through the valuation pipeline,
// from the raw per-season rating snapshots to the ranked panel rows served to
// read-only consumers.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownPosition is returned for any position code outside C, W, D, G.
var ErrUnknownPosition = errors.New("unknown position")

// Position is a closed set of skater and goalie positions.
type Position int

const (
	PositionUnknown Position = iota
	Center
	Wing
	Defense
	Goalie
)

// Positions lists every valid position in code order.
var Positions = []Position{Center, Wing, Defense, Goalie}

// ParsePosition maps an export position code to a Position.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "C":
		return Center, nil
	case "W":
		return Wing, nil
	case "D":
		return Defense, nil
	case "G":
		return Goalie, nil
	default:
		return PositionUnknown, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
	}
}

// String returns the export code ("C", "W", "D", "G").
func (p Position) String() string {
	switch p {
	case Center:
		return "C"
	case Wing:
		return "W"
	case Defense:
		return "D"
	case Goalie:
		return "G"
	default:
		return "?"
	}
}

// Code is the numeric feature value fed to the salary model.
func (p Position) Code() (int, error) {
	switch p {
	case Center:
		return 1, nil
	case Wing:
		return 2, nil
	case Defense:
		return 3, nil
	case Goalie:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownPosition, int(p))
	}
}

// Valid reports whether p is one of the four known positions.
func (p Position) Valid() bool {
	_, err := p.Code()
	return err == nil
}

func (p Position) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
