package reference

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/albapepper/capvalue/internal/model"
)

// LinearModel maps a rating to a cap value: ovr*Coef + Intercept.
type LinearModel struct {
	Coef      float64 `json:"coef"`
	Intercept float64 `json:"intercept"`
}

// PositionModels holds one rating-to-value model per position.
type PositionModels struct {
	Center  LinearModel
	Wing    LinearModel
	Defense LinearModel
	Goalie  LinearModel
}

// For returns the model for pos.
func (m PositionModels) For(pos model.Position) (LinearModel, error) {
	switch pos {
	case model.Center:
		return m.Center, nil
	case model.Wing:
		return m.Wing, nil
	case model.Defense:
		return m.Defense, nil
	case model.Goalie:
		return m.Goalie, nil
	default:
		return LinearModel{}, fmt.Errorf("value model: %w: %d", model.ErrUnknownPosition, int(pos))
	}
}

// CapValue converts a rating to cap value for pos, clipped at zero.
func (m PositionModels) CapValue(pos model.Position, ovr float64) (float64, error) {
	lm, err := m.For(pos)
	if err != nil {
		return 0, err
	}
	return math.Max(ovr*lm.Coef+lm.Intercept, 0), nil
}

// Set assigns the model for pos.
func (m *PositionModels) Set(pos model.Position, lm LinearModel) error {
	switch pos {
	case model.Center:
		m.Center = lm
	case model.Wing:
		m.Wing = lm
	case model.Defense:
		m.Defense = lm
	case model.Goalie:
		m.Goalie = lm
	default:
		return fmt.Errorf("value model: %w: %d", model.ErrUnknownPosition, int(pos))
	}
	return nil
}

// ParsePositionModels decodes {"C":{"coef":..,"intercept":..},...}. Every
// position must be present exactly once.
func ParsePositionModels(data []byte) (PositionModels, error) {
	var raw map[string]LinearModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return PositionModels{}, fmt.Errorf("decode position models: %w", err)
	}
	var models PositionModels
	seen := make(map[model.Position]bool, len(raw))
	for code, lm := range raw {
		pos, err := model.ParsePosition(code)
		if err != nil {
			return PositionModels{}, err
		}
		if err := models.Set(pos, lm); err != nil {
			return PositionModels{}, err
		}
		seen[pos] = true
	}
	for _, pos := range model.Positions {
		if !seen[pos] {
			return PositionModels{}, fmt.Errorf("position models: missing model for %s", pos)
		}
	}
	return models, nil
}
