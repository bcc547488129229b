package league

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// GameAttributes carries the settings the pipeline needs: the reference
// season and the user's team.
type GameAttributes struct {
	Season     int
	UserTeamID int
}

// UnmarshalJSON accepts both the object form {"season":2025,...} and the
// legacy list form [{"key":"season","value":2025},...].
func (g *GameAttributes) UnmarshalJSON(data []byte) error {
	attrs := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &attrs); err != nil {
		var list []struct {
			Key   string          `json:"key"`
			Value json.RawMessage `json:"value"`
		}
		if errList := json.Unmarshal(data, &list); errList != nil {
			return fmt.Errorf("gameAttributes: %w", err)
		}
		for _, kv := range list {
			attrs[kv.Key] = kv.Value
		}
	}

	if raw, ok := attrs["season"]; ok {
		season, err := decodeInt(raw)
		if err != nil {
			return fmt.Errorf("gameAttributes.season: %w", err)
		}
		g.Season = season
	}
	if raw, ok := attrs["userTid"]; ok {
		tid, err := decodeLatest(raw)
		if err != nil {
			return fmt.Errorf("gameAttributes.userTid: %w", err)
		}
		g.UserTeamID = tid
	}
	return nil
}

// decodeLatest reads a setting that is either a plain value or a history of
// {"start":..,"value":..} entries, in which case the last entry wins.
func decodeLatest(raw json.RawMessage) (int, error) {
	var history []struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &history); err == nil {
		if len(history) == 0 {
			return 0, fmt.Errorf("empty history")
		}
		return decodeInt(history[len(history)-1].Value)
	}
	return decodeInt(raw)
}

func decodeInt(raw json.RawMessage) (int, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	f, ok := ExtractValue(v)
	if !ok {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %s", raw)
	}
	return int(f), nil
}

// ExtractValue normalizes a numeric setting from the shapes exports use:
// plain numbers, numeric strings, or {"value": n} wrappers.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]interface{}:
		if inner, exists := v["value"]; exists && inner != nil {
			return ExtractValue(inner)
		}
		return 0, false
	default:
		return 0, false
	}
}
