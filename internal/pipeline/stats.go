package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RunStats tracks counts from one pipeline run.
type RunStats struct {
	RunID             string
	Season            int
	Players           int
	SkippedPlayers    int
	Rows              int
	MissingRatings    int
	MissingCapValues  int
	RealizedSalaries  int
	Placeholders      map[string]int
	UnpredictedWindow int
	Prospects         int
	Duration          time.Duration
}

// PlaceholderRows is the total number of rows given a placeholder salary.
func (s RunStats) PlaceholderRows() int {
	total := 0
	for _, n := range s.Placeholders {
		total += n
	}
	return total
}

// Summary returns a human-readable summary of the run.
func (s RunStats) Summary() string {
	names := make([]string, 0, len(s.Placeholders))
	for name := range s.Placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, s.Placeholders[name]))
	}

	return fmt.Sprintf(
		"season=%d players=%d skipped=%d rows=%d missing_ovr=%d missing_value=%d salaries=%d placeholders[%s] prospects=%d",
		s.Season, s.Players, s.SkippedPlayers, s.Rows,
		s.MissingRatings, s.MissingCapValues, s.RealizedSalaries,
		strings.Join(parts, " "), s.Prospects,
	)
}
