package query

import (
	"fmt"
	"math"
	"sort"
)

// ─── FLAMEBEARER DECODING ─────────────────────────────────────────────────────

// Flamebearer is the decoded profile snapshot from a render response.
// Levels encode the call tree breadth-first: each level is a flat run of
// 4-int frame groups [offset, total, self, nameIdx], where nameIdx points
// into Names. NumTicks is the sample total for the whole profile; zero means
// an empty or unavailable profile.
type Flamebearer struct {
	Names    []string
	Levels   [][]int
	NumTicks int
}

// TopFunction is one row of a self-time ranking.
type TopFunction struct {
	Function string  `json:"function"`
	Self     int     `json:"self"`
	Pct      float64 `json:"pct"`
}

// FlamebearerFrom digs the flamebearer section out of a raw render response.
// Missing or mistyped fields decay to zero values rather than failing; a
// zero-value Flamebearer ranks to nothing.
func FlamebearerFrom(jr map[string]interface{}) Flamebearer {
	var fb Flamebearer
	if jr == nil {
		return fb
	}
	section, ok := jr["flamebearer"].(map[string]interface{})
	if !ok {
		return fb
	}
	if names, ok := section["names"].([]interface{}); ok {
		fb.Names = make([]string, 0, len(names))
		for _, n := range names {
			// stringify rather than skip, so name indexes stay aligned
			fb.Names = append(fb.Names, fmt.Sprintf("%v", n))
		}
	}
	if levels, ok := section["levels"].([]interface{}); ok {
		for _, lv := range levels {
			raw, ok := lv.([]interface{})
			if !ok {
				continue
			}
			level := make([]int, 0, len(raw))
			for _, v := range raw {
				if i, ok := asInt(v); ok {
					level = append(level, i)
				}
			}
			fb.Levels = append(fb.Levels, level)
		}
	}
	if ticks, ok := asInt(section["numTicks"]); ok {
		fb.NumTicks = ticks
	}
	return fb
}

// asInt accepts the numeric shapes encoding/json produces.
func asInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	}
	return 0, false
}

// ─── SELF-TIME RANKING ────────────────────────────────────────────────────────

// Top ranks functions by aggregate self-time, largest first, and returns at
// most n rows. A function seen at several depths or call sites accumulates
// one combined total. Ties keep first-seen scan order. Short trailing frame
// groups, out-of-range name indexes and non-positive self values are skipped,
// never errors. NumTicks <= 0 or n <= 0 yields an empty result.
func (fb Flamebearer) Top(n int) []TopFunction {
	if n <= 0 || fb.NumTicks <= 0 {
		return nil
	}

	selfTotals := map[string]int{}
	order := []string{}
	for _, level := range fb.Levels {
		for i := 0; i+3 < len(level); i += 4 {
			selfVal := level[i+2]
			nameIdx := level[i+3]
			if nameIdx < 0 || nameIdx >= len(fb.Names) || selfVal <= 0 {
				continue
			}
			name := fb.Names[nameIdx]
			if _, seen := selfTotals[name]; !seen {
				order = append(order, name)
			}
			selfTotals[name] += selfVal
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return selfTotals[order[a]] > selfTotals[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}

	out := make([]TopFunction, 0, len(order))
	for _, name := range order {
		self := selfTotals[name]
		out = append(out, TopFunction{
			Function: name,
			Self:     self,
			Pct:      math.Round(float64(self)/float64(fb.NumTicks)*1000) / 10,
		})
	}
	return out
}
