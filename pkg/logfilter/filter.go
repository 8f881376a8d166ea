// Package logfilter collapses re-emitted log events and narrows log lines to a single swap.
package logfilter

import (
	"encoding/json"
	"strings"
)

// dedupKey identifies a structured event independent of when it was emitted.
type dedupKey struct {
	msg      string
	createID string
	action   string
	order    string
	chain    string
}

type structuredEntry struct {
	line string
	ts   float64
}

// Deduplicate collapses repeated log events.
//
// Lines that decode to a JSON object with a numeric "ts" are grouped by their msg, createID, action,
// order and chain fields and only the line with the highest ts survives. Every other line is
// deduplicated by exact text. Each surviving line keeps the position of the first line in its group,
// so Deduplicate(Deduplicate(x)) == Deduplicate(x).
func Deduplicate(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}

	type slot struct {
		structured bool
		key        dedupKey
		text       string
	}

	order := make([]slot, 0, len(lines))
	latest := make(map[dedupKey]*structuredEntry)
	seenText := make(map[string]struct{})

	for _, line := range lines {
		key, ts, ok := parseStructured(line)
		if !ok {
			if _, dup := seenText[line]; dup {
				continue
			}
			seenText[line] = struct{}{}
			order = append(order, slot{text: line})
			continue
		}

		cur, exists := latest[key]
		if !exists {
			latest[key] = &structuredEntry{line: line, ts: ts}
			order = append(order, slot{structured: true, key: key})
			continue
		}
		if ts > cur.ts {
			cur.line = line
			cur.ts = ts
		}
	}

	out := make([]string, 0, len(order))
	for _, s := range order {
		if s.structured {
			out = append(out, latest[s.key].line)
			continue
		}
		out = append(out, s.text)
	}
	return out
}

func parseStructured(line string) (dedupKey, float64, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return dedupKey{}, 0, false
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(trimmed), &record); err != nil {
		return dedupKey{}, 0, false
	}

	ts, ok := record["ts"].(float64)
	if !ok {
		return dedupKey{}, 0, false
	}

	return dedupKey{
		msg:      field(record, "msg"),
		createID: field(record, "createID"),
		action:   field(record, "action"),
		order:    field(record, "order"),
		chain:    field(record, "chain"),
	}, ts, true
}

// field renders a key field as text. Non-string values are tagged so {"order": 1} and {"order": "1"} differ.
func field(record map[string]any, name string) string {
	v, ok := record[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return "\x00" + string(raw)
}

// Identifiers returns the non-empty identifiers in order with duplicates removed.
func Identifiers(ids ...string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// FilterRelevant keeps lines that contain any of the non-empty identifiers.
// With no usable identifier every line is considered relevant.
func FilterRelevant(lines []string, ids ...string) []string {
	needles := Identifiers(ids...)
	if len(needles) == 0 {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		for _, needle := range needles {
			if strings.Contains(line, needle) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}
