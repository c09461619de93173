// Package draft holds the in-progress form state for each diary type and
// the reducer that edits it. Every edit is expressed as a tagged Action and
// applied to a fresh clone, so a caller's previous draft value is never
// mutated out from under it.
package draft

import (
	"errors"
	"fmt"
)

// Action ops understood by every draft type.
const (
	OpSetField    = "setField"
	OpSetRowField = "setRowField"
	OpAddRow      = "addRow"
	OpRemoveRow   = "removeRow"
	OpToggle      = "toggleOption"
)

// Action is one tagged edit against a draft. Field names follow the JSON
// field names of the draft payload.
type Action struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"`
	Index int    `json:"index,omitempty"`
	Value string `json:"value,omitempty"`
}

var (
	ErrUnknownOp    = errors.New("draft: unknown action op")
	ErrUnknownField = errors.New("draft: unknown field")
)

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// prependRow adds a blank row at the front so the most recently added row
// is listed first.
func prependRow[T any](rows []T, blank T) []T {
	out := make([]T, 0, len(rows)+1)
	out = append(out, blank)
	return append(out, rows...)
}

// removeRow deletes the row at idx. The result is never empty: removing
// the last remaining row re-seeds a single blank one, so rendering code
// never has to handle a zero-row form. Out-of-range indexes are ignored.
func removeRow[T any](rows []T, idx int, blank T) []T {
	if idx < 0 || idx >= len(rows) {
		return copyRows(rows)
	}
	out := make([]T, 0, len(rows)-1)
	out = append(out, rows[:idx]...)
	out = append(out, rows[idx+1:]...)
	if len(out) == 0 {
		out = append(out, blank)
	}
	return out
}

// updateRow applies fn to exactly one row of a copied slice.
func updateRow[T any](rows []T, idx int, fn func(*T)) []T {
	out := copyRows(rows)
	if idx >= 0 && idx < len(out) {
		fn(&out[idx])
	}
	return out
}

func copyRows[T any](rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}

// toggle flips membership of v in a small option set: remove when present,
// append when absent. Only append order is promised.
func toggle(opts []string, v string) []string {
	for i, o := range opts {
		if o == v {
			out := make([]string, 0, len(opts)-1)
			out = append(out, opts[:i]...)
			return append(out, opts[i+1:]...)
		}
	}
	out := make([]string, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, v)
}
