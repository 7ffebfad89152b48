package xr

import (
	"fmt"
	"sort"
	"strings"
)

// Only two conditions abort a whole batch: input that is not the
// expected record collection, and a roster that does not match the
// expected season. Everything else (missing stats, degenerate
// baselines, out-of-range xG) recovers locally.

// MalformedInputError indicates the history is structurally unusable
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

// RosterMismatchError indicates the observed team names do not match the
// expected season roster. Missing lists expected teams never observed,
// Unexpected lists observed teams outside the roster.
type RosterMismatchError struct {
	Missing    []string
	Unexpected []string
}

func (e *RosterMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		m := append([]string(nil), e.Missing...)
		sort.Strings(m)
		parts = append(parts, fmt.Sprintf("missing from history: %s", strings.Join(m, ", ")))
	}
	if len(e.Unexpected) > 0 {
		u := append([]string(nil), e.Unexpected...)
		sort.Strings(u)
		parts = append(parts, fmt.Sprintf("not in expected roster: %s", strings.Join(u, ", ")))
	}
	return fmt.Sprintf("roster mismatch: %s", strings.Join(parts, "; "))
}
