// Package conflict resolves git merge conflicts in medicines.jsonl using
// what it knows about medicine records.
package conflict

import (
	"fmt"

	"github.com/matsen/medrec/internal/medicine"
)

// Region is a single git conflict region in a JSONL file.
type Region struct {
	StartLine int // Line of the <<<<<<< marker (1-indexed)
	EndLine   int // Line of the >>>>>>> marker

	Ours   []medicine.Medicine // HEAD side
	Theirs []medicine.Medicine // Incoming side
}

// CleanLine is a line outside any conflict region.
type CleanLine struct {
	LineNum int
	Content string
}

// ParseResult is a conflicted file split into clean lines and regions.
type ParseResult struct {
	CleanLines []CleanLine
	Conflicts  []Region
}

// HasConflicts reports whether any conflict region was found.
func (r *ParseResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// ParseError is a malformed marker layout or an unreadable JSONL line.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Match is a medicine present on both sides of a region.
type Match struct {
	Ours   medicine.Medicine
	Theirs medicine.Medicine
}

// MatchResult groups the medicines of one region by side.
type MatchResult struct {
	Matches    []Match
	OursOnly   []medicine.Medicine
	TheirsOnly []medicine.Medicine
}

// Action is how a matched pair is resolved.
type Action string

const (
	ActionKeepOurs   Action = "keep_ours"
	ActionKeepTheirs Action = "keep_theirs"
	ActionMerge      Action = "merge"
	ActionAddOurs    Action = "add_ours"
	ActionAddTheirs  Action = "add_theirs"
	ActionConflict   Action = "conflict"
)

// FieldConflict is a field both sides set to different values.
type FieldConflict struct {
	Field  string `json:"field"`
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

// Plan describes how one matched pair will be resolved.
type Plan struct {
	Name      string
	Action    Action
	Reason    string
	Conflicts []FieldConflict
}

// Side picks a version when category or description truly conflict.
type Side string

const (
	SideNone   Side = ""
	SideOurs   Side = "ours"
	SideTheirs Side = "theirs"
)

// ParseSide converts a flag value to a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideNone, SideOurs, SideTheirs:
		return Side(s), nil
	}
	return SideNone, fmt.Errorf("invalid side: %s (valid: ours, theirs)", s)
}
