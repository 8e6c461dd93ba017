package conflict

import (
	"strings"

	"github.com/matsen/medrec/internal/medicine"
)

// Resolve decides how to combine a matched pair.
//
// Uses and components merge as ordered unions, so they never conflict.
// Category and description conflict when both sides set different values.
func Resolve(match Match) Plan {
	plan := Plan{Name: match.Ours.Name}

	if _, conflicts := Merge(match.Ours, match.Theirs); len(conflicts) > 0 {
		plan.Action = ActionConflict
		plan.Conflicts = conflicts
		plan.Reason = "conflicting " + fieldNames(conflicts)
		return plan
	}

	oursExtra := hasExtra(match.Ours, match.Theirs)
	theirsExtra := hasExtra(match.Theirs, match.Ours)

	switch {
	case oursExtra && theirsExtra:
		plan.Action = ActionMerge
		plan.Reason = "complementary fields merged"
	case theirsExtra:
		plan.Action = ActionKeepTheirs
		plan.Reason = "theirs is more complete"
	case oursExtra:
		plan.Action = ActionKeepOurs
		plan.Reason = "ours is more complete"
	default:
		plan.Action = ActionKeepOurs
		plan.Reason = "identical content, keeping ours"
	}
	return plan
}

// Merge combines two versions of a medicine. The name keeps ours' spelling.
// Conflicting string fields are left empty in the result and reported.
func Merge(ours, theirs medicine.Medicine) (medicine.Medicine, []FieldConflict) {
	merged := medicine.Medicine{
		Name:       ours.Name,
		Uses:       union(ours.Uses, theirs.Uses),
		Components: union(ours.Components, theirs.Components),
	}

	var conflicts []FieldConflict
	var c *FieldConflict

	merged.Category, c = mergeString("category", ours.Category, theirs.Category)
	if c != nil {
		conflicts = append(conflicts, *c)
	}
	merged.Description, c = mergeString("description", ours.Description, theirs.Description)
	if c != nil {
		conflicts = append(conflicts, *c)
	}

	return merged, conflicts
}

// Apply produces the resolved medicine for a plan. For ActionConflict the
// prefer side supplies the conflicting fields; with SideNone ours is used.
func Apply(match Match, plan Plan, prefer Side) medicine.Medicine {
	switch plan.Action {
	case ActionKeepOurs:
		return match.Ours
	case ActionKeepTheirs:
		return match.Theirs
	case ActionMerge:
		merged, _ := Merge(match.Ours, match.Theirs)
		return merged
	}

	merged, conflicts := Merge(match.Ours, match.Theirs)
	source := match.Ours
	if prefer == SideTheirs {
		source = match.Theirs
	}
	for _, fc := range conflicts {
		switch fc.Field {
		case "category":
			merged.Category = source.Category
		case "description":
			merged.Description = source.Description
		}
	}
	return merged
}

// hasExtra reports whether a carries any use, component or field b lacks.
func hasExtra(a, b medicine.Medicine) bool {
	if (a.Category != "" && b.Category == "") || (a.Description != "" && b.Description == "") {
		return true
	}
	return !subset(a.Uses, b.Uses) || !subset(a.Components, b.Components)
}

func mergeString(field, ours, theirs string) (string, *FieldConflict) {
	switch {
	case ours == "":
		return theirs, nil
	case theirs == "" || ours == theirs:
		return ours, nil
	}
	return "", &FieldConflict{Field: field, Ours: ours, Theirs: theirs}
}

// union returns a followed by the entries of b not already present.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	result := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}
	return result
}

func subset(a, b []string) bool {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	for _, s := range a {
		if !in[s] {
			return false
		}
	}
	return true
}

func fieldNames(conflicts []FieldConflict) string {
	names := make([]string, len(conflicts))
	for i, c := range conflicts {
		names[i] = c.Field
	}
	return strings.Join(names, ", ")
}
