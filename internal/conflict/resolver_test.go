package conflict

import (
	"reflect"
	"testing"

	"github.com/matsen/medrec/internal/medicine"
)

func TestResolve(t *testing.T) {
	base := medicine.Medicine{
		Name:       "Cetirizine",
		Uses:       []string{"allergy"},
		Components: []string{"cetirizine"},
	}
	withCategory := base
	withCategory.Category = "Antihistamine"
	moreUses := base
	moreUses.Uses = []string{"allergy", "hay fever"}

	tests := []struct {
		name   string
		ours   medicine.Medicine
		theirs medicine.Medicine
		want   Action
	}{
		{"identical", base, base, ActionKeepOurs},
		{"ours has category", withCategory, base, ActionKeepOurs},
		{"theirs has more uses", base, moreUses, ActionKeepTheirs},
		{"complementary", withCategory, moreUses, ActionMerge},
		{
			"category conflict",
			withCategory,
			medicine.Medicine{Name: "cetirizine", Uses: []string{"allergy"}, Category: "Antiallergic"},
			ActionConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Resolve(Match{Ours: tt.ours, Theirs: tt.theirs})
			if plan.Action != tt.want {
				t.Errorf("Action = %s, want %s (%s)", plan.Action, tt.want, plan.Reason)
			}
			if plan.Name != tt.ours.Name {
				t.Errorf("Name = %q, want %q", plan.Name, tt.ours.Name)
			}
			if (plan.Action == ActionConflict) != (len(plan.Conflicts) > 0) {
				t.Errorf("conflicts %v inconsistent with action %s", plan.Conflicts, plan.Action)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	ours := medicine.Medicine{
		Name:       "Aspirin",
		Uses:       []string{"pain relief", "fever"},
		Components: []string{"acetylsalicylic acid"},
		Category:   "Analgesic",
	}
	theirs := medicine.Medicine{
		Name:        "ASPIRIN",
		Uses:        []string{"fever", "blood thinning"},
		Components:  []string{"acetylsalicylic acid"},
		Description: "NSAID used since 1899.",
	}

	merged, conflicts := Merge(ours, theirs)

	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", conflicts)
	}
	want := medicine.Medicine{
		Name:        "Aspirin",
		Uses:        []string{"pain relief", "fever", "blood thinning"},
		Components:  []string{"acetylsalicylic acid"},
		Category:    "Analgesic",
		Description: "NSAID used since 1899.",
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("Merge() = %+v, want %+v", merged, want)
	}
}

func TestMerge_Conflicts(t *testing.T) {
	ours := medicine.Medicine{Name: "Aspirin", Category: "Analgesic", Description: "a"}
	theirs := medicine.Medicine{Name: "Aspirin", Category: "NSAID", Description: "b"}

	merged, conflicts := Merge(ours, theirs)

	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}
	if conflicts[0] != (FieldConflict{Field: "category", Ours: "Analgesic", Theirs: "NSAID"}) {
		t.Errorf("unexpected category conflict: %+v", conflicts[0])
	}
	if merged.Category != "" || merged.Description != "" {
		t.Errorf("conflicting fields should be left empty: %+v", merged)
	}
}

func TestApply(t *testing.T) {
	match := Match{
		Ours:   medicine.Medicine{Name: "Aspirin", Uses: []string{"fever"}, Category: "Analgesic"},
		Theirs: medicine.Medicine{Name: "Aspirin", Uses: []string{"pain"}, Category: "NSAID"},
	}
	plan := Resolve(match)
	if plan.Action != ActionConflict {
		t.Fatalf("expected conflict, got %s", plan.Action)
	}

	tests := []struct {
		prefer Side
		want   string
	}{
		{SideNone, "Analgesic"},
		{SideOurs, "Analgesic"},
		{SideTheirs, "NSAID"},
	}
	for _, tt := range tests {
		got := Apply(match, plan, tt.prefer)
		if got.Category != tt.want {
			t.Errorf("Apply(prefer=%q).Category = %q, want %q", tt.prefer, got.Category, tt.want)
		}
		if len(got.Uses) != 2 {
			t.Errorf("uses should still be merged, got %v", got.Uses)
		}
	}
}

func TestApply_KeepActions(t *testing.T) {
	match := Match{
		Ours:   medicine.Medicine{Name: "Aspirin", Uses: []string{"fever"}},
		Theirs: medicine.Medicine{Name: "Aspirin", Uses: []string{"fever", "pain"}},
	}

	if got := Apply(match, Plan{Action: ActionKeepOurs}, SideNone); !reflect.DeepEqual(got, match.Ours) {
		t.Errorf("keep ours returned %+v", got)
	}
	if got := Apply(match, Plan{Action: ActionKeepTheirs}, SideNone); !reflect.DeepEqual(got, match.Theirs) {
		t.Errorf("keep theirs returned %+v", got)
	}
}

func TestParseSide(t *testing.T) {
	for _, s := range []string{"", "ours", "theirs"} {
		if _, err := ParseSide(s); err != nil {
			t.Errorf("ParseSide(%q) error = %v", s, err)
		}
	}
	if _, err := ParseSide("both"); err == nil {
		t.Error("ParseSide(both) should fail")
	}
}
