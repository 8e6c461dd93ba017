package main

import (
	"testing"

	"github.com/matsen/medrec/internal/conflict"
	"github.com/matsen/medrec/internal/git"
	"github.com/matsen/medrec/internal/medicine"
)

const conflictedCatalogue = `{"name":"Aspirin","uses":["pain relief"],"category":"Analgesic"}
<<<<<<< HEAD
{"name":"Cetirizine","uses":["allergy"],"category":"Antihistamine"}
{"name":"Omeprazole","uses":["acid reflux"]}
=======
{"name":"cetirizine","uses":["allergy","hay fever"],"category":"Antiallergic"}
{"name":"Loratadine","uses":["allergy"]}
>>>>>>> feature
{"name":"Ibuprofen","uses":["inflammation"]}
`

func TestResolveConflicts(t *testing.T) {
	parsed, err := conflict.ParseString(conflictedCatalogue)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	tests := []struct {
		name           string
		prefer         conflict.Side
		wantUnresolved bool
		wantCategory   string
	}{
		{"no preference", conflict.SideNone, true, ""},
		{"prefer ours", conflict.SideOurs, false, "Antihistamine"},
		{"prefer theirs", conflict.SideTheirs, false, "Antiallergic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, byRegion, unresolved := resolveConflicts(parsed, tt.prefer)

			if unresolved != tt.wantUnresolved {
				t.Fatalf("unresolved = %v, want %v", unresolved, tt.wantUnresolved)
			}
			if result.Regions != 1 || result.OursOnly != 1 || result.TheirsOnly != 1 {
				t.Errorf("unexpected counts: %+v", result)
			}
			if len(result.Operations) != 3 {
				t.Errorf("expected 3 operations, got %d", len(result.Operations))
			}

			meds, err := conflict.Assemble(parsed, byRegion)
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}

			if tt.wantUnresolved {
				if len(result.Unresolved) != 1 || result.Unresolved[0].Name != "Cetirizine" {
					t.Errorf("unexpected unresolved: %+v", result.Unresolved)
				}
				if len(meds) != 4 {
					t.Errorf("expected 4 medicines without the conflicted one, got %d", len(meds))
				}
				return
			}

			if len(meds) != 5 {
				t.Fatalf("expected 5 medicines, got %d", len(meds))
			}
			if meds[0].Name != "Aspirin" || meds[4].Name != "Ibuprofen" {
				t.Errorf("clean lines out of order: first %q, last %q", meds[0].Name, meds[4].Name)
			}
			cetirizine := meds[1]
			if cetirizine.Name != "Cetirizine" || cetirizine.Category != tt.wantCategory {
				t.Errorf("cetirizine = %+v, want category %q", cetirizine, tt.wantCategory)
			}
			if len(cetirizine.Uses) != 2 {
				t.Errorf("uses should be merged, got %v", cetirizine.Uses)
			}
			if result.Merged != 1 {
				t.Errorf("Merged = %d, want 1", result.Merged)
			}
		})
	}
}

func TestBuildDiffResult(t *testing.T) {
	result := buildDiffResult("HEAD", &git.Diff{
		Changed: []git.Change{{
			Old: medicine.Medicine{Name: "Aspirin"},
			New: medicine.Medicine{Name: "aspirin"},
		}},
	})

	if result.Added == nil || result.Removed == nil {
		t.Error("empty lists should serialize as []")
	}
	if len(result.Changed) != 1 || result.Changed[0].Name != "aspirin" {
		t.Errorf("unexpected changes: %+v", result.Changed)
	}
}
