package git

import (
	"testing"

	"github.com/matsen/medrec/internal/medicine"
)

func TestDiffMedicines(t *testing.T) {
	old := []medicine.Medicine{
		{Name: "Aspirin", Uses: []string{"pain relief"}},
		{Name: "Ibuprofen", Uses: []string{"inflammation"}},
		{Name: "Omeprazole", Uses: []string{"acid reflux"}, Components: []string{}},
	}
	current := []medicine.Medicine{
		{Name: "Omeprazole", Uses: []string{"acid reflux"}},
		{Name: "aspirin", Uses: []string{"pain relief", "fever"}},
		{Name: "Zinc", Components: []string{"zinc"}},
		{Name: "Cetirizine", Uses: []string{"allergy"}},
	}

	diff := DiffMedicines(old, current)

	if names := namesOf(diff.Added); len(names) != 2 || names[0] != "Cetirizine" || names[1] != "Zinc" {
		t.Errorf("Added = %v, want [Cetirizine Zinc]", names)
	}
	if names := namesOf(diff.Removed); len(names) != 1 || names[0] != "Ibuprofen" {
		t.Errorf("Removed = %v, want [Ibuprofen]", names)
	}
	if len(diff.Changed) != 1 {
		t.Fatalf("expected 1 change, got %d", len(diff.Changed))
	}
	if diff.Changed[0].Old.Name != "Aspirin" || diff.Changed[0].New.Name != "aspirin" {
		t.Errorf("unexpected change: %+v", diff.Changed[0])
	}
}

func TestDiffMedicines_Identical(t *testing.T) {
	meds := []medicine.Medicine{{Name: "Aspirin", Uses: []string{"pain relief"}}}
	diff := DiffMedicines(meds, meds)
	if len(diff.Added)+len(diff.Removed)+len(diff.Changed) != 0 {
		t.Errorf("expected empty diff, got %+v", diff)
	}
}

func namesOf(meds []medicine.Medicine) []string {
	names := make([]string, len(meds))
	for i, m := range meds {
		names[i] = m.Name
	}
	return names
}
