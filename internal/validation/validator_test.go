package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/matsen/medrec/internal/medicine"
)

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}

func TestValidateMedicine(t *testing.T) {
	tests := []struct {
		name      string
		med       medicine.Medicine
		wantField string
		wantTag   string
	}{
		{
			name: "valid",
			med:  medicine.Medicine{Name: "Aspirin", Uses: []string{"fever"}, Components: []string{"aspirin"}},
		},
		{
			name: "uses only",
			med:  medicine.Medicine{Name: "Aspirin", Uses: []string{"fever"}},
		},
		{
			name: "components only",
			med:  medicine.Medicine{Name: "Aspirin", Components: []string{"aspirin"}},
		},
		{
			name:      "missing name",
			med:       medicine.Medicine{Uses: []string{"fever"}},
			wantField: "name",
			wantTag:   "required",
		},
		{
			name:      "blank name",
			med:       medicine.Medicine{Name: "   ", Uses: []string{"fever"}},
			wantField: "name",
			wantTag:   "notblank",
		},
		{
			name:      "blank use",
			med:       medicine.Medicine{Name: "Aspirin", Uses: []string{"fever", " "}},
			wantField: "uses[1]",
			wantTag:   "notblank",
		},
		{
			name:      "blank component",
			med:       medicine.Medicine{Name: "Aspirin", Components: []string{""}},
			wantField: "components[0]",
			wantTag:   "notblank",
		},
		{
			name:      "no features",
			med:       medicine.Medicine{Name: "Placebo"},
			wantField: "uses",
			wantTag:   TagFeatures,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMedicine(tt.med)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("ValidateMedicine() unexpected error: %v", err)
				}
				return
			}

			var re *RecordError
			if !errors.As(err, &re) {
				t.Fatalf("expected *RecordError, got %v", err)
			}
			if len(re.Errors()) != 1 {
				t.Fatalf("expected 1 field error, got %d: %v", len(re.Errors()), re)
			}
			fe := re.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if fe.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", fe.Tag(), tt.wantTag)
			}
		})
	}
}

func TestValidateMedicine_MultipleErrors(t *testing.T) {
	err := ValidateMedicine(medicine.Medicine{Name: "", Uses: []string{""}})

	var re *RecordError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RecordError, got %v", err)
	}
	if len(re.Errors()) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(re.Errors()))
	}
	msg := re.Error()
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "uses[0] must not be blank") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestBuildReport(t *testing.T) {
	meds := []medicine.Medicine{
		{Name: "Aspirin", Uses: []string{"fever"}, Components: []string{"aspirin"}},
		{Name: "Ibuprofen", Uses: []string{"pain"}},
		{Name: "aspirin", Components: []string{"acetylsalicylic acid"}},
		{Name: "Placebo"},
		{Name: " ", Uses: []string{"sleep"}},
	}

	r := BuildReport(meds)

	if r.TotalMedicines != 5 {
		t.Errorf("TotalMedicines = %d, want 5", r.TotalMedicines)
	}
	if r.StructureValid {
		t.Error("StructureValid should be false with a blank name")
	}
	if len(r.StructureErrors) != 1 || !strings.Contains(r.StructureErrors[0], "index 4") {
		t.Errorf("StructureErrors = %v, want one error at index 4", r.StructureErrors)
	}

	if len(r.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", len(r.Duplicates))
	}
	dup := r.Duplicates[0]
	if dup.Name != "aspirin" || dup.Count != 2 || dup.Indices[0] != 0 || dup.Indices[1] != 2 {
		t.Errorf("unexpected duplicate group: %+v", dup)
	}

	c := r.Completeness
	if c.HasUses != 3 || c.HasComponents != 2 || c.HasBoth != 1 || c.HasNeither != 1 {
		t.Errorf("unexpected completeness: %+v", c)
	}
	if len(c.EmptyEntries) != 1 || c.EmptyEntries[0].Name != "Placebo" || c.EmptyEntries[0].Index != 3 {
		t.Errorf("unexpected empty entries: %+v", c.EmptyEntries)
	}

	// 3 issues over 5 medicines: 100 - 3/25*100
	if r.Issues() != 3 {
		t.Errorf("Issues() = %d, want 3", r.Issues())
	}
	if math.Abs(r.QualityScore-88) > 1e-9 {
		t.Errorf("QualityScore = %v, want 88", r.QualityScore)
	}
}

func TestBuildReport_Clean(t *testing.T) {
	r := BuildReport([]medicine.Medicine{
		{Name: "Aspirin", Uses: []string{"fever"}},
		{Name: "Ibuprofen", Components: []string{"ibuprofen"}},
	})

	if !r.StructureValid {
		t.Errorf("expected valid structure, got %v", r.StructureErrors)
	}
	if r.QualityScore != 100 {
		t.Errorf("QualityScore = %v, want 100", r.QualityScore)
	}
	if r.Duplicates == nil || r.StructureErrors == nil || r.Completeness.EmptyEntries == nil {
		t.Error("report lists should be empty, not nil")
	}
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(nil)
	if r.TotalMedicines != 0 || r.QualityScore != 0 {
		t.Errorf("empty catalogue report = %+v", r)
	}
	if !r.StructureValid {
		t.Error("empty catalogue has no structure errors")
	}
}

func TestQualityScore_Floor(t *testing.T) {
	if got := qualityScore(50, 2); got != 0 {
		t.Errorf("qualityScore(50, 2) = %v, want 0", got)
	}
	if got := qualityScore(5, 2); math.Abs(got-50) > 1e-9 {
		t.Errorf("qualityScore(5, 2) = %v, want 50", got)
	}
}
