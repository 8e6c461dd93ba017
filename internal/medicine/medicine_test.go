package medicine

import (
	"math"
	"testing"
)

func TestFeatureText(t *testing.T) {
	tests := []struct {
		name string
		med  Medicine
		want string
	}{
		{
			name: "uses and components",
			med: Medicine{
				Name:       "Aspirin",
				Uses:       []string{"pain relief", "fever"},
				Components: []string{"acetylsalicylic acid"},
			},
			want: "pain relief fever acetylsalicylic acid",
		},
		{
			name: "uses only",
			med:  Medicine{Name: "X", Uses: []string{"cough"}},
			want: "cough",
		},
		{
			name: "components only",
			med:  Medicine{Name: "X", Components: []string{"menthol"}},
			want: "menthol",
		},
		{
			name: "empty record",
			med:  Medicine{Name: "X"},
			want: "",
		},
		{
			name: "mixed case is folded",
			med:  Medicine{Name: "X", Uses: []string{"Pain Relief"}},
			want: "pain relief",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.med.FeatureText(); got != tt.want {
				t.Errorf("FeatureText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	m := Medicine{Name: "  Ibuprofen "}
	if got := m.Key(); got != "ibuprofen" {
		t.Errorf("Key() = %q, want %q", got, "ibuprofen")
	}
}

func TestHasFeatures(t *testing.T) {
	if (Medicine{Name: "X"}).HasFeatures() {
		t.Error("record without uses or components should have no features")
	}
	if !(Medicine{Name: "X", Components: []string{"zinc"}}).HasFeatures() {
		t.Error("record with components should have features")
	}
}

func TestStats(t *testing.T) {
	meds := []Medicine{
		{Name: "A", Uses: []string{"pain", "fever"}, Components: []string{"a"}, Category: "Analgesic"},
		{Name: "B", Uses: []string{"pain"}, Components: []string{"b", "c"}, Category: "Analgesic"},
		{Name: "C", Uses: []string{"infection"}},
	}

	stats := Stats(meds)

	if stats.TotalMedicines != 3 {
		t.Errorf("TotalMedicines = %d, want 3", stats.TotalMedicines)
	}
	if stats.TotalUses != 4 {
		t.Errorf("TotalUses = %d, want 4", stats.TotalUses)
	}
	if stats.TotalComponents != 3 {
		t.Errorf("TotalComponents = %d, want 3", stats.TotalComponents)
	}
	if math.Abs(stats.AvgUsesPerMedicine-4.0/3.0) > 1e-9 {
		t.Errorf("AvgUsesPerMedicine = %v, want %v", stats.AvgUsesPerMedicine, 4.0/3.0)
	}
	if stats.Categories["Analgesic"] != 2 {
		t.Errorf("Categories[Analgesic] = %d, want 2", stats.Categories["Analgesic"])
	}
	if stats.Categories[UnknownCategory] != 1 {
		t.Errorf("Categories[Unknown] = %d, want 1", stats.Categories[UnknownCategory])
	}
}

func TestStats_Empty(t *testing.T) {
	stats := Stats(nil)
	if stats.TotalMedicines != 0 || stats.AvgUsesPerMedicine != 0 || stats.AvgComponents != 0 {
		t.Errorf("unexpected stats for empty catalogue: %+v", stats)
	}
}
