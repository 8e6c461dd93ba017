package validation

import (
	"errors"
	"fmt"

	"github.com/matsen/medrec/internal/medicine"
)

// issuesPerMedicine scales the quality score: a catalogue with this many
// issues per medicine scores zero.
const issuesPerMedicine = 5

// Report is a read-only quality assessment of a catalogue.
type Report struct {
	TotalMedicines  int          `json:"total_medicines"`
	StructureValid  bool         `json:"structure_valid"`
	StructureErrors []string     `json:"structure_errors"`
	Duplicates      []Duplicate  `json:"duplicates"`
	Completeness    Completeness `json:"completeness"`
	QualityScore    float64      `json:"quality_score"`
}

// Duplicate is a group of medicines sharing a case-insensitive name.
type Duplicate struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Indices []int  `json:"indices"`
}

// Completeness counts which feature lists are populated.
type Completeness struct {
	HasUses       int          `json:"has_uses"`
	HasComponents int          `json:"has_components"`
	HasBoth       int          `json:"has_both"`
	HasNeither    int          `json:"has_neither"`
	EmptyEntries  []EmptyEntry `json:"empty_entries"`
}

// EmptyEntry identifies a medicine with no uses and no components.
type EmptyEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Issues returns the number of problems counted against the quality score.
func (r *Report) Issues() int {
	return len(r.StructureErrors) + len(r.Duplicates) + r.Completeness.HasNeither
}

// BuildReport assesses a catalogue without modifying it.
func BuildReport(meds []medicine.Medicine) *Report {
	r := &Report{
		TotalMedicines:  len(meds),
		StructureErrors: []string{},
		Duplicates:      detectDuplicates(meds),
		Completeness:    checkCompleteness(meds),
	}

	for i, m := range meds {
		err := ValidateMedicine(m)
		if err == nil {
			continue
		}
		var re *RecordError
		if !errors.As(err, &re) {
			r.StructureErrors = append(r.StructureErrors, fmt.Sprintf("medicine at index %d: %v", i, err))
			continue
		}
		for _, fe := range re.Errors() {
			// Counted under completeness instead
			if fe.Tag() == TagFeatures {
				continue
			}
			r.StructureErrors = append(r.StructureErrors, fmt.Sprintf("medicine at index %d: %s", i, fe.Error()))
		}
	}
	r.StructureValid = len(r.StructureErrors) == 0
	r.QualityScore = qualityScore(r.Issues(), len(meds))

	return r
}

func qualityScore(issues, total int) float64 {
	if total == 0 {
		return 0
	}
	score := 100 - float64(issues)/float64(total*issuesPerMedicine)*100
	if score < 0 {
		return 0
	}
	return score
}

func detectDuplicates(meds []medicine.Medicine) []Duplicate {
	indices := make(map[string][]int)
	var order []string
	for i, m := range meds {
		key := m.Key()
		if key == "" {
			continue
		}
		if _, seen := indices[key]; !seen {
			order = append(order, key)
		}
		indices[key] = append(indices[key], i)
	}

	dups := []Duplicate{}
	for _, key := range order {
		if idx := indices[key]; len(idx) > 1 {
			dups = append(dups, Duplicate{Name: key, Count: len(idx), Indices: idx})
		}
	}
	return dups
}

func checkCompleteness(meds []medicine.Medicine) Completeness {
	c := Completeness{EmptyEntries: []EmptyEntry{}}
	for i, m := range meds {
		hasUses := len(m.Uses) > 0
		hasComponents := len(m.Components) > 0

		if hasUses {
			c.HasUses++
		}
		if hasComponents {
			c.HasComponents++
		}
		switch {
		case hasUses && hasComponents:
			c.HasBoth++
		case !m.HasFeatures():
			c.HasNeither++
			c.EmptyEntries = append(c.EmptyEntries, EmptyEntry{Index: i, Name: m.Name})
		}
	}
	return c
}
