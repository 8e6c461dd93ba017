// Package curate cleans up catalogue entries: terminology, categories and
// duplicate names.
package curate

import (
	"strings"

	"github.com/matsen/medrec/internal/medicine"
)

// categoryRule maps a use term to a therapeutic category.
type categoryRule struct {
	term     string
	category string
}

// categoryRules are checked in order; the first term found in a medicine's
// uses decides its category.
var categoryRules = []categoryRule{
	{"pain", "Analgesic"},
	{"headache", "Analgesic"},
	{"allergy", "Antihistamine"},
	{"hay fever", "Antihistamine"},
	{"fever", "Antipyretic"},
	{"inflammation", "Anti-inflammatory"},
	{"arthritis", "Anti-inflammatory"},
	{"fungal", "Antifungal"},
	{"viral", "Antiviral"},
	{"infection", "Antibiotic"},
	{"hypertension", "Antihypertensive"},
	{"cholesterol", "Lipid-lowering"},
	{"diabetes", "Antidiabetic"},
	{"depression", "Antidepressant"},
	{"anxiety", "Anxiolytic"},
	{"insomnia", "Sedative"},
	{"acid reflux", "Antacid"},
	{"ulcer", "Antacid"},
	{"cough", "Antitussive"},
	{"asthma", "Bronchodilator"},
	{"nausea", "Antiemetic"},
	{"diarrhea", "Antidiarrheal"},
	{"seizure", "Anticonvulsant"},
}

// useSynonyms folds common phrasings onto one term so that equivalent
// uses share vocabulary.
var useSynonyms = map[string]string{
	"high blood pressure":       "hypertension",
	"elevated blood pressure":   "hypertension",
	"heartburn":                 "acid reflux",
	"gerd":                      "acid reflux",
	"high cholesterol":          "cholesterol",
	"hypercholesterolemia":      "cholesterol",
	"allergies":                 "allergy",
	"allergic rhinitis":         "allergy",
	"fever reduction":           "fever",
	"pyrexia":                   "fever",
	"sleeplessness":             "insomnia",
	"type 2 diabetes":           "diabetes",
	"bacterial infections":      "bacterial infection",
	"pain":                      "pain relief",
	"painkiller":                "pain relief",
	"inflammatory conditions":   "inflammation",
	"emesis":                    "nausea",
	"upset stomach":             "indigestion",
	"epilepsy":                  "seizure",
	"low mood":                  "depression",
	"anxiety disorder":          "anxiety",
	"generalized anxiety":       "anxiety",
	"chronic cough":             "cough",
	"urinary tract infection":   "uti",
	"urinary tract infections":  "uti",
	"nasal congestion":          "congestion",
	"muscle aches":              "muscle pain",
	"muscular pain":             "muscle pain",
	"migraine headache":         "migraine",
	"rheumatoid arthritis pain": "arthritis",
}

// InferCategory returns the category of the first rule whose term appears
// in the joined uses.
func InferCategory(uses []string) (string, bool) {
	text := strings.ToLower(strings.Join(uses, " "))
	if text == "" {
		return "", false
	}
	for _, r := range categoryRules {
		if strings.Contains(text, r.term) {
			return r.category, true
		}
	}
	return "", false
}

// StandardizeUses rewrites known synonyms and drops uses repeated after
// rewriting. It returns the new uses and the number of uses rewritten or
// dropped.
func StandardizeUses(uses []string) ([]string, int) {
	if len(uses) == 0 {
		return uses, 0
	}
	changed := 0
	seen := make(map[string]bool, len(uses))
	out := make([]string, 0, len(uses))
	for _, use := range uses {
		if canonical, ok := useSynonyms[strings.ToLower(strings.TrimSpace(use))]; ok {
			use = canonical
			changed++
		}
		key := strings.ToLower(use)
		if seen[key] {
			changed++
			continue
		}
		seen[key] = true
		out = append(out, use)
	}
	return out, changed
}

// needsCategory reports whether a category may be filled in.
func needsCategory(m medicine.Medicine) bool {
	return m.Category == "" || m.Category == medicine.UnknownCategory
}

// DuplicateGroup records medicines folded into the first entry with the
// same name.
type DuplicateGroup struct {
	Name    string `json:"name"`
	Primary int    `json:"primary"`
	Merged  []int  `json:"merged"`
}

// MergeDuplicates folds entries sharing a name key into the first
// occurrence. Uses and components are unioned in order; a missing
// category or description is taken from a later entry.
func MergeDuplicates(meds []medicine.Medicine) ([]medicine.Medicine, []DuplicateGroup) {
	out := make([]medicine.Medicine, 0, len(meds))
	first := make(map[string]int, len(meds))
	groupOf := make(map[string]int)
	var groups []DuplicateGroup

	for i, m := range meds {
		key := m.Key()
		pos, dup := first[key]
		if !dup || key == "" {
			first[key] = len(out)
			out = append(out, m)
			continue
		}

		p := &out[pos]
		p.Uses = appendMissing(p.Uses, m.Uses)
		p.Components = appendMissing(p.Components, m.Components)
		if needsCategory(*p) && !needsCategory(m) {
			p.Category = m.Category
		}
		if p.Description == "" {
			p.Description = m.Description
		}

		g, ok := groupOf[key]
		if !ok {
			g = len(groups)
			groupOf[key] = g
			groups = append(groups, DuplicateGroup{Name: p.Name, Primary: originalIndex(meds, key)})
		}
		groups[g].Merged = append(groups[g].Merged, i)
	}
	return out, groups
}

// originalIndex returns the first position of key in meds.
func originalIndex(meds []medicine.Medicine, key string) int {
	for i, m := range meds {
		if m.Key() == key {
			return i
		}
	}
	return -1
}

// appendMissing returns a plus the entries of b not already in a. The
// result never aliases a.
func appendMissing(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Result summarizes an Enrich run.
type Result struct {
	UsesStandardized int              `json:"uses_standardized"`
	Duplicates       []DuplicateGroup `json:"duplicates"`
	CategoriesAdded  int              `json:"categories_added"`
	Changed          bool             `json:"changed"`
}

// Enrich standardizes uses, merges duplicates and fills missing
// categories. The input slice is not modified.
func Enrich(meds []medicine.Medicine) ([]medicine.Medicine, Result) {
	res := Result{Duplicates: []DuplicateGroup{}}

	standardized := make([]medicine.Medicine, len(meds))
	for i, m := range meds {
		uses, n := StandardizeUses(m.Uses)
		if n > 0 {
			m.Uses = uses
		}
		standardized[i] = m
		res.UsesStandardized += n
	}

	merged, groups := MergeDuplicates(standardized)
	if groups != nil {
		res.Duplicates = groups
	}

	for i := range merged {
		if !needsCategory(merged[i]) {
			continue
		}
		if category, ok := InferCategory(merged[i].Uses); ok {
			merged[i].Category = category
			res.CategoriesAdded++
		}
	}

	res.Changed = res.UsesStandardized > 0 || len(res.Duplicates) > 0 || res.CategoriesAdded > 0
	return merged, res
}
