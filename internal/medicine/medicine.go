// Package medicine defines the core domain types for catalogued medicines.
package medicine

import "strings"

// UnknownCategory is reported for medicines without a category.
const UnknownCategory = "Unknown"

// Medicine represents a single catalogue entry.
type Medicine struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Uses        []string `json:"uses" validate:"dive,notblank"`       // Conditions treated, lowercase
	Components  []string `json:"components" validate:"dive,notblank"` // Active ingredients, lowercase
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Key returns the case-insensitive lookup key for the medicine name.
func (m Medicine) Key() string {
	return NormalizeName(m.Name)
}

// NormalizeName folds a medicine name (or query) into lookup form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FeatureText joins uses and components into the single lowercase
// string that the vectorizer consumes.
func (m Medicine) FeatureText() string {
	text := strings.Join(m.Uses, " ") + " " + strings.Join(m.Components, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// HasFeatures reports whether the medicine has any uses or components.
func (m Medicine) HasFeatures() bool {
	return len(m.Uses) > 0 || len(m.Components) > 0
}

// CategoryOrUnknown returns the category, or UnknownCategory when unset.
func (m Medicine) CategoryOrUnknown() string {
	if m.Category == "" {
		return UnknownCategory
	}
	return m.Category
}
