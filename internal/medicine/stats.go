package medicine

// Statistics summarizes a catalogue.
type Statistics struct {
	TotalMedicines     int            `json:"total_medicines"`
	TotalUses          int            `json:"total_uses"`
	TotalComponents    int            `json:"total_components"`
	AvgUsesPerMedicine float64        `json:"avg_uses_per_medicine"`
	AvgComponents      float64        `json:"avg_components_per_medicine"`
	Categories         map[string]int `json:"categories"`
}

// Stats computes catalogue statistics. Medicines without a category are
// counted under UnknownCategory.
func Stats(meds []Medicine) Statistics {
	stats := Statistics{
		TotalMedicines: len(meds),
		Categories:     make(map[string]int),
	}

	for _, m := range meds {
		stats.Categories[m.CategoryOrUnknown()]++
		stats.TotalUses += len(m.Uses)
		stats.TotalComponents += len(m.Components)
	}

	if stats.TotalMedicines > 0 {
		stats.AvgUsesPerMedicine = float64(stats.TotalUses) / float64(stats.TotalMedicines)
		stats.AvgComponents = float64(stats.TotalComponents) / float64(stats.TotalMedicines)
	}

	return stats
}
