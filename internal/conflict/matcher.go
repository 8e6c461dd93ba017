package conflict

// MatchMedicines pairs medicines across the two sides of a region by
// case-insensitive name. Order follows ours, then theirs.
func MatchMedicines(region Region) MatchResult {
	var result MatchResult

	theirsByKey := make(map[string]int, len(region.Theirs))
	for i, m := range region.Theirs {
		if _, dup := theirsByKey[m.Key()]; !dup {
			theirsByKey[m.Key()] = i
		}
	}

	matchedTheirs := make(map[int]bool)
	for _, ours := range region.Ours {
		i, ok := theirsByKey[ours.Key()]
		if !ok || matchedTheirs[i] {
			result.OursOnly = append(result.OursOnly, ours)
			continue
		}
		matchedTheirs[i] = true
		result.Matches = append(result.Matches, Match{Ours: ours, Theirs: region.Theirs[i]})
	}

	for i, theirs := range region.Theirs {
		if !matchedTheirs[i] {
			result.TheirsOnly = append(result.TheirsOnly, theirs)
		}
	}

	return result
}
