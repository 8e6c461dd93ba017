package recommend

import "github.com/matsen/medrec/internal/medicine"

// Explain returns the uses and components shared by original and rec.
// Matching is exact on the stored strings; results follow the order of
// original and contain no duplicates. It does not affect ranking.
func Explain(original, rec medicine.Medicine) Explanation {
	return Explanation{
		SharedUses:       intersect(original.Uses, rec.Uses),
		SharedComponents: intersect(original.Components, rec.Components),
	}
}

func intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, s := range b {
		in[s] = struct{}{}
	}

	shared := []string{}
	seen := make(map[string]struct{})
	for _, s := range a {
		if _, ok := in[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		shared = append(shared, s)
	}
	return shared
}
