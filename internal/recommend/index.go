package recommend

import "sort"

// NoExclude disables position exclusion in Rank.
const NoExclude = -1

// Index holds the trained vectors, aligned 1:1 with catalogue positions.
type Index struct {
	vectors []Vector
}

// NewIndex creates an index over the given vectors.
func NewIndex(vectors []Vector) *Index {
	return &Index{vectors: vectors}
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Vector returns the vector at catalogue position i.
func (idx *Index) Vector(i int) Vector {
	return idx.vectors[i]
}

// Similarity returns the cosine similarity between positions i and j.
func (idx *Index) Similarity(i, j int) float64 {
	return CosineSimilarity(idx.vectors[i], idx.vectors[j])
}

// Rank scores query against every indexed vector and returns matches
// sorted by descending score. Equal scores keep ascending catalogue order.
// The exclude position (NoExclude for none) is dropped before the result
// is truncated to limit entries; a limit < 1 yields no matches.
func (idx *Index) Rank(query Vector, exclude, limit int) []Match {
	if limit < 1 {
		return []Match{}
	}

	matches := make([]Match, 0, len(idx.vectors))
	for i, vec := range idx.vectors {
		if i == exclude {
			continue
		}
		matches = append(matches, Match{
			Position: i,
			Score:    CosineSimilarity(query, vec),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
