package recommend

import "math"

// Vector is a sparse feature vector. Indices are strictly increasing and
// aligned with Weights; all weights are non-negative.
type Vector struct {
	Indices []int
	Weights []float64
}

// Len returns the number of non-zero components.
func (v Vector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero components.
func (v Vector) IsZero() bool {
	for _, w := range v.Weights {
		if w != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			dot += v.Weights[i] * o.Weights[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

func (v *Vector) normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v.Weights {
		v.Weights[i] /= norm
	}
}

// CosineSimilarity computes the cosine similarity of two non-negative
// vectors. The result lies in [0, 1]; a zero vector has similarity 0 with
// everything, including itself.
func CosineSimilarity(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := a.Dot(b) / (normA * normB)
	if sim > 1 {
		return 1
	}
	if sim < 0 {
		return 0
	}
	return sim
}
