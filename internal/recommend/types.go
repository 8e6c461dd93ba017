// Package recommend provides content-based medicine recommendations using
// tf-idf weighted uses and components and cosine similarity ranking.
package recommend

import (
	"time"

	"github.com/matsen/medrec/internal/medicine"
)

// Match is a catalogue position with its similarity to a query.
type Match struct {
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

// Recommendation pairs a catalogued medicine with its similarity score.
type Recommendation struct {
	Medicine medicine.Medicine `json:"medicine"`
	Score    float64           `json:"score"`
	Position int               `json:"position"`
}

// Explanation lists the uses and components two medicines share.
type Explanation struct {
	SharedUses       []string `json:"shared_uses"`
	SharedComponents []string `json:"shared_components"`
}

// TrainStats contains statistics from a training pass.
type TrainStats struct {
	Medicines   int           `json:"medicines"`
	Dimensions  int           `json:"dimensions"`
	ZeroVectors int           `json:"zero_vectors"` // Medicines with no retained terms
	Duration    time.Duration `json:"duration"`
}
