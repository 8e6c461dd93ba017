package recommend

import (
	"errors"
	"strings"
	"time"

	"github.com/matsen/medrec/internal/medicine"
)

// Errors returned by the recommendation service.
var (
	ErrEmptyCatalogue   = errors.New("catalogue is empty")
	ErrModelNotTrained  = errors.New("model not trained")
	ErrMedicineNotFound = errors.New("medicine not found")
)

// DefaultTopN is the number of recommendations callers use when none is given.
const DefaultTopN = 5

// Service owns a catalogue and the model trained on it.
//
// A Service is either untrained (after NewService or Load) or trained (after
// a successful Train). It does no internal locking: callers sharing one
// Service must serialize Load and Train against all reads, or swap in a
// freshly trained Service.
type Service struct {
	medicines []medicine.Medicine
	nameIndex map[string]int // lowercased name -> catalogue position

	vocab *Vocabulary
	index *Index
}

// NewService creates an empty, untrained service.
func NewService() *Service {
	return &Service{nameIndex: make(map[string]int)}
}

// Load replaces the catalogue and resets the service to untrained.
// Duplicate names resolve to the last occurrence. An empty catalogue is
// rejected with ErrEmptyCatalogue and leaves the service empty.
func (s *Service) Load(meds []medicine.Medicine) error {
	s.vocab = nil
	s.index = nil

	if len(meds) == 0 {
		s.medicines = nil
		s.nameIndex = make(map[string]int)
		return ErrEmptyCatalogue
	}

	s.medicines = meds
	s.nameIndex = make(map[string]int, len(meds))
	for i, m := range meds {
		s.nameIndex[m.Key()] = i
	}
	return nil
}

// Train fits the vocabulary on every loaded medicine and vectorizes the
// catalogue. It must be repeated after any change to the catalogue.
func (s *Service) Train() (*TrainStats, error) {
	if len(s.medicines) == 0 {
		return nil, ErrEmptyCatalogue
	}
	start := time.Now()

	texts := make([]string, len(s.medicines))
	for i, m := range s.medicines {
		texts[i] = m.FeatureText()
	}

	vocab := BuildVocabulary(texts)
	vectors := make([]Vector, len(texts))
	zero := 0
	for i, text := range texts {
		vectors[i] = vocab.Vectorize(text)
		if vectors[i].IsZero() {
			zero++
		}
	}

	s.vocab = vocab
	s.index = NewIndex(vectors)

	return &TrainStats{
		Medicines:   len(s.medicines),
		Dimensions:  vocab.Len(),
		ZeroVectors: zero,
		Duration:    time.Since(start),
	}, nil
}

// Trained reports whether the service can serve recommendations.
func (s *Service) Trained() bool {
	return s.index != nil
}

// Len returns the number of loaded medicines.
func (s *Service) Len() int {
	return len(s.medicines)
}

// Medicines returns the loaded catalogue in position order.
func (s *Service) Medicines() []medicine.Medicine {
	return s.medicines
}

// Vocabulary returns the fitted vocabulary, or nil when untrained.
func (s *Service) Vocabulary() *Vocabulary {
	return s.vocab
}

// FindByName looks up a medicine case-insensitively. An exact name match
// wins; otherwise the first medicine in catalogue order whose name contains
// the query is returned. The substring fallback is permissive and may pick
// an unrelated medicine when the query occurs in several names.
func (s *Service) FindByName(name string) (medicine.Medicine, bool) {
	pos, _, ok := s.find(name)
	if !ok {
		return medicine.Medicine{}, false
	}
	return s.medicines[pos], true
}

// Resolve is FindByName returning the catalogue position and whether the
// substring fallback was needed.
func (s *Service) Resolve(name string) (pos int, fuzzy bool, ok bool) {
	return s.find(name)
}

func (s *Service) find(name string) (int, bool, bool) {
	key := medicine.NormalizeName(name)

	if pos, ok := s.nameIndex[key]; ok {
		return pos, false, true
	}

	for i, m := range s.medicines {
		if strings.Contains(strings.ToLower(m.Name), key) {
			return i, true, true
		}
	}
	return -1, false, false
}

// Recommend returns up to topN medicines most similar to the named one,
// sorted by descending score with ties in catalogue order. With excludeSelf
// the queried medicine never appears in the results. A topN below 1 yields
// an empty result.
func (s *Service) Recommend(name string, topN int, excludeSelf bool) ([]Recommendation, error) {
	if !s.Trained() {
		return nil, ErrModelNotTrained
	}

	pos, _, ok := s.find(name)
	if !ok {
		return nil, ErrMedicineNotFound
	}
	// A substring hit may land on a duplicate name; rank from the indexed entry.
	pos = s.nameIndex[s.medicines[pos].Key()]

	exclude := NoExclude
	if excludeSelf {
		exclude = pos
	}

	return s.collect(s.index.Rank(s.index.Vector(pos), exclude, topN)), nil
}

// RecommendText ranks the catalogue against an ad-hoc query such as
// "pain relief ibuprofen", using the vocabulary from the last training pass.
func (s *Service) RecommendText(query string, topN int) ([]Recommendation, error) {
	if !s.Trained() {
		return nil, ErrModelNotTrained
	}
	return s.collect(s.index.Rank(s.vocab.Vectorize(query), NoExclude, topN)), nil
}

// Similarity returns the cosine similarity between two catalogue positions.
func (s *Service) Similarity(i, j int) (float64, error) {
	if !s.Trained() {
		return 0, ErrModelNotTrained
	}
	return s.index.Similarity(i, j), nil
}

func (s *Service) collect(matches []Match) []Recommendation {
	recs := make([]Recommendation, len(matches))
	for i, m := range matches {
		recs[i] = Recommendation{
			Medicine: s.medicines[m.Position],
			Score:    m.Score,
			Position: m.Position,
		}
	}
	return recs
}
