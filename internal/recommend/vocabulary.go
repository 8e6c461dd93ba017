package recommend

import (
	"math"
	"sort"
	"strings"
)

const (
	// MaxDocumentFrequency is the fraction of documents a term may appear in
	// before it is dropped as too common to discriminate.
	MaxDocumentFrequency = 0.95

	// MinDocumentFrequency is the number of documents a term must appear in.
	MinDocumentFrequency = 1

	// MaxNGram is the longest run of adjacent words extracted as a term.
	MaxNGram = 2
)

// Terms splits text into case-folded whitespace tokens and returns every
// unigram followed by every bigram, in text order.
func Terms(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return nil
	}

	terms := make([]string, 0, len(words)*MaxNGram)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// Vocabulary maps retained terms to stable indices and idf weights.
// It is immutable once built.
type Vocabulary struct {
	terms     []string       // index -> term, sorted
	index     map[string]int // term -> index
	idf       []float64      // index -> idf weight
	documents int            // corpus size the vocabulary was fitted on
}

// BuildVocabulary fits a vocabulary on the given feature texts.
//
// A term is retained when it appears in at least MinDocumentFrequency
// documents and in no more than MaxDocumentFrequency of all documents.
// Retained terms are indexed in lexical order and weighted with the
// smoothed idf: ln((1+N)/(1+df)) + 1.
func BuildVocabulary(texts []string) *Vocabulary {
	n := len(texts)
	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, term := range Terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	maxDocs := MaxDocumentFrequency * float64(n)
	retained := make([]string, 0, len(df))
	for term, count := range df {
		if count < MinDocumentFrequency || float64(count) > maxDocs {
			continue
		}
		retained = append(retained, term)
	}
	sort.Strings(retained)

	vocab := &Vocabulary{
		terms:     retained,
		index:     make(map[string]int, len(retained)),
		idf:       make([]float64, len(retained)),
		documents: n,
	}
	for i, term := range retained {
		vocab.index[term] = i
		vocab.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	return vocab
}

// Len returns the number of retained terms (the vector dimension).
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Documents returns the size of the corpus the vocabulary was fitted on.
func (v *Vocabulary) Documents() int {
	return v.documents
}

// Terms returns a copy of the retained terms in index order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Lookup returns the index of a term.
func (v *Vocabulary) Lookup(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// IDF returns the idf weight of a term, or 0 if it is not in the vocabulary.
func (v *Vocabulary) IDF(term string) float64 {
	i, ok := v.Lookup(term)
	if !ok {
		return 0
	}
	return v.idf[i]
}

// Term returns the term at index i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Vectorize converts text into an L2-normalized tf-idf vector. Terms not
// in the vocabulary are ignored; text with no known terms yields the zero
// vector.
func (v *Vocabulary) Vectorize(text string) Vector {
	tf := make(map[int]int)
	for _, term := range Terms(text) {
		if i, ok := v.index[term]; ok {
			tf[i]++
		}
	}
	if len(tf) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(tf))
	for i := range tf {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	weights := make([]float64, len(indices))
	for k, i := range indices {
		weights[k] = float64(tf[i]) * v.idf[i]
	}

	vec := Vector{Indices: indices, Weights: weights}
	vec.normalize()
	return vec
}
