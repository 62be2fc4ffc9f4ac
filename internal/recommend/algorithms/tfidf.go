// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// VectorizerConfig controls term extraction.
type VectorizerConfig struct {
	// MinN and MaxN bound the n-gram sizes. Default: 1 and 2.
	MinN int `json:"min_n"`
	MaxN int `json:"max_n"`

	// KeepStopWords disables English stop-word removal.
	KeepStopWords bool `json:"keep_stop_words"`
}

// DefaultVectorizerConfig returns unigrams and bigrams with stop words removed.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{MinN: 1, MaxN: 2}
}

// Vectorizer is a fitted TF-IDF model: a fixed vocabulary with one inverse
// document frequency per term. It is immutable after Fit.
//
// Weights use raw term counts and smoothed idf:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and every document vector is L2-normalized.
type Vectorizer struct {
	config     VectorizerConfig
	vocabulary map[string]int
	idf        []float64
}

// Fit builds the vocabulary over docs and returns the fitted model together
// with one normalized vector per document, in input order.
func Fit(ctx context.Context, docs []string, cfg VectorizerConfig) (*Vectorizer, []SparseVector, error) {
	if cfg.MinN <= 0 {
		cfg.MinN = 1
	}
	if cfg.MaxN < cfg.MinN {
		cfg.MaxN = cfg.MinN
	}
	v := &Vectorizer{config: cfg}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		if i%1024 == 0 && ContextCancelled(ctx) {
			return nil, nil, ctx.Err()
		}
		counts[i] = v.termCounts(doc)
		for term := range counts[i] {
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]SparseVector, len(docs))
	for i := range counts {
		vectors[i] = v.weigh(counts[i])
	}
	return v, vectors, nil
}

// Transform maps a document onto the fitted vocabulary. Unknown terms are ignored.
func (v *Vectorizer) Transform(doc string) SparseVector {
	return v.weigh(v.termCounts(doc))
}

// VocabularySize returns the number of distinct terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// termIDF returns the inverse document frequency of a term.
func (v *Vectorizer) termIDF(term string) (float64, bool) {
	i, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// Tokenize lower-cases text, splits it into word tokens and drops stop words.
func (v *Vectorizer) Tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if v.config.KeepStopWords {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if !IsStopWord(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// termCounts counts the n-grams of a document.
func (v *Vectorizer) termCounts(doc string) map[string]int {
	tokens := v.Tokenize(doc)
	counts := make(map[string]int, len(tokens)*2)
	for n := v.config.MinN; n <= v.config.MaxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				counts[tokens[i]]++
				continue
			}
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}

// weigh converts term counts into a normalized TF-IDF vector.
func (v *Vectorizer) weigh(counts map[string]int) SparseVector {
	type entry struct {
		idx    int
		weight float64
	}
	entries := make([]entry, 0, len(counts))
	for term, c := range counts {
		if idx, ok := v.vocabulary[term]; ok {
			entries = append(entries, entry{idx: idx, weight: float64(c) * v.idf[idx]})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	vec := SparseVector{
		Indices: make([]int, len(entries)),
		Values:  make([]float64, len(entries)),
	}
	for i, e := range entries {
		vec.Indices[i] = e.idx
		vec.Values[i] = e.weight
	}

	norm := vec.Norm()
	if norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
