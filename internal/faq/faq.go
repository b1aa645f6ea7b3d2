// Package faq answers rider questions by TF-IDF similarity over a fixed
// corpus. Character n-grams rather than word tokens carry the matching,
// which tolerates Arabic morphology and typos.
package faq

import (
	"log/slog"
	"math"
	"strings"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/storage"
)

// DefaultThreshold is the minimum cosine similarity for a match. Tuned
// for Arabic corpora; useful values sit between 0.18 and 0.22.
const DefaultThreshold = 0.20

const (
	minGram = 3
	maxGram = 5
)

// Match is the answer picked for a question.
type Match struct {
	ID       int64
	Answer   string
	Question string
	Score    float64
}

// Index is an immutable TF-IDF index over the corpus. Safe for
// concurrent use once built.
type Index struct {
	entries   []storage.FAQEntry
	idf       map[string]float64
	vectors   []map[string]float64
	threshold float64
}

// NewIndex builds the index once at startup.
func NewIndex(entries []storage.FAQEntry, logger *slog.Logger) *Index {
	idx := &Index{entries: entries, threshold: DefaultThreshold}

	docs := make([][]string, len(entries))
	df := map[string]int{}
	for i, e := range entries {
		grams := charNGrams(catalog.Normalize(e.Question))
		docs[i] = grams
		for _, g := range uniqueGrams(grams) {
			df[g]++
		}
	}

	// Smoothed idf, the same formulation scikit-learn uses:
	// ln((1+n)/(1+df)) + 1.
	n := float64(len(entries))
	idx.idf = make(map[string]float64, len(df))
	for g, d := range df {
		idx.idf[g] = math.Log((1+n)/(1+float64(d))) + 1
	}

	idx.vectors = make([]map[string]float64, len(docs))
	for i, grams := range docs {
		idx.vectors[i] = idx.vectorize(grams)
	}

	logger.Info("faq index built", "entries", len(entries), "terms", len(df))
	return idx
}

// BestMatch returns the closest corpus entry, or nil when nothing clears
// the similarity threshold.
func (idx *Index) BestMatch(question string) *Match {
	if len(idx.entries) == 0 {
		return nil
	}

	qv := idx.vectorize(charNGrams(catalog.Normalize(question)))

	best, bestScore := -1, 0.0
	for i, dv := range idx.vectors {
		if s := cosine(qv, dv); s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 || bestScore < idx.threshold {
		return nil
	}
	e := idx.entries[best]
	return &Match{ID: e.ID, Answer: e.Answer, Question: e.Question, Score: bestScore}
}

// vectorize builds an l2-normalized tf-idf vector. Unknown grams carry
// no weight.
func (idx *Index) vectorize(grams []string) map[string]float64 {
	tf := map[string]float64{}
	for _, g := range grams {
		tf[g]++
	}

	v := make(map[string]float64, len(tf))
	norm := 0.0
	for g, f := range tf {
		w, ok := idx.idf[g]
		if !ok {
			continue
		}
		x := f * w
		v[g] = x
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for g := range v {
		v[g] /= norm
	}
	return v
}

func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	dot := 0.0
	for g, x := range a {
		dot += x * b[g]
	}
	return dot
}

// charNGrams emits character n-grams per word, each word padded with
// spaces so grams anchor at word boundaries.
func charNGrams(text string) []string {
	var grams []string
	for _, word := range strings.Fields(text) {
		runes := []rune(" " + word + " ")
		for size := minGram; size <= maxGram; size++ {
			if len(runes) < size {
				// Short words still produce their padded whole form.
				grams = append(grams, string(runes))
				break
			}
			for i := 0; i+size <= len(runes); i++ {
				grams = append(grams, string(runes[i:i+size]))
			}
		}
	}
	return grams
}

func uniqueGrams(grams []string) []string {
	seen := make(map[string]bool, len(grams))
	var out []string
	for _, g := range grams {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
