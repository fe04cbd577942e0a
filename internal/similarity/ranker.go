// Package similarity scores corpus words against a target vector by cosine similarity.
package similarity

import (
	"fmt"
	"sort"

	"github.com/hyperjump/ruigo/internal/corpus"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/pkg/utils"
)

// Rank scores every candidate row in snap against target and returns the
// qualifying words ordered by descending score, ties broken by ascending
// token. The target is normalized once; candidate rows use the snapshot's
// precomputed unit vectors, so each pair costs a single dot product.
//
// pos restricts candidates by part of speech, exclude drops the query word
// itself, minSim filters scores below the threshold, and limit truncates the
// result (non-positive limit falls back to models.DefaultLimit). A limit
// larger than the corpus returns all qualifying rows; an empty qualifying
// set returns an empty slice.
func Rank(target []float32, snap *corpus.Snapshot, pos models.POSFilter, limit int, minSim float64, exclude string) ([]*models.SimilarWord, error) {
	if snap.Size() == 0 {
		return []*models.SimilarWord{}, nil
	}
	if len(target) != snap.Dimensions() {
		return nil, fmt.Errorf("target dimension mismatch: got %d, corpus has %d", len(target), snap.Dimensions())
	}
	if limit <= 0 {
		limit = models.DefaultLimit
	}

	unit := make([]float32, len(target))
	copy(unit, target)
	utils.NormalizeL2(unit)

	results := make([]*models.SimilarWord, 0, limit)
	for i := 0; i < snap.Size(); i++ {
		switch pos {
		case models.POSNoun:
			if !snap.IsNoun(i) {
				continue
			}
		case models.POSVerb:
			if !snap.IsVerb(i) {
				continue
			}
		}
		token := snap.Token(i)
		if token == exclude {
			continue
		}
		// Zero target or zero candidate rows yield 0 here, never NaN.
		score := utils.Dot(unit, snap.UnitVector(i))
		if score < minSim {
			continue
		}
		results = append(results, &models.SimilarWord{Word: token, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Word < results[j].Word
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
