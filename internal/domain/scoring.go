package domain

// NormalizeScores maps a batch of raw scores into [0, 1] by dividing
// each score by the batch maximum.
//
// Edge cases:
//   - Empty batch: returns an empty batch.
//   - Maximum of zero: every normalized score is zero. An all-zero
//     batch is a valid outcome, not an error.
func NormalizeScores(scores []float64) []float64 {
	normalized := make([]float64, len(scores))
	if len(scores) == 0 {
		return normalized
	}

	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return normalized
	}

	for i, s := range scores {
		normalized[i] = s / maxScore
	}
	return normalized
}

// BlendScores combines normalized full-text and vector scores into a
// single hybrid score.
//
// Formula:
//
//	hybrid = bm25Normalized*bm25Weight + vectorNormalized*vectorWeight
//
// When no vector score is available the vector term drops out and the
// hybrid score is just the weighted full-text score. Weights are
// applied as given; callers may pass weights that do not sum to 1.
func BlendScores(bm25Normalized float64, vectorNormalized *float64, bm25Weight, vectorWeight float64) float64 {
	score := bm25Normalized * bm25Weight
	if vectorNormalized != nil {
		score += *vectorNormalized * vectorWeight
	}
	return score
}

// SimilarityFromDistance converts a cosine distance into a similarity
// score. Identical vectors score 1, orthogonal vectors score 0.
func SimilarityFromDistance(distance float64) float64 {
	return 1 - distance
}
