package domain

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestNormalizeScores(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected []float64
	}{
		{
			name:     "empty batch",
			scores:   []float64{},
			expected: []float64{},
		},
		{
			name:     "all zero",
			scores:   []float64{0, 0, 0},
			expected: []float64{0, 0, 0},
		},
		{
			name:     "descending batch",
			scores:   []float64{10, 5, 2},
			expected: []float64{1.0, 0.5, 0.2}, // 10/10, 5/10, 2/10
		},
		{
			name:     "maximum not first",
			scores:   []float64{2, 8, 4},
			expected: []float64{0.25, 1.0, 0.5}, // 2/8, 8/8, 4/8
		},
		{
			name:     "single score",
			scores:   []float64{3.7},
			expected: []float64{1.0},
		},
		{
			name:     "equal scores",
			scores:   []float64{4, 4, 4},
			expected: []float64{1.0, 1.0, 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScores(tt.scores)
			if len(got) != len(tt.expected) {
				t.Fatalf("NormalizeScores() returned %d scores, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if math.Abs(got[i]-tt.expected[i]) > floatTolerance {
					t.Errorf("NormalizeScores()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestNormalizeScores_DoesNotMutateInput(t *testing.T) {
	scores := []float64{10, 5}
	NormalizeScores(scores)
	if scores[0] != 10 || scores[1] != 5 {
		t.Errorf("NormalizeScores() mutated its input: %v", scores)
	}
}

func TestBlendScores(t *testing.T) {
	vec := func(v float64) *float64 { return &v }

	tests := []struct {
		name         string
		bm25         float64
		vector       *float64
		bm25Weight   float64
		vectorWeight float64
		expected     float64
	}{
		{
			name:         "no vector score, default weights",
			bm25:         1.0,
			vector:       nil,
			bm25Weight:   0.5,
			vectorWeight: 0.5,
			expected:     0.5, // 1.0 * 0.5, vector term drops out
		},
		{
			name:         "both scores, default weights",
			bm25:         0.8,
			vector:       vec(0.6),
			bm25Weight:   0.5,
			vectorWeight: 0.5,
			expected:     0.7, // 0.8*0.5 + 0.6*0.5 = 0.4 + 0.3
		},
		{
			name:         "weights need not sum to one",
			bm25:         1.0,
			vector:       vec(1.0),
			bm25Weight:   0.9,
			vectorWeight: 0.9,
			expected:     1.8, // 1.0*0.9 + 1.0*0.9, passed through unchecked
		},
		{
			name:         "zero bm25 weight silences the text signal",
			bm25:         1.0,
			vector:       vec(0.4),
			bm25Weight:   0,
			vectorWeight: 1,
			expected:     0.4,
		},
		{
			name:         "no vector score, zero weight",
			bm25:         0.75,
			vector:       nil,
			bm25Weight:   0,
			vectorWeight: 1,
			expected:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlendScores(tt.bm25, tt.vector, tt.bm25Weight, tt.vectorWeight)
			if math.Abs(got-tt.expected) > floatTolerance {
				t.Errorf("BlendScores() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSimilarityFromDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{"identical vectors", 0, 1},
		{"orthogonal vectors", 1, 0},
		{"close vectors", 0.25, 0.75},
		{"opposite vectors", 2, -1}, // cosine distance tops out at 2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityFromDistance(tt.distance)
			if math.Abs(got-tt.expected) > floatTolerance {
				t.Errorf("SimilarityFromDistance(%v) = %v, want %v", tt.distance, got, tt.expected)
			}
		})
	}
}
