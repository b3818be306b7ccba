package conciencia

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankSimilar(t *testing.T) {
	query := []float64{1, 0}
	ideas := []Idea{
		{ID: "a", Embedding: []float64{0, 1}},
		{ID: "b", Embedding: []float64{1, 0.1}},
		{ID: "c", Embedding: []float64{1, 0}},
		{ID: "sin-vector"},
	}

	ranked := RankSimilar(query, ideas, 2)
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].ID != "c" {
		t.Errorf("top result = %q, want c", ranked[0].ID)
	}
	if ranked[1].ID != "b" {
		t.Errorf("second result = %q, want b", ranked[1].ID)
	}
}

func TestRankSimilarUnbounded(t *testing.T) {
	ideas := []Idea{
		{ID: "a", Embedding: []float64{1, 0}},
		{ID: "b", Embedding: []float64{0, 1}},
	}
	ranked := RankSimilar([]float64{1, 0}, ideas, 0)
	if len(ranked) != 2 {
		t.Errorf("len = %d, want all ideas with k=0", len(ranked))
	}
}
