package matching

import (
	"context"
	"math"
	"time"

	"fixhive/utils"

	"go.uber.org/zap"
)

// Embedder converts text into an embedding vector. Implemented by the Gemini
// client in services/intelligence; tests use an in-package fake.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SemanticRefiner computes the maximum cosine similarity between a diagnosis
// query and a shop's text corpus. It only ever adds ranking signal: any
// embedder failure or timeout degrades to a similarity of 0 and never blocks
// the substring-based pass.
type SemanticRefiner struct {
	Embedder Embedder
	Timeout  time.Duration
}

// Similarity returns max cosine similarity in [0,1] between queryText and
// the corpus texts, or 0 on any failure.
func (r *SemanticRefiner) Similarity(ctx context.Context, queryText string, corpusTexts []string) float64 {
	if r == nil || r.Embedder == nil || queryText == "" || len(corpusTexts) == 0 {
		return 0
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := utils.GetLogger()

	query, err := r.Embedder.Embed(ctx, queryText)
	if err != nil {
		logger.Warn("embedding query failed, skipping semantic refinement", zap.Error(err))
		return 0
	}

	best := 0.0
	for _, text := range corpusTexts {
		vec, err := r.Embedder.Embed(ctx, text)
		if err != nil {
			logger.Warn("embedding corpus text failed, skipping entry", zap.Error(err))
			continue
		}
		if sim := cosineSimilarity(query, vec); sim > best {
			best = sim
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// cosineSimilarity is dot(a,b) / (|a|*|b|); 0 for mismatched or zero vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
