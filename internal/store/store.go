// Package store persists document embeddings and serves nearest-neighbor
// lookups. Two backends implement VectorStore: a SQLite file under a
// configured directory (default) and Postgres with the pgvector extension.
package store

import (
	"context"
	"math"

	"github.com/nbatyrova/mindmate/internal/model"
)

// VectorStore is the similarity index used by the pipeline.
type VectorStore interface {
	// Add inserts one document with its embedding.
	Add(ctx context.Context, doc model.Document, vec []float32) error

	// Search returns the topK documents closest to the query vector,
	// most similar first.
	Search(ctx context.Context, vec []float32, topK int) ([]model.Document, error)

	// Clear removes every document and the recorded dataset hash.
	Clear(ctx context.Context) error

	// Count reports how many documents the store holds.
	Count(ctx context.Context) (int, error)

	// DatasetHash returns the content hash recorded by the last completed
	// build, or "" if none.
	DatasetHash(ctx context.Context) (string, error)

	// SetDatasetHash records the content hash of a completed build.
	SetDatasetHash(ctx context.Context, hash string) error

	Close() error
}

const metaDatasetHash = "dataset_hash"

// cosine returns the cosine similarity of two vectors, 0 when either is
// zero-length or the dimensions differ.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
