package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nbatyrova/mindmate/internal/model"
	"github.com/nbatyrova/mindmate/internal/store"
	"github.com/nbatyrova/mindmate/internal/util"
)

// ErrIndexBuild marks embedding or index-population failures. Fatal at
// startup.
var ErrIndexBuild = errors.New("index build error")

// Indexer populates the vector store from preprocessed documents.
type Indexer struct {
	embedder Embedder
	store    store.VectorStore
}

func NewIndexer(embedder Embedder, st store.VectorStore) *Indexer {
	return &Indexer{embedder: embedder, store: st}
}

// Build embeds every document and inserts it into the store. Rebuilds
// replace rather than accumulate: the store records a content hash of the
// documents, and when the hash matches a populated index the build is
// skipped entirely; otherwise the store is cleared and repopulated.
func (ix *Indexer) Build(ctx context.Context, docs []model.Document) error {
	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	hash := util.HashStrings(contents)

	prev, err := ix.store.DatasetHash(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading dataset hash: %v", ErrIndexBuild, err)
	}
	if prev == hash {
		n, err := ix.store.Count(ctx)
		if err != nil {
			return fmt.Errorf("%w: counting documents: %v", ErrIndexBuild, err)
		}
		if n > 0 {
			log.Printf("index: dataset unchanged (%d documents), reusing existing index", n)
			return nil
		}
	}

	if err := ix.store.Clear(ctx); err != nil {
		return fmt.Errorf("%w: clearing index: %v", ErrIndexBuild, err)
	}
	for i, doc := range docs {
		vec, err := ix.embedder.Embedding(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("%w: embedding document %d: %v", ErrIndexBuild, i, err)
		}
		if err := ix.store.Add(ctx, doc, vec); err != nil {
			return fmt.Errorf("%w: inserting document %d: %v", ErrIndexBuild, i, err)
		}
	}
	if err := ix.store.SetDatasetHash(ctx, hash); err != nil {
		return fmt.Errorf("%w: recording dataset hash: %v", ErrIndexBuild, err)
	}
	log.Printf("index: built %d documents", len(docs))
	return nil
}
