package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nbatyrova/mindmate/internal/model"
)

func sampleDocs() []model.Document {
	return []model.Document{
		{Content: "Question: a Answer: b", Metadata: map[string]any{"row": 0, "chunk": 0}},
		{Content: "Question: c Answer: d", Metadata: map[string]any{"row": 1, "chunk": 0}},
	}
}

func TestBuildPopulatesStoreAndRecordsHash(t *testing.T) {
	st := &mockStore{}
	ix := NewIndexer(&mockEmbedder{}, st)

	if err := ix.Build(context.Background(), sampleDocs()); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(st.added) != 2 {
		t.Errorf("expected 2 inserted documents, got %d", len(st.added))
	}
	if st.hash == "" {
		t.Error("dataset hash was not recorded")
	}
}

func TestBuildSkipsWhenDatasetUnchanged(t *testing.T) {
	st := &mockStore{}
	emb := &mockEmbedder{}
	ix := NewIndexer(emb, st)

	if err := ix.Build(context.Background(), sampleDocs()); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	firstClears, firstEmbeds := st.cleared, emb.calls

	if err := ix.Build(context.Background(), sampleDocs()); err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if st.cleared != firstClears {
		t.Error("unchanged dataset should not clear the index")
	}
	if emb.calls != firstEmbeds {
		t.Error("unchanged dataset should not re-embed documents")
	}
}

func TestBuildReplacesWhenDatasetChanges(t *testing.T) {
	st := &mockStore{}
	ix := NewIndexer(&mockEmbedder{}, st)

	if err := ix.Build(context.Background(), sampleDocs()); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	changed := []model.Document{{Content: "Question: new Answer: data"}}
	if err := ix.Build(context.Background(), changed); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	if st.cleared == 0 {
		t.Error("changed dataset should clear the old index")
	}
	if len(st.added) != 1 {
		t.Errorf("expected 1 document after rebuild, got %d", len(st.added))
	}
}

func TestBuildEmbeddingFailureIsFatal(t *testing.T) {
	st := &mockStore{}
	ix := NewIndexer(&mockEmbedder{err: errors.New("model not loaded")}, st)

	err := ix.Build(context.Background(), sampleDocs())
	if !errors.Is(err, ErrIndexBuild) {
		t.Errorf("expected ErrIndexBuild, got %v", err)
	}
	if st.hash != "" {
		t.Error("failed build must not record a dataset hash")
	}
}
