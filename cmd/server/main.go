package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nbatyrova/mindmate/internal/api"
	"github.com/nbatyrova/mindmate/internal/config"
	"github.com/nbatyrova/mindmate/internal/dataset"
	"github.com/nbatyrova/mindmate/internal/service"
	"github.com/nbatyrova/mindmate/internal/store"
	"github.com/nbatyrova/mindmate/internal/text"
)

// Startup is fail-fast: the listener only starts once the dataset is
// preprocessed, the index is built and the chain is constructed. Any error
// on the way aborts the process.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	chunker, err := text.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("chunker: %v", err)
	}

	st, err := newStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	docs, err := dataset.NewPreprocessor(cfg.DatasetPath, chunker).Load()
	if err != nil {
		log.Fatalf("preprocess: %v", err)
	}
	log.Printf("dataset: %d documents from %s", len(docs), cfg.DatasetPath)

	llm := service.NewLLMClient(cfg)
	if err := service.NewIndexer(llm, st).Build(context.Background(), docs); err != nil {
		log.Fatalf("vectorize: %v", err)
	}

	rag := service.NewRAGService(llm, llm, st, cfg.TopK, time.Duration(cfg.LLMTimeoutSecs)*time.Second)

	app := fiber.New()
	api.RegisterRoutes(app, rag)

	log.Printf("🚀 Server started at %s", cfg.ServerAddr)
	log.Fatal(app.Listen(cfg.ServerAddr))
}

func newStore(cfg *config.Config) (store.VectorStore, error) {
	if cfg.StoreBackend == "postgres" {
		return store.NewPgStore(cfg.PgConn, cfg.EmbedDim)
	}
	return store.NewSQLiteStore(cfg.IndexDir)
}
