package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/nbatyrova/mindmate/internal/model"
)

// PgStore keeps vectors in Postgres with the pgvector extension. Nearest
// neighbors come from the `<=>` cosine-distance operator backed by an
// ivfflat index.
type PgStore struct {
	db  *sql.DB
	dim int
}

// NewPgStore connects and bootstraps the schema for the given embedding
// dimension.
func NewPgStore(conn string, dim int) (*PgStore, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	s := &PgStore{db: db, dim: dim}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing index schema: %w", err)
	}
	return s, nil
}

func (s *PgStore) ensureSchema() error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL,
			embedding vector(%d)
		)`, s.dim),
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_class c
				JOIN pg_namespace n ON n.oid=c.relnamespace
				WHERE c.relname='documents_embedding_ivfflat_idx'
			) THEN
				EXECUTE 'CREATE INDEX documents_embedding_ivfflat_idx ON documents USING ivfflat (embedding vector_cosine_ops) WITH (lists=100)';
			END IF;
		END $$;`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	// ivfflat planning needs statistics
	_, _ = s.db.Exec(`ANALYZE documents`)
	return nil
}

func (s *PgStore) Add(ctx context.Context, doc model.Document, vec []float32) error {
	if len(vec) != s.dim {
		return fmt.Errorf("embedding dimension %d does not match index dimension %d", len(vec), s.dim)
	}
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (content, metadata, embedding)
		VALUES ($1, $2, $3::vector)
	`, doc.Content, string(meta), floatsToPgVectorLiteral(vec))
	return err
}

func (s *PgStore) Search(ctx context.Context, vec []float32, topK int) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content, metadata
		FROM documents
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`, floatsToPgVectorLiteral(vec), topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Document
	for rows.Next() {
		var content, metaJSON string
		if err := rows.Scan(&content, &metaJSON); err != nil {
			return nil, err
		}
		var meta map[string]any
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
		res = append(res, model.Document{Content: content, Metadata: meta})
	}
	return res, rows.Err()
}

func (s *PgStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE documents RESTART IDENTITY`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM meta WHERE key = $1`, metaDatasetHash)
	return err
}

func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

func (s *PgStore) DatasetHash(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = $1`, metaDatasetHash).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func (s *PgStore) SetDatasetHash(ctx context.Context, hash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, metaDatasetHash, hash)
	return err
}

func (s *PgStore) Close() error {
	return s.db.Close()
}

func floatsToPgVectorLiteral(v []float32) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, f := range v {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf("%.6f", float64(f)))
	}
	sb.WriteString("]")
	return sb.String()
}
