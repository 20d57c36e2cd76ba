package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nbatyrova/mindmate/internal/model"
)

// SQLiteStore keeps vectors in a SQLite file inside a configured directory.
// Search is a brute-force cosine scan, which is fine for datasets of a few
// thousand chunks.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) dir/vectors.db.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if dir == "" {
		dir = "data/index"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dir, "vectors.db"))
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing index schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		metadata TEXT NOT NULL,
		embedding TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Add(ctx context.Context, doc model.Document, vec []float32) error {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	emb, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (content, metadata, embedding)
		VALUES (?, ?, ?)
	`, doc.Content, string(meta), string(emb))
	return err
}

func (s *SQLiteStore) Search(ctx context.Context, vec []float32, topK int) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT content, metadata, embedding FROM documents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type scored struct {
		doc   model.Document
		score float64
	}
	var all []scored
	for rows.Next() {
		var content, metaJSON, embJSON string
		if err := rows.Scan(&content, &metaJSON, &embJSON); err != nil {
			return nil, err
		}
		var meta map[string]any
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
		var emb []float32
		if err := json.Unmarshal([]byte(embJSON), &emb); err != nil {
			return nil, fmt.Errorf("decoding embedding: %w", err)
		}
		all = append(all, scored{
			doc:   model.Document{Content: content, Metadata: meta},
			score: cosine(vec, emb),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	if topK > len(all) {
		topK = len(all)
	}
	res := make([]model.Document, 0, topK)
	for _, sc := range all[:topK] {
		res = append(res, sc.doc)
	}
	return res, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, metaDatasetHash)
	return err
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) DatasetHash(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaDatasetHash).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func (s *SQLiteStore) SetDatasetHash(ctx context.Context, hash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaDatasetHash, hash)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
