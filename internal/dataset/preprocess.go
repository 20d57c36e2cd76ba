// Package dataset turns the tabular Q&A source file into indexable documents.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nbatyrova/mindmate/internal/model"
	"github.com/nbatyrova/mindmate/internal/text"
)

// ErrDataSource marks structural dataset failures: missing file, unreadable
// content, missing required columns. Fatal at startup.
var ErrDataSource = errors.New("data source error")

// Required dataset columns.
const (
	columnContext  = "Context"
	columnResponse = "Response"
)

// Preprocessor reads the CSV dataset, cleans each record and splits it into
// chunked documents.
type Preprocessor struct {
	path    string
	chunker *text.Chunker
}

func NewPreprocessor(path string, chunker *text.Chunker) *Preprocessor {
	return &Preprocessor{path: path, chunker: chunker}
}

// Load reads every record and returns the documents in dataset order. A
// malformed individual row is logged and skipped; a missing file or missing
// required column fails the whole pass with ErrDataSource.
func (p *Preprocessor) Load() ([]model.Document, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrDataSource, p.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", ErrDataSource, p.path, err)
	}
	ctxIdx, respIdx := -1, -1
	for i, name := range header {
		switch name {
		case columnContext:
			ctxIdx = i
		case columnResponse:
			respIdx = i
		}
	}
	if ctxIdx < 0 || respIdx < 0 {
		return nil, fmt.Errorf("%w: %s must contain %q and %q columns", ErrDataSource, p.path, columnContext, columnResponse)
	}

	var docs []model.Document
	for row := 0; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("dataset: skipping row %d: %v", row, err)
			continue
		}
		if len(rec) <= ctxIdx || len(rec) <= respIdx {
			log.Printf("dataset: skipping row %d: too few fields (%d)", row, len(rec))
			continue
		}
		docs = append(docs, p.documentsFor(row, rec[ctxIdx], rec[respIdx])...)
	}
	return docs, nil
}

// documentsFor cleans one record, formats the combined Question/Answer text
// and emits one document per chunk. Metadata keeps the raw pre-clean context
// together with stable row and chunk indices.
func (p *Preprocessor) documentsFor(row int, rawContext, rawResponse string) []model.Document {
	combined := fmt.Sprintf("Question: %s\nAnswer: %s", text.Clean(rawContext), text.Clean(rawResponse))

	chunks := p.chunker.Split(combined)
	docs := make([]model.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, model.Document{
			Content: chunk,
			Metadata: map[string]any{
				"original_context": rawContext,
				"row":              row,
				"chunk":            i,
			},
		})
	}
	return docs
}
