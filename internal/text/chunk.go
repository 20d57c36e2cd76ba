package text

import (
	"fmt"
	"strings"
)

// DefaultChunkSize and DefaultChunkOverlap are the word-window parameters
// used when none are configured.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// Chunker splits text into overlapping fixed-size word windows.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker validates the window parameters. The overlap must be smaller
// than the window, otherwise the window would never advance.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if size <= overlap {
		return nil, fmt.Errorf("chunk size (%d) must exceed overlap (%d)", size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split slides a window of size words over the whitespace-split input,
// advancing by size-overlap words each step. The final window is clipped at
// the end of the input; once a window reaches the end no further windows are
// emitted. Input with no words yields nil.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	for i := 0; i < len(words); i += c.size - c.overlap {
		end := i + c.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
