package text

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewChunkerRejectsBadWindows(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals size", 50, 50},
		{"overlap exceeds size", 50, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewChunker(tt.size, tt.overlap); err == nil {
				t.Errorf("NewChunker(%d, %d) accepted invalid window", tt.size, tt.overlap)
			}
		})
	}
}

func TestSplitShortInputIsSingleChunk(t *testing.T) {
	c, err := NewChunker(500, 50)
	if err != nil {
		t.Fatal(err)
	}
	in := "question i feel anxious answer let us talk"
	chunks := c.Split(in)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != in {
		t.Errorf("chunk = %q, want %q", chunks[0], in)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	c, err := NewChunker(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Split("   \n\t "); got != nil {
		t.Errorf("expected nil for blank input, got %v", got)
	}
}

func TestSplitChunkCount(t *testing.T) {
	// count = ceil((n-overlap)/(size-overlap)) for n > size, else 1
	tests := []struct {
		n, size, overlap, want int
	}{
		{4, 5, 2, 1},
		{5, 5, 2, 1},
		{6, 5, 2, 2},
		{8, 5, 2, 2},
		{9, 5, 2, 3},
		{12, 5, 2, 4},
		{500, 500, 50, 1},
		{1000, 500, 50, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d_w=%d_o=%d", tt.n, tt.size, tt.overlap), func(t *testing.T) {
			c, err := NewChunker(tt.size, tt.overlap)
			if err != nil {
				t.Fatal(err)
			}
			chunks := c.Split(words(tt.n))
			if len(chunks) != tt.want {
				t.Errorf("got %d chunks, want %d", len(chunks), tt.want)
			}
		})
	}
}

func TestSplitCoversEveryWord(t *testing.T) {
	c, err := NewChunker(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	input := words(23)
	seen := map[string]bool{}
	for _, chunk := range c.Split(input) {
		for _, w := range strings.Fields(chunk) {
			seen[w] = true
		}
	}
	for _, w := range strings.Fields(input) {
		if !seen[w] {
			t.Errorf("word %q missing from chunks", w)
		}
	}
}

func TestSplitOverlap(t *testing.T) {
	c, err := NewChunker(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Split(words(8))
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// second window starts at word index size-overlap = 3
	if !strings.HasPrefix(chunks[1], "w3 ") {
		t.Errorf("second chunk %q should start at w3", chunks[1])
	}
}

func words(n int) string {
	ws := make([]string, n)
	for i := range ws {
		ws[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(ws, " ")
}
