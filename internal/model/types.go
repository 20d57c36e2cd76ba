package model

// Record is one row of the source Q&A dataset.
type Record struct {
	Context  string
	Response string
}

// Document is one indexed chunk of a record plus its retrieval metadata.
// Metadata keys: "original_context" (raw pre-clean context), "row" (source
// row index), "chunk" (chunk index within the row).
type Document struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResult is the body of a successful POST /chat response.
type ChatResult struct {
	Response string     `json:"response"`
	Sources  []Document `json:"sources"`
}
