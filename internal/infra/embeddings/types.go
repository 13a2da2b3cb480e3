package embeddings

// embedRequest is the wire request for the embedding server. The shape
// follows the Ollama /api/embed contract, which the bundled mock server
// also speaks.
type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embedResponse is the wire response. Embeddings arrive in input order.
type embedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}
