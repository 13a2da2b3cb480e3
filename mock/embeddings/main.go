package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ecommerce-search-service/internal/seed"
)

// dimension matches the embeddings.dimension config default.
const dimension = 384

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

func main() {
	http.HandleFunc("/api/embed", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[Embeddings] Bad request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Simulate model latency (20-120ms)
		time.Sleep(time.Duration(20+time.Now().UnixNano()%100) * time.Millisecond)

		resp := embedResponse{
			Model:      req.Model,
			Embeddings: make([][]float32, len(req.Input)),
		}
		for i, text := range req.Input {
			resp.Embeddings[i] = seed.FallbackEmbedding(text, dimension)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("[Embeddings] Write error: %v", err)
		}

		log.Printf("[Embeddings] %s %s - %d texts", r.Method, r.URL.Path, len(req.Input))
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Embeddings] Health write error: %v", err)
		}
	})

	log.Println("Mock embedding server running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
