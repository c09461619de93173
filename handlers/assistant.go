package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"
)

// The assistant widget talks to a hosted chat/summarization API. This
// handler is a thin proxy so the API key never reaches the client.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type assistantChatReq struct {
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"maxTokens,omitempty"`
}

var assistantClient = &http.Client{Timeout: 30 * time.Second}

func AssistantChat(w http.ResponseWriter, r *http.Request) {
	apiURL := os.Getenv("CHAT_API_URL")
	apiKey := os.Getenv("CHAT_API_KEY")
	if apiURL == "" || apiKey == "" {
		http.Error(w, "assistant is not configured", http.StatusServiceUnavailable)
		return
	}

	var req assistantChatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages is required", http.StatusBadRequest)
		return
	}

	model := os.Getenv("CHAT_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	upstream := map[string]interface{}{
		"model":    model,
		"messages": req.Messages,
	}
	if req.Temperature != nil {
		upstream["temperature"] = *req.Temperature
	}
	if req.MaxTokens != nil {
		upstream["max_tokens"] = *req.MaxTokens
	}

	body, err := json.Marshal(upstream)
	if err != nil {
		http.Error(w, "failed to encode request", http.StatusInternalServerError)
		return
	}

	httpReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		http.Error(w, "failed to build upstream request", http.StatusInternalServerError)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := assistantClient.Do(httpReq)
	if err != nil {
		http.Error(w, "assistant upstream error: "+err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
