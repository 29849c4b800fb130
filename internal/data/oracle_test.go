package data

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alutalk/channel/internal/biz/domain"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func newOracleServer(t *testing.T, answer string, seen *[]chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if seen != nil {
			*seen = append(*seen, req)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   req.Model,
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": answer}, "finish_reason": "stop"},
				{"index": 1, "message": map[string]string{"role": "assistant", "content": "ignored"}, "finish_reason": "stop"},
			},
		})
	}))
}

func TestOracle_Classify(t *testing.T) {
	req := require.New(t)
	var seen []chatRequest
	server := newOracleServer(t, "Yes.", &seen)
	defer server.Close()

	oracle := NewOracleRepo(OracleConfig{APIKey: "test", Model: "test-model", BaseURL: server.URL + "/v1"})

	verdict, err := oracle.Classify(context.Background(), "is this on topic?")
	req.NoError(err)
	req.Equal(domain.VerdictYes, verdict)

	req.Len(seen, 1)
	req.Equal("test-model", seen[0].Model)
	req.Len(seen[0].Messages, 1)
	req.Equal("user", seen[0].Messages[0].Role)
	req.Equal("is this on topic?", seen[0].Messages[0].Content)
	req.Positive(seen[0].MaxTokens)
}

func TestOracle_ClassifyUnclearAnswer(t *testing.T) {
	server := newOracleServer(t, "It depends on the context.", nil)
	defer server.Close()

	oracle := NewOracleRepo(OracleConfig{APIKey: "test", BaseURL: server.URL + "/v1"})
	verdict, err := oracle.Classify(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, domain.VerdictUndetermined, verdict)
}

func TestOracle_CompleteReadsFirstChoice(t *testing.T) {
	var seen []chatRequest
	server := newOracleServer(t, "Birds aren't real.", &seen)
	defer server.Close()

	oracle := NewOracleRepo(OracleConfig{APIKey: "test", BaseURL: server.URL + "/v1"})
	answer, err := oracle.Complete(context.Background(), "tell me")
	require.NoError(t, err)
	require.Equal(t, "Birds aren't real.", answer)
	require.Equal(t, defaultOracleModel, seen[0].Model)
}

func TestOracle_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	oracle := NewOracleRepo(OracleConfig{APIKey: "test", BaseURL: server.URL})
	_, err := oracle.Complete(context.Background(), "prompt")
	require.ErrorContains(t, err, "no response choices")
}

func TestOracle_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	oracle := NewOracleRepo(OracleConfig{APIKey: "test", BaseURL: server.URL})
	_, err := oracle.Classify(context.Background(), "prompt")
	require.Error(t, err)
}

func TestOracle_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	oracle := NewOracleRepo(OracleConfig{APIKey: "test", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := oracle.Complete(context.Background(), "prompt")
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}
