package expander

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)

		if status != http.StatusOK {
			w.WriteHeader(status)

			return
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestExpand(t *testing.T) {
	srv := newCompletionServer(t, "  authentication middleware session token  ", http.StatusOK)

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	expanded, err := client.Expand(t.Context(), "auth")

	require.NoError(t, err)
	assert.Equal(t, "authentication middleware session token", expanded, "output should be trimmed")
}

func TestExpand_TransportFailure(t *testing.T) {
	srv := newCompletionServer(t, "", http.StatusInternalServerError)

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := client.Expand(t.Context(), "auth")

	require.Error(t, err)
}

func TestExpand_EmptyContent(t *testing.T) {
	srv := newCompletionServer(t, "   ", http.StatusOK)

	client := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := client.Expand(t.Context(), "auth")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestNew_DefaultModel(t *testing.T) {
	client := New(Config{APIKey: "test-key"})

	assert.Equal(t, openai.GPT4oMini, client.model)
}
