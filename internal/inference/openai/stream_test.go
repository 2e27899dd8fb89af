package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandup/internal/inference"
)

func streamLine(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q}}]}`, content)
}

func TestClient_Stream(t *testing.T) {
	lines := []string{
		streamLine("Xin "),
		"",
		": keep-alive comment",
		streamLine("chào "),
		`data: {this is not json`,
		`data: {"choices":[{"delta":{"content":""}}]}`,
		streamLine("bạn."),
		"data: [DONE]",
		streamLine("after the sentinel"),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL)
	defer client.Close()

	var chunks []string
	full, err := client.Stream(context.Background(), "say hello", inference.GeneratePreset(client.model), func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Xin ", "chào ", "bạn."}, chunks, "chunks arrive in order, skipping malformed and empty deltas")
	assert.Equal(t, "Xin chào bạn.", full)
}

func TestClient_Stream_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL)
	defer client.Close()

	_, err := client.Stream(context.Background(), "say hello", inference.GeneratePreset(client.model), func(string) {})
	require.Error(t, err)

	var inferenceErr *inference.Error
	require.ErrorAs(t, err, &inferenceErr)
	assert.Equal(t, inference.KindHTTP, inferenceErr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, inferenceErr.StatusCode)
	assert.Contains(t, inferenceErr.Detail, "rate limited")
}

func TestClient_Stream_MissingCredential(t *testing.T) {
	client := NewClient("", "gpt-4o-mini")
	defer client.Close()

	_, err := client.Stream(context.Background(), "say hello", inference.GeneratePreset(client.model), func(string) {})
	require.Error(t, err)
	assert.True(t, inference.IsKind(err, inference.KindMissingCredential))
}
