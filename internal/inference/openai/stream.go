package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"bandup/internal/inference"
)

const (
	streamDataPrefix   = "data:"
	streamDoneSentinel = "[DONE]"
)

type streamPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream implements the inference.Client interface. It reads the
// server-sent-event response line by line, invoking onChunk for each text
// delta in arrival order. Malformed chunks are skipped, not fatal. The
// caller cancels by cancelling ctx; no partial result is persisted.
//
// The streaming path uses net/http directly: it needs incremental reads
// from the response body, which the resty client on the non-streaming path
// does not expose.
func (client *Client) Stream(
	ctx context.Context,
	prompt string,
	config inference.RequestConfig,
	onChunk func(string),
) (string, error) {
	if strings.TrimSpace(client.apiKey) == "" {
		return "", &inference.Error{Kind: inference.KindMissingCredential, Detail: "API key is not configured"}
	}

	requestBody := ChatCompletionRequest{
		Model:       config.Model,
		Messages:    messages(prompt, config),
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		Stop:        config.Stop,
		Stream:      true,
	}
	body, err := json.Marshal(requestBody)
	if err != nil {
		return "", &inference.Error{Kind: inference.KindInvalidJSON, Detail: "encoding request body", Err: err}
	}

	endpoint := strings.TrimSuffix(client.baseURL, "/") + "/chat/completions"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &inference.Error{Kind: inference.KindInvalidURL, Detail: endpoint, Err: err}
	}
	request.Header.Set("Authorization", "Bearer "+client.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "text/event-stream")

	response, err := client.streamClient.Do(request)
	if err != nil {
		return "", &inference.Error{Kind: inference.KindNetwork, Detail: "streamClient.Do", Err: err}
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return "", httpError(response.StatusCode, string(raw))
	}

	var accumulated strings.Builder
	scanner := bufio.NewScanner(response.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		payload := strings.TrimSpace(line[len(streamDataPrefix):])
		if payload == streamDoneSentinel {
			break
		}

		var chunk streamPayload
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			slog.Default().Debug("skipping malformed stream chunk", "error", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		accumulated.WriteString(delta)
		if onChunk != nil {
			onChunk(delta)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &inference.Error{Kind: inference.KindNetwork, Detail: "stream interrupted", Err: err}
	}

	return accumulated.String(), nil
}
