package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/avast/retry-go"

	"bandup/internal/inference"
)

// correctiveInstruction prefixes the retry prompt after the model returned
// something that did not parse as JSON.
const correctiveInstruction = "Your previous response was not valid JSON. Respond to the request below again with strictly valid JSON only, no code fences and no commentary.\n\n"

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	switch inference.ErrorKind(err) {
	case inference.KindMissingCredential, inference.KindInvalidURL:
		return false
	case inference.KindHTTP:
		var infErr *inference.Error
		if !errors.As(err, &infErr) {
			return false
		}
		// Auth failures do not get better with a fresh attempt.
		return infErr.StatusCode != http.StatusUnauthorized && infErr.StatusCode != http.StatusForbidden
	}
	return true
}

// request sends the prompt through the preset's parameters and returns the
// sanitized response payload, guaranteed to be valid JSON. A parse failure
// retries with a corrective prefix on the same prompt; transport failures
// retry as-is. MissingCredential and InvalidURL fail fast.
func (client *Client) request(
	ctx context.Context,
	prompt string,
	config inference.RequestConfig,
	useCache bool,
) (string, error) {
	if strings.TrimSpace(client.apiKey) == "" {
		return "", &inference.Error{Kind: inference.KindMissingCredential, Detail: "API key is not configured"}
	}
	if parsed, err := url.Parse(client.baseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &inference.Error{Kind: inference.KindInvalidURL, Detail: client.baseURL, Err: err}
	}

	var cacheKey string
	if useCache {
		cacheKey = responseCacheKey(config.Model, prompt)
		if payload, ok := client.cache.get(cacheKey); ok {
			slog.Default().Debug("response cache hit", "model", config.Model)
			return payload, nil
		}
	}

	attemptPrompt := prompt
	var (
		result           string
		lastTransportErr error
		lastParseErr     error
	)
	err := retry.Do(
		func() error {
			content, err := client.complete(ctx, attemptPrompt, config)
			if err != nil {
				lastTransportErr = err
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}

			cleaned := clean(content)
			if !json.Valid([]byte(cleaned)) {
				slog.Default().Warn("model returned invalid JSON, retrying with corrective prompt",
					"model", config.Model,
				)
				attemptPrompt = correctiveInstruction + prompt
				lastParseErr = &inference.Error{
					Kind:   inference.KindInvalidJSON,
					Detail: "response is not valid JSON after sanitizing",
				}
				return lastParseErr
			}
			result = cleaned
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(client.maxRetries)+1),
		retry.LastErrorOnly(true),
		retry.Delay(client.retryDelay),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		// InvalidJSON is reported only when every attempt was a parse
		// failure; any transport or HTTP failure wins otherwise.
		if lastTransportErr != nil {
			return "", lastTransportErr
		}
		if lastParseErr != nil {
			return "", lastParseErr
		}
		return "", err
	}

	if useCache {
		client.cache.set(cacheKey, result)
	}
	return result, nil
}
