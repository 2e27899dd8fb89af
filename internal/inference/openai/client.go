package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"resty.dev/v3"

	"bandup/internal/inference"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 30 * time.Second

	// historyLimit bounds the do-not-repeat list embedded in generation prompts.
	historyLimit = 10

	cacheTTL      = 5 * time.Minute
	cacheCapacity = 50
)

type Client struct {
	httpClient   *resty.Client
	streamClient *http.Client
	baseURL      string
	apiKey       string
	model        string
	maxRetries   int
	retryDelay   time.Duration

	cache *responseCache

	mu      sync.Mutex
	history []string
	slot    *prefetchSlot
}

type options struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	now        func() time.Time
}

type Option func(*options)

// WithBaseURL overrides the API endpoint, e.g. for a stub server in tests.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithMaxRetries sets how many additional attempts follow a failed request.
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
	}
}

// WithRetryDelay sets the base delay for the exponential retry backoff.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *options) {
		o.retryDelay = delay
	}
}

// WithClock injects the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	o := options{
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		maxRetries: inference.DefaultMaxRetries,
		retryDelay: 100 * time.Millisecond,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New()
	client.SetBaseURL(o.baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(o.timeout)

	return &Client{
		httpClient:   client,
		streamClient: &http.Client{},
		baseURL:      o.baseURL,
		apiKey:       apiKey,
		model:        model,
		maxRetries:   o.maxRetries,
		retryDelay:   o.retryDelay,
		cache:        newResponseCache(cacheTTL, cacheCapacity, o.now),
	}
}

func (client *Client) Close() error {
	client.mu.Lock()
	if client.slot != nil {
		client.slot.cancel()
		client.slot = nil
	}
	client.mu.Unlock()
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// httpError builds the typed HTTP failure, attaching the provider's error
// envelope message when the body carries one.
func httpError(statusCode int, body string) error {
	var envelope errorEnvelope
	detail := ""
	if err := json.Unmarshal([]byte(body), &envelope); err == nil {
		detail = envelope.Error.Message
	}
	return &inference.Error{Kind: inference.KindHTTP, StatusCode: statusCode, Detail: detail}
}

func messages(prompt string, config inference.RequestConfig) []Message {
	result := make([]Message, 0, 2)
	if config.SystemMessage != "" {
		result = append(result, Message{Role: RoleSystem, Content: config.SystemMessage})
	}
	return append(result, Message{Role: RoleUser, Content: prompt})
}

// complete sends one non-streaming chat completion and returns the raw
// assistant text.
func (client *Client) complete(ctx context.Context, prompt string, config inference.RequestConfig) (string, error) {
	requestBody := ChatCompletionRequest{
		Model:       config.Model,
		Messages:    messages(prompt, config),
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		Stop:        config.Stop,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", &inference.Error{Kind: inference.KindNetwork, Detail: "httpClient.Post", Err: err}
	}
	if response.IsError() {
		return "", httpError(response.StatusCode(), response.String())
	}

	responseBody, ok := response.Result().(*ChatCompletionResponse)
	if !ok || responseBody == nil || len(responseBody.Choices) == 0 {
		return "", &inference.Error{Kind: inference.KindEmptyResponse, Detail: "response has no choices"}
	}
	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", &inference.Error{Kind: inference.KindEmptyResponse, Detail: "response has no assistant content"}
	}
	slog.Default().Debug("chat completion response",
		"model", config.Model,
		"promptTokens", responseBody.Usage.PromptTokens,
		"completionTokens", responseBody.Usage.CompletionTokens,
	)
	return content, nil
}

// Generate implements the inference.Client interface
func (client *Client) Generate(ctx context.Context, topic, targetBand string) (inference.Sentence, error) {
	if slot := client.takeSlot(topic, targetBand); slot != nil {
		defer slot.cancel()
		select {
		case <-slot.done:
			if slot.err == nil {
				client.appendHistory(slot.sentence.Vietnamese)
				return slot.sentence, nil
			}
			slog.Default().Warn("prefetched sentence failed, generating fresh",
				"topic", topic,
				"error", slot.err,
			)
		case <-ctx.Done():
			return inference.Sentence{}, ctx.Err()
		}
	}

	sentence, err := client.generateSentence(ctx, topic, targetBand, client.historyClause())
	if err != nil {
		return inference.Sentence{}, err
	}
	client.appendHistory(sentence.Vietnamese)
	return sentence, nil
}

func (client *Client) generateSentence(
	ctx context.Context,
	topic, targetBand, historyClause string,
) (inference.Sentence, error) {
	prompt := generationPrompt(topic, targetBand, historyClause)
	payload, err := client.request(ctx, prompt, inference.GeneratePreset(client.model), false)
	if err != nil {
		return inference.Sentence{}, err
	}

	var sentence inference.Sentence
	if err := json.Unmarshal([]byte(payload), &sentence); err != nil {
		return inference.Sentence{}, &inference.Error{
			Kind:   inference.KindSchemaMismatch,
			Detail: "response does not decode into a sentence",
			Err:    err,
		}
	}
	if err := inference.ValidateSchema(sentence); err != nil {
		return inference.Sentence{}, err
	}
	return sentence, nil
}

// Evaluate implements the inference.Client interface
func (client *Client) Evaluate(
	ctx context.Context,
	sourceText, translation, targetBand string,
) (inference.Feedback, error) {
	prompt := evaluationPrompt(sourceText, translation, targetBand)
	payload, err := client.request(ctx, prompt, inference.EvaluatePreset(client.model), true)
	if err != nil {
		return inference.Feedback{}, err
	}

	var feedback inference.Feedback
	if err := json.Unmarshal([]byte(payload), &feedback); err != nil {
		return inference.Feedback{}, &inference.Error{
			Kind:   inference.KindSchemaMismatch,
			Detail: "response does not decode into feedback",
			Err:    err,
		}
	}
	if err := inference.ValidateSchema(feedback); err != nil {
		return inference.Feedback{}, err
	}
	return feedback, nil
}

func generationPrompt(topic, targetBand, historyClause string) string {
	prompt := fmt.Sprintf(
		"Topic: %s\nTarget band: %s\n\nWrite one Vietnamese sentence for this exercise.",
		topic, targetBand,
	)
	return prompt + historyClause
}

func evaluationPrompt(sourceText, translation, targetBand string) string {
	return fmt.Sprintf(
		"Vietnamese source sentence: %s\nUser's English translation: %s\nTarget band: %s\n\nEvaluate the translation.",
		sourceText, translation, targetBand,
	)
}

func (client *Client) historyClause() string {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.historyClauseLocked()
}

// historyClauseLocked requires client.mu to be held.
func (client *Client) historyClauseLocked() string {
	if len(client.history) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString("\n\nDo not repeat any of these recently generated sentences:")
	for _, sentence := range client.history {
		builder.WriteString("\n- ")
		builder.WriteString(sentence)
	}
	return builder.String()
}

func (client *Client) appendHistory(sentence string) {
	if sentence == "" {
		return
	}
	client.mu.Lock()
	defer client.mu.Unlock()
	client.history = append(client.history, sentence)
	if len(client.history) > historyLimit {
		client.history = client.history[len(client.history)-historyLimit:]
	}
}
