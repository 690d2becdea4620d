package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"rephraser/internal/errs"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicPath    = "/v1/messages"
	anthropicVersion = "2023-06-01"
	anthropicTimeout = 60 * time.Second
)

// AnthropicClient calls the Anthropic Messages API directly over HTTP. It
// owns its request/response schema privately and shares nothing with the
// OpenAI variant beyond the Client contract.
type AnthropicClient struct {
	apiKey  string
	model   string
	params  Params
	baseURL string
	http    *http.Client
}

// NewAnthropicClient builds a client against api.anthropic.com.
func NewAnthropicClient(apiKey, model string, params Params) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errs.New(errs.KindConfig, "anthropic: api key required")
	}
	if model == "" {
		return nil, errs.New(errs.KindConfig, "anthropic: model required")
	}
	return &AnthropicClient{
		apiKey:  apiKey,
		model:   model,
		params:  params,
		baseURL: anthropicBaseURL,
		http:    &http.Client{Timeout: anthropicTimeout},
	}, nil
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *AnthropicClient) WithBaseURL(url string) *AnthropicClient {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// --- request types ---

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicErrorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.params.MaxTokens,
		Temperature: c.params.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errs.Wrap(errs.KindBadRequest, err, "anthropic: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+anthropicPath, bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(errs.KindBadRequest, err, "anthropic: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.Wrap(errs.KindNetwork, err, "anthropic request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Wrap(errs.KindNetwork, err, "anthropic: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.classifyStatus(resp.StatusCode, respBody)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errs.Wrap(errs.KindAPI, err, "anthropic: decode response")
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", errs.New(errs.KindAPI, "anthropic returned no completion content")
}

func (c *AnthropicClient) ProviderName() string { return "anthropic" }

func (c *AnthropicClient) ModelName() string { return c.model }

// classifyStatus maps a non-2xx response onto the shared taxonomy. The kind
// is decided by the status alone; the structured error body only improves
// the message, with the raw body as fallback.
func (c *AnthropicClient) classifyStatus(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var envelope anthropicErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.New(errs.KindAuth, "anthropic: %s", msg).WithStatus(status)
	case http.StatusTooManyRequests:
		return errs.New(errs.KindRateLimit, "anthropic: %s", msg).WithStatus(status)
	case http.StatusBadRequest:
		return errs.New(errs.KindBadRequest, "anthropic: %s", msg).WithStatus(status)
	default:
		return errs.New(errs.KindService, "anthropic: %s", msg).WithStatus(status)
	}
}
