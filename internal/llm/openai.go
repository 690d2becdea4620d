package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"rephraser/internal/errs"
)

// OpenAIClient calls the OpenAI Chat Completions API through the official
// SDK. SDK-level retries are disabled; retry policy belongs to the caller.
type OpenAIClient struct {
	model  string
	params Params
	client *openai.Client
}

// NewOpenAIClient builds a client against api.openai.com. Extra options
// (base URL, HTTP client) are accepted for tests.
func NewOpenAIClient(apiKey, model string, params Params, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errs.New(errs.KindConfig, "openai: api key required")
	}
	if model == "" {
		return nil, errs.New(errs.KindConfig, "openai: model required")
	}
	options := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	cli := openai.NewClient(options...)
	return &OpenAIClient{
		model:  model,
		params: params,
		client: &cli,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(c.params.Temperature),
		MaxTokens:   openai.Int(int64(c.params.MaxTokens)),
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errs.New(errs.KindAPI, "openai returned no completion content")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) ProviderName() string { return "openai" }

func (c *OpenAIClient) ModelName() string { return c.model }

// classifyOpenAIError maps SDK failures onto the shared taxonomy. The kind
// comes from the HTTP status; the message comes from the parsed error body
// when available, otherwise the SDK's raw rendering of the response.
func classifyOpenAIError(err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return errs.Wrap(errs.KindNetwork, err, "openai request failed")
	}

	msg := apierr.Message
	if msg == "" {
		msg = apierr.Error()
	}

	switch apierr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.New(errs.KindAuth, "openai: %s", msg).WithStatus(apierr.StatusCode)
	case http.StatusTooManyRequests:
		return errs.New(errs.KindRateLimit, "openai: %s", msg).WithStatus(apierr.StatusCode)
	case http.StatusBadRequest:
		return errs.New(errs.KindBadRequest, "openai: %s", msg).WithStatus(apierr.StatusCode)
	default:
		return errs.New(errs.KindService, "openai: %s", msg).WithStatus(apierr.StatusCode)
	}
}
