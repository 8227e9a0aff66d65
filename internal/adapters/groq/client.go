// internal/adapters/groq/client.go
package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"

	"hotel_reviews/internal/adapters/observability"
)

// Client talks to Groq's OpenAI-compatible chat-completions endpoint.
// Exactly one attempt per call: the moderation pipeline degrades on failure
// instead of retrying against a rate-limited model, so SDK retries are off
// and the client-side limiter is the only pacing mechanism.
type Client struct {
	cc          openai.Client
	model       string
	temperature float64
	maxTokens   int64
	rl          *rate.Limiter
}

func New(baseURL, apiKey, model string, temperature float64, maxTokens, rps int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if rps <= 0 {
		rps = 2
	}
	cc := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &Client{
		cc:          cc,
		model:       model,
		temperature: temperature,
		maxTokens:   int64(maxTokens),
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	// client-side rate limiting, shared across concurrent analyses
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.cc.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			userMessage(prompt),
		},
	})
	if err != nil {
		observability.ObserveExternal("groq", "chat_completions", statusOf(err), time.Since(start))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	observability.ObserveExternal("groq", "chat_completions", 200, time.Since(start))

	if len(resp.Choices) == 0 {
		return "", errors.New("groq: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func userMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(content),
			},
		},
	}
}

// statusOf pulls the HTTP status out of an SDK error for metrics labels;
// 0 means the request never got a response.
func statusOf(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
