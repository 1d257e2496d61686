package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/domain"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAITimeout  = 30 * time.Second
)

// OpenAIResponder replies via the OpenAI chat completions API. The whole
// conversation is sent as context on every call.
type OpenAIResponder struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
	http     *fasthttp.Client
	logger   *zap.Logger
}

// NewOpenAIResponder builds a responder for the given API key and model.
func NewOpenAIResponder(apiKey, model string, logger *zap.Logger) *OpenAIResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIResponder{
		endpoint: openAIEndpoint,
		apiKey:   apiKey,
		model:    model,
		timeout:  openAITimeout,
		http: &fasthttp.Client{
			Name:         "fastygo-frontend",
			ReadTimeout:  openAITimeout,
			WriteTimeout: openAITimeout,
		},
		logger: logger,
	}
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r *OpenAIResponder) Reply(ctx context.Context, history []domain.ChatMessage, message string) (string, error) {
	if r.apiKey == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "openai api key not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "request cancelled", err)
	}

	messages := make([]chatCompletionMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, chatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: 0.2,
		MaxTokens:   512,
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "encode request", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.endpoint)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.SetBody(payload)

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "request cancelled", context.DeadlineExceeded)
	}

	if err := r.http.DoTimeout(req, resp, timeout); err != nil {
		r.logger.Warn("openai request failed", zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeUnavailable, "cannot reach the assistant service", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "malformed assistant response", err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := fmt.Sprintf("assistant service returned %d", resp.StatusCode())
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", domain.NewError(domain.ErrCodeUnavailable, msg)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.NewError(domain.ErrCodeInternal, "assistant response missing choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

var _ Responder = (*OpenAIResponder)(nil)
var _ Responder = KeywordResponder{}
