package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Temperature is the sampling temperature sent with every request.
const Temperature float32 = 0.9

var (
	// ErrTransport covers connection failures, timeouts, cancellation and
	// non-2xx responses.
	ErrTransport = errors.New("chat request failed")
	// ErrParse covers bodies that are not JSON or lack choices[0].message.content.
	ErrParse = errors.New("invalid chat response")
)

// ErrorCode maps a Generate error to the code reported to hosts.
func ErrorCode(err error) string {
	if errors.Is(err, ErrParse) {
		return "parse_error"
	}
	return "api_error"
}

// Generator performs chat completions against an OpenAI-compatible API.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a generator. baseURL is used as-is, so placeholder
// values fail at request time as transport errors.
func NewGenerator(baseURL, apiKey, model string, timeout time.Duration) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Generator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends the system preamble and one user turn and returns the
// content of the first choice.
func (g *Generator) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeText,
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrParse)
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: no content in response", ErrParse)
	}
	return content, nil
}

// classifyError wraps a client error in ErrTransport for non-2xx statuses
// and connection failures, and in ErrParse when a 2xx body could not be
// decoded.
func classifyError(err error) error {
	// Non-2xx. A RequestError may wrap the decode error of a non-JSON
	// error page, which must not count as a parse failure.
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) || errors.As(err, &reqErr) {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
