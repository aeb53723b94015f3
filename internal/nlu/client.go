// Package nlu turns free-form customer speech into structured order
// candidates via an LLM chat completion, with schema validation on the
// reply before anything reaches the order engine.
package nlu

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"drivethru/internal/catalog"
	"drivethru/internal/common/config"
	apperrors "drivethru/internal/common/errors"
	"drivethru/internal/common/logger"
	"drivethru/internal/order"
)

// Request carries one customer turn plus the conversational context the
// model needs to interpret it.
type Request struct {
	UserMessage string
	Assistant   order.Message
	Order       *order.Order
}

// Result is the decoded candidate state for the turn. Lines replace the
// order wholesale; validation runs afterwards.
type Result struct {
	Lines    []*order.LineItem
	Finished bool
}

// Client interprets one customer turn.
type Client interface {
	Interpret(ctx context.Context, req Request) (*Result, error)
}

type openAIClient struct {
	api        *openai.Client
	catalog    *catalog.Catalog
	model      string
	maxRetries int
	timeout    time.Duration
	log        logger.Logger
}

// NewOpenAIClient builds the production client from config.
func NewOpenAIClient(cfg *config.Config, cat *catalog.Catalog, log logger.Logger) Client {
	return &openAIClient{
		api:        openai.NewClient(cfg.NLU.APIKey),
		catalog:    cat,
		model:      cfg.NLU.Model,
		maxRetries: cfg.NLU.MaxRetries,
		timeout:    config.GetDuration(cfg.NLU.Timeout),
		log:        log.WithFields(map[string]interface{}{"component": "nlu"}),
	}
}

func (c *openAIClient) Interpret(ctx context.Context, req Request) (*Result, error) {
	prompt := buildSystemPrompt(c.catalog, req.Order, req.Assistant)

	var lastErr error
	backoff := 500 * time.Millisecond
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		raw, err := c.complete(ctx, prompt, req.UserMessage)
		if err == nil {
			if err = validateReply(raw); err == nil {
				lines, finished, decErr := decodeReply(raw)
				if decErr == nil {
					return &Result{Lines: lines, Finished: finished}, nil
				}
				err = decErr
			}
		}

		lastErr = err
		c.log.Warn("turn interpretation failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		if !apperrors.IsRetryable(err) || attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, apperrors.NewNLURequestFailedError(ctx.Err().Error())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

func (c *openAIClient) complete(ctx context.Context, system, user string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", apperrors.NewNLURequestFailedError(err.Error())
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewNLURequestFailedError("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
