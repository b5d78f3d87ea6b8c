package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
)

// ChatCompleter is the part of the OpenAI client the requester needs.
// *openai.ChatCompletionService satisfies it.
type ChatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// RequestFailure wraps any error raised while obtaining a completion.
type RequestFailure struct {
	Class string
	Err   error
}

func (e *RequestFailure) Error() string { return e.Err.Error() }
func (e *RequestFailure) Unwrap() error { return e.Err }

// Failure classes
const (
	FailureAPI       = "api"
	FailureTransport = "transport"
	FailureRequest   = "request"
)

// DefaultBaseURL is the only endpoint the key is ever sent to, unless the
// caller passes its own option.WithBaseURL.
const DefaultBaseURL = "https://api.openai.com/v1/"

// NewOpenAIClient returns a client authenticated with apiKey. SDK retries
// are disabled: every run makes exactly one attempt. The SDK reads
// OPENAI_BASE_URL, OPENAI_ORG_ID and OPENAI_PROJECT_ID from the environment;
// all three are overridden here.
func NewOpenAIClient(apiKey string, opts ...option.RequestOption) openai.Client {
	base := []option.RequestOption{
		option.WithBaseURL(DefaultBaseURL),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return openai.NewClient(append(base, opts...)...)
}

// Requester sends a conversation and renders the first candidate.
type Requester struct {
	completions ChatCompleter
	cli         *CLIHandler
	pricing     Pricing
	logger      zerolog.Logger
}

// NewRequester creates a requester using the given completion service.
func NewRequester(completions ChatCompleter, cli *CLIHandler, pricing Pricing, logger zerolog.Logger) *Requester {
	return &Requester{
		completions: completions,
		cli:         cli,
		pricing:     pricing,
		logger:      logger,
	}
}

// Fetch performs the single completion call and returns the first answer.
func (r *Requester) Fetch(ctx context.Context, conv Conversation) (Answer, error) {
	params, err := conv.Params()
	if err != nil {
		return Answer{}, &RequestFailure{Class: FailureRequest, Err: err}
	}

	r.logger.Debug().
		Str("model", conv.Model).
		Int("messages", len(params.Messages)).
		Msg("sending chat completion request")

	resp, err := r.completions.New(ctx, params)
	if err != nil {
		return Answer{}, classify(err)
	}

	r.logger.Debug().Int("choices", len(resp.Choices)).Msg("chat completion received")
	r.logUsage(conv.Model, usageFrom(resp.Usage))

	answer := answerFrom(resp)
	if !answer.Present {
		r.logger.Debug().Msg("first candidate has no content")
	}
	return answer, nil
}

// Run fetches the answer and prints it, or reports the failure on the error
// stream. The returned error is the reported failure, already handled.
func (r *Requester) Run(ctx context.Context, conv Conversation) error {
	answer, err := r.Fetch(ctx, conv)
	if err != nil {
		var rf *RequestFailure
		if errors.As(err, &rf) {
			r.logger.Debug().Str("class", rf.Class).Err(rf.Err).Msg("chat completion failed")
		}
		r.cli.PrintError(err)
		return err
	}

	r.cli.PrintAnswer(answer)
	return nil
}

func (r *Requester) logUsage(model string, u Usage) {
	cost, err := r.pricing.EstimateCost(model, u)
	if err != nil {
		r.logger.Debug().Err(err).Msg("cannot estimate cost")
		return
	}
	r.logger.Debug().
		Int64("prompt_tokens", u.PromptTokens).
		Int64("completion_tokens", u.CompletionTokens).
		Int64("total_tokens", u.TotalTokens).
		Str("cost", FormatCost(cost)).
		Msg("usage")
}

func classify(err error) *RequestFailure {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &RequestFailure{
			Class: FailureAPI,
			Err:   fmt.Errorf("api returned status %d: %w", apiErr.StatusCode, err),
		}
	}
	return &RequestFailure{Class: FailureTransport, Err: err}
}
