package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/openai/openai-go/option"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitFailure)
	}

	os.Exit(run(context.Background(), cfg, NewLinerPrompter(os.Stdout), os.Stdout, os.Stderr))
}

// run asks for the key, then makes the one completion request. The prompt
// is closed before the client exists. opts are extra client options.
func run(ctx context.Context, cfg *Config, p Prompter, stdout, stderr io.Writer, opts ...option.RequestOption) int {
	logger := newLogger(cfg.LogLevel, stderr)
	cli := NewCLIHandler(p, stdout, stderr, logger)

	apiKey, err := cli.AskAPIKey()
	if err != nil {
		if errors.Is(err, ErrPromptAborted) {
			logger.Debug().Msg("key prompt aborted")
			return ExitAborted
		}
		cli.PrintError(err)
		return ExitFailure
	}

	client := NewOpenAIClient(apiKey, opts...)
	requester := NewRequester(&client.Chat.Completions, cli, DefaultPricing(), logger)

	if err := requester.Run(ctx, NewConversation(cfg)); err != nil {
		return ExitFailure
	}
	return ExitOK
}
