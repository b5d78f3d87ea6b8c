package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=cli.go -destination=mock_prompter_test.go -package=main

// Prompter reads a single line of input after showing a prompt.
// *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// ErrPromptAborted is returned when the user aborts the key prompt with Ctrl+C.
var ErrPromptAborted = errors.New("prompt aborted")

// CLIHandler manages the command-line interface interactions
type CLIHandler struct {
	prompter Prompter
	out      io.Writer
	errOut   io.Writer
	logger   zerolog.Logger
}

// echoPrompter writes the prompt itself before delegating. liner stays
// silent when stdin is redirected on a supported terminal.
type echoPrompter struct {
	Prompter
	out io.Writer
}

func (p *echoPrompter) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.Prompter.Prompt(prompt)
}

// NewLinerPrompter opens the interactive line editor on the terminal. The
// prompt text is always written to out, even when stdin is piped.
func NewLinerPrompter(out io.Writer) Prompter {
	rl := liner.NewLiner()
	rl.SetCtrlCAborts(true)
	return wrapPrompter(rl, out, stdinRedirected(), liner.TerminalSupported())
}

// wrapPrompter adds the echo exactly when liner would not print the prompt.
func wrapPrompter(p Prompter, out io.Writer, inputRedirected, terminalSupported bool) Prompter {
	if inputRedirected && terminalSupported {
		return &echoPrompter{Prompter: p, out: out}
	}
	return p
}

func stdinRedirected() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// NewCLIHandler creates a new CLI handler writing answers to out and
// failures to errOut.
func NewCLIHandler(p Prompter, out, errOut io.Writer, logger zerolog.Logger) *CLIHandler {
	return &CLIHandler{
		prompter: p,
		out:      out,
		errOut:   errOut,
		logger:   logger,
	}
}

// AskAPIKey prompts once for the API key and returns the line as typed.
// The prompter is closed before returning, whatever the outcome, and is not
// used again. End of input yields an empty key. A failure to close is
// logged and does not discard the line.
func (c *CLIHandler) AskAPIKey() (string, error) {
	line, err := c.prompter.Prompt(APIKeyPrompt)
	if cerr := c.prompter.Close(); cerr != nil {
		c.logger.Warn().Err(cerr).Msg("failed to close key prompt")
	}

	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, io.EOF):
		return line, nil
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrPromptAborted
	default:
		return "", fmt.Errorf("read api key: %w", err)
	}
}

// PrintAnswer writes the answer line. A missing answer prints an empty one.
func (c *CLIHandler) PrintAnswer(a Answer) {
	fmt.Fprintln(c.out, "Answer:", a.Content)
}

// PrintError writes the failure line to the error stream.
func (c *CLIHandler) PrintError(err error) {
	fmt.Fprintln(c.errOut, "An error occurred:", err)
}
