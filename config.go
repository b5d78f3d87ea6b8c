package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
)

// Config holds application configuration
type Config struct {
	Model       string
	System      string
	Question    string
	MaxTokens   int64
	Temperature float64
	LogLevel    string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Model:       openai.ChatModelGPT3_5Turbo,
		System:      "You are a helpful assistant.",
		Question:    "Who won the world series in 2020?",
		MaxTokens:   50,
		Temperature: 0.5,
		LogLevel:    "warn",
	}
}

// LoadConfig starts from the defaults and applies the ambient settings found
// in the environment or in an optional .env file. The request payload is
// not configurable. The .env file is read, never exported into the process
// environment, and only the keys LoadConfig knows about are taken from it.
// The environment wins over the file.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	cfg := DefaultConfig()
	for _, f := range envFiles {
		vars, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		if lvl := vars[EnvLogLevel]; lvl != "" {
			cfg.LogLevel = lvl
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// Constants for the application
const (
	AppName        = "askgpt"
	AppVersion     = "1.0.0"
	DefaultEnvFile = ".env"
	APIKeyPrompt   = "Please enter your OpenAI API key: "
)

// Environment variable names
const (
	EnvLogLevel = "ASKGPT_LOG_LEVEL"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitAborted = 130
)
