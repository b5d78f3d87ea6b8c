package main

import (
	"fmt"

	"github.com/openai/openai-go"
)

// Message roles understood by the chat completion API
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered list of messages together with the generation
// parameters sent alongside them.
type Conversation struct {
	Model       string
	Messages    []Message
	MaxTokens   int64
	Temperature float64
}

// NewConversation builds the fixed two-message conversation from cfg.
func NewConversation(cfg *Config) Conversation {
	return Conversation{
		Model: cfg.Model,
		Messages: []Message{
			{Role: RoleSystem, Content: cfg.System},
			{Role: RoleUser, Content: cfg.Question},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// Params converts the conversation into request parameters, keeping message order.
func (c Conversation) Params() (openai.ChatCompletionNewParams, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(c.Messages))
	for i, m := range c.Messages {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			return openai.ChatCompletionNewParams{}, fmt.Errorf("message %d: unknown role %q", i, m.Role)
		}
	}

	return openai.ChatCompletionNewParams{
		Model:       c.Model,
		Messages:    msgs,
		MaxTokens:   openai.Int(c.MaxTokens),
		Temperature: openai.Float(c.Temperature),
	}, nil
}

// Answer is the first candidate's content. Present is false when the
// response had no candidates or the candidate carried no content.
type Answer struct {
	Content string
	Present bool
}

// answerFrom extracts the first candidate of a completion.
func answerFrom(resp *openai.ChatCompletion) Answer {
	if resp == nil || len(resp.Choices) == 0 {
		return Answer{}
	}
	msg := resp.Choices[0].Message
	return Answer{
		Content: msg.Content,
		Present: msg.JSON.Content.Valid(),
	}
}
