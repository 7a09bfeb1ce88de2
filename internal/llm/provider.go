// Package llm talks to the hosted language models behind the AI insights.
// Every vendor sits behind Provider, and NewProvider stacks timeout, retry
// and request logging on top.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates one reply per request.
type Provider interface {
	// Generate returns validated JSON when req.Schema is set and the
	// model's text otherwise.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil asks for free text.
	Schema *Schema

	MaxTokens int

	// Temperature is ignored by models that only accept the default.
	Temperature float64
}

// Role marks who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// UserMessage is shorthand for a single user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// Schema is a JSON Schema the reply must satisfy. Name is kebab-case,
// e.g. "daily-insight", and doubles as the vendor-side schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized values of Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

type Response struct {
	// Content holds validated JSON for schema requests and raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request, which can differ from
	// the configured alias.
	Model string

	StopReason string
}

// Text returns the reply of a free-text request.
func (r *Response) Text() string {
	return string(r.Content)
}

// Decode unmarshals the reply of a schema request into T.
func Decode[T any](r *Response) (T, error) {
	var out T
	if r == nil {
		return out, errors.New("decode: nil response")
	}
	if err := json.Unmarshal(r.Content, &out); err != nil {
		return out, &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return out, nil
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
