// Package llmjson turns a free-text completion model into a structured-data
// backend: it locates the JSON object embedded in model output and drives a
// single repair reprompt when the output is malformed.
package llmjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rehearse-ai/rehearse/internal/openrouter"
)

// ErrNoObject is the single parse-failure kind: either no brace-delimited
// span was found or the span is not valid JSON. Callers are not told which.
var ErrNoObject = errors.New("no valid JSON object in completion")

const repairInstruction = "Please respond with valid JSON only."

// Completer is the transport the client drives. *openrouter.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, model string, messages []openrouter.Message) (string, error)
}

type Client struct {
	llm    Completer
	logger *slog.Logger
}

func New(llm Completer, logger *slog.Logger) *Client {
	return &Client{llm: llm, logger: logger}
}

// ExtractObject returns the greedy brace span of text — first '{' through
// last '}' — provided it is valid JSON.
func ExtractObject(text string) ([]byte, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, ErrNoObject
	}
	span := []byte(text[start : end+1])
	if !json.Valid(span) {
		return nil, ErrNoObject
	}
	return span, nil
}

// CompleteInto issues the completion and unmarshals the embedded object into
// out. On a parse failure it appends the failed assistant text plus a
// corrective instruction and reissues exactly once; a second failure is
// returned as a hard error. Missing fields within a parsed object are left
// at their zero values — defaulting is the caller's concern.
func (c *Client) CompleteInto(ctx context.Context, model string, messages []openrouter.Message, out any) error {
	text, err := c.llm.Complete(ctx, model, messages)
	if err != nil {
		return fmt.Errorf("llm completion: %w", err)
	}

	if perr := decode(text, out); perr != nil {
		c.logger.Warn("completion was not valid JSON, reprompting",
			"model", model,
			"error", perr,
		)

		repair := make([]openrouter.Message, 0, len(messages)+2)
		repair = append(repair, messages...)
		repair = append(repair,
			openrouter.Message{Role: "assistant", Content: text},
			openrouter.Message{Role: "user", Content: repairInstruction},
		)

		text, err = c.llm.Complete(ctx, model, repair)
		if err != nil {
			return fmt.Errorf("llm completion (repair): %w", err)
		}
		if perr := decode(text, out); perr != nil {
			c.logger.Error("completion still not valid JSON after repair",
				"model", model,
				"raw", text,
			)
			return fmt.Errorf("parse completion after repair: %w", perr)
		}
	}

	return nil
}

func decode(text string, out any) error {
	span, err := ExtractObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(span, out); err != nil {
		return fmt.Errorf("%w: %v", ErrNoObject, err)
	}
	return nil
}
