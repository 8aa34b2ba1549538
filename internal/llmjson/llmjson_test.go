package llmjson

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rehearse-ai/rehearse/internal/openrouter"
)

// scriptedLLM returns canned responses in order and records the conversations
// it was given.
type scriptedLLM struct {
	responses []string
	calls     [][]openrouter.Message
}

func (s *scriptedLLM) Complete(ctx context.Context, model string, messages []openrouter.Message) (string, error) {
	s.calls = append(s.calls, messages)
	if len(s.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func TestExtractObject_SurroundingProse(t *testing.T) {
	span, err := ExtractObject(`Sure! {"aiText": "Tell me more.", "action": "ASK_FOLLOWUP"} thanks`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(span) != `{"aiText": "Tell me more.", "action": "ASK_FOLLOWUP"}` {
		t.Errorf("unexpected span: %s", span)
	}
}

func TestExtractObject_NoObject(t *testing.T) {
	for _, text := range []string{
		"no braces here",
		"",
		"} backwards {",
		"{not json at all",
	} {
		if _, err := ExtractObject(text); !errors.Is(err, ErrNoObject) {
			t.Errorf("ExtractObject(%q): expected ErrNoObject, got %v", text, err)
		}
	}
}

func TestCompleteInto_FirstTry(t *testing.T) {
	llm := &scriptedLLM{responses: []string{`{"aiText": "hello"}`}}
	c := New(llm, slog.Default())

	var out struct {
		AIText string `json:"aiText"`
	}
	err := c.CompleteInto(context.Background(), "fast", []openrouter.Message{{Role: "user", Content: "go"}}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AIText != "hello" {
		t.Errorf("expected hello, got %q", out.AIText)
	}
	if len(llm.calls) != 1 {
		t.Errorf("expected 1 llm call, got %d", len(llm.calls))
	}
}

func TestCompleteInto_RepairSucceeds(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"I think the answer is probably yes?",
		`{"aiText": "recovered"}`,
	}}
	c := New(llm, slog.Default())

	var out struct {
		AIText string `json:"aiText"`
	}
	err := c.CompleteInto(context.Background(), "fast", []openrouter.Message{{Role: "user", Content: "go"}}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AIText != "recovered" {
		t.Errorf("expected recovered, got %q", out.AIText)
	}
	if len(llm.calls) != 2 {
		t.Fatalf("expected 2 llm calls, got %d", len(llm.calls))
	}

	// Repair conversation: original + failed assistant turn + corrective instruction.
	repair := llm.calls[1]
	if len(repair) != 3 {
		t.Fatalf("expected 3 repair messages, got %d", len(repair))
	}
	if repair[1].Role != "assistant" || repair[1].Content != "I think the answer is probably yes?" {
		t.Errorf("expected failed text appended as assistant turn, got %+v", repair[1])
	}
	if repair[2].Role != "user" || repair[2].Content != repairInstruction {
		t.Errorf("expected corrective instruction, got %+v", repair[2])
	}
}

func TestCompleteInto_SecondFailureIsFatal(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"still no json",
		"nope, nothing here either",
	}}
	c := New(llm, slog.Default())

	var out struct{}
	err := c.CompleteInto(context.Background(), "fast", []openrouter.Message{{Role: "user", Content: "go"}}, &out)
	if err == nil {
		t.Fatal("expected hard error after failed repair")
	}
	if !errors.Is(err, ErrNoObject) {
		t.Errorf("expected ErrNoObject in chain, got %v", err)
	}
	if len(llm.calls) != 2 {
		t.Errorf("expected exactly 2 llm calls, got %d", len(llm.calls))
	}
}

func TestCompleteInto_UpstreamErrorPropagates(t *testing.T) {
	llm := &scriptedLLM{} // no responses: every call errors
	c := New(llm, slog.Default())

	var out struct{}
	err := c.CompleteInto(context.Background(), "fast", []openrouter.Message{{Role: "user", Content: "go"}}, &out)
	if err == nil {
		t.Fatal("expected upstream error to propagate")
	}
	if len(llm.calls) != 1 {
		t.Errorf("expected no retry on transport failure, got %d calls", len(llm.calls))
	}
}
