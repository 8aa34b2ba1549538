package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rehearse-ai/rehearse/internal/interview"
	"github.com/rehearse-ai/rehearse/internal/openrouter"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) CompleteInto(ctx context.Context, model string, messages []openrouter.Message, out any) error {
	f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.reply), out)
}

func sampleInput() Input {
	return Input{
		Name:      "Dana",
		RoleTitle: "Backend Engineer",
		RoleDesc:  "Owns the payments platform",
		Bucket:    interview.BucketMid,
		Intensity: interview.IntensityStrict,
		Turns: []interview.Turn{
			{Type: "ai", AIText: "Tell me about a challenge."},
			{Type: "user", UserTranscript: "I migrated our billing system."},
		},
	}
}

func TestGenerate_FullReport(t *testing.T) {
	fake := &fakeCompleter{reply: `{
		"overallScore": 82,
		"subscores": {"communication": 85, "relevance": 80, "structure": 78, "specificity": 84, "confidence": 81},
		"strengths": ["clear ownership", "concrete metrics", "calm delivery"],
		"improvements": ["tighter framing", "more context", "shorter intros"],
		"patternUnderPressure": "Stayed composed and specific.",
		"idealAnswerRewrite": "Situation: ... Task: ... Action: ... Result: ...",
		"nextSteps": ["practice framing", "collect metrics", "mock interview"]
	}`}
	s := NewSynthesizer(fake, "quality-model", slog.Default())

	rep, err := s.Generate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.OverallScore != 82 {
		t.Errorf("expected overall 82, got %d", rep.OverallScore)
	}
	if rep.Subscores.Communication != 85 {
		t.Errorf("expected communication 85, got %d", rep.Subscores.Communication)
	}
	if len(rep.Strengths) != 3 || rep.Strengths[0] != "clear ownership" {
		t.Errorf("unexpected strengths: %v", rep.Strengths)
	}

	prompt := fake.prompts[0]
	for _, want := range []string{"Dana", "Backend Engineer", "STRICT", "Interviewer: Tell me about a challenge.", "Candidate: I migrated our billing system."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("report prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "repeated or rephrased") {
		t.Error("repeat note should be absent when repeatRequestCount is 0")
	}
}

func TestGenerate_MissingFieldsDefaulted(t *testing.T) {
	fake := &fakeCompleter{reply: `{"overallScore": 55}`}
	s := NewSynthesizer(fake, "quality-model", slog.Default())

	rep, err := s.Generate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.OverallScore != 55 {
		t.Errorf("explicit score must survive, got %d", rep.OverallScore)
	}
	if rep.Subscores.Communication != 70 || rep.Subscores.Confidence != 70 {
		t.Errorf("missing subscores should default to 70, got %+v", rep.Subscores)
	}
	if len(rep.NextSteps) != 3 {
		t.Errorf("missing nextSteps should default to 3 items, got %v", rep.NextSteps)
	}
	if len(rep.Strengths) != 3 || len(rep.Improvements) != 3 {
		t.Errorf("missing lists should default to 3 items, got %v / %v", rep.Strengths, rep.Improvements)
	}
	if rep.PatternUnderPressure == "" || rep.IdealAnswerRewrite == "" {
		t.Error("missing prose fields should be defaulted")
	}
}

func TestGenerate_RepeatNoteAppended(t *testing.T) {
	fake := &fakeCompleter{reply: `{}`}
	s := NewSynthesizer(fake, "quality-model", slog.Default())

	in := sampleInput()
	in.RepeatRequestCount = 2
	if _, err := s.Generate(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fake.prompts[0], "repeated or rephrased 2 time(s)") {
		t.Error("expected listening-skills note in prompt when repeats occurred")
	}
}

func TestGenerate_ParseFailureIsFatal(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("parse completion after repair: no valid JSON object")}
	s := NewSynthesizer(fake, "quality-model", slog.Default())

	if _, err := s.Generate(context.Background(), sampleInput()); err == nil {
		t.Fatal("expected error to propagate, not a defaulted report")
	}
}
