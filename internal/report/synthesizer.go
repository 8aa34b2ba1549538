// Package report turns a finished interview transcript into a scored
// evaluation with a single quality-tier model call.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rehearse-ai/rehearse/internal/interview"
	"github.com/rehearse-ai/rehearse/internal/openrouter"
)

type jsonCompleter interface {
	CompleteInto(ctx context.Context, model string, messages []openrouter.Message, out any) error
}

type Synthesizer struct {
	llm    jsonCompleter
	model  string
	logger *slog.Logger
}

func NewSynthesizer(llm jsonCompleter, model string, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{llm: llm, model: model, logger: logger}
}

// Input is the full interview context the report is synthesized from.
type Input struct {
	Name               string
	RoleTitle          string
	RoleDesc           string
	Bucket             interview.Bucket
	Intensity          interview.Intensity
	Turns              []interview.Turn
	RepeatRequestCount int
}

// Subscores are the five named evaluation axes, each 1-100.
type Subscores struct {
	Communication int `json:"communication"`
	Relevance     int `json:"relevance"`
	Structure     int `json:"structure"`
	Specificity   int `json:"specificity"`
	Confidence    int `json:"confidence"`
}

// Report is the fixed-shape evaluation. Every field has a default
// substituted when the model omits it; a report endpoint never fails just
// because a field is missing from an otherwise-parseable object.
type Report struct {
	OverallScore         int       `json:"overallScore"`
	Subscores            Subscores `json:"subscores"`
	Strengths            []string  `json:"strengths"`
	Improvements         []string  `json:"improvements"`
	PatternUnderPressure string    `json:"patternUnderPressure"`
	IdealAnswerRewrite   string    `json:"idealAnswerRewrite"`
	NextSteps            []string  `json:"nextSteps"`
}

const reportPrompt = `Analyze this complete behavioral interview and generate a detailed report.

Candidate: %s
Role: %s
Role Description: %s
Experience Level: %s
Interview Intensity: %s%s

Full Interview Transcript:
%s

Generate a comprehensive JSON report:
{
  "overallScore": 1-100,
  "subscores": {
    "communication": 1-100,
    "relevance": 1-100,
    "structure": 1-100,
    "specificity": 1-100,
    "confidence": 1-100
  },
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "improvements": ["area 1", "area 2", "area 3"],
  "patternUnderPressure": "A paragraph describing how the candidate performed under pressure, their tendencies, and behavioral patterns observed",
  "idealAnswerRewrite": "Take the weakest answer and rewrite it as an ideal STAR-formatted response",
  "nextSteps": ["specific action item 1", "specific action item 2", "specific action item 3"]
}

Be specific and constructive. Reference actual content from their answers.
Respond ONLY with valid JSON.`

const repeatNote = "\nNote: The candidate asked for questions to be repeated or rephrased %d time(s) during the interview. Consider this in your assessment of their listening skills and ability to process questions under pressure."

// Generate runs the single report call and applies field defaults.
func (s *Synthesizer) Generate(ctx context.Context, in Input) (Report, error) {
	repeatInfo := ""
	if in.RepeatRequestCount > 0 {
		repeatInfo = fmt.Sprintf(repeatNote, in.RepeatRequestCount)
	}

	prompt := fmt.Sprintf(reportPrompt,
		in.Name, in.RoleTitle, in.RoleDesc, in.Bucket, in.Intensity, repeatInfo,
		renderTranscript(in.Turns))

	var rep Report
	messages := []openrouter.Message{{Role: "user", Content: prompt}}
	if err := s.llm.CompleteInto(ctx, s.model, messages, &rep); err != nil {
		return Report{}, fmt.Errorf("generate report: %w", err)
	}

	applyDefaults(&rep)

	s.logger.Info("report generated",
		"role", in.RoleTitle,
		"turns", len(in.Turns),
		"overall_score", rep.OverallScore,
	)
	return rep, nil
}

func renderTranscript(turns []interview.Turn) string {
	out := ""
	for i, t := range turns {
		if i > 0 {
			out += "\n"
		}
		if t.Type == "ai" {
			out += "Interviewer: " + t.AIText
		} else {
			out += "Candidate: " + t.UserTranscript
		}
	}
	return out
}

func applyDefaults(rep *Report) {
	if rep.OverallScore == 0 {
		rep.OverallScore = 70
	}
	if rep.Subscores.Communication == 0 {
		rep.Subscores.Communication = 70
	}
	if rep.Subscores.Relevance == 0 {
		rep.Subscores.Relevance = 70
	}
	if rep.Subscores.Structure == 0 {
		rep.Subscores.Structure = 70
	}
	if rep.Subscores.Specificity == 0 {
		rep.Subscores.Specificity = 70
	}
	if rep.Subscores.Confidence == 0 {
		rep.Subscores.Confidence = 70
	}
	if len(rep.Strengths) == 0 {
		rep.Strengths = []string{"Showed enthusiasm", "Provided examples", "Good communication"}
	}
	if len(rep.Improvements) == 0 {
		rep.Improvements = []string{"Add more specific metrics", "Use STAR format consistently", "Provide more context"}
	}
	if rep.PatternUnderPressure == "" {
		rep.PatternUnderPressure = "The candidate maintained composure throughout the interview."
	}
	if rep.IdealAnswerRewrite == "" {
		rep.IdealAnswerRewrite = "Consider structuring your answer using the STAR method..."
	}
	if len(rep.NextSteps) == 0 {
		rep.NextSteps = []string{"Practice STAR format", "Prepare specific examples", "Research the company"}
	}
}
