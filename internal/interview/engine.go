package interview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rehearse-ai/rehearse/internal/openrouter"
)

// jsonCompleter is satisfied by *llmjson.Client.
type jsonCompleter interface {
	CompleteInto(ctx context.Context, model string, messages []openrouter.Message, out any) error
}

// Engine drives the turn-progression state machine. It holds no per-interview
// state: progression is supplied by the caller on every call, so concurrent
// calls and retries of a failed turn are safe.
type Engine struct {
	llm          jsonCompleter
	fastModel    string
	qualityModel string
	logger       *slog.Logger
}

func NewEngine(llm jsonCompleter, fastModel, qualityModel string, logger *slog.Logger) *Engine {
	return &Engine{
		llm:          llm,
		fastModel:    fastModel,
		qualityModel: qualityModel,
		logger:       logger,
	}
}

// StartResult is the opening interviewer output for a new session.
type StartResult struct {
	Greeting      string
	FirstQuestion string
}

// TurnInput is everything the state machine needs for one candidate utterance.
type TurnInput struct {
	State               State
	RoleTitle           string
	RoleDesc            string
	Bucket              Bucket
	Intensity           Intensity
	LastInterviewerText string
	Utterance           string
	Turns               []Turn
}

// TurnResult is the decision for one turn: what to say and the next
// progression state.
type TurnResult struct {
	Action            Action
	Text              string
	MainQuestionIndex int
	FollowupCount     int
}

// rule identifies which decision branch fires for a turn. Exactly one rule
// fires per call, in the declared order.
type rule int

const (
	ruleRephrase rule = iota
	ruleGreetingTransition
	ruleClosing
	ruleFollowupDecision
	ruleNextQuestion
)

// decide is the pure transition policy. It never touches the network, which
// is what makes the ordering testable in isolation.
func decide(s State, repeatRequested bool) rule {
	switch {
	case s.Phase != PhaseGreeting && repeatRequested:
		return ruleRephrase
	case s.Phase == PhaseGreeting:
		return ruleGreetingTransition
	case s.MainQuestionIndex >= 2 && (s.FollowupCount >= 2 || s.Phase == PhaseFollowup):
		return ruleClosing
	case (s.Phase == PhaseMain || s.Phase == PhaseFollowup) && s.FollowupCount < 2:
		return ruleFollowupDecision
	default:
		return ruleNextQuestion
	}
}

// Start generates the greeting and first main question for a new interview.
// Uses the quality tier: the opening sets the tone and is generated once.
func (e *Engine) Start(ctx context.Context, cfg Config) (StartResult, error) {
	var out struct {
		Greeting      string `json:"greeting"`
		FirstQuestion string `json:"firstQuestion"`
	}

	messages := []openrouter.Message{{Role: "user", Content: buildStartPrompt(cfg)}}
	if err := e.llm.CompleteInto(ctx, e.qualityModel, messages, &out); err != nil {
		return StartResult{}, fmt.Errorf("start interview: %w", err)
	}

	res := StartResult{Greeting: out.Greeting, FirstQuestion: out.FirstQuestion}
	if res.Greeting == "" {
		res.Greeting = fmt.Sprintf("Hello %s, welcome to the interview. Let's get started.", cfg.Name)
	}
	if res.FirstQuestion == "" {
		res.FirstQuestion = "Tell me about a time you faced a challenge at work."
	}

	e.logger.Info("interview started",
		"role", cfg.RoleTitle,
		"bucket", cfg.Bucket,
		"intensity", cfg.Intensity,
	)
	return res, nil
}

// turnReply is the structured shape every per-turn template demands.
type turnReply struct {
	Action string `json:"action"`
	AIText string `json:"aiText"`
}

// NextTurn applies the decision rules to one candidate utterance. No state is
// committed on error: the caller retries the whole turn with unchanged input.
func (e *Engine) NextTurn(ctx context.Context, in TurnInput) (TurnResult, error) {
	r := decide(in.State, IsRepeatRequest(in.Utterance))

	e.logger.Debug("turn decision",
		"phase", in.State.Phase,
		"question_index", in.State.MainQuestionIndex,
		"followup_count", in.State.FollowupCount,
		"rule", r,
	)

	switch r {
	case ruleRephrase:
		return e.rephrase(ctx, in)
	case ruleGreetingTransition:
		return e.greetingTransition(ctx, in)
	case ruleClosing:
		return e.closing(ctx, in)
	case ruleFollowupDecision:
		return e.followupDecision(ctx, in)
	default:
		return e.nextQuestion(ctx, in)
	}
}

// rephrase restates the current question without advancing progression.
func (e *Engine) rephrase(ctx context.Context, in TurnInput) (TurnResult, error) {
	var out turnReply
	if err := e.complete(ctx, buildRephrasePrompt(in), &out); err != nil {
		return TurnResult{}, err
	}
	if out.AIText == "" {
		out.AIText = "Of course. " + in.LastInterviewerText
	}
	return TurnResult{
		Action:            ActionRepeatQuestion,
		Text:              out.AIText,
		MainQuestionIndex: in.State.MainQuestionIndex,
		FollowupCount:     in.State.FollowupCount,
	}, nil
}

// greetingTransition moves from the candidate's greeting response to the
// first main question without evaluating the greeting.
func (e *Engine) greetingTransition(ctx context.Context, in TurnInput) (TurnResult, error) {
	var out turnReply
	if err := e.complete(ctx, buildGreetingTransitionPrompt(in), &out); err != nil {
		return TurnResult{}, err
	}
	if out.AIText == "" {
		out.AIText = "Let's begin with the first question."
		if len(in.Turns) > 0 {
			out.AIText = "Great, let's begin. " + in.Turns[0].AIText
		}
	}
	return TurnResult{
		Action:            ActionNextMain,
		Text:              out.AIText,
		MainQuestionIndex: 0,
		FollowupCount:     0,
	}, nil
}

// closing ends the interview with a thank-you, no scoring or feedback.
func (e *Engine) closing(ctx context.Context, in TurnInput) (TurnResult, error) {
	var out turnReply
	if err := e.complete(ctx, buildClosingPrompt(in), &out); err != nil {
		return TurnResult{}, err
	}
	if out.AIText == "" {
		out.AIText = "Thank you for your time today. We'll be in touch soon."
	}
	return TurnResult{
		Action:            ActionEnd,
		Text:              out.AIText,
		MainQuestionIndex: in.State.MainQuestionIndex,
		FollowupCount:     in.State.FollowupCount,
	}, nil
}

// followupDecision lets the model choose between digging deeper and moving
// on, based on the completeness of the candidate's answer.
func (e *Engine) followupDecision(ctx context.Context, in TurnInput) (TurnResult, error) {
	var out turnReply
	if err := e.complete(ctx, buildFollowupDecisionPrompt(in), &out); err != nil {
		return TurnResult{}, err
	}

	if out.Action == string(ActionAskFollowup) {
		text := out.AIText
		if text == "" {
			text = "Tell me more about that."
		}
		return TurnResult{
			Action:            ActionAskFollowup,
			Text:              text,
			MainQuestionIndex: in.State.MainQuestionIndex,
			FollowupCount:     in.State.FollowupCount + 1,
		}, nil
	}

	// NEXT_MAIN from the FOLLOWUP phase needs a fresh question: the decision
	// reply only covers the transition, so fall through to the next-question
	// rule. From MAIN the reply already carries transition + next question.
	if in.State.Phase == PhaseFollowup {
		return e.nextQuestion(ctx, in)
	}

	text := out.AIText
	if text == "" {
		text = "Tell me more about that."
	}
	return TurnResult{
		Action:            ActionNextMain,
		Text:              text,
		MainQuestionIndex: in.State.MainQuestionIndex + 1,
		FollowupCount:     0,
	}, nil
}

// nextQuestion asks the next numbered main question, resetting the
// follow-up count.
func (e *Engine) nextQuestion(ctx context.Context, in TurnInput) (TurnResult, error) {
	var out turnReply
	if err := e.complete(ctx, buildNextQuestionPrompt(in), &out); err != nil {
		return TurnResult{}, err
	}
	if out.AIText == "" {
		out.AIText = "Moving on, tell me about a time you worked on a team."
	}
	return TurnResult{
		Action:            ActionNextMain,
		Text:              out.AIText,
		MainQuestionIndex: in.State.MainQuestionIndex + 1,
		FollowupCount:     0,
	}, nil
}

func (e *Engine) complete(ctx context.Context, prompt string, out any) error {
	messages := []openrouter.Message{{Role: "user", Content: prompt}}
	if err := e.llm.CompleteInto(ctx, e.fastModel, messages, out); err != nil {
		return fmt.Errorf("next turn: %w", err)
	}
	return nil
}
