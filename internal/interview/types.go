package interview

// Intensity is the interviewer persona setting, fixed at session start.
type Intensity string

const (
	IntensityCalm       Intensity = "CALM"
	IntensityStrict     Intensity = "STRICT"
	IntensityAggressive Intensity = "AGGRESSIVE"
)

// Phase marks which stage of the question cycle the last interviewer turn
// belongs to.
type Phase string

const (
	PhaseGreeting Phase = "GREETING"
	PhaseMain     Phase = "MAIN"
	PhaseFollowup Phase = "FOLLOWUP"
)

// Action is the progression decision returned for each candidate utterance.
type Action string

const (
	ActionAskFollowup    Action = "ASK_FOLLOWUP"
	ActionNextMain       Action = "NEXT_MAIN"
	ActionEnd            Action = "END"
	ActionRepeatQuestion Action = "REPEAT_QUESTION"
)

// Bucket is the experience level inferred once from the role title.
type Bucket string

const (
	BucketJunior     Bucket = "JUNIOR"
	BucketMid        Bucket = "MID"
	BucketLeadership Bucket = "LEADERSHIP"
)

// Turn is one entry of the caller-owned transcript. Type is "ai" for
// interviewer turns and "user" for candidate turns.
type Turn struct {
	Type           string `json:"type"`
	AIText         string `json:"aiText"`
	UserTranscript string `json:"userTranscript"`
}

// Config is the immutable interview setup created at session start.
type Config struct {
	Name      string
	RoleTitle string
	RoleDesc  string
	Intensity Intensity
	Bucket    Bucket
}

// State is the progression state round-tripped with the caller on every turn.
type State struct {
	Phase              Phase
	MainQuestionIndex  int
	FollowupCount      int
	RepeatRequestCount int
}
