package api

import (
	"github.com/rehearse-ai/rehearse/internal/interview"
)

type SessionStartRequest struct {
	Name      string `json:"name"`
	RoleTitle string `json:"roleTitle"`
	RoleDesc  string `json:"roleDesc"`
	Intensity string `json:"intensity"`
}

type SessionStartResponse struct {
	SessionID         string `json:"sessionId"`
	GreetingText      string `json:"greetingText"`
	FirstMainQuestion string `json:"firstMainQuestion"`
	RoleBucket        string `json:"roleBucket"`
}

type TurnNextRequest struct {
	SessionID          string           `json:"sessionId"`
	Phase              string           `json:"phase"`
	MainQuestionIndex  int              `json:"mainQuestionIndex"`
	FollowupCount      int              `json:"followupCount"`
	RoleTitle          string           `json:"roleTitle"`
	RoleDesc           string           `json:"roleDesc"`
	RoleBucket         string           `json:"roleBucket"`
	Intensity          string           `json:"intensity"`
	AIPromptedText     string           `json:"aiPromptedText"`
	UserTranscript     string           `json:"userTranscript"`
	TurnsSoFar         []interview.Turn `json:"turnsSoFar"`
	RepeatRequestCount int              `json:"repeatRequestCount"`
}

// InternalEval is a reserved per-turn evaluation slot. It is always
// zero-filled: the follow-up decision is a separate model call and the final
// report does its own analysis, but clients still expect the shape.
type InternalEval struct {
	Scores map[string]int    `json:"scores"`
	Star   map[string]string `json:"star"`
	Notes  []string          `json:"notes"`
}

type TurnNextResponse struct {
	Action            string       `json:"action"`
	AIText            string       `json:"aiText"`
	MainQuestionIndex int          `json:"mainQuestionIndex"`
	FollowupCount     int          `json:"followupCount"`
	InternalEval      InternalEval `json:"internalEval"`
}

type ReportFinalRequest struct {
	SessionID          string           `json:"sessionId"`
	Name               string           `json:"name"`
	RoleTitle          string           `json:"roleTitle"`
	RoleDesc           string           `json:"roleDesc"`
	RoleBucket         string           `json:"roleBucket"`
	Intensity          string           `json:"intensity"`
	Turns              []interview.Turn `json:"turns"`
	RepeatRequestCount int              `json:"repeatRequestCount"`
}

type TTSRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

func zeroEval() InternalEval {
	return InternalEval{
		Scores: map[string]int{
			"relevance":         0,
			"clarity":           0,
			"specificity":       0,
			"structure":         0,
			"confidenceMarkers": 0,
		},
		Star:  map[string]string{"S": "", "T": "", "A": "", "R": ""},
		Notes: []string{},
	}
}
