package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rehearse-ai/rehearse/internal/events"
	"github.com/rehearse-ai/rehearse/internal/interview"
	"github.com/rehearse-ai/rehearse/internal/openrouter"
	"github.com/rehearse-ai/rehearse/internal/report"
)

func (s *Server) sessionStart(w http.ResponseWriter, r *http.Request) {
	var req SessionStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if s.engine == nil {
		writeError(w, http.StatusInternalServerError, "OPENROUTER_API_KEY not configured")
		return
	}

	cfg := interview.Config{
		Name:      req.Name,
		RoleTitle: req.RoleTitle,
		RoleDesc:  req.RoleDesc,
		Intensity: interview.Intensity(req.Intensity),
		Bucket:    interview.InferBucket(req.RoleTitle),
	}

	res, err := s.engine.Start(r.Context(), cfg)
	if err != nil {
		s.writeLLMError(w, "session start", err)
		return
	}

	sessionID := s.sessions.Put(cfg)

	if err := s.events.Publish(events.SubjectSessionStarted, map[string]any{
		"session_id": sessionID,
		"role_title": cfg.RoleTitle,
		"bucket":     cfg.Bucket,
		"intensity":  cfg.Intensity,
	}); err != nil {
		s.logger.Warn("failed to publish session event", "error", err)
	}

	writeJSON(w, http.StatusOK, SessionStartResponse{
		SessionID:         sessionID,
		GreetingText:      res.Greeting,
		FirstMainQuestion: res.FirstQuestion,
		RoleBucket:        string(cfg.Bucket),
	})
}

func (s *Server) turnNext(w http.ResponseWriter, r *http.Request) {
	var req TurnNextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if s.engine == nil {
		writeError(w, http.StatusInternalServerError, "OPENROUTER_API_KEY not configured")
		return
	}

	in := interview.TurnInput{
		State: interview.State{
			Phase:              interview.Phase(req.Phase),
			MainQuestionIndex:  req.MainQuestionIndex,
			FollowupCount:      req.FollowupCount,
			RepeatRequestCount: req.RepeatRequestCount,
		},
		RoleTitle:           req.RoleTitle,
		RoleDesc:            req.RoleDesc,
		Bucket:              interview.Bucket(req.RoleBucket),
		Intensity:           interview.Intensity(req.Intensity),
		LastInterviewerText: req.AIPromptedText,
		Utterance:           req.UserTranscript,
		Turns:               req.TurnsSoFar,
	}

	res, err := s.engine.NextTurn(r.Context(), in)
	if err != nil {
		s.writeLLMError(w, "turn", err)
		return
	}

	if res.Action == interview.ActionEnd {
		if err := s.events.Publish(events.SubjectInterviewEnded, map[string]any{
			"session_id": req.SessionID,
			"turns":      len(req.TurnsSoFar),
		}); err != nil {
			s.logger.Warn("failed to publish end event", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, TurnNextResponse{
		Action:            string(res.Action),
		AIText:            res.Text,
		MainQuestionIndex: res.MainQuestionIndex,
		FollowupCount:     res.FollowupCount,
		InternalEval:      zeroEval(),
	})
}

func (s *Server) reportFinal(w http.ResponseWriter, r *http.Request) {
	var req ReportFinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if s.reports == nil {
		writeError(w, http.StatusInternalServerError, "OPENROUTER_API_KEY not configured")
		return
	}

	rep, err := s.reports.Generate(r.Context(), report.Input{
		Name:               req.Name,
		RoleTitle:          req.RoleTitle,
		RoleDesc:           req.RoleDesc,
		Bucket:             interview.Bucket(req.RoleBucket),
		Intensity:          interview.Intensity(req.Intensity),
		Turns:              req.Turns,
		RepeatRequestCount: req.RepeatRequestCount,
	})
	if err != nil {
		s.writeLLMError(w, "report", err)
		return
	}

	if err := s.archive.SaveReport(r.Context(), req.SessionID, req.Name, req.RoleTitle, rep); err != nil {
		s.logger.Warn("failed to archive report", "session_id", req.SessionID, "error", err)
	}
	if err := s.events.Publish(events.SubjectReportGenerated, map[string]any{
		"session_id":    req.SessionID,
		"overall_score": rep.OverallScore,
	}); err != nil {
		s.logger.Warn("failed to publish report event", "error", err)
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) textToSpeech(w http.ResponseWriter, r *http.Request) {
	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if s.speech == nil {
		writeError(w, http.StatusInternalServerError, "ELEVENLABS_API_KEY not configured")
		return
	}

	audio, err := s.speech.Synthesize(r.Context(), req.Text, req.VoiceID)
	if err != nil {
		s.logger.Error("tts failed", "error", err)
		writeError(w, http.StatusBadGateway, "TTS generation failed")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

// writeLLMError maps completion failures onto responses: upstream API errors
// keep their original status, everything else (including a failed JSON
// repair) is a server error. No partial progression state accompanies an
// error — the client retries the turn with unchanged input.
func (s *Server) writeLLMError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "error", err)

	var apiErr *openrouter.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, "LLM error: "+apiErr.Body)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
