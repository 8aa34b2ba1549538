package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rehearse-ai/rehearse/internal/archive"
	"github.com/rehearse-ai/rehearse/internal/events"
	"github.com/rehearse-ai/rehearse/internal/interview"
	"github.com/rehearse-ai/rehearse/internal/report"
	"github.com/rehearse-ai/rehearse/internal/session"
)

// previewOriginPattern admits per-branch vercel preview deployments in
// addition to the configured allow-list.
var previewOriginPattern = regexp.MustCompile(`^https://rehearse-.*\.vercel\.app$`)

// InterviewEngine drives session starts and per-turn progression.
type InterviewEngine interface {
	Start(ctx context.Context, cfg interview.Config) (interview.StartResult, error)
	NextTurn(ctx context.Context, in interview.TurnInput) (interview.TurnResult, error)
}

// ReportSynthesizer produces the post-interview evaluation.
type ReportSynthesizer interface {
	Generate(ctx context.Context, in report.Input) (report.Report, error)
}

// SpeechSynthesizer converts interviewer text to audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

type Server struct {
	router   *chi.Mux
	port     int
	engine   InterviewEngine
	reports  ReportSynthesizer
	speech   SpeechSynthesizer
	sessions *session.Store
	events   *events.Publisher
	archive  *archive.Archive
	logger   *slog.Logger
}

type Options struct {
	Port           int
	AllowedOrigins []string
	Engine         InterviewEngine
	Reports        ReportSynthesizer
	Speech         SpeechSynthesizer
	Sessions       *session.Store
	Events         *events.Publisher
	Archive        *archive.Archive
	Logger         *slog.Logger
}

func NewServer(opts Options) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  allowOrigin(opts.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	s := &Server{
		router:   router,
		port:     opts.Port,
		engine:   opts.Engine,
		reports:  opts.Reports,
		speech:   opts.Speech,
		sessions: opts.Sessions,
		events:   opts.Events,
		archive:  opts.Archive,
		logger:   opts.Logger,
	}

	router.Get("/health", s.health)
	router.Post("/session/start", s.sessionStart)
	router.Post("/turn/next", s.turnNext)
	router.Post("/report/final", s.reportFinal)
	router.Post("/tts", s.textToSpeech)

	return s
}

func allowOrigin(allowed []string) func(r *http.Request, origin string) bool {
	return func(r *http.Request, origin string) bool {
		for _, o := range allowed {
			if origin == o {
				return true
			}
		}
		return previewOriginPattern.MatchString(origin)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
