package scoreboardhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	scoreboardservice "github.com/dappy-games/scoreboard/app/modules/scoreboard/application"
	scoreboarddomain "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain"
	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// ScoreboardHandler exposes the score ledger over HTTP.
type ScoreboardHandler struct {
	service scoreboardservice.Service
	logger  *slog.Logger
}

// NewScoreboardHandler creates a new ScoreboardHandler.
func NewScoreboardHandler(service scoreboardservice.Service, logger *slog.Logger) *ScoreboardHandler {
	return &ScoreboardHandler{
		service: service,
		logger:  logger,
	}
}

// Routes assembles the scoreboard API router.
func (h *ScoreboardHandler) Routes(limiter *SubmitLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Route("/api/scores", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/", h.SubmitScore)
		r.Get("/top", h.GetTopScores)
		r.Get("/{name}/best", h.GetBestScore)
	})
	return r
}

type submitResponse struct {
	Outcome string              `json:"outcome"`
	Reason  string              `json:"reason,omitempty"`
	Entry   *scoredb.ScoreEntry `json:"entry,omitempty"`
}

// SubmitScore handles POST /api/scores.
func (h *ScoreboardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var sub scoreboarddomain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result := h.service.SubmitScore(r.Context(), sub)

	status := http.StatusOK
	switch result.Outcome {
	case scoreboarddomain.OutcomeCreated:
		status = http.StatusCreated
	case scoreboarddomain.OutcomeRejected:
		status = http.StatusUnprocessableEntity
	case scoreboarddomain.OutcomeStoreError:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, submitResponse{
		Outcome: string(result.Outcome),
		Reason:  result.Reason,
		Entry:   result.Entry,
	})
}

// GetTopScores handles GET /api/scores/top?limit=n.
func (h *ScoreboardHandler) GetTopScores(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.service.ListTop(r.Context(), limit)
	if err != nil {
		http.Error(w, "failed to fetch leaderboard", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetBestScore handles GET /api/scores/{name}/best.
func (h *ScoreboardHandler) GetBestScore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, err := h.service.GetBestScore(r.Context(), name)
	if err != nil {
		http.Error(w, "failed to fetch best score", http.StatusBadGateway)
		return
	}
	if entry == nil {
		http.Error(w, "no score recorded for this name", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Health handles GET /healthz.
func (h *ScoreboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are out; nothing left to do but note it.
		slog.Default().Error("Failed to encode response", slog.Any("error", err))
	}
}
