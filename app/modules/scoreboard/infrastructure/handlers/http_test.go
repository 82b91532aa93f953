package scoreboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoreboarddomain "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain"
	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

func newTestRouter(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewScoreboardHandler(svc, logger)
	return h.Routes(NewSubmitLimiter(1000, 1000))
}

func TestSubmitScoreStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		result     scoreboarddomain.SubmitResult
		wantStatus int
	}{
		{"created", scoreboarddomain.SubmitResult{Outcome: scoreboarddomain.OutcomeCreated}, http.StatusCreated},
		{"updated", scoreboarddomain.SubmitResult{Outcome: scoreboarddomain.OutcomeUpdated}, http.StatusOK},
		{"not better", scoreboarddomain.SubmitResult{Outcome: scoreboarddomain.OutcomeNotBetter}, http.StatusOK},
		{"rejected", scoreboarddomain.SubmitResult{Outcome: scoreboarddomain.OutcomeRejected, Reason: "invalid name"}, http.StatusUnprocessableEntity},
		{"store error", scoreboarddomain.SubmitResult{Outcome: scoreboarddomain.OutcomeStoreError, Reason: "write failed"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{
				SubmitScoreFunc: func(ctx context.Context, sub scoreboarddomain.Submission) scoreboarddomain.SubmitResult {
					return tt.result
				},
			}
			router := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"name":"player","score":5000,"dappies":2}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				Outcome string `json:"outcome"`
				Reason  string `json:"reason"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, string(tt.result.Outcome), resp.Outcome)
			assert.Equal(t, tt.result.Reason, resp.Reason)
		})
	}
}

func TestSubmitScoreBadBody(t *testing.T) {
	router := newTestRouter(&FakeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTopScores(t *testing.T) {
	svc := &FakeService{
		ListTopFunc: func(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error) {
			require.Equal(t, 5, limit)
			return []scoredb.ScoreEntry{
				{ID: 1, Name: "alpha", Score: 9000},
				{ID: 2, Name: "beta", Score: 5000},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/scores/top?limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []scoredb.ScoreEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Name)
}

func TestGetTopScoresInvalidLimit(t *testing.T) {
	router := newTestRouter(&FakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/scores/top?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBestScore(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &FakeService{
			GetBestScoreFunc: func(ctx context.Context, name string) (*scoredb.ScoreEntry, error) {
				return &scoredb.ScoreEntry{ID: 1, Name: name, Score: 7000}, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/scores/player/best", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var entry scoredb.ScoreEntry
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&entry))
		assert.Equal(t, int64(7000), entry.Score)
	})

	t.Run("absent maps to 404", func(t *testing.T) {
		router := newTestRouter(&FakeService{})

		req := httptest.NewRequest(http.MethodGet, "/api/scores/ghost/best", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure maps to 502", func(t *testing.T) {
		svc := &FakeService{
			GetBestScoreFunc: func(ctx context.Context, name string) (*scoredb.ScoreEntry, error) {
				return nil, errors.New("connection refused")
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/scores/player/best", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestSubmitRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewScoreboardHandler(&FakeService{}, logger)
	router := h.Routes(NewSubmitLimiter(1, 2))

	var codes []int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"name":"player","score":5000}`))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusCreated, codes[0])
	assert.Equal(t, http.StatusCreated, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2], "burst exhausted")

	// A different client IP holds its own budget.
	req := httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"name":"player","score":5000}`))
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmitLimiterEvictsIdleEntries(t *testing.T) {
	limiter := NewSubmitLimiter(1, 1)

	limiter.limiterFor("10.0.0.1")
	limiter.limiterFor("10.0.0.2")
	require.Len(t, limiter.limiters, 2)

	// Backdate one entry past the TTL and make the next lookup sweep.
	limiter.mu.Lock()
	limiter.limiters["10.0.0.1"].lastSeen = time.Now().Add(-2 * limiter.idleTTL)
	limiter.lastSweep = time.Now().Add(-2 * limiter.idleTTL)
	limiter.mu.Unlock()

	limiter.limiterFor("10.0.0.3")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.limiters, "10.0.0.1", "idle entry should be swept")
	assert.Contains(t, limiter.limiters, "10.0.0.2")
	assert.Contains(t, limiter.limiters, "10.0.0.3")
}
