package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/abdulachik/novelpair/internal/app"
	"github.com/abdulachik/novelpair/internal/headline"
	"github.com/abdulachik/novelpair/internal/pairer"
	"github.com/go-chi/chi/v5/middleware"
)

type headlineResponse struct {
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type pairResponse struct {
	TopicA   string  `json:"topic_a"`
	TopicB   string  `json:"topic_b"`
	Distance float64 `json:"distance"`
}

type runResponse struct {
	RunID         string         `json:"run_id,omitempty"`
	HeadlineCount int64          `json:"headline_count"`
	Seed          uint64         `json:"seed,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"`
	Pairs         []pairResponse `json:"pairs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Report()

	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	s.respondJSON(w, status, report)
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultHeadlineLimit)
	if err != nil || limit <= 0 {
		s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if limit > s.maxHeadlines {
		limit = s.maxHeadlines
	}

	headlines, err := headline.Recent(r.Context(), s.store, s.pairWindow, limit)
	if err != nil {
		slog.Error("list headlines failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		s.respondError(w, http.StatusInternalServerError, "failed to load headlines")
		return
	}

	resp := make([]headlineResponse, len(headlines))
	for i, h := range headlines {
		resp[i] = headlineResponse{
			Source:      h.Source,
			Title:       h.Title,
			Description: h.Description,
			URL:         h.URL,
		}
		if !h.PublishedAt.IsZero() {
			published := h.PublishedAt
			resp[i].PublishedAt = &published
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"headlines": resp})
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := intParam(r, "n", s.defaultPairs)
	if err != nil || n < 0 {
		s.respondError(w, http.StatusBadRequest, "n must be a non-negative integer")
		return
	}

	var seed uint64
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
	}

	headlines, err := headline.Recent(ctx, s.store, s.pairWindow, s.maxHeadlines)
	if err != nil {
		slog.Error("list headlines failed", "error", err, "request_id", middleware.GetReqID(ctx))
		s.respondError(w, http.StatusInternalServerError, "failed to load headlines")
		return
	}

	var pairs []pairer.Pair
	if seed != 0 {
		pairs, err = s.pairer.PairSeeded(ctx, headlines, n, seed)
	} else {
		pairs, err = s.pairer.Pair(ctx, headlines, n)
	}
	switch {
	case errors.Is(err, pairer.ErrInsufficientData),
		errors.Is(err, pairer.ErrDegenerateVocabulary),
		errors.Is(err, pairer.ErrCollectionTooLarge):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.Error("pairing failed", "error", err, "request_id", middleware.GetReqID(ctx))
		s.respondError(w, http.StatusInternalServerError, "pairing failed")
		return
	}

	resp := runResponse{
		HeadlineCount: int64(len(headlines)),
		Seed:          seed,
		Pairs:         toPairResponses(pairs),
	}

	run, err := app.RecordRun(ctx, s.store, pairs, len(headlines), seed)
	if err != nil {
		slog.Warn("failed to record pair run", "error", err, "request_id", middleware.GetReqID(ctx))
	} else {
		resp.RunID = run.ID
		resp.CreatedAt = run.CreatedAt
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	run, err := s.store.GetLatestPairRun(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		s.respondError(w, http.StatusNotFound, "no pair runs recorded")
		return
	}
	if err != nil {
		slog.Error("get latest run failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	rows, err := s.store.ListPairsByRun(ctx, run.ID)
	if err != nil {
		slog.Error("list run pairs failed", "run_id", run.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	pairs := make([]pairResponse, len(rows))
	for i, p := range rows {
		pairs[i] = pairResponse{TopicA: p.TopicA, TopicB: p.TopicB, Distance: p.Distance}
	}

	s.respondJSON(w, http.StatusOK, runResponse{
		RunID:         run.ID,
		HeadlineCount: run.HeadlineCount,
		Seed:          uint64(run.Seed),
		CreatedAt:     run.CreatedAt,
		Pairs:         pairs,
	})
}

func toPairResponses(pairs []pairer.Pair) []pairResponse {
	resp := make([]pairResponse, len(pairs))
	for i, p := range pairs {
		resp[i] = pairResponse{TopicA: p.TopicA, TopicB: p.TopicB, Distance: p.Distance}
	}
	return resp
}

// intParam reads an integer query parameter, returning def when it is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
