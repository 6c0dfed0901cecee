// Package server exposes the analysis engine over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/quizdedup/internal/engine"
	"github.com/thebtf/quizdedup/internal/store/sqlite"
	"github.com/thebtf/quizdedup/pkg/models"
)

// analyzeRequest is the POST /api/analyze body. Items may be supplied
// inline; when absent and a store is attached, the corpus is loaded from
// the store (optionally filtered by channel). Threshold overrides fall
// back to the service configuration.
type analyzeRequest struct {
	Items                  []models.Item `json:"items,omitempty"`
	ChannelID              string        `json:"channel_id,omitempty"`
	DuplicateThreshold     *float64      `json:"duplicate_threshold,omitempty"`
	NearDuplicateThreshold *float64      `json:"near_duplicate_threshold,omitempty"`
	Save                   bool          `json:"save,omitempty"`
}

// writeJSON writes a JSON response with proper error handling.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// handleHealth handles health check requests.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
	})
}

// handleConfig returns the engine-facing configuration.
func (s *Service) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.config)
}

// handleAnalyze runs a duplicate-detection analysis and returns the
// discriminated result shape: {success, report} or {success, error}.
// Invalid input maps to 400, computation failures to 500.
func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.AnalysisResult{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	items := req.Items
	if len(items) == 0 && s.itemStore != nil {
		loaded, err := s.itemStore.ListItems(r.Context(), req.ChannelID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load items from store")
			writeJSON(w, http.StatusInternalServerError, models.AnalysisResult{Success: false, Error: "load items: " + err.Error()})
			return
		}
		items = loaded
	}

	opts := engine.Options{
		Thresholds:    s.config.Thresholds(),
		MergeMinSize:  s.config.MergeMinSize,
		Workers:       s.config.Workers,
		PreviewLength: s.config.PreviewLength,
		ChannelID:     req.ChannelID,
	}
	if req.DuplicateThreshold != nil {
		opts.Thresholds.Duplicate = *req.DuplicateThreshold
	}
	if req.NearDuplicateThreshold != nil {
		opts.Thresholds.NearDuplicate = *req.NearDuplicateThreshold
	}

	eng := engine.New(opts, log.Logger)
	rep, err := eng.Analyze(r.Context(), items)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrEmptyCorpus) || errors.Is(err, engine.ErrMissingItemID) ||
			errors.Is(err, engine.ErrDuplicateItemID) || errors.Is(err, models.ErrInvalidThresholds) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, models.AnalysisResult{Success: false, Error: err.Error()})
		return
	}

	if req.Save && s.reportStore != nil {
		if err := s.reportStore.SaveReport(r.Context(), rep); err != nil {
			log.Error().Err(err).Str("run_id", rep.RunID).Msg("Failed to save report")
		}
	}

	writeJSON(w, http.StatusOK, models.AnalysisResult{Success: true, Report: rep})
}

// handleGetReport returns a saved report by run id.
func (s *Service) handleGetReport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	rep, err := s.reportStore.GetReport(r.Context(), runID)
	if err != nil {
		if errors.Is(err, sqlite.ErrReportNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleLatestReport returns the most recently generated saved report.
func (s *Service) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportStore.LatestReport(r.Context())
	if err != nil {
		if errors.Is(err, sqlite.ErrReportNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no reports saved"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
