package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/repfit/workout-tracker-be/internal/services"
)

// ReportHandler handles the read-only reporting endpoints.
type ReportHandler struct {
	service services.ReportServiceProvider
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service services.ReportServiceProvider) *ReportHandler {
	return &ReportHandler{service: service}
}

// windowParam reads an integer query parameter, falling back to def on
// absent or non-numeric values and clamping the result to [min, max].
func windowParam(r *http.Request, name string, def, min, max int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		value = def
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}

// Overview returns lifetime totals and per-exercise max weights.
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	report, err := h.service.Overview(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to build overview report")
		respondMsg(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// Weekly returns workout counts per year-week for the last N weeks.
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	weeks := windowParam(r, "weeks", 8, 1, 52)

	counts, err := h.service.Weekly(userID, weeks)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to build weekly report")
		respondMsg(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, counts)
}

// ExerciseProgress returns a per-day series for one exercise over a
// trailing window of days.
func (h *ReportHandler) ExerciseProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	exerciseID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	days := windowParam(r, "days", 30, 1, 365)

	report, err := h.service.ExerciseProgress(userID, exerciseID, days)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("exercise_id", exerciseID).Msg("Failed to build progress report")
		respondMsg(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// Upcoming lists future-dated schedules, soonest first.
func (h *ReportHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	upcoming, err := h.service.Upcoming(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list upcoming schedules")
		respondMsg(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, upcoming)
}
