package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/repfit/workout-tracker-be/internal/services"
)

// ExerciseHandler serves the read-only exercise catalog.
type ExerciseHandler struct {
	service services.ExerciseServiceProvider
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(service services.ExerciseServiceProvider) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// GetAll returns the catalog so clients can pick exercise ids.
func (h *ExerciseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.service.ListExercises()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list exercises")
		respondMsg(w, http.StatusInternalServerError, "failed to list exercises")
		return
	}
	respondJSON(w, http.StatusOK, exercises)
}
