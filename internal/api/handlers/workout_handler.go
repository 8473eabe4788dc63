package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/repfit/workout-tracker-be/internal/auth"
	"github.com/repfit/workout-tracker-be/internal/services"
)

// WorkoutHandler handles HTTP requests for workout management.
type WorkoutHandler struct {
	service services.WorkoutServiceProvider
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(service services.WorkoutServiceProvider) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// currentUserID pulls the authenticated user's id from the request context.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondMsg(w, http.StatusUnauthorized, "missing auth token")
		return 0, false
	}
	return claims.UserID, true
}

// urlID parses a numeric URL parameter. A non-numeric value behaves like a
// missing resource.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		respondMsg(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// Create persists a new workout with its exercise entries.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input services.CreateWorkoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workout, err := h.service.CreateWorkout(userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, workout)
}

// GetAll lists the caller's workouts, newest first.
func (h *WorkoutHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	workouts, err := h.service.ListWorkouts(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list workouts")
		respondMsg(w, http.StatusInternalServerError, "failed to list workouts")
		return
	}

	respondJSON(w, http.StatusOK, workouts)
}

// Get retrieves one owned workout aggregate.
func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	workout, err := h.service.GetWorkout(userID, workoutID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workout)
}

// Update applies a partial update; a supplied exercises list replaces the
// child set.
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var input services.UpdateWorkoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workout, err := h.service.UpdateWorkout(userID, workoutID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workout)
}

// Delete removes a workout and, through the schema, its children.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteWorkout(userID, workoutID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "deleted")
}
