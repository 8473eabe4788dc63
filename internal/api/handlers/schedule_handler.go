package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/repfit/workout-tracker-be/internal/services"
)

// ScheduleHandler handles HTTP requests for workout scheduling.
type ScheduleHandler struct {
	service services.ScheduleServiceProvider
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service services.ScheduleServiceProvider) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// SchedulePayload defines the structure for schedule requests.
type SchedulePayload struct {
	ScheduledAt string `json:"scheduled_at"`
}

// Create plans a workout at the given ISO-8601 datetime.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var payload SchedulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ScheduledAt == "" {
		respondMsg(w, http.StatusBadRequest, "scheduled_at (ISO datetime) required")
		return
	}
	scheduledAt, err := parseISOTime(payload.ScheduledAt)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid datetime format")
		return
	}

	schedule, err := h.service.CreateSchedule(userID, workoutID, scheduledAt)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, schedule)
}

// GetAllForWorkout lists all schedules under one owned workout.
func (h *ScheduleHandler) GetAllForWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	schedules, err := h.service.ListSchedules(userID, workoutID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, schedules)
}

// Update moves an existing schedule to a new time.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	scheduleID, ok := urlID(w, r, "scheduleId")
	if !ok {
		return
	}

	var payload SchedulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ScheduledAt == "" {
		respondMsg(w, http.StatusBadRequest, "scheduled_at (ISO datetime) required")
		return
	}
	scheduledAt, err := parseISOTime(payload.ScheduledAt)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid datetime format")
		return
	}

	schedule, err := h.service.UpdateSchedule(userID, workoutID, scheduleID, scheduledAt)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

// Delete cancels a schedule.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	scheduleID, ok := urlID(w, r, "scheduleId")
	if !ok {
		return
	}

	if err := h.service.DeleteSchedule(userID, workoutID, scheduleID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "schedule canceled")
}
