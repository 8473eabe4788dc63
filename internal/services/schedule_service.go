package services

import (
	"database/sql"
	"time"

	"github.com/repfit/workout-tracker-be/internal/models"
)

// ScheduleServiceProvider defines the interface for workout scheduling.
// Schedules live under a workout; every operation checks that the workout
// belongs to the user and answers ErrNotFound otherwise.
type ScheduleServiceProvider interface {
	CreateSchedule(userID, workoutID int64, scheduledAt time.Time) (models.ScheduledWorkout, error)
	ListSchedules(userID, workoutID int64) ([]models.ScheduledWorkout, error)
	UpdateSchedule(userID, workoutID, scheduleID int64, scheduledAt time.Time) (models.ScheduledWorkout, error)
	DeleteSchedule(userID, workoutID, scheduleID int64) error
}

// ScheduleService provides business logic for scheduled workouts.
type ScheduleService struct {
	db *sql.DB
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(db *sql.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

func (s *ScheduleService) ensureOwnedWorkout(userID, workoutID int64) error {
	var id int64
	err := s.db.QueryRow("SELECT id FROM workouts WHERE id = ? AND user_id = ?", workoutID, userID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// CreateSchedule plans a workout for a future (or past) timestamp.
func (s *ScheduleService) CreateSchedule(userID, workoutID int64, scheduledAt time.Time) (models.ScheduledWorkout, error) {
	if err := s.ensureOwnedWorkout(userID, workoutID); err != nil {
		return models.ScheduledWorkout{}, err
	}

	res, err := s.db.Exec(
		"INSERT INTO scheduled_workouts (workout_id, scheduled_at) VALUES (?, ?)",
		workoutID, timeToDB(scheduledAt),
	)
	if err != nil {
		return models.ScheduledWorkout{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.ScheduledWorkout{}, err
	}

	return models.ScheduledWorkout{ID: id, WorkoutID: workoutID, ScheduledAt: scheduledAt.UTC()}, nil
}

// ListSchedules returns all schedules for an owned workout.
func (s *ScheduleService) ListSchedules(userID, workoutID int64) ([]models.ScheduledWorkout, error) {
	if err := s.ensureOwnedWorkout(userID, workoutID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT id, workout_id, scheduled_at FROM scheduled_workouts WHERE workout_id = ? ORDER BY id", workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []models.ScheduledWorkout{}
	for rows.Next() {
		var sw models.ScheduledWorkout
		var scheduledAt string
		if err := rows.Scan(&sw.ID, &sw.WorkoutID, &scheduledAt); err != nil {
			return nil, err
		}
		if sw.ScheduledAt, err = timeFromDB(scheduledAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, sw)
	}
	return schedules, rows.Err()
}

// UpdateSchedule moves an existing schedule to a new time. The schedule must
// belong to the given workout and the workout to the given user.
func (s *ScheduleService) UpdateSchedule(userID, workoutID, scheduleID int64, scheduledAt time.Time) (models.ScheduledWorkout, error) {
	if err := s.ensureOwnedWorkout(userID, workoutID); err != nil {
		return models.ScheduledWorkout{}, err
	}

	res, err := s.db.Exec(
		"UPDATE scheduled_workouts SET scheduled_at = ? WHERE id = ? AND workout_id = ?",
		timeToDB(scheduledAt), scheduleID, workoutID,
	)
	if err != nil {
		return models.ScheduledWorkout{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.ScheduledWorkout{}, err
	}
	if affected == 0 {
		return models.ScheduledWorkout{}, ErrNotFound
	}

	return models.ScheduledWorkout{ID: scheduleID, WorkoutID: workoutID, ScheduledAt: scheduledAt.UTC()}, nil
}

// DeleteSchedule cancels a schedule.
func (s *ScheduleService) DeleteSchedule(userID, workoutID, scheduleID int64) error {
	if err := s.ensureOwnedWorkout(userID, workoutID); err != nil {
		return err
	}

	res, err := s.db.Exec(
		"DELETE FROM scheduled_workouts WHERE id = ? AND workout_id = ?", scheduleID, workoutID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
