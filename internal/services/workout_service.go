package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/repfit/workout-tracker-be/internal/models"
)

// WorkoutExerciseInput is one exercise entry in a create/update request.
// Weight is optional and defaults to 0.
type WorkoutExerciseInput struct {
	ExerciseID int64    `json:"exercise_id"`
	Sets       int      `json:"sets"`
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight"`
}

// CreateWorkoutInput carries the fields for a new workout.
type CreateWorkoutInput struct {
	Title     string                 `json:"title"`
	Notes     string                 `json:"notes"`
	Exercises []WorkoutExerciseInput `json:"exercises"`
}

// UpdateWorkoutInput carries a partial update. Nil fields are left as-is;
// a non-nil Exercises list replaces the entire child set.
type UpdateWorkoutInput struct {
	Title     *string                 `json:"title"`
	Notes     *string                 `json:"notes"`
	Exercises *[]WorkoutExerciseInput `json:"exercises"`
}

// WorkoutServiceProvider defines the interface for workout services.
// Every operation is scoped to the owning user; a workout belonging to
// someone else behaves exactly like a missing one.
type WorkoutServiceProvider interface {
	CreateWorkout(userID int64, input CreateWorkoutInput) (models.Workout, error)
	ListWorkouts(userID int64) ([]models.Workout, error)
	GetWorkout(userID, workoutID int64) (models.Workout, error)
	UpdateWorkout(userID, workoutID int64, input UpdateWorkoutInput) (models.Workout, error)
	DeleteWorkout(userID, workoutID int64) error
}

// WorkoutService provides business logic for workout management.
type WorkoutService struct {
	db *sql.DB
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(db *sql.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

func validateExerciseInputs(entries []WorkoutExerciseInput) error {
	for _, ex := range entries {
		if ex.ExerciseID == 0 {
			return fmt.Errorf("%w: exercise_id required", ErrValidation)
		}
		if ex.Sets <= 0 || ex.Reps <= 0 {
			return fmt.Errorf("%w: sets and reps must be positive", ErrValidation)
		}
	}
	return nil
}

func insertWorkoutExercises(tx *sql.Tx, workoutID int64, entries []WorkoutExerciseInput) error {
	stmt, err := tx.Prepare(`
		INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ex := range entries {
		weight := 0.0
		if ex.Weight != nil {
			weight = *ex.Weight
		}
		if _, err := stmt.Exec(workoutID, ex.ExerciseID, ex.Sets, ex.Reps, weight); err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY") {
				return fmt.Errorf("%w: unknown exercise_id %d", ErrValidation, ex.ExerciseID)
			}
			return err
		}
	}
	return nil
}

// CreateWorkout persists a workout and its exercise entries atomically.
func (s *WorkoutService) CreateWorkout(userID int64, input CreateWorkoutInput) (models.Workout, error) {
	if input.Title == "" || len(input.Exercises) == 0 {
		return models.Workout{}, fmt.Errorf("%w: title and exercises required", ErrValidation)
	}
	if err := validateExerciseInputs(input.Exercises); err != nil {
		return models.Workout{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Workout{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO workouts (user_id, title, notes, created_at) VALUES (?, ?, ?, ?)",
		userID, input.Title, input.Notes, timeToDB(time.Now()),
	)
	if err != nil {
		return models.Workout{}, err
	}
	workoutID, err := res.LastInsertId()
	if err != nil {
		return models.Workout{}, err
	}

	if err := insertWorkoutExercises(tx, workoutID, input.Exercises); err != nil {
		return models.Workout{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Workout{}, err
	}

	return s.GetWorkout(userID, workoutID)
}

// ListWorkouts returns all workouts owned by the user, newest first.
func (s *WorkoutService) ListWorkouts(userID int64) ([]models.Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, COALESCE(notes, ''), created_at
		FROM workouts WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workouts {
		if workouts[i].Exercises, err = s.loadExercises(workouts[i].ID); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// GetWorkout retrieves a single workout aggregate owned by the user.
func (s *WorkoutService) GetWorkout(userID, workoutID int64) (models.Workout, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, COALESCE(notes, ''), created_at
		FROM workouts WHERE id = ? AND user_id = ?`, workoutID, userID)
	workout, err := scanWorkout(row)
	if err != nil {
		return models.Workout{}, err
	}
	if workout.Exercises, err = s.loadExercises(workout.ID); err != nil {
		return models.Workout{}, err
	}
	return workout, nil
}

// UpdateWorkout applies a partial update. When an exercises list is supplied
// the existing child rows are replaced wholesale, not merged.
func (s *WorkoutService) UpdateWorkout(userID, workoutID int64, input UpdateWorkoutInput) (models.Workout, error) {
	existing, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return models.Workout{}, err
	}

	title := existing.Title
	if input.Title != nil {
		title = *input.Title
	}
	notes := existing.Notes
	if input.Notes != nil {
		notes = *input.Notes
	}
	if input.Exercises != nil {
		if err := validateExerciseInputs(*input.Exercises); err != nil {
			return models.Workout{}, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Workout{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE workouts SET title = ?, notes = ? WHERE id = ?", title, notes, workoutID); err != nil {
		return models.Workout{}, err
	}

	if input.Exercises != nil {
		if _, err := tx.Exec("DELETE FROM workout_exercises WHERE workout_id = ?", workoutID); err != nil {
			return models.Workout{}, err
		}
		if err := insertWorkoutExercises(tx, workoutID, *input.Exercises); err != nil {
			return models.Workout{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Workout{}, err
	}

	return s.GetWorkout(userID, workoutID)
}

// DeleteWorkout removes a workout; the schema cascades the delete to its
// workout_exercises and scheduled_workouts rows.
func (s *WorkoutService) DeleteWorkout(userID, workoutID int64) error {
	res, err := s.db.Exec("DELETE FROM workouts WHERE id = ? AND user_id = ?", workoutID, userID)
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

func (s *WorkoutService) loadExercises(workoutID int64) ([]models.WorkoutExercise, error) {
	rows, err := s.db.Query(`
		SELECT we.id, we.exercise_id, e.name, we.sets, we.reps, COALESCE(we.weight, 0)
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ? ORDER BY we.id`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.WorkoutExercise{}
	for rows.Next() {
		var we models.WorkoutExercise
		if err := rows.Scan(&we.ID, &we.ExerciseID, &we.ExerciseName, &we.Sets, &we.Reps, &we.Weight); err != nil {
			return nil, err
		}
		exercises = append(exercises, we)
	}
	return exercises, rows.Err()
}

// scanWorkout scans a single row into a Workout struct.
func scanWorkout(scanner interface{ Scan(...interface{}) error }) (models.Workout, error) {
	var workout models.Workout
	var createdAt string
	err := scanner.Scan(&workout.ID, &workout.UserID, &workout.Title, &workout.Notes, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Workout{}, ErrNotFound
		}
		return models.Workout{}, err
	}
	if workout.CreatedAt, err = timeFromDB(createdAt); err != nil {
		return models.Workout{}, err
	}
	return workout, nil
}
