package services

import (
	"database/sql"

	"github.com/repfit/workout-tracker-be/internal/models"
)

// ExerciseServiceProvider defines the interface for the exercise catalog.
type ExerciseServiceProvider interface {
	ListExercises() ([]models.Exercise, error)
}

// ExerciseService exposes the read-only exercise catalog.
type ExerciseService struct {
	db *sql.DB
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(db *sql.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

// ListExercises returns the full catalog ordered by name.
func (s *ExerciseService) ListExercises() ([]models.Exercise, error) {
	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(description, ''), COALESCE(category, ''), COALESCE(muscle_group, '')
		FROM exercises ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Description, &ex.Category, &ex.MuscleGroup); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}
