package models

import "time"

// Workout is a logged training session owned by one user, together with the
// exercise performances recorded in it.
type Workout struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"-"`
	Title     string            `json:"title"`
	Notes     string            `json:"notes"`
	CreatedAt time.Time         `json:"created_at"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutExercise is one performed exercise inside a workout. ExerciseName is
// denormalized from the catalog when the row is read.
type WorkoutExercise struct {
	ID           int64   `json:"id"`
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
}
