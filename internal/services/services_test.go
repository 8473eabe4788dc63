package services_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repfit/workout-tracker-be/internal/database"
	"github.com/repfit/workout-tracker-be/internal/models"
	"github.com/repfit/workout-tracker-be/internal/services"
)

// Seeded catalog ids, in insertion order.
const (
	exPushUp      = int64(1)
	exSquat       = int64(2)
	exJumpingJack = int64(3)
	exPlank       = int64(4)
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) models.User {
	t.Helper()
	user, err := services.NewUserService(db).CreateUser(email, "pass123")
	require.NoError(t, err)
	return user
}

func floatPtr(f float64) *float64 { return &f }

func createTestWorkout(t *testing.T, db *sql.DB, userID int64, title string) models.Workout {
	t.Helper()
	workout, err := services.NewWorkoutService(db).CreateWorkout(userID, services.CreateWorkoutInput{
		Title: title,
		Exercises: []services.WorkoutExerciseInput{
			{ExerciseID: exSquat, Sets: 4, Reps: 10, Weight: floatPtr(135)},
		},
	})
	require.NoError(t, err)
	return workout
}
