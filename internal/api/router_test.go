package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repfit/workout-tracker-be/internal/api"
	"github.com/repfit/workout-tracker-be/internal/auth"
	"github.com/repfit/workout-tracker-be/internal/database"
	"github.com/repfit/workout-tracker-be/internal/services"
)

// Seeded catalog ids, in insertion order: Push-Up, Squat, Jumping Jack, Plank.
const squatID = 2

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	t.Cleanup(func() { db.Close() })

	jwt := auth.NewJWT("test-secret")
	return api.NewRouter(
		jwt,
		[]string{"http://localhost:3000"},
		services.NewUserService(db),
		services.NewExerciseService(db),
		services.NewWorkoutService(db),
		services.NewScheduleService(db),
		services.NewReportService(db),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func signup(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": "pass123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func createWorkout(t *testing.T, router http.Handler, token string, payload interface{}) map[string]interface{} {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/workouts", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var workout map[string]interface{}
	decodeBody(t, rec, &workout)
	return workout
}

func legDayPayload() map[string]interface{} {
	return map[string]interface{}{
		"title": "Leg Day",
		"exercises": []map[string]interface{}{
			{"exercise_id": squatID, "sets": 4, "reps": 10, "weight": 135},
		},
	}
}

func TestSignup(t *testing.T) {
	router := newTestRouter(t)

	token := signup(t, router, "test@example.com")

	rec := doJSON(t, router, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, rec, &me)
	assert.Equal(t, "test@example.com", me.Email)
	assert.NotZero(t, me.ID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "test@example.com")

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "test@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "test@example.com")

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "test@example.com")

	wrongPass := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "nope",
	})
	unknown := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "pass123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/auth/me", "/workouts", "/exercises", "/reports/overview"} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestExerciseCatalog(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")

	rec := doJSON(t, router, http.MethodGet, "/exercises", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog []map[string]interface{}
	decodeBody(t, rec, &catalog)
	require.Len(t, catalog, 4)
	assert.Equal(t, "Jumping Jack", catalog[0]["name"], "ordered by name")
}

func TestCreateAndListWorkout(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")

	workout := createWorkout(t, router, token, legDayPayload())
	assert.Equal(t, "Leg Day", workout["title"])
	exercises := workout["exercises"].([]interface{})
	require.Len(t, exercises, 1)
	entry := exercises[0].(map[string]interface{})
	assert.Equal(t, "Squat", entry["exercise_name"])
	assert.Equal(t, 135.0, entry["weight"])

	rec := doJSON(t, router, http.MethodGet, "/workouts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, workout["id"], list[0]["id"])

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/workouts/%v", workout["id"]), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateWorkout_Validation(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")

	rec := doJSON(t, router, http.MethodPost, "/workouts", token, map[string]interface{}{
		"exercises": []map[string]interface{}{{"exercise_id": squatID, "sets": 3, "reps": 8}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing title")

	rec = doJSON(t, router, http.MethodPost, "/workouts", token, map[string]interface{}{
		"title": "Empty", "exercises": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty exercises")
}

func TestUpdateWorkout_ReplacesExercises(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	workout := createWorkout(t, router, token, legDayPayload())

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/workouts/%v", workout["id"]), token, map[string]interface{}{
		"exercises": []map[string]interface{}{
			{"exercise_id": 4, "sets": 3, "reps": 1},
			{"exercise_id": 1, "sets": 3, "reps": 15},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated map[string]interface{}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Leg Day", updated["title"], "title untouched")
	assert.Len(t, updated["exercises"].([]interface{}), 2)
}

func TestDeleteWorkout(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	workout := createWorkout(t, router, token, legDayPayload())

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/workouts/%v", workout["id"]), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/workouts/%v", workout["id"]), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkoutOwnershipIsolation(t *testing.T) {
	router := newTestRouter(t)
	tokenA := signup(t, router, "a@example.com")
	tokenB := signup(t, router, "b@example.com")
	workout := createWorkout(t, router, tokenA, legDayPayload())
	path := fmt.Sprintf("/workouts/%v", workout["id"])

	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, path, tokenB, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodPut, path, tokenB,
		map[string]interface{}{"title": "stolen"}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodDelete, path, tokenB, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodPost, path+"/schedule", tokenB,
		map[string]string{"scheduled_at": "2030-01-01T10:00:00Z"}).Code)

	// Untouched for the owner.
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, path, tokenA, nil).Code)
}

func TestScheduleLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	workout := createWorkout(t, router, token, legDayPayload())
	base := fmt.Sprintf("/workouts/%v/schedule", workout["id"])

	rec := doJSON(t, router, http.MethodPost, base, token, map[string]string{
		"scheduled_at": "2030-01-15T07:30:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var schedule struct {
		ID          int64     `json:"id"`
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	decodeBody(t, rec, &schedule)
	assert.NotZero(t, schedule.ID)

	rec = doJSON(t, router, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var schedules []map[string]interface{}
	decodeBody(t, rec, &schedules)
	require.Len(t, schedules, 1)

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("%s/%d", base, schedule.ID), token, map[string]string{
		"scheduled_at": "2030-02-01T18:00:00",
	})
	assert.Equal(t, http.StatusOK, rec.Code, "zoneless ISO datetime accepted")

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", base, schedule.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", base, schedule.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchedule_Validation(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	workout := createWorkout(t, router, token, legDayPayload())
	base := fmt.Sprintf("/workouts/%v/schedule", workout["id"])

	rec := doJSON(t, router, http.MethodPost, base, token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing scheduled_at")

	rec = doJSON(t, router, http.MethodPost, base, token, map[string]string{"scheduled_at": "next tuesday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unparseable scheduled_at")
}

func TestReportOverview(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	createWorkout(t, router, token, legDayPayload())

	rec := doJSON(t, router, http.MethodGet, "/reports/overview", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Totals struct {
			Workouts int     `json:"workouts"`
			Sets     int     `json:"sets"`
			Reps     int     `json:"reps"`
			Volume   float64 `json:"volume"`
		} `json:"totals"`
		TopWeightByExercise []struct {
			Exercise  string  `json:"exercise"`
			MaxWeight float64 `json:"max_weight"`
		} `json:"top_weight_by_exercise"`
	}
	decodeBody(t, rec, &report)

	assert.Equal(t, 1, report.Totals.Workouts)
	assert.Equal(t, 4, report.Totals.Sets)
	assert.Equal(t, 10, report.Totals.Reps)
	assert.Equal(t, 5400.0, report.Totals.Volume)
	require.Len(t, report.TopWeightByExercise, 1)
	assert.Equal(t, "Squat", report.TopWeightByExercise[0].Exercise)
}

func TestReportWeekly(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	createWorkout(t, router, token, legDayPayload())
	createWorkout(t, router, token, legDayPayload())

	rec := doJSON(t, router, http.MethodGet, "/reports/weekly?weeks=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var counts []struct {
		Week  string `json:"week"`
		Count int    `json:"count"`
	}
	decodeBody(t, rec, &counts)
	require.Len(t, counts, 1)
	assert.Equal(t, 2, counts[0].Count)

	// Out-of-range values are clamped, not rejected.
	rec = doJSON(t, router, http.MethodGet, "/reports/weekly?weeks=9999", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportExerciseProgress(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	createWorkout(t, router, token, legDayPayload())

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/reports/exercise/%d/progress?days=7", squatID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		ExerciseID   int64   `json:"exercise_id"`
		ExerciseName *string `json:"exercise_name"`
		WindowDays   int     `json:"window_days"`
		Series       []struct {
			Day        string  `json:"day"`
			BestWeight float64 `json:"best_weight"`
			Volume     float64 `json:"volume"`
		} `json:"series"`
	}
	decodeBody(t, rec, &report)

	require.NotNil(t, report.ExerciseName)
	assert.Equal(t, "Squat", *report.ExerciseName)
	assert.Equal(t, 7, report.WindowDays)
	require.Len(t, report.Series, 1)
	assert.Equal(t, 135.0, report.Series[0].BestWeight)
	assert.Equal(t, 5400.0, report.Series[0].Volume)
}

func TestReportUpcoming(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "test@example.com")
	workout := createWorkout(t, router, token, legDayPayload())
	base := fmt.Sprintf("/workouts/%v/schedule", workout["id"])

	future := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	past := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	require.Equal(t, http.StatusCreated,
		doJSON(t, router, http.MethodPost, base, token, map[string]string{"scheduled_at": future}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, router, http.MethodPost, base, token, map[string]string{"scheduled_at": past}).Code)

	rec := doJSON(t, router, http.MethodGet, "/reports/upcoming", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var upcoming []struct {
		ID          int64  `json:"id"`
		WorkoutID   int64  `json:"workout_id"`
		Title       string `json:"title"`
		ScheduledAt string `json:"scheduled_at"`
	}
	decodeBody(t, rec, &upcoming)
	require.Len(t, upcoming, 1, "only future schedules")
	assert.Equal(t, "Leg Day", upcoming[0].Title)
}
