package services

import (
	"database/sql"
	"time"
)

// OverviewTotals are lifetime aggregates over a user's workout data.
// Volume is sets*reps*weight summed across entries, missing weights count
// as zero.
type OverviewTotals struct {
	Workouts int     `json:"workouts"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Volume   float64 `json:"volume"`
}

// ExerciseMax is the heaviest weight ever recorded for one exercise.
type ExerciseMax struct {
	Exercise  string  `json:"exercise"`
	MaxWeight float64 `json:"max_weight"`
}

// OverviewReport is the response of the overview endpoint.
type OverviewReport struct {
	Totals              OverviewTotals `json:"totals"`
	TopWeightByExercise []ExerciseMax  `json:"top_weight_by_exercise"`
}

// WeeklyCount is the number of workouts logged in one year-week.
type WeeklyCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// ProgressPoint is one day of history for a single exercise.
type ProgressPoint struct {
	Day        string  `json:"day"`
	BestWeight float64 `json:"best_weight"`
	Volume     float64 `json:"volume"`
}

// ProgressReport is a per-day time series for one exercise over a trailing
// window. ExerciseName is nil when the catalog entry no longer exists.
type ProgressReport struct {
	ExerciseID   int64           `json:"exercise_id"`
	ExerciseName *string         `json:"exercise_name"`
	WindowDays   int             `json:"window_days"`
	Series       []ProgressPoint `json:"series"`
}

// UpcomingWorkout is a future schedule annotated with its workout's title.
type UpcomingWorkout struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"workout_id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// ReportServiceProvider defines the interface for read-only reporting.
type ReportServiceProvider interface {
	Overview(userID int64) (OverviewReport, error)
	Weekly(userID int64, weeks int) ([]WeeklyCount, error)
	ExerciseProgress(userID, exerciseID int64, days int) (ProgressReport, error)
	Upcoming(userID int64) ([]UpcomingWorkout, error)
}

// ReportService runs aggregation queries over the workout data.
type ReportService struct {
	db *sql.DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *sql.DB) *ReportService {
	return &ReportService{db: db}
}

// Overview computes lifetime totals plus the max weight per exercise name,
// sorted alphabetically.
func (s *ReportService) Overview(userID int64) (OverviewReport, error) {
	report := OverviewReport{TopWeightByExercise: []ExerciseMax{}}

	err := s.db.QueryRow(
		"SELECT COUNT(id) FROM workouts WHERE user_id = ?", userID,
	).Scan(&report.Totals.Workouts)
	if err != nil {
		return OverviewReport{}, err
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(we.sets), 0),
		       COALESCE(SUM(we.reps), 0),
		       COALESCE(SUM(we.sets * we.reps * COALESCE(we.weight, 0)), 0.0)
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id = ?`, userID,
	).Scan(&report.Totals.Sets, &report.Totals.Reps, &report.Totals.Volume)
	if err != nil {
		return OverviewReport{}, err
	}

	rows, err := s.db.Query(`
		SELECT e.name, COALESCE(MAX(we.weight), 0.0)
		FROM exercises e
		JOIN workout_exercises we ON e.id = we.exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id = ?
		GROUP BY e.name ORDER BY e.name`, userID)
	if err != nil {
		return OverviewReport{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var em ExerciseMax
		if err := rows.Scan(&em.Exercise, &em.MaxWeight); err != nil {
			return OverviewReport{}, err
		}
		report.TopWeightByExercise = append(report.TopWeightByExercise, em)
	}
	return report, rows.Err()
}

// Weekly counts workouts grouped by year-week, chronologically ordered and
// truncated to the most recent `weeks` entries.
func (s *ReportService) Weekly(userID int64, weeks int) ([]WeeklyCount, error) {
	rows, err := s.db.Query(`
		SELECT strftime('%Y-%W', created_at) AS week, COUNT(id)
		FROM workouts WHERE user_id = ?
		GROUP BY week ORDER BY week`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []WeeklyCount{}
	for rows.Next() {
		var wc WeeklyCount
		if err := rows.Scan(&wc.Week, &wc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(counts) > weeks {
		counts = counts[len(counts)-weeks:]
	}
	return counts, nil
}

// ExerciseProgress builds a per-day series of best weight and total volume
// for one exercise within the trailing window.
func (s *ReportService) ExerciseProgress(userID, exerciseID int64, days int) (ProgressReport, error) {
	report := ProgressReport{
		ExerciseID: exerciseID,
		WindowDays: days,
		Series:     []ProgressPoint{},
	}

	var name string
	err := s.db.QueryRow("SELECT name FROM exercises WHERE id = ?", exerciseID).Scan(&name)
	if err == nil {
		report.ExerciseName = &name
	} else if err != sql.ErrNoRows {
		return ProgressReport{}, err
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(`
		SELECT strftime('%Y-%m-%d', w.created_at) AS day,
		       COALESCE(MAX(we.weight), 0.0),
		       COALESCE(SUM(we.sets * we.reps * COALESCE(we.weight, 0)), 0.0)
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id = ? AND we.exercise_id = ? AND w.created_at >= ?
		GROUP BY day ORDER BY day`, userID, exerciseID, timeToDB(since))
	if err != nil {
		return ProgressReport{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProgressPoint
		if err := rows.Scan(&p.Day, &p.BestWeight, &p.Volume); err != nil {
			return ProgressReport{}, err
		}
		report.Series = append(report.Series, p)
	}
	return report, rows.Err()
}

// Upcoming lists future-dated schedules owned by the user, soonest first.
func (s *ReportService) Upcoming(userID int64) ([]UpcomingWorkout, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.workout_id, s.scheduled_at, w.title
		FROM scheduled_workouts s
		JOIN workouts w ON w.id = s.workout_id
		WHERE w.user_id = ? AND s.scheduled_at >= ?
		ORDER BY s.scheduled_at ASC`, userID, timeToDB(time.Now()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	upcoming := []UpcomingWorkout{}
	for rows.Next() {
		var u UpcomingWorkout
		var scheduledAt string
		if err := rows.Scan(&u.ID, &u.WorkoutID, &scheduledAt, &u.Title); err != nil {
			return nil, err
		}
		if u.ScheduledAt, err = timeFromDB(scheduledAt); err != nil {
			return nil, err
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, rows.Err()
}
