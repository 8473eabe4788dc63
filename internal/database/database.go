package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool. The pragmas ride on the DSN so
// they apply to every pooled connection, not just the first.
func New(dataSourceName string) (*sql.DB, error) {
	dsn := dataSourceName + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// Datetime columns hold RFC3339 UTC strings so SQLite's date functions
// can operate on them directly.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		category TEXT,
		muscle_group TEXT
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises(id),
		sets INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight REAL
	);

	CREATE TABLE IF NOT EXISTS scheduled_workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		scheduled_at DATETIME NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// defaultExercises is the seed catalog. Exercises have no user-facing
// creation endpoint, so seeding is the only way rows get into the table.
var defaultExercises = []struct {
	name        string
	description string
	category    string
	muscleGroup string
}{
	{"Push-Up", "Start in a plank, lower chest to floor, then press back up.", "strength", "chest"},
	{"Squat", "Stand feet shoulder-width, bend knees and hips to lower down, then stand up.", "strength", "legs"},
	{"Jumping Jack", "Jump feet out while lifting arms overhead, then return.", "cardio", "full body"},
	{"Plank", "Hold a straight-body position on elbows and toes.", "flexibility", "core"},
}

// Seed inserts the default exercise catalog, skipping names that already
// exist. Safe to run on every startup.
func Seed(db *sql.DB) error {
	stmt, err := db.Prepare(`
		INSERT INTO exercises (name, description, category, muscle_group)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM exercises WHERE name = ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ex := range defaultExercises {
		if _, err := stmt.Exec(ex.name, ex.description, ex.category, ex.muscleGroup, ex.name); err != nil {
			return err
		}
	}
	return nil
}
