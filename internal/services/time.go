package services

import "time"

// Datetime columns hold RFC3339 UTC strings (see database.Migrate), which
// keeps them usable by SQLite's strftime and comparison operators.

func timeToDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func timeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
