package models

import "time"

// ScheduledWorkout marks a future time at which a workout is planned to occur.
type ScheduledWorkout struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"-"`
	ScheduledAt time.Time `json:"scheduled_at"`
}
