package models

// Exercise is a catalog entry describing a movement users can log.
// The catalog is seeded at startup; there is no user-facing creation endpoint.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MuscleGroup string `json:"muscle_group"`
}
