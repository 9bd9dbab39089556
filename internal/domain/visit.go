package domain

import "time"

// VisitLog is one completed bathing session ("nyuyoku_log" row). Append only.
type VisitLog struct {
	UserID    string    `json:"user_id"`
	TotalMs   int64     `json:"total_ms"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	PlaceName string    `json:"onsen_name"`
	PlaceID   string    `json:"place_id"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVisitLog is the caller-supplied part of a visit log; the user id is stamped by the writer.
type NewVisitLog struct {
	TotalMs   int64     `json:"total_ms" validate:"gte=0"`
	StartedAt time.Time `json:"started_at" validate:"required"`
	EndedAt   time.Time `json:"ended_at" validate:"required,gtefield=StartedAt"`
	PlaceName string    `json:"onsen_name" validate:"max=200"`
	PlaceID   string    `json:"place_id" validate:"required,notblank,max=300"`
	Lat       *float64  `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng       *float64  `json:"lng,omitempty" validate:"omitempty,longitude"`
}

// VisitResult is the persisted row plus whatever quest evaluation produced.
type VisitResult struct {
	Log         VisitLog                `json:"log"`
	Completions []QuestCompletionResult `json:"completions"`
}
