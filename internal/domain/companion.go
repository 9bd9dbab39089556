package domain

import (
	"math"
	"time"
)

// Companion is the user's virtual partner ("user_partner" row).
// Level is derived from Exp and never stored.
type Companion struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	PartnerID *int64    `json:"partner_id,omitempty"`
	Name      string    `json:"name"`
	Exp       int       `json:"exp"`
	Happiness int       `json:"happiness"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanionUpdate carries the fields to change; nil fields are left alone.
type CompanionUpdate struct {
	Name      *string
	Exp       *int
	Happiness *int
}

// IsEmpty reports whether the update changes nothing.
func (u CompanionUpdate) IsEmpty() bool {
	return u.Name == nil && u.Exp == nil && u.Happiness == nil
}

// Level returns the companion level for its current experience.
func (c Companion) Level() int {
	return LevelForExp(c.Exp)
}

// LevelForExp implements level = floor(sqrt(exp / 100)) + 1.
// Negative experience is treated as zero.
func LevelForExp(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return int(math.Floor(math.Sqrt(float64(exp)/ExpPerLevelUnit))) + 1
}

// ClampHappiness bounds a happiness value to 0..MaxHappiness.
func ClampHappiness(h int) int {
	if h < 0 {
		return 0
	}
	if h > MaxHappiness {
		return MaxHappiness
	}
	return h
}
