package companion

import (
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Level returns the level for a total experience value:
// level = floor(sqrt(exp / 100)) + 1
func Level(exp int) int {
	return domain.LevelForExp(exp)
}

// ExpForLevel returns the total experience at which level begins
func ExpForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * int(domain.ExpPerLevelUnit)
}

// ExpToNextLevel returns how much more experience is needed to reach the next level.
// The result is always positive.
func ExpToNextLevel(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return ExpForLevel(Level(exp)+1) - exp
}

// ElapsedMinutes returns the whole minutes contained in elapsed.
func ElapsedMinutes(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}

// SessionExp returns the experience earned by a bathing session: floor(minutes * 2),
// where minutes are the whole minutes elapsed.
func SessionExp(elapsed time.Duration) int {
	return ElapsedMinutes(elapsed) * domain.ExpPerMinute
}

// ApplySession returns c with one bathing session applied: experience grows by
// SessionExp and happiness by HappinessPerSession, capped at MaxHappiness.
func ApplySession(c domain.Companion, elapsed time.Duration) domain.Companion {
	c.Exp += SessionExp(elapsed)
	c.Happiness = domain.ClampHappiness(c.Happiness + domain.HappinessPerSession)
	return c
}

// Progress summarises a companion's level state for display
type Progress struct {
	Level          int
	Exp            int
	ExpToNextLevel int
	Happiness      int
}

// ProgressOf computes the display progress for c
func ProgressOf(c domain.Companion) Progress {
	return Progress{
		Level:          Level(c.Exp),
		Exp:            c.Exp,
		ExpToNextLevel: ExpToNextLevel(c.Exp),
		Happiness:      c.Happiness,
	}
}
