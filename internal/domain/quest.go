package domain

import "time"

// Difficulty is the display difficulty derived from the quest id.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "初級"
	DifficultyIntermediate Difficulty = "中級"
	DifficultyAdvanced     Difficulty = "上級"
)

// Quest is a named objective satisfied by visiting any one of its onsens.
type Quest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestOnsen pins one real-world place as a qualifying location for a quest.
// QuestID is nil for orphaned rows; callers treat that as a data anomaly.
type QuestOnsen struct {
	ID        int64     `json:"id"`
	QuestID   *int64    `json:"quest_id,omitempty"`
	PlaceID   string    `json:"place_id"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestSubmission records that a user completed a quest. At most one per pair.
type QuestSubmission struct {
	UserID    string    `json:"user_id"`
	QuestID   int64     `json:"quest_id"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestWithProgress is a quest enriched with the calling user's progress.
type QuestWithProgress struct {
	Quest
	Difficulty   Difficulty `json:"difficulty"`
	OnsenCount   int        `json:"onsen_count"`
	UserProgress int        `json:"user_progress"`
	IsCompleted  bool       `json:"is_completed"`
}

// QuestCompletionResult is the per-quest outcome of evaluating a visit.
type QuestCompletionResult struct {
	QuestID             int64                 `json:"quest_id"`
	QuestName           string                `json:"quest_name"`
	WasAlreadyCompleted bool                  `json:"was_already_completed"`
	Reward              *AccessoryGrantResult `json:"reward,omitempty"`
	RewardError         string                `json:"reward_error,omitempty"`
}

// NewCompletions filters out quests that were already completed before the call.
func NewCompletions(results []QuestCompletionResult) []QuestCompletionResult {
	var out []QuestCompletionResult
	for _, r := range results {
		if !r.WasAlreadyCompleted {
			out = append(out, r)
		}
	}
	return out
}
