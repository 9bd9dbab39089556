package quest

import "github.com/osse101/onsenkatsu/internal/domain"

// DifficultyFor derives the display difficulty from the quest id
func DifficultyFor(questID int64) domain.Difficulty {
	switch {
	case questID <= domain.BeginnerMaxQuestID:
		return domain.DifficultyBeginner
	case questID <= domain.IntermediateMaxQuestID:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyAdvanced
	}
}
