package quest

import (
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// questNames adapts a quest list to fuzzy.Source
type questNames []domain.QuestWithProgress

func (q questNames) String(i int) string { return norm.NFKC.String(q[i].Name) }
func (q questNames) Len() int            { return len(q) }

// FilterByName returns the quests whose names fuzzy-match pattern, best match first.
// Names and pattern are NFKC-normalised so full-width and half-width input match.
// An empty pattern returns quests unchanged.
func FilterByName(quests []domain.QuestWithProgress, pattern string) []domain.QuestWithProgress {
	if pattern == "" {
		return quests
	}

	matches := fuzzy.FindFrom(norm.NFKC.String(pattern), questNames(quests))
	out := make([]domain.QuestWithProgress, 0, len(matches))
	for _, m := range matches {
		out = append(out, quests[m.Index])
	}
	return out
}
