package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/osse101/onsenkatsu/internal/companion"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/metrics"
	"github.com/osse101/onsenkatsu/internal/places"
	"github.com/osse101/onsenkatsu/internal/screen"
	"github.com/osse101/onsenkatsu/internal/visit"
)

const timeLayout = "2006-01-02 15:04"

func header(w io.Writer, s screen.Screen) {
	fmt.Fprintf(w, "== %s ==\n", s)
}

func renderCompanion(w io.Writer, c domain.Companion) {
	p := companion.ProgressOf(c)
	fmt.Fprintf(w, "%s  Lv.%d\n", c.Name, p.Level)
	fmt.Fprintf(w, "  経験値  %d (次のレベルまで %d)\n", p.Exp, p.ExpToNextLevel)
	fmt.Fprintf(w, "  幸福度  %s %d/%d\n", bar(p.Happiness, domain.MaxHappiness, 20), p.Happiness, domain.MaxHappiness)
}

func renderHome(w io.Writer, c domain.Companion, equipped *domain.UserAccessory) {
	header(w, screen.Home)
	renderCompanion(w, c)
	if equipped != nil && equipped.Accessory != nil {
		fmt.Fprintf(w, "  装備    %s\n", equipped.Accessory.Name)
	} else {
		fmt.Fprintln(w, "  装備    なし")
	}
}

func renderPlaces(w io.Writer, list []domain.Place, maxDistance float64) {
	header(w, screen.LocationCheck)
	if len(list) == 0 {
		fmt.Fprintln(w, MsgNoOnsenNearby)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t名前\t距離\tplace_id")
	for i, p := range list {
		if i >= NearbyPlacesShown {
			break
		}
		mark := " "
		if p.DistanceMeters <= maxDistance {
			mark = "♨"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, p.Name, formatDistance(p.DistanceMeters), p.PlaceID)
	}
	_ = tw.Flush()
}

func renderNearest(w io.Writer, n *places.Nearest) {
	if n == nil {
		return
	}
	if n.CanBathe {
		fmt.Fprintf(w, "最寄りの温泉「%s」で入浴できます (%s)\n", n.Place.Name, formatDistance(n.Place.DistanceMeters))
		return
	}
	fmt.Fprintf(w, "最寄りの温泉「%s」まで %s\n", n.Place.Name, formatDistance(n.Place.DistanceMeters))
}

func renderTimer(w io.Writer, s *visit.Session, now time.Time) {
	header(w, screen.Timer)
	fmt.Fprintf(w, "%s  %s\n", s.PlaceName, visit.FormatElapsed(s.Elapsed(now)))
	fmt.Fprintf(w, "  開始 %s\n", s.StartedAt.Local().Format(timeLayout))
}

// renderStamps lists only quests completed by this visit
func renderStamps(w io.Writer, result domain.VisitResult) {
	header(w, screen.StampAcquisition)
	fresh := domain.NewCompletions(result.Completions)
	if len(fresh) == 0 {
		fmt.Fprintln(w, "新しいスタンプはありません")
		return
	}
	for _, c := range fresh {
		fmt.Fprintf(w, "スタンプ獲得! 「%s」\n", c.QuestName)
		switch {
		case c.Reward != nil && c.Reward.Granted:
			fmt.Fprintf(w, "  ごほうび: %s\n", c.Reward.Accessory.Name)
		case c.RewardError != "":
			fmt.Fprintln(w, "  ごほうびの付与に失敗しました")
		}
	}
}

func renderResult(w io.Writer, result domain.VisitResult, c *domain.Companion) {
	header(w, screen.Result)
	elapsed := time.Duration(result.Log.TotalMs) * time.Millisecond
	fmt.Fprintf(w, "%s に %s 入浴しました\n", result.Log.PlaceName, visit.FormatElapsed(elapsed))
	if c != nil {
		renderCompanion(w, *c)
	}
}

func renderQuests(w io.Writer, quests []domain.QuestWithProgress) {
	header(w, screen.StampRally)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tクエスト\t難易度\t進捗\t")
	for _, q := range quests {
		done := ""
		if q.IsCompleted {
			done = "達成"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%s\n", q.ID, q.Name, q.Difficulty, q.UserProgress, q.OnsenCount, done)
	}
	_ = tw.Flush()
}

func renderQuestDetail(w io.Writer, q domain.QuestWithProgress, onsens []domain.QuestOnsen) {
	header(w, screen.QuestDetail)
	fmt.Fprintf(w, "%s (%s)\n", q.Name, q.Difficulty)
	if q.IsCompleted {
		fmt.Fprintln(w, "  達成済み")
	}
	for _, o := range onsens {
		if o.Lat != nil && o.Lng != nil {
			fmt.Fprintf(w, "  - %s (%.5f, %.5f)\n", o.PlaceID, *o.Lat, *o.Lng)
			continue
		}
		fmt.Fprintf(w, "  - %s\n", o.PlaceID)
	}
}

func renderAccessories(w io.Writer, catalog []domain.Accessory, owned []domain.UserAccessory) {
	header(w, screen.Decoration)
	have := make(map[int64]domain.UserAccessory, len(owned))
	for _, ua := range owned {
		have[ua.AccessoryID] = ua
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range catalog {
		ua, ok := have[a.ID]
		state := "未所持"
		switch {
		case ok && ua.Equipped:
			state = "装備中"
		case ok:
			state = "所持"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", a.ID, a.Name, state)
	}
	_ = tw.Flush()
}

func renderVisits(w io.Writer, logs []domain.VisitLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "入浴記録はまだありません")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range logs {
		elapsed := time.Duration(l.TotalMs) * time.Millisecond
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.StartedAt.Local().Format(timeLayout), l.PlaceName, visit.FormatElapsed(elapsed))
	}
	_ = tw.Flush()
}

// debugView is everything the debug screen shows
type debugView struct {
	Companion *domain.Companion
	Cache     companion.CacheStats
	Samples   []metrics.Sample
	Journal   []event.JournalEntry
}

func renderDebug(w io.Writer, v debugView) {
	header(w, screen.Debug)
	if v.Companion != nil {
		c := v.Companion
		fmt.Fprintf(w, "companion id=%d name=%q exp=%d level=%d happiness=%d\n",
			c.ID, c.Name, c.Exp, c.Level(), c.Happiness)
	}
	fmt.Fprintf(w, "cache hits=%d misses=%d size=%d\n", v.Cache.Hits, v.Cache.Misses, v.Cache.Size)

	if len(v.Samples) > 0 {
		fmt.Fprintln(w, "-- metrics --")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, s := range v.Samples {
			fmt.Fprintf(tw, "%s\t%s\t%g\n", s.Name, s.Labels, s.Value)
		}
		_ = tw.Flush()
	}

	if len(v.Journal) > 0 {
		fmt.Fprintln(w, "-- events --")
		for _, e := range v.Journal {
			fmt.Fprintf(w, "%s  %s\n", e.Timestamp.Local().Format(time.RFC3339), e.Event.Type)
		}
	}
}

func formatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1fkm", meters/1000)
	}
	return fmt.Sprintf("%.0fm", meters)
}

func bar(value, max, width int) string {
	if max <= 0 {
		return ""
	}
	filled := value * width / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
