package visit

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/geo"
)

// Session is an in-progress bathing session. It is client state only and is
// persisted between CLI invocations; nothing reaches the backend until Finish.
type Session struct {
	PlaceID   string       `json:"place_id"`
	PlaceName string       `json:"place_name"`
	Location  domain.Point `json:"location"`
	StartedAt time.Time    `json:"started_at"`
}

// StartSession begins a session at place when the user stands within
// maxMeters of it.
func StartSession(place domain.Place, user domain.Point, maxMeters float64, now time.Time) (*Session, error) {
	if strings.TrimSpace(place.PlaceID) == "" {
		return nil, fmt.Errorf("%w: place id is required", domain.ErrInvalidInput)
	}
	if !geo.WithinRange(user, place.Location, maxMeters) {
		return nil, fmt.Errorf("%w: %.0fm away, must be within %.0fm",
			domain.ErrTooFarFromOnsen, geo.Distance(user, place.Location), maxMeters)
	}
	return &Session{
		PlaceID:   place.PlaceID,
		PlaceName: place.Name,
		Location:  place.Location,
		StartedAt: now,
	}, nil
}

// Elapsed is the time spent so far; a clock running backwards reads as zero.
func (s *Session) Elapsed(now time.Time) time.Duration {
	d := now.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Place rebuilds the place the session was started at
func (s *Session) Place() domain.Place {
	return domain.Place{PlaceID: s.PlaceID, Name: s.PlaceName, Location: s.Location}
}

// Finish closes the session and returns the log to write
func (s *Session) Finish(now time.Time) domain.NewVisitLog {
	ended := now
	if ended.Before(s.StartedAt) {
		ended = s.StartedAt
	}
	lat, lng := s.Location.Lat, s.Location.Lng
	return domain.NewVisitLog{
		TotalMs:   ended.Sub(s.StartedAt).Milliseconds(),
		StartedAt: s.StartedAt,
		EndedAt:   ended,
		PlaceName: s.PlaceName,
		PlaceID:   s.PlaceID,
		Lat:       &lat,
		Lng:       &lng,
	}
}

// FormatElapsed renders a duration as MM:SS. Minutes keep counting past 99.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
