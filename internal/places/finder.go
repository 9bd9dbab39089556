package places

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"googlemaps.github.io/maps"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/geo"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/metrics"
)

const (
	// DefaultLanguage asks the provider for Japanese names
	DefaultLanguage = "ja"

	// DefaultTimeout bounds one search round trip
	DefaultTimeout = 10 * time.Second
)

// Searcher is the part of the maps client the finder uses
type Searcher interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// Finder looks up onsens around the user
type Finder struct {
	searcher    Searcher
	radius      uint
	maxDistance float64
}

// Nearest is the closest onsen and whether the user may start bathing there
type Nearest struct {
	Place    domain.Place
	CanBathe bool
}

// NewClient builds an instrumented maps client. Extra options (a test base
// URL, say) are applied last.
func NewClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	base := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: DefaultTimeout, Transport: metrics.NewTransport(nil)}),
	}
	c, err := maps.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return c, nil
}

// NewFinder creates a finder searching within radius meters and allowing a
// session within maxDistance meters.
func NewFinder(searcher Searcher, radius int, maxDistance float64) *Finder {
	if radius <= 0 {
		radius = domain.DefaultSearchRadiusMeters
	}
	if maxDistance <= 0 {
		maxDistance = domain.DefaultMaxOnsenDistanceMeters
	}
	return &Finder{searcher: searcher, radius: uint(radius), maxDistance: maxDistance}
}

// MaxDistance is the bathing threshold in meters
func (f *Finder) MaxDistance() float64 {
	return f.maxDistance
}

// Nearby returns onsens around origin, closest first
func (f *Finder) Nearby(ctx context.Context, origin domain.Point) (places []domain.Place, err error) {
	defer metrics.ObserveBackend(metrics.ComponentPlaces, "nearby_search", time.Now(), &err)

	resp, err := f.searcher.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: origin.Lat, Lng: origin.Lng},
		Radius:   f.radius,
		Keyword:  domain.OnsenSearchKeyword,
		Language: DefaultLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: nearby search: %w", domain.ErrDataAccess, err)
	}

	seen := make(map[string]bool, len(resp.Results))
	places = make([]domain.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.PlaceID == "" || seen[r.PlaceID] {
			continue
		}
		seen[r.PlaceID] = true

		loc := domain.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
		places = append(places, domain.Place{
			PlaceID:        r.PlaceID,
			Name:           NormalizeName(r.Name),
			Vicinity:       NormalizeName(r.Vicinity),
			Location:       loc,
			DistanceMeters: geo.Distance(origin, loc),
		})
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceMeters < places[j].DistanceMeters
	})

	logger.FromContext(ctx).Debug("Nearby onsens found", "count", len(places), "radius", f.radius)
	return places, nil
}

// NearestOnsen returns the closest onsen, or nil when none is in range of the search
func (f *Finder) NearestOnsen(ctx context.Context, origin domain.Point) (*Nearest, error) {
	places, err := f.Nearby(ctx, origin)
	if err != nil {
		return nil, err
	}
	return NearestOf(origin, places, f.maxDistance), nil
}

// NearestOf picks the onsen closest to origin. The list need not be sorted.
func NearestOf(origin domain.Point, places []domain.Place, maxDistance float64) *Nearest {
	locations := make([]domain.Point, len(places))
	for i, p := range places {
		locations[i] = p.Location
	}
	i, d := geo.Nearest(origin, locations)
	if i < 0 {
		return nil
	}
	closest := places[i]
	closest.DistanceMeters = d
	return &Nearest{
		Place:    closest,
		CanBathe: geo.WithinRange(origin, closest.Location, maxDistance),
	}
}

// NormalizeName folds full-width ASCII and other compatibility forms so names
// compare and display consistently.
func NormalizeName(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
