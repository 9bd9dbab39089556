package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/accessory"
	"github.com/osse101/onsenkatsu/internal/app"
	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/companion"
	"github.com/osse101/onsenkatsu/internal/config"
	"github.com/osse101/onsenkatsu/internal/database"
	"github.com/osse101/onsenkatsu/internal/database/postgres"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/places"
	"github.com/osse101/onsenkatsu/internal/profile"
	"github.com/osse101/onsenkatsu/internal/quest"
	"github.com/osse101/onsenkatsu/internal/visit"
)

// Components holds everything one CLI invocation wires together
type Components struct {
	Pool     *pgxpool.Pool
	Store    *postgres.Store
	Bus      event.Bus
	Journal  *event.Journal
	Auth     *auth.Manager
	Services app.Services
}

// InitializeServices connects to the backend and builds every service over
// the shared pool, bus and auth session.
func InitializeServices(ctx context.Context, cfg *config.Config, bus event.Bus) (*Components, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrAuthRequired, ErrMsgMissingAuthSettings)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataAccess, ErrMsgFailedConnectDB, err)
	}
	store := postgres.NewStore(pool)

	authClient := auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	manager := auth.NewManager(authClient, auth.NewFileStore(cfg.SessionPath()), cfg.SupabaseJWTSecret)

	finder, err := newPlaceFinder(cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	accessories := accessory.NewService(store.Accessories, manager, bus)
	quests := quest.NewService(store.Quests, manager, accessories, bus)

	return &Components{
		Pool:  pool,
		Store: store,
		Bus:   bus,
		Auth:  manager,
		Services: app.Services{
			Auth:      manager,
			OAuth:     authClient,
			Profile:   profile.NewService(store.Profiles, manager),
			Companion: companion.NewService(store.Companions, manager, bus, companion.WithCache(companion.DefaultCacheSize, cfg.CompanionCacheTTL)),
			Accessory: accessories,
			Quest:     quests,
			Visit:     visit.NewService(store.Visits, manager, quests, bus),
			Places:    finder,
		},
	}, nil
}

func newPlaceFinder(cfg *config.Config) (app.PlaceFinder, error) {
	if cfg.GoogleMapsAPIKey == "" {
		slog.Warn(LogMsgPlacesDisabled)
		return unavailableFinder{maxDistance: cfg.MaxOnsenDistanceMeters}, nil
	}
	client, err := places.NewClient(cfg.GoogleMapsAPIKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreatePlaces, err)
	}
	return places.NewFinder(client, cfg.SearchRadiusMeters, cfg.MaxOnsenDistanceMeters), nil
}

// unavailableFinder lets every other screen work when no Places key is configured
type unavailableFinder struct {
	maxDistance float64
}

func (u unavailableFinder) Nearby(context.Context, domain.Point) ([]domain.Place, error) {
	return nil, fmt.Errorf("%w: %w", domain.ErrDataAccess, errors.New(ErrMsgMissingPlacesKey))
}

func (u unavailableFinder) NearestOnsen(ctx context.Context, origin domain.Point) (*places.Nearest, error) {
	_, err := u.Nearby(ctx, origin)
	return nil, err
}

func (u unavailableFinder) MaxDistance() float64 {
	return u.maxDistance
}

// Close releases what InitializeServices and InitializeEventSystem opened
func (c *Components) Close() {
	slog.Debug(LogMsgShuttingDown)
	if c.Journal != nil {
		if err := c.Journal.Close(); err != nil {
			slog.Error(LogMsgJournalCloseFailed, "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
		slog.Debug(LogMsgDatabasePoolClosed)
	}
}
