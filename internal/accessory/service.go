package accessory

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// Service manages the accessory catalog, ownership and the equipped slot
type Service interface {
	Catalog(ctx context.Context) ([]domain.Accessory, error)
	Owned(ctx context.Context) ([]domain.UserAccessory, error)

	// SelectRandomAccessory picks uniformly among catalog entries the user does not
	// own yet, or among the whole catalog when everything is owned.
	SelectRandomAccessory(ctx context.Context) (*domain.Accessory, error)
	// GrantRandomAccessory selects and grants. Granted is false when the pick was
	// already owned; that is not an error.
	GrantRandomAccessory(ctx context.Context) (*domain.AccessoryGrantResult, error)
	GrantAccessory(ctx context.Context, accessoryID int64) (*domain.AccessoryGrantResult, error)

	Equip(ctx context.Context, accessoryID int64) (*domain.UserAccessory, error)
	Unequip(ctx context.Context) error
	// Equipped returns nil, nil when nothing is equipped
	Equipped(ctx context.Context) (*domain.UserAccessory, error)
}

// Option configures the service
type Option func(*service)

// WithRand injects the random source used for selection
func WithRand(rng *rand.Rand) Option {
	return func(s *service) { s.rng = rng }
}

type service struct {
	repo     repository.Accessory
	identity auth.Identity
	bus      event.Bus

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates the accessory service. bus may be nil.
func NewService(repo repository.Accessory, identity auth.Identity, bus event.Bus, opts ...Option) Service {
	s := &service{
		repo:     repo,
		identity: identity,
		bus:      bus,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // cosmetic reward pick
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Catalog(ctx context.Context) ([]domain.Accessory, error) {
	catalog, err := s.repo.GetAllAccessories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accessory catalog: %w", err)
	}
	return catalog, nil
}

func (s *service) Owned(ctx context.Context) ([]domain.UserAccessory, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	owned, err := s.repo.GetUserAccessories(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned accessories: %w", err)
	}
	return owned, nil
}

func (s *service) SelectRandomAccessory(ctx context.Context) (*domain.Accessory, error) {
	user, _ := s.identity.CurrentUser(ctx)
	return s.selectFor(ctx, user)
}

// selectFor runs the selection for user, who may be nil when signed out
func (s *service) selectFor(ctx context.Context, user *domain.User) (*domain.Accessory, error) {
	log := logger.FromContext(ctx)

	catalog, err := s.repo.GetAllAccessories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accessory catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataAccess, domain.ErrEmptyCatalog)
	}

	owned := make(map[int64]bool)
	if user == nil {
		log.Warn(LogMsgOwnedLookupFailed, "error", domain.ErrAuthRequired)
	} else if rows, err := s.repo.GetUserAccessories(ctx, user.ID); err != nil {
		log.Warn(LogMsgOwnedLookupFailed, "user_id", user.ID, "error", err)
	} else {
		for _, ua := range rows {
			owned[ua.AccessoryID] = true
		}
	}

	candidates := make([]domain.Accessory, 0, len(catalog))
	for _, a := range catalog {
		if !owned[a.ID] {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		log.Debug(LogMsgAllOwned, "catalog_size", len(catalog))
		candidates = catalog
	}

	s.rngMu.Lock()
	pick := candidates[s.rng.Intn(len(candidates))]
	s.rngMu.Unlock()

	return &pick, nil
}

func (s *service) GrantRandomAccessory(ctx context.Context) (*domain.AccessoryGrantResult, error) {
	user, authErr := s.identity.CurrentUser(ctx)
	if authErr != nil {
		user = nil
	}

	picked, err := s.selectFor(ctx, user)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authErr
	}
	return s.grant(ctx, user, *picked, event.SourceRandom)
}

func (s *service) GrantAccessory(ctx context.Context, accessoryID int64) (*domain.AccessoryGrantResult, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := s.repo.GetAccessoryByID(ctx, accessoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accessory: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("%w: accessory %d does not exist", domain.ErrInvalidInput, accessoryID)
	}

	return s.grant(ctx, user, *acc, event.SourceManual)
}

func (s *service) grant(ctx context.Context, user *domain.User, acc domain.Accessory, source string) (*domain.AccessoryGrantResult, error) {
	log := logger.FromContext(ctx)

	result := &domain.AccessoryGrantResult{Accessory: acc, Granted: true}
	if err := s.repo.InsertUserAccessory(ctx, user.ID, acc.ID); err != nil {
		if !errors.Is(err, domain.ErrAlreadyOwned) {
			return nil, fmt.Errorf("failed to grant accessory: %w", err)
		}
		result.Granted = false
		log.Info(LogMsgAccessoryDuplicate, "user_id", user.ID, "accessary_id", acc.ID)
	} else {
		log.Info(LogMsgAccessoryGranted, "user_id", user.ID, "accessary_id", acc.ID, "source", source)
	}

	s.publish(ctx, event.NewAccessoryGrantedEvent(user.ID, *result, source))
	return result, nil
}

func (s *service) Equip(ctx context.Context, accessoryID int64) (*domain.UserAccessory, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	ua, err := s.repo.GetUserAccessory(ctx, user.ID, accessoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if ua == nil {
		return nil, fmt.Errorf("%w: accessory %d", domain.ErrNotOwned, accessoryID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.UnequipAll(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to unequip accessories: %w", err)
	}
	if err := tx.SetEquipped(ctx, user.ID, accessoryID); err != nil {
		return nil, fmt.Errorf("failed to equip accessory: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit equip: %w", err)
	}

	ua.Equipped = true
	logger.FromContext(ctx).Info(LogMsgAccessoryEquipped, "user_id", user.ID, "accessary_id", accessoryID)
	s.publish(ctx, event.NewAccessoryEquippedEvent(user.ID, accessoryID))
	return ua, nil
}

func (s *service) Unequip(ctx context.Context) error {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.UnequipAll(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to unequip accessories: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit unequip: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgAccessoriesUnequip, "user_id", user.ID)
	s.publish(ctx, event.NewAccessoryEquippedEvent(user.ID, 0))
	return nil
}

func (s *service) Equipped(ctx context.Context) (*domain.UserAccessory, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	ua, err := s.repo.GetEquippedAccessory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipped accessory: %w", err)
	}
	return ua, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}
