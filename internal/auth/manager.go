package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/logger"
)

// API is the subset of the auth REST client the manager needs
type API interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
	ExchangeCode(ctx context.Context, code, verifier string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	AuthorizeURL(provider, redirectTo, challenge string) string
}

// Manager owns the local session and implements Identity on top of it
type Manager struct {
	api       API
	store     SessionStore
	jwtSecret []byte
	now       func() time.Time

	mu      sync.Mutex
	session *Session
	loaded  bool
}

// NewManager creates a session manager. An empty jwtSecret skips signature checks.
func NewManager(api API, store SessionStore, jwtSecret string) *Manager {
	return &Manager{
		api:       api,
		store:     store,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// CurrentUser implements Identity. An expiring session is refreshed once; a
// failed refresh clears it and reports ErrAuthRequired.
func (m *Manager) CurrentUser(ctx context.Context) (*domain.User, error) {
	s, err := m.validSession(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := ParseAccessToken(s.AccessToken, m.jwtSecret)
	if err != nil {
		return nil, err
	}
	user := claims.User()
	if user.Email == "" {
		user.Email = s.User.Email
	}
	return user, nil
}

// AccessToken returns a usable access token for backend calls
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	s, err := m.validSession(ctx)
	if err != nil {
		return "", err
	}
	return s.AccessToken, nil
}

// SignInWithPassword signs in and stores the session
func (m *Manager) SignInWithPassword(ctx context.Context, email, password string) (*domain.User, error) {
	s, err := m.api.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}
	return m.adopt(ctx, s)
}

// CompleteOAuth stores the session obtained from a PKCE code exchange
func (m *Manager) CompleteOAuth(ctx context.Context, code, verifier string) (*domain.User, error) {
	s, err := m.api.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return m.adopt(ctx, s)
}

// SignOut revokes the session remotely when possible and always clears it locally
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.loadLocked()
	if err != nil {
		return err
	}
	if s != nil {
		if err := m.api.SignOut(ctx, s.AccessToken); err != nil {
			logger.FromContext(ctx).Warn(LogMsgLogoutFailed, "error", err)
		}
	}

	m.session = nil
	if err := m.store.Clear(); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgSignedOut)
	return nil
}

func (m *Manager) adopt(ctx context.Context, s *Session) (*domain.User, error) {
	claims, err := ParseAccessToken(s.AccessToken, m.jwtSecret)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(s); err != nil {
		return nil, err
	}
	m.session = s
	m.loaded = true

	user := claims.User()
	if user.Email == "" {
		user.Email = s.User.Email
	}
	logger.FromContext(ctx).Info(LogMsgSignedIn, "user_id", user.ID)
	return user, nil
}

func (m *Manager) validSession(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.loadLocked()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrAuthRequired
	}
	if !s.NeedsRefresh(m.now(), RefreshSkew) {
		return s, nil
	}

	log := logger.FromContext(ctx)
	refreshed, err := m.api.RefreshSession(ctx, s.RefreshToken)
	if err != nil {
		log.Warn(LogMsgRefreshFailed, "error", err)
		// A transport failure keeps the stored session for the next attempt
		if errors.Is(err, domain.ErrAuthRequired) {
			m.session = nil
			if clearErr := m.store.Clear(); clearErr != nil {
				log.Warn(LogMsgSessionClearFailed, "error", clearErr)
			}
		}
		return nil, fmt.Errorf("%w: session expired: %w", domain.ErrAuthRequired, err)
	}
	if err := m.store.Save(refreshed); err != nil {
		return nil, err
	}
	m.session = refreshed
	log.Debug(LogMsgSessionRefresh, "expires_at", refreshed.Expiry())
	return refreshed, nil
}

func (m *Manager) loadLocked() (*Session, error) {
	if m.loaded {
		return m.session, nil
	}
	s, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	m.session = s
	m.loaded = true
	return s, nil
}
