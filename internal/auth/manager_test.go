package auth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/domain"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockAPI) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockAPI) ExchangeCode(ctx context.Context, code, verifier string) (*Session, error) {
	args := m.Called(ctx, code, verifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockAPI) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockAPI) AuthorizeURL(provider, redirectTo, challenge string) string {
	return m.Called(provider, redirectTo, challenge).String(0)
}

// memoryStore is an in-memory SessionStore
type memoryStore struct {
	session  *Session
	saves    int
	clearErr error
}

func (s *memoryStore) Load() (*Session, error) { return s.session, nil }
func (s *memoryStore) Save(sess *Session) error {
	s.session = sess
	s.saves++
	return nil
}
func (s *memoryStore) Clear() error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.session = nil
	return nil
}

var managerNow = time.Unix(1_800_000_000, 0)

func sessionFor(t *testing.T, expires time.Time) *Session {
	return &Session{
		AccessToken:  signToken(t, testUserID, expires, testSecret),
		RefreshToken: "rt-" + expires.Format(time.RFC3339),
		ExpiresAt:    expires.Unix(),
	}
}

func newTestManager(api API, store SessionStore) *Manager {
	m := NewManager(api, store, "")
	m.now = func() time.Time { return managerNow }
	return m
}

func TestCurrentUser_SignedOut(t *testing.T) {
	m := newTestManager(new(MockAPI), &memoryStore{})

	_, err := m.CurrentUser(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestCurrentUser_FreshSession(t *testing.T) {
	api := new(MockAPI)
	store := &memoryStore{session: sessionFor(t, managerNow.Add(time.Hour))}
	m := newTestManager(api, store)

	user, err := m.CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
	assert.Equal(t, testEmail, user.Email)
	api.AssertNotCalled(t, "RefreshSession", mock.Anything, mock.Anything)
}

func TestCurrentUser_RefreshesExpiringSession(t *testing.T) {
	old := sessionFor(t, managerNow.Add(10*time.Second))
	fresh := sessionFor(t, managerNow.Add(time.Hour))

	api := new(MockAPI)
	api.On("RefreshSession", mock.Anything, old.RefreshToken).Return(fresh, nil).Once()
	store := &memoryStore{session: old}
	m := newTestManager(api, store)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh.AccessToken, token)
	assert.Equal(t, fresh, store.session)

	// second call uses the refreshed session
	_, err = m.CurrentUser(context.Background())
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestCurrentUser_RefreshRejected(t *testing.T) {
	old := sessionFor(t, managerNow.Add(-time.Minute))
	api := new(MockAPI)
	api.On("RefreshSession", mock.Anything, old.RefreshToken).
		Return(nil, &APIError{Status: 400, Code: "refresh_token_not_found", Message: "Invalid Refresh Token"})
	store := &memoryStore{session: old}
	m := newTestManager(api, store)

	_, err := m.CurrentUser(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Nil(t, store.session, "rejected session is cleared")
}

func TestCurrentUser_RefreshRejectedClearFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	old := sessionFor(t, managerNow.Add(-time.Minute))
	api := new(MockAPI)
	api.On("RefreshSession", mock.Anything, old.RefreshToken).
		Return(nil, &APIError{Status: 400, Code: "refresh_token_not_found", Message: "Invalid Refresh Token"})
	store := &memoryStore{session: old, clearErr: errors.New("read-only file system")}
	m := newTestManager(api, store)

	_, err := m.CurrentUser(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, buf.String(), LogMsgSessionClearFailed)
	assert.Contains(t, buf.String(), "read-only file system")
}

func TestCurrentUser_RefreshTransportFailureKeepsSession(t *testing.T) {
	old := sessionFor(t, managerNow.Add(-time.Minute))
	api := new(MockAPI)
	api.On("RefreshSession", mock.Anything, old.RefreshToken).
		Return(nil, errors.Join(domain.ErrDataAccess, errors.New("dial tcp: timeout")))
	store := &memoryStore{session: old}
	m := newTestManager(api, store)

	_, err := m.CurrentUser(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Equal(t, old, store.session)
}

func TestSignInWithPassword_StoresSession(t *testing.T) {
	s := sessionFor(t, managerNow.Add(time.Hour))
	api := new(MockAPI)
	api.On("SignInWithPassword", mock.Anything, testEmail, "pw").Return(s, nil)
	store := &memoryStore{}
	m := newTestManager(api, store)

	user, err := m.SignInWithPassword(context.Background(), testEmail, "pw")

	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
	assert.Equal(t, 1, store.saves)

	current, err := m.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, current)
}

func TestSignOut_ClearsEvenWhenRemoteFails(t *testing.T) {
	s := sessionFor(t, managerNow.Add(time.Hour))
	api := new(MockAPI)
	api.On("SignOut", mock.Anything, s.AccessToken).Return(domain.ErrDataAccess)
	store := &memoryStore{session: s}
	m := newTestManager(api, store)

	require.NoError(t, m.SignOut(context.Background()))

	assert.Nil(t, store.session)
	_, err := m.CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestCompleteOAuth(t *testing.T) {
	s := sessionFor(t, managerNow.Add(time.Hour))
	api := new(MockAPI)
	api.On("ExchangeCode", mock.Anything, "code", "verifier").Return(s, nil)
	m := newTestManager(api, &memoryStore{})

	user, err := m.CompleteOAuth(context.Background(), "code", "verifier")

	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
}
