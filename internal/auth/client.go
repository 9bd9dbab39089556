package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/metrics"
)

// Client talks to the hosted auth REST API
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	now        func() time.Time
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the instrumented default client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// NewClient creates an auth API client for the project at baseURL
func NewClient(baseURL, anonKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: metrics.InstrumentedClient(DefaultHTTPTimeout),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer from the auth API
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("auth api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("auth api %d: %s", e.Status, e.Message)
}

// Unwrap classifies rejected credentials as ErrAuthRequired and everything
// else as a data access failure.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return domain.ErrAuthRequired
	default:
		return domain.ErrDataAccess
	}
}

// SignInWithPassword exchanges email and password for a session
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.token(ctx, GrantPassword, body)
}

// RefreshSession exchanges a refresh token for a new session
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return c.token(ctx, GrantRefreshToken, body)
}

// ExchangeCode completes a PKCE OAuth flow
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (*Session, error) {
	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	return c.token(ctx, GrantPKCE, body)
}

// GetUser returns the user the access token belongs to
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "get_user", http.MethodGet, PathUser, accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the session server side
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, "logout", http.MethodPost, PathLogout, accessToken, nil, nil)
}

// AuthorizeURL is where the browser starts an OAuth sign-in
func (c *Client) AuthorizeURL(provider, redirectTo, challenge string) string {
	q := url.Values{}
	q.Set("provider", provider)
	q.Set("redirect_to", redirectTo)
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", "s256")
	return c.baseURL + PathAuthorize + "?" + q.Encode()
}

func (c *Client) token(ctx context.Context, grant string, body interface{}) (*Session, error) {
	var session Session
	path := PathToken + "?grant_type=" + url.QueryEscape(grant)
	if err := c.do(ctx, "token_"+grant, http.MethodPost, path, "", body, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access token", domain.ErrDataAccess)
	}
	session.stampExpiry(c.now())
	return &session, nil
}

func (c *Client) do(ctx context.Context, op, method, path, bearer string, in, out interface{}) (err error) {
	defer metrics.ObserveBackend(metrics.ComponentAuth, op, time.Now(), &err)

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set(HeaderAPIKey, c.anonKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDataAccess, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", domain.ErrDataAccess, op, err)
	}
	return nil
}

// decodeAPIError understands both error envelopes the auth API uses
func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Code             string `json:"error_code"`
		Msg              string `json:"msg"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	apiErr := &APIError{Status: resp.StatusCode, Code: body.Code}
	switch {
	case body.ErrorDescription != "":
		apiErr.Message = body.ErrorDescription
		if apiErr.Code == "" {
			apiErr.Code = body.Error
		}
	case body.Msg != "":
		apiErr.Message = body.Msg
	case body.Error != "":
		apiErr.Message = body.Error
	default:
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
