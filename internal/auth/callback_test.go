package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/domain"
)

func TestCallbackRouter(t *testing.T) {
	user := &domain.User{ID: testUserID}

	tests := []struct {
		name         string
		target       string
		exchangeErr  error
		wantStatus   int
		wantLocation string
		wantUser     bool
	}{
		{"success", CallbackPath + "?code=abc", nil, http.StatusOK, "", true},
		{"missing code", CallbackPath, nil, http.StatusFound, CallbackErrorPath, false},
		{"exchange failed", CallbackPath + "?code=abc", errors.New("bad code"), http.StatusFound, CallbackErrorPath, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(chan CallbackResult, 1)
			exchange := func(_ context.Context, code string) (*domain.User, error) {
				assert.Equal(t, "abc", code)
				if tt.exchangeErr != nil {
					return nil, tt.exchangeErr
				}
				return user, nil
			}

			rec := httptest.NewRecorder()
			NewCallbackRouter(exchange, results).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))

			require.Len(t, results, 1)
			res := <-results
			if tt.wantUser {
				assert.NoError(t, res.Err)
				assert.Equal(t, user, res.User)
			} else {
				assert.Error(t, res.Err)
			}
		})
	}
}

func TestCallbackErrorPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCallbackRouter(nil, make(chan CallbackResult, 1)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CallbackErrorPath, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "認証に失敗しました")
}
