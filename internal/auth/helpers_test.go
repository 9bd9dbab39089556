package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "super-secret-jwt-token-with-at-least-32-characters"
	testUserID = "6f0a3c2e-1111-4a4a-9b9b-000000000001"
	testEmail  = "yu@example.com"
)

func signToken(t *testing.T, subject string, expires time.Time, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: testEmail,
		Role:  "authenticated",
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
