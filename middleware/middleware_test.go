package middleware

import (
	"testing"
	"time"

	"agrimart/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mint(t *testing.T, secret []byte, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestValidateJWTRoundtrip(t *testing.T) {
	auth := &Authenticator{Secret: []byte("test-secret")}

	signed := mint(t, auth.Secret, &Claims{
		Username:   "alice",
		UserID:     "u1",
		Roles:      []models.Role{models.RoleBuyer, models.RoleAgent},
		ActiveRole: models.RoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := auth.ValidateJWT("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAgent, claims.ActiveRole)
	assert.True(t, claims.HasRole(models.RoleBuyer))
	assert.False(t, claims.HasRole(models.RoleAdmin))
}

func TestValidateJWTRejects(t *testing.T) {
	auth := &Authenticator{Secret: []byte("test-secret")}

	_, err := auth.ValidateJWT("")
	assert.Error(t, err, "missing header")

	_, err = auth.ValidateJWT("Token abc")
	assert.Error(t, err, "wrong scheme")

	expired := mint(t, auth.Secret, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	_, err = auth.ValidateJWT("Bearer " + expired)
	assert.Error(t, err, "expired token")

	other := mint(t, []byte("other-secret"), &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	_, err = auth.ValidateJWT("Bearer " + other)
	assert.Error(t, err, "wrong signing key")
}
