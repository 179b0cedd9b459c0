package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Proofchain-Backend/domain"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims identityTokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateIdentityToken(t *testing.T) {
	service := &jwtService{secretKey: testSecret}

	claims := identityTokenClaims{
		Email: "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sub-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	claims.UserMetadata.FullName = "Owner"

	got, err := service.ValidateIdentityToken(signTestToken(t, testSecret, claims))
	require.NoError(t, err)

	assert.Equal(t, "sub-123", got.Subject)
	assert.Equal(t, "owner@example.com", got.Email)
	assert.Equal(t, "Owner", got.FullName)
}

func TestValidateIdentityTokenExpired(t *testing.T) {
	service := &jwtService{secretKey: testSecret}

	claims := identityTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sub-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}

	_, err := service.ValidateIdentityToken(signTestToken(t, testSecret, claims))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestValidateIdentityTokenWrongSecret(t *testing.T) {
	service := &jwtService{secretKey: testSecret}

	claims := identityTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sub-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err := service.ValidateIdentityToken(signTestToken(t, "other-secret", claims))
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidateIdentityTokenMissingSubject(t *testing.T) {
	service := &jwtService{secretKey: testSecret}

	claims := identityTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err := service.ValidateIdentityToken(signTestToken(t, testSecret, claims))
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidateIdentityTokenGarbage(t *testing.T) {
	service := &jwtService{secretKey: testSecret}

	_, err := service.ValidateIdentityToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
