package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaduarte/erp-estetica/internal/domain/user"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "chave-de-teste")
	svc, err := NewJWTService()
	require.NoError(t, err)
	return svc
}

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser("Mariana", "mariana@example.com", "secret123", user.RoleOwner)
	require.NoError(t, err)
	return u
}

func TestNewJWTService_MissingKey(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := NewJWTService()
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	u := testUser(t)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, string(user.RoleOwner), claims.Role)
	assert.Equal(t, "erp-estetica-api", claims.Issuer)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("token-malformado")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongKey(t *testing.T) {
	svc := newTestService(t)
	u := testUser(t)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	other := &JWTService{secretKey: []byte("outra-chave"), expiration: time.Hour}
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t)
	svc.expiration = -time.Hour

	token, err := svc.GenerateToken(testUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(t)
	u := testUser(t)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestRefreshToken_ExpiredTokenIsRenewed(t *testing.T) {
	svc := newTestService(t)
	svc.expiration = -time.Hour

	token, err := svc.GenerateToken(testUser(t))
	require.NoError(t, err)

	svc.expiration = time.Hour
	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestRefreshToken_InvalidSignature(t *testing.T) {
	svc := newTestService(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{UserID: "intruso"})
	forgedString, err := forged.SignedString([]byte("outra-chave"))
	require.NoError(t, err)

	_, err = svc.RefreshToken(forgedString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
