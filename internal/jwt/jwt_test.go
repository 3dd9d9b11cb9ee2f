package jwt

import (
	"testing"
	"time"

	"recruitment-service/internal/my_errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("p1", []string{"player", "captain"}, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "p1", claims.UserID)
	assert.Equal(t, []string{"player", "captain"}, claims.Roles)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("p1", nil, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("p1", nil, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestParseToken_SubjectFallback(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "p9",
		"roles": []string{"player"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := ParseToken(signed, "secret")
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
	assert.Equal(t, "p9", claims.Identity())
}

func TestParseToken_MissingUserID(t *testing.T) {
	token, err := GenerateToken("", nil, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, my_errors.ErrInvalidToken)
}
