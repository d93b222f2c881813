package auth

import (
	"testing"
	"time"

	"qa-warehouse-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	Cost = bcrypt.MinCost
	hash, err := HashPassword("Secur3!pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("Secur3!pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestIssuerRoundTrip(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	u := models.User{Meta: models.Meta{ID: "u-1"}, Email: "qa@example.com", Name: "Ana Reyes", Role: models.RoleQA}
	token, err := iss.Generate(u, "s-1")
	require.NoError(t, err)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleQA, claims.Role)
	assert.Equal(t, "s-1", claims.SessionID)

	other, _ := NewIssuer("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuerExpired(t *testing.T) {
	iss, _ := NewIssuer("test-secret", time.Nanosecond)
	token, err := iss.Generate(models.User{}, "")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = iss.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.Error(t, err)
}
