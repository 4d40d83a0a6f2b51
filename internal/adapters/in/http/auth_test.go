package http_test

import (
	"testing"
	"time"

	api "logistics/internal/adapters/in/http"
	"logistics/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenAuthenticator_RequiresSecret(t *testing.T) {
	_, err := api.NewTokenAuthenticator("  ")
	require.Error(t, err)
}

func TestTokenAuthenticator_RoundTrip(t *testing.T) {
	auth, err := api.NewTokenAuthenticator(testSecret)
	require.NoError(t, err)

	driverActor, err := kernel.NewDriverActor(kernel.NewUUID(), 42)
	require.NoError(t, err)
	adminActor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)

	for _, actor := range []kernel.Actor{driverActor, adminActor} {
		token, err := auth.Issue(actor, time.Now(), time.Hour)
		require.NoError(t, err)

		parsed, err := auth.Parse(token)
		require.NoError(t, err)
		assert.True(t, parsed.UserID().IsEqual(actor.UserID()))
		assert.Equal(t, actor.Role(), parsed.Role())
		assert.Equal(t, actor.DriverID(), parsed.DriverID())
	}
}

func TestTokenAuthenticator_RejectsBadTokens(t *testing.T) {
	auth, err := api.NewTokenAuthenticator(testSecret)
	require.NoError(t, err)
	other, err := api.NewTokenAuthenticator("another-secret")
	require.NoError(t, err)

	client, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	require.NoError(t, err)

	expired, err := auth.Issue(client, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(client, time.Now(), time.Hour)
	require.NoError(t, err)

	driverWithoutID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, api.Claims{
		Role: "driver",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   kernel.NewUUID().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, api.Claims{
		Role: "courier",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   kernel.NewUUID().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, api.Claims{
		Role:             "client",
		RegisteredClaims: jwt.RegisteredClaims{Subject: kernel.NewUUID().String()},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":           expired,
		"foreign signature": foreign,
		"driver without id": driverWithoutID,
		"unknown role":      unknownRole,
		"no expiry":         noExpiry,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Parse(token)
			assert.Error(t, err)
		})
	}
}
