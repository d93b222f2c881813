package service

import (
	"context"
	"testing"

	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Admin@2025"

func seedUser(t *testing.T, f *fixture) models.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	u, err := f.stores.Users.Append(context.Background(), models.User{
		Email:    "alex.hamilton@erp-admin.com",
		Name:     "Alexandra Hamilton",
		Password: hash,
		Role:     models.RoleSuperAdmin,
		Status:   UserStatusActive,
		Theme:    "light",
	})
	require.NoError(t, err)
	return u
}

func login(t *testing.T, f *fixture, device string) LoginResult {
	t.Helper()
	res, err := f.svc.Profile.Login(context.Background(), "Alex.Hamilton@erp-admin.com", testPassword, Client{Device: device, IP: "10.0.0.1"})
	require.NoError(t, err)
	return res
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := seedUser(t, f)

	_, err := f.svc.Profile.Login(context.Background(), u.Email, "wrong", Client{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Profile.Login(context.Background(), "nobody@example.com", testPassword, Client{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res := login(t, f, "Chrome on Windows")
	assert.True(t, res.Session.Current)
	require.NotNil(t, res.User.LastLogin)
	assert.True(t, res.User.LastLogin.Equal(fixedNow))

	claims, err := f.svc.Profile.issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, res.Session.ID, claims.SessionID)
	assert.NoError(t, f.svc.Profile.ActiveSession(context.Background(), u.ID, claims.SessionID))
}

func TestSessionsAndRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := seedUser(t, f)
	current := login(t, f, "Chrome on Windows").Session
	phone := login(t, f, "Safari on iPhone 15").Session
	login(t, f, "Firefox on MacOS")

	sessions, err := f.svc.Profile.Sessions(ctx, u.ID, current.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.True(t, sessions[0].Current)
	assert.False(t, sessions[1].Current)

	err = f.svc.Profile.RevokeSession(ctx, u.ID, current.ID, current.ID)
	assert.True(t, workflow.IsValidation(err))

	require.NoError(t, f.svc.Profile.RevokeSession(ctx, u.ID, current.ID, phone.ID))
	assert.ErrorIs(t, f.svc.Profile.ActiveSession(ctx, u.ID, phone.ID), ErrSessionRevoked)

	n, err := f.svc.Profile.RevokeOthers(ctx, u.ID, current.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	sessions, err = f.svc.Profile.Sessions(ctx, u.ID, current.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Current)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := seedUser(t, f)
	current := login(t, f, "Chrome on Windows").Session
	other := login(t, f, "Safari on iPhone 15").Session

	require.NoError(t, f.svc.Profile.Logout(ctx, u.ID, current.ID))
	assert.ErrorIs(t, f.svc.Profile.ActiveSession(ctx, u.ID, current.ID), ErrSessionRevoked)
	assert.NoError(t, f.svc.Profile.ActiveSession(ctx, u.ID, other.ID))

	assert.ErrorIs(t, f.svc.Profile.Logout(ctx, u.ID, current.ID), ErrSessionRevoked)
	assert.ErrorIs(t, f.svc.Profile.Logout(ctx, "someone-else", other.ID), ErrSessionRevoked)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := seedUser(t, f)

	_, err := f.svc.Profile.ChangePassword(ctx, u.ID, u.Version, workflow.PasswordChange{Current: testPassword, New: "Sh0rt!", Confirm: "Sh0rt!"})
	assert.EqualError(t, err, "Password must be at least 8 characters.")

	_, err = f.svc.Profile.ChangePassword(ctx, u.ID, u.Version, workflow.PasswordChange{Current: "nope", New: "N3w-Passw0rd!", Confirm: "N3w-Passw0rd!"})
	assert.EqualError(t, err, "Current password is incorrect.")

	strength, err := f.svc.Profile.ChangePassword(ctx, u.ID, u.Version, workflow.PasswordChange{Current: testPassword, New: "N3w-Passw0rd!", Confirm: "N3w-Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, "Strong", strength.Label)

	_, err = f.svc.Profile.Login(ctx, u.Email, testPassword, Client{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Profile.Login(ctx, u.Email, "N3w-Passw0rd!", Client{})
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := seedUser(t, f)
	_, err := f.stores.Users.Append(ctx, models.User{Email: "ana.reyes@erp-admin.com", Name: "Ana Reyes"})
	require.NoError(t, err)

	_, err = f.svc.Profile.UpdateProfile(ctx, u.ID, u.Version, workflow.ProfileUpdate{Name: "Alex H", Email: "not-an-email"})
	assert.True(t, workflow.IsValidation(err))
	_, err = f.svc.Profile.UpdateProfile(ctx, u.ID, u.Version, workflow.ProfileUpdate{Name: "Alex H", Email: "ana.reyes@erp-admin.com"})
	assert.EqualError(t, err, "Email is already in use.")

	u, err = f.svc.Profile.UpdateProfile(ctx, u.ID, u.Version, workflow.ProfileUpdate{Name: " Alex Hamilton ", Email: "alex@erp-admin.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alex Hamilton", u.Name)
	assert.Equal(t, "Profile updated successfully.", f.rec.Last().Text)
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := seedUser(t, f)

	u, err := f.svc.Profile.Toggle2FA(ctx, u.ID, u.Version)
	require.NoError(t, err)
	assert.True(t, u.TwoFactorEnabled)
	assert.Equal(t, "Two-factor authentication enabled.", f.rec.Last().Text)

	_, err = f.svc.Profile.SetTheme(ctx, u.ID, u.Version, "sepia")
	assert.True(t, workflow.IsValidation(err))
	u, err = f.svc.Profile.SetTheme(ctx, u.ID, u.Version, "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", u.Theme)
}
