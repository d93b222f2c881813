package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/notify"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session has been revoked")
)

// UserStatusActive is the only status allowed to sign in.
const UserStatusActive = "Active"

type ProfileService struct {
	base
	issuer *auth.Issuer
}

// Client describes the device a login comes from.
type Client struct {
	Device   string
	Location string
	IP       string
}

// LoginResult is a signed token with the user and the session it opened.
type LoginResult struct {
	Token   string         `json:"token"`
	User    models.User    `json:"user"`
	Session models.Session `json:"session"`
}

func (s *ProfileService) toast(ctx context.Context, text string) {
	s.notifier.Notify(ctx, notify.Message{Text: text, Level: notify.LevelSuccess, At: s.now()})
}

func (s *ProfileService) byEmail(ctx context.Context, email string) (models.User, error) {
	users, err := s.stores.Users.List(ctx, store.Active)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", email, store.ErrNotFound)
}

// Login checks the credentials, opens a session and signs a token bound to it.
func (s *ProfileService) Login(ctx context.Context, email, password string, c Client) (LoginResult, error) {
	if s.issuer == nil {
		return LoginResult{}, errors.New("token issuer not configured")
	}
	u, err := s.byEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !auth.CheckPasswordHash(password, u.Password) || (u.Status != "" && u.Status != UserStatusActive) {
		return LoginResult{}, ErrInvalidCredentials
	}
	now := s.now()
	sess, err := s.stores.Sessions.Append(ctx, models.Session{
		UserID:     u.ID,
		Device:     c.Device,
		Location:   c.Location,
		IP:         c.IP,
		LastActive: now,
	})
	if err != nil {
		return LoginResult{}, err
	}
	next := u
	next.LastLogin = &now
	if saved, err := s.stores.Users.Update(ctx, u.ID, u.Version, next); err != nil {
		s.log.Warn("could not record last login", zap.String("user_id", u.ID), zap.Error(err))
	} else {
		u = saved
	}
	token, err := s.issuer.Generate(u, sess.ID)
	if err != nil {
		return LoginResult{}, err
	}
	sess.Current = true
	return LoginResult{Token: token, User: u, Session: sess}, nil
}

// ActiveSession fails unless sessionID is an unrevoked session of userID.
func (s *ProfileService) ActiveSession(ctx context.Context, userID, sessionID string) error {
	sess, err := s.stores.Sessions.Get(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionRevoked
	}
	if err != nil {
		return err
	}
	if sess.Archived || sess.UserID != userID {
		return ErrSessionRevoked
	}
	return nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (models.User, error) {
	return s.stores.Users.Get(ctx, userID)
}

func (s *ProfileService) mutate(ctx context.Context, userID string, version int64, change func(models.User) (models.User, error)) (models.User, error) {
	cur, err := s.stores.Users.Get(ctx, userID)
	if err != nil {
		return cur, err
	}
	next, err := change(cur)
	if err != nil {
		return cur, err
	}
	return s.stores.Users.Update(ctx, userID, version, next)
}

// UpdateProfile changes the name and email. The email must not belong to another user.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, version int64, p workflow.ProfileUpdate) (models.User, error) {
	if err := p.Validate(); err != nil {
		return models.User{}, err
	}
	email := strings.TrimSpace(p.Email)
	if other, err := s.byEmail(ctx, email); err == nil && other.ID != userID {
		return models.User{}, &workflow.ValidationError{Message: "Email is already in use."}
	}
	saved, err := s.mutate(ctx, userID, version, func(u models.User) (models.User, error) {
		u.Name = strings.TrimSpace(p.Name)
		u.Email = email
		return u, nil
	})
	if err != nil {
		return saved, err
	}
	s.toast(ctx, "Profile updated successfully.")
	return saved, nil
}

// ChangePassword verifies the current password and stores the new hash.
// The strength of the new password is reported back.
func (s *ProfileService) ChangePassword(ctx context.Context, userID string, version int64, p workflow.PasswordChange) (kpi.Strength, error) {
	if err := p.Validate(); err != nil {
		return kpi.Strength{}, err
	}
	_, err := s.mutate(ctx, userID, version, func(u models.User) (models.User, error) {
		if !auth.CheckPasswordHash(p.Current, u.Password) {
			return u, &workflow.ValidationError{Message: "Current password is incorrect."}
		}
		hash, err := auth.HashPassword(p.New)
		if err != nil {
			return u, err
		}
		u.Password = hash
		return u, nil
	})
	if err != nil {
		return kpi.Strength{}, err
	}
	s.toast(ctx, "Password changed successfully.")
	return kpi.PasswordStrength(p.New), nil
}

// Sessions lists the user's live sessions, flagging the one in use.
func (s *ProfileService) Sessions(ctx context.Context, userID, currentID string) ([]models.Session, error) {
	all, err := s.stores.Sessions.List(ctx, store.Active)
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, 0, len(all))
	for _, sess := range all {
		if sess.UserID != userID {
			continue
		}
		sess.Current = sess.ID == currentID
		out = append(out, sess)
	}
	return out, nil
}

// RevokeSession signs out one other device.
func (s *ProfileService) RevokeSession(ctx context.Context, userID, currentID, sessionID string) error {
	sess, err := s.stores.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID || sess.Archived {
		return fmt.Errorf("session %q: %w", sessionID, store.ErrNotFound)
	}
	sess.Current = sess.ID == currentID
	if err := workflow.CanRevoke(sess); err != nil {
		return err
	}
	if _, err := s.stores.Sessions.Archive(ctx, sess.ID, sess.Version); err != nil {
		return err
	}
	s.toast(ctx, "Session revoked.")
	return nil
}

// RevokeOthers signs out every session but the current one and returns how
// many were ended.
func (s *ProfileService) RevokeOthers(ctx context.Context, userID, currentID string) (int, error) {
	sessions, err := s.Sessions(ctx, userID, currentID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sess := range sessions {
		if sess.Current {
			continue
		}
		if _, err := s.stores.Sessions.Archive(ctx, sess.ID, sess.Version); err != nil {
			return n, err
		}
		n++
	}
	s.toast(ctx, "All other sessions have been signed out.")
	return n, nil
}

// Logout ends the caller's own session. Its token is rejected afterwards.
func (s *ProfileService) Logout(ctx context.Context, userID, currentID string) error {
	sess, err := s.stores.Sessions.Get(ctx, currentID)
	if err != nil {
		return err
	}
	if sess.UserID != userID || sess.Archived {
		return ErrSessionRevoked
	}
	if _, err := s.stores.Sessions.Archive(ctx, sess.ID, sess.Version); err != nil {
		return err
	}
	s.toast(ctx, "You have been logged out.")
	return nil
}

func (s *ProfileService) Toggle2FA(ctx context.Context, userID string, version int64) (models.User, error) {
	saved, err := s.mutate(ctx, userID, version, func(u models.User) (models.User, error) {
		u.TwoFactorEnabled = !u.TwoFactorEnabled
		return u, nil
	})
	if err != nil {
		return saved, err
	}
	if saved.TwoFactorEnabled {
		s.toast(ctx, "Two-factor authentication enabled.")
	} else {
		s.toast(ctx, "Two-factor authentication disabled.")
	}
	return saved, nil
}

func (s *ProfileService) SetTheme(ctx context.Context, userID string, version int64, theme string) (models.User, error) {
	if err := workflow.ValidTheme(theme); err != nil {
		return models.User{}, err
	}
	return s.mutate(ctx, userID, version, func(u models.User) (models.User, error) {
		u.Theme = theme
		return u, nil
	})
}
