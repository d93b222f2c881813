package workflow

import (
	"net/mail"

	"qa-warehouse-api-server/internal/models"
)

// MinPasswordLength is the shortest password a user may set.
const MinPasswordLength = 8

// ProfileUpdate is the editable part of a user profile.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (p ProfileUpdate) Validate() error {
	if blank(p.Name) || blank(p.Email) {
		return invalid("Name and email are required.")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return invalid("%q is not a valid email address", p.Email)
	}
	return nil
}

// PasswordChange is checked before the current password is verified.
type PasswordChange struct {
	Current string `json:"currentPassword"`
	New     string `json:"newPassword"`
	Confirm string `json:"confirmPassword"`
}

func (p PasswordChange) Validate() error {
	switch {
	case p.Current == "" || p.New == "" || p.Confirm == "":
		return invalid("All password fields are required.")
	case p.New != p.Confirm:
		return invalid("New password and confirm password do not match.")
	case len([]rune(p.New)) < MinPasswordLength:
		return invalid("Password must be at least %d characters.", MinPasswordLength)
	}
	return nil
}

// CanRevoke refuses to end the session the request itself is using.
func CanRevoke(s models.Session) error {
	if s.Current {
		return invalid("the current session cannot be revoked")
	}
	return nil
}

func ValidTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return invalid("theme must be light or dark, got %q", theme)
	}
	return nil
}
