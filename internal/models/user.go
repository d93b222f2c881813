package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Roles recognised by the authorization middleware.
const (
	RoleSuperAdmin = "superadmin"
	RoleQA         = "qa"
	RoleWarehouse  = "warehouse"
)

// User struct matches the document in MongoDB
type User struct {
	Meta             `bson:",inline"`
	Email            string     `bson:"email" json:"email"`
	Name             string     `bson:"name" json:"name"`
	Password         string     `bson:"password" json:"-"`
	Role             string     `bson:"role" json:"role"`
	Scope            string     `bson:"scope" json:"scope"`
	Status           string     `bson:"status" json:"status"`
	TwoFactorEnabled bool       `bson:"twoFactorEnabled" json:"twoFactorEnabled"`
	Theme            string     `bson:"theme" json:"theme"`
	LastLogin        *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	JoinedDate       string     `bson:"joinedDate" json:"joinedDate"`
}

// Initials derives up to two initials from the display name.
func (u User) Initials() string {
	out := make([]rune, 0, 2)
	for _, word := range strings.Fields(u.Name) {
		if len(out) == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Session is one signed-in device of a user. Exactly one session per user is current.
type Session struct {
	Meta       `bson:",inline"`
	UserID     string    `bson:"userId" json:"userId"`
	Device     string    `bson:"device" json:"device"`
	Location   string    `bson:"location" json:"location"`
	IP         string    `bson:"ip" json:"ip"`
	LastActive time.Time `bson:"lastActive" json:"lastActive"`
	Current    bool      `bson:"current" json:"current"`
}
