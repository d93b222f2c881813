package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Alexandra Hamilton", "AH"},
		{"lorna  garcia", "LG"},
		{"élodie ørsted Smith", "ÉØ"},
		{"Madonna", "M"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, User{Name: tt.name}.Initials())
		})
	}
}
