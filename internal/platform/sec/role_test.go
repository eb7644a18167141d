// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kaminari/internal/platform/sec"
)

/*
TestParseRole maps stored labels onto the closed role set.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  sec.UserRole
	}{
		{"admin", "Admin", sec.RoleAdmin},
		{"manager", "Manager", sec.RoleManager},
		{"artist", "Artist", sec.RoleArtist},
		{"user", "User", sec.RoleUser},
		{"unknown_degrades", "Superuser", sec.RoleUser},
		{"case_sensitive", "admin", sec.RoleUser},
		{"empty_degrades", "", sec.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.ParseRole(tt.value))
		})
	}
}

/*
TestRoleIn checks set membership. There is no hierarchy: a role is allowed
only when it is explicitly listed.
*/
func TestRoleIn(t *testing.T) {
	assert.True(t, sec.RoleAdmin.In(sec.RoleAdmin, sec.RoleManager))
	assert.True(t, sec.RoleManager.In(sec.RoleAdmin, sec.RoleManager))

	assert.False(t, sec.RoleUser.In(sec.RoleAdmin, sec.RoleManager))
	assert.False(t, sec.RoleAdmin.In(sec.RoleArtist))
	assert.False(t, sec.RoleAdmin.In())
}
