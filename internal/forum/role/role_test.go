// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
)

/*
TestParse_KnownRoles checks that every known tier round-trips through Parse.
*/
func TestParse_KnownRoles(t *testing.T) {
	tests := []struct {
		value string
		want  role.Role
	}{
		{"membro", role.Member},
		{"membro+", role.MemberPlus},
		{"vip", role.VIP},
		{"vip+", role.VIPPlus},
		{"admin", role.Admin},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, role.Parse(tt.value))
		})
	}
}

/*
TestParse_UnknownRolesDegrade checks that unrecognized values fall back to the
most restrictive tier instead of erroring or granting access.
*/
func TestParse_UnknownRolesDegrade(t *testing.T) {
	for _, value := range []string{"", "moderator", "MEMBRO", "vip++", "root", "Membro+"} {
		t.Run("value_"+value, func(t *testing.T) {
			assert.Equal(t, role.Member, role.Parse(value))
		})
	}
}

/*
TestPermissions_UnknownRoleIsRestrictive verifies the table lookup degrades to
the membro permission set for roles outside the closed enum.
*/
func TestPermissions_UnknownRoleIsRestrictive(t *testing.T) {
	got := role.Permissions(role.Role("super-admin"))

	assert.Equal(t, role.Permissions(role.Member), got)
	assert.False(t, got.CanCreatePosts)
	assert.False(t, got.CanComment)
	assert.False(t, got.CanRate)
	assert.False(t, got.CanManageUsers)
	assert.True(t, got.CanViewContent)
}

/*
TestPermissions_Table pins the full role → capability matrix.
*/
func TestPermissions_Table(t *testing.T) {
	tests := []struct {
		name       string
		role       role.Role
		createPost bool
		comment    bool
		rate       bool
		gif        bool
		deleteAny  bool
		manage     bool
		ageDays    int
	}{
		{"membro", role.Member, false, false, false, false, false, false, 0},
		{"membro_plus", role.MemberPlus, true, true, true, false, false, false, 3},
		{"vip", role.VIP, true, true, true, true, false, false, 0},
		{"vip_plus", role.VIPPlus, true, true, true, true, false, false, 0},
		{"admin", role.Admin, true, true, true, true, true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := role.Permissions(tt.role)
			assert.Equal(t, tt.createPost, set.CanCreatePosts)
			assert.Equal(t, tt.comment, set.CanComment)
			assert.Equal(t, tt.rate, set.CanRate)
			assert.Equal(t, tt.gif, set.CanUseGif)
			assert.Equal(t, tt.deleteAny, set.CanDeleteAnyPost)
			assert.Equal(t, tt.manage, set.CanManageUsers)
			assert.Equal(t, tt.ageDays, set.AccountAgeDays)
			assert.True(t, set.CanViewContent)
		})
	}
}

/*
TestAtLeast verifies the linear role hierarchy used by router-level guards.
*/
func TestAtLeast(t *testing.T) {
	assert.True(t, role.Admin.AtLeast(role.Member))
	assert.True(t, role.Admin.AtLeast(role.Admin))
	assert.True(t, role.VIPPlus.AtLeast(role.VIP))
	assert.True(t, role.MemberPlus.AtLeast(role.Member))
	assert.False(t, role.Member.AtLeast(role.MemberPlus))
	assert.False(t, role.VIP.AtLeast(role.Admin))
	assert.False(t, role.Role("unknown").AtLeast(role.Member))
}
