// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
)

/*
TestAuthorize_Grid checks the gate for every (role, action) pair against the
permission matrix.
*/
func TestAuthorize_Grid(t *testing.T) {
	roles := []role.Role{role.Member, role.MemberPlus, role.VIP, role.VIPPlus, role.Admin}

	tests := []struct {
		action  role.Action
		allowed map[role.Role]bool
	}{
		{
			action: role.ActionCreatePost,
			allowed: map[role.Role]bool{
				role.Member: false, role.MemberPlus: true, role.VIP: true, role.VIPPlus: true, role.Admin: true,
			},
		},
		{
			action: role.ActionComment,
			allowed: map[role.Role]bool{
				role.Member: false, role.MemberPlus: true, role.VIP: true, role.VIPPlus: true, role.Admin: true,
			},
		},
		{
			action: role.ActionRate,
			allowed: map[role.Role]bool{
				role.Member: false, role.MemberPlus: true, role.VIP: true, role.VIPPlus: true, role.Admin: true,
			},
		},
		{
			action: role.ActionUseGif,
			allowed: map[role.Role]bool{
				role.Member: false, role.MemberPlus: false, role.VIP: true, role.VIPPlus: true, role.Admin: true,
			},
		},
		{
			action: role.ActionDeleteAnyPost,
			allowed: map[role.Role]bool{
				role.Member: false, role.MemberPlus: false, role.VIP: false, role.VIPPlus: false, role.Admin: true,
			},
		},
		{
			action: role.ActionManageUsers,
			allowed: map[role.Role]bool{
				role.Member: false, role.MemberPlus: false, role.VIP: false, role.VIPPlus: false, role.Admin: true,
			},
		},
	}

	for _, tt := range tests {
		for _, r := range roles {
			t.Run(string(tt.action)+"_"+string(r), func(t *testing.T) {
				err := role.Authorize(r, tt.action)

				if tt.allowed[r] {
					assert.NoError(t, err)
				} else {
					require.Error(t, err)
					ae := apperr.As(err)
					require.NotNil(t, ae)
					assert.Equal(t, "PERMISSION_DENIED", ae.Code)
				}
			})
		}
	}
}

/*
TestAuthorize_FailsClosed ensures unknown roles and unknown actions are denied.
*/
func TestAuthorize_FailsClosed(t *testing.T) {
	assert.Error(t, role.Authorize(role.Role("ghost"), role.ActionCreatePost))
	assert.Error(t, role.Authorize(role.Admin, role.Action("launch_rockets")))
}
