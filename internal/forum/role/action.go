// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package role

import (
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
)

// # Privileged Actions

// Action identifies a role-gated forum operation.
type Action string

const (
	ActionCreatePost    Action = "create_post"
	ActionComment       Action = "comment"
	ActionRate          Action = "rate"
	ActionUseGif        Action = "use_gif"
	ActionDeleteAnyPost Action = "delete_any_post"
	ActionManageUsers   Action = "manage_users"
)

// deniedMessages maps each action to the client-safe rejection message.
var deniedMessages = map[Action]string{
	ActionCreatePost:    "Only membro+ or higher can create posts. Keep using the platform to become membro+!",
	ActionComment:       "Only membro+ or higher can comment",
	ActionRate:          "Only membro+ or higher can rate posts",
	ActionUseGif:        "Only VIP members can use GIFs",
	ActionDeleteAnyPost: "Only administrators can delete other members' posts",
	ActionManageUsers:   "Only administrators can manage users",
}

// # The Gate

// Authorize is the pre-write permission gate.
//
// It must be called BEFORE any privileged mutation is attempted. On success
// it returns nil and has no side effects; on failure it returns a
// PERMISSION_DENIED [apperr.AppError] and nothing may be persisted. A
// rejected caller never produces a visible write.
func Authorize(r Role, action Action) error {
	set := Permissions(r)

	allowed := false
	switch action {
	case ActionCreatePost:
		allowed = set.CanCreatePosts
	case ActionComment:
		allowed = set.CanComment
	case ActionRate:
		allowed = set.CanRate
	case ActionUseGif:
		allowed = set.CanUseGif
	case ActionDeleteAnyPost:
		allowed = set.CanDeleteAnyPost
	case ActionManageUsers:
		allowed = set.CanManageUsers
	default:
		// Unknown actions fail closed, same as unknown roles.
		allowed = false
	}

	if allowed {
		return nil
	}

	message, ok := deniedMessages[action]
	if !ok {
		message = "You do not have permission to perform this action"
	}

	return apperr.PermissionDenied(message)
}
