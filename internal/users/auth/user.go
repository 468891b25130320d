// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
authentication, email verification, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to user
identity. Permission tiers themselves live in the forum/role package; this
package only stores and transports them.
*/
package auth

import (
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
)

// # Account Status

// Status represents the moderation state of an account.
type Status string

const (
	// StatusActive is the normal state for an account in good standing.
	StatusActive Status = "active"

	// StatusBanned marks an account permanently locked out by an admin.
	StatusBanned Status = "banned"

	// StatusDisabled marks an account temporarily deactivated by an admin.
	StatusDisabled Status = "disabled"
)

// IsActive reports whether the account may authenticate and act.
func (s Status) IsActive() bool { return s == StatusActive }

// # Domain Entities

// User represents a registered member of the Ludoteca forum.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Role         role.Role `json:"role"`
	Status       Status    `json:"status"`
	IsVerified   bool      `json:"is_verified"`

	// Activity counters, maintained as side effects of content operations.
	// Never negative; not otherwise invariant-checked.
	PostCount   int `json:"post_count"`
	RatingCount int `json:"rating_count"`

	// PromotedAt is stamped by the promotion sweep when the account reaches
	// membro+. Nil until then (and forever nil for purchased tiers).
	PromotedAt *time.Time `json:"promoted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
