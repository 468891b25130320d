// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package role is the single source of truth for forum permission tiers.

It owns the closed set of roles, the static role → permission mapping, the
pre-write authorization gate, and the account-age promotion rule. Every other
package consults this one instead of comparing role strings ad hoc.

# Architecture

This package is pure domain logic: no storage, no transport, no clock state.
All checks are deterministic functions of their inputs, which keeps them
usable from HTTP handlers, the promotion sweep, and tests alike.
*/
package role

// # Forum Roles

// Role represents a named permission tier assigned to an account.
type Role string

const (
	// Default tier for freshly registered accounts. Read-only access.
	Member Role = "membro"

	// Automatic tier reached after the account-age threshold. Can post,
	// comment, and rate.
	MemberPlus Role = "membro+"

	// Purchased tier. Everything MemberPlus can do, plus GIFs and a badge.
	VIP Role = "vip"

	// Purchased tier above VIP. Adds animated post styling.
	VIPPlus Role = "vip+"

	// Unrestricted access, including moderation of users and posts.
	Admin Role = "admin"
)

// Parse maps an arbitrary string to a known [Role].
//
// Unknown or empty values degrade to [Member], the most restrictive tier.
// A role we have never heard of must never grant elevated access.
func Parse(value string) Role {
	switch Role(value) {
	case Member, MemberPlus, VIP, VIPPlus, Admin:
		return Role(value)
	default:
		return Member
	}
}

// IsValid reports whether the role is one of the five known tiers.
func (r Role) IsValid() bool {
	switch r {
	case Member, MemberPlus, VIP, VIPPlus, Admin:
		return true
	default:
		return false
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-50) allows for future intermediate roles
	switch r {
	case Admin:
		return 50
	case VIPPlus:
		return 40
	case VIP:
		return 30
	case MemberPlus:
		return 20
	case Member:
		return 10
	default:
		return 0
	}
}
