// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package role

// # Permission Mapping

// PermissionSet is the full capability profile derived from a [Role].
//
// The mapping is static and never persisted: storage keeps only the role
// string, and capabilities are always re-derived through [Permissions].
type PermissionSet struct {
	// Content capabilities
	CanCreatePosts       bool `json:"can_create_posts"`
	CanComment           bool `json:"can_comment"`
	CanRate              bool `json:"can_rate"`
	CanViewContent       bool `json:"can_view_content"`
	CanUseProfilePicture bool `json:"can_use_profile_picture"`
	CanUseGif            bool `json:"can_use_gif"`

	// Cosmetic perks
	HasVipBadge      bool `json:"has_vip_badge"`
	HasAnimatedPosts bool `json:"has_animated_posts"`

	// Moderation capabilities
	CanDeleteAnyPost bool `json:"can_delete_any_post"`
	CanManageUsers   bool `json:"can_manage_users"`

	// AccountAgeDays is the account age (in days) required to reach this
	// tier automatically. Only meaningful for the membro → membro+
	// transition; purchased tiers carry no age requirement.
	AccountAgeDays int `json:"account_age_days"`

	// IsPurchaseable marks tiers granted out-of-band (store purchase).
	IsPurchaseable bool `json:"is_purchaseable"`
}

// permissionTable is the authoritative role → capability matrix.
//
// Keep this table as the ONLY place where capabilities are assigned.
// Handlers and services must go through [Permissions] or [Authorize].
var permissionTable = map[Role]PermissionSet{
	Member: {
		CanViewContent: true,
	},
	MemberPlus: {
		CanCreatePosts:       true,
		CanComment:           true,
		CanRate:              true,
		CanViewContent:       true,
		CanUseProfilePicture: true,
		AccountAgeDays:       PromotionThresholdDays,
	},
	VIP: {
		CanCreatePosts:       true,
		CanComment:           true,
		CanRate:              true,
		CanViewContent:       true,
		CanUseProfilePicture: true,
		CanUseGif:            true,
		HasVipBadge:          true,
		IsPurchaseable:       true,
	},
	VIPPlus: {
		CanCreatePosts:       true,
		CanComment:           true,
		CanRate:              true,
		CanViewContent:       true,
		CanUseProfilePicture: true,
		CanUseGif:            true,
		HasVipBadge:          true,
		HasAnimatedPosts:     true,
		IsPurchaseable:       true,
	},
	Admin: {
		CanCreatePosts:       true,
		CanComment:           true,
		CanRate:              true,
		CanViewContent:       true,
		CanUseProfilePicture: true,
		CanUseGif:            true,
		HasVipBadge:          true,
		HasAnimatedPosts:     true,
		CanDeleteAnyPost:     true,
		CanManageUsers:       true,
	},
}

// Permissions returns the capability profile for the given role.
//
// The lookup is total: unrecognized roles return the [Member] profile, so a
// corrupted or future role value can only ever restrict, never elevate.
func Permissions(r Role) PermissionSet {
	if set, ok := permissionTable[r]; ok {
		return set
	}
	return permissionTable[Member]
}
