// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package post implements the forum's content sharing domain.

A post announces a translated game: title, description, cover, tags, and the
download links where the files are hosted. Posts carry denormalized activity
counters (views, ratings, comments) maintained by the sibling rating and
comment domains.

# Architecture

  - Entities: Post, DownloadLink.
  - Security: Creation is a tier privilege (pre-write gate); download links
    are restricted to an allow-list of file hosts.
*/
package post

import (
	"net/url"
	"strings"
	"time"
)

// # Domain Entities

// Post represents a shared game translation on the forum.
type Post struct {
	ID          string `json:"id"`
	AuthorID    string `json:"author_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url,omitempty"`

	Tags          []string       `json:"tags"`
	DownloadLinks []DownloadLink `json:"download_links"`

	// IsAnimated marks posts with animated decorations, a vip+ privilege.
	IsAnimated bool `json:"is_animated"`

	// Denormalized activity counters.
	ViewCount    int `json:"view_count"`
	RatingCount  int `json:"rating_count"`
	RatingSum    int `json:"-"`
	CommentCount int `json:"comment_count"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// AverageRating returns the mean star rating, or 0 when unrated.
func (p *Post) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}

// DownloadLink points to a hosted file for the shared game.
type DownloadLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// # Link Policy

// allowedHosts is the allow-list of file hosting domains accepted in
// download links. Subdomains of these hosts are accepted too.
var allowedHosts = []string{
	"mega.nz",
	"mediafire.com",
	"drive.google.com",
	"dropbox.com",
	"onedrive.live.com",
	"pixeldrain.com",
	"catbox.moe",
}

// HostAllowed reports whether the raw URL points to an allowed file host.
//
// The scheme must be https and the hostname must equal an allowed domain or
// be one of its subdomains. Anything unparsable is rejected.
func HostAllowed(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}

	for _, allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}

	return false
}

// # Field Identifiers

// Global field names for validation in the post domain.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldCoverURL      = "cover_url"
	FieldTags          = "tags"
	FieldDownloadLinks = "download_links"
	FieldIsAnimated    = "is_animated"
)

// Content limits.
const (
	MaxTags          = 10
	MaxDownloadLinks = 10
)
