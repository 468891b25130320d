// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package post_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luanpsilva/ludoteca/internal/forum/post"
)

func TestHostAllowed(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		allowed bool
	}{
		{"mega", "https://mega.nz/file/abc123", true},
		{"mediafire", "https://mediafire.com/file/xyz", true},
		{"mediafire_www", "https://www.mediafire.com/file/xyz", true},
		{"google_drive", "https://drive.google.com/file/d/abc", true},
		{"dropbox", "https://dropbox.com/s/abc", true},
		{"onedrive", "https://onedrive.live.com/download?id=1", true},
		{"pixeldrain", "https://pixeldrain.com/u/abc", true},
		{"catbox", "https://catbox.moe/c/abc", true},
		{"plain_http", "http://mega.nz/file/abc123", false},
		{"unknown_host", "https://sketchy-files.example.com/abc", false},
		{"suffix_spoof", "https://notmega.nz/file/abc", false},
		{"subdomain_spoof", "https://mega.nz.evil.com/file/abc", false},
		{"empty", "", false},
		{"garbage", "://not a url", false},
		{"no_host", "https:///path-only", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, post.HostAllowed(tt.url))
		})
	}
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name  string
		sum   int
		count int
		want  float64
	}{
		{"unrated", 0, 0, 0},
		{"single_five", 5, 1, 5},
		{"mixed", 7, 2, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := post.Post{RatingSum: tt.sum, RatingCount: tt.count}
			assert.InDelta(t, tt.want, p.AverageRating(), 0.0001)
		})
	}
}
