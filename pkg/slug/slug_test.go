// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luanpsilva/ludoteca/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Chrono Trigger", "chrono-trigger"},
		{"portuguese_accents", "Tradução Completa do Pokémon", "traducao-completa-do-pokemon"},
		{"mixed_punctuation", "Final Fantasy VI: PT-BR (v2.1)!", "final-fantasy-vi-pt-br-v2-1"},
		{"consecutive_separators", "a  --  b", "a-b"},
		{"leading_trailing_junk", "  ~Zelda~  ", "zelda"},
		{"already_slugged", "chrono-trigger-pt-br", "chrono-trigger-pt-br"},
		{"uppercase_only", "RPG", "rpg"},
		{"digits_kept", "Mother 3", "mother-3"},
		{"empty", "", ""},
		{"only_symbols", "!!! ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

func TestFrom_Idempotent(t *testing.T) {
	once := slug.From("Tradução do Chrono Trigger!")
	assert.Equal(t, once, slug.From(once))
}
