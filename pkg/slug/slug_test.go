// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kaminari/pkg/slug"
)

/*
TestFrom covers the full slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Lightning Degree", "lightning-degree"},
		{"accents", "Café Crème", "cafe-creme"},
		{"punctuation", "Solo Max-Level Newbie!", "solo-max-level-newbie"},
		{"multiple_spaces", "Tower   of   God", "tower-of-god"},
		{"leading_trailing", "  The Beginning After The End  ", "the-beginning-after-the-end"},
		{"numbers", "19 Days", "19-days"},
		{"already_slug", "omniscient-reader", "omniscient-reader"},
		{"empty", "", ""},
		{"symbols_only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
