package hud

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelLines(t *testing.T) {
	lines := PanelLines(Stats{Source: "frame.xlsx", Nodes: 4, Members: 4, Supports: 2, Skipped: 1})
	assert.Equal(t, []string{
		"Source: frame.xlsx",
		"Nodes: 4",
		"Members: 4",
		"Supports: 2",
		"Skipped: 1",
	}, lines)

	assert.Equal(t, "Source: (none)", PanelLines(Stats{})[0])
}

func TestPanelLinesShortenOnRunes(t *testing.T) {
	src := "/données/" + strings.Repeat("é", 60) + "/cadre.xlsx"
	errText := strings.Repeat("ü", 80)
	lines := PanelLines(Stats{Source: src, LastError: errText})

	first := lines[0]
	require.True(t, utf8.ValidString(first))
	assert.True(t, strings.HasSuffix(first, "/cadre.xlsx"))
	assert.Equal(t, 48, utf8.RuneCountInString(strings.TrimPrefix(first, "Source: ")))

	last := lines[len(lines)-1]
	require.True(t, utf8.ValidString(last))
	assert.Equal(t, "Error: "+strings.Repeat("ü", 57)+"...", last)
}
