package terminal

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestHistoryBrowse(t *testing.T) {
	var h history
	assert.Equal(t, "typing", h.prev("typing"))

	h.add("cmd grid --hide")
	h.add("cmd reload")
	h.add("cmd reload")

	assert.Equal(t, "cmd reload", h.prev("cmd so"))
	assert.Equal(t, "cmd grid --hide", h.prev("ignored"))
	assert.Equal(t, "cmd grid --hide", h.prev("ignored"), "stays on the oldest line")
	assert.Equal(t, "cmd reload", h.next())
	assert.Equal(t, "cmd so", h.next(), "back to the draft")
	assert.Equal(t, "cmd so", h.next())
}

func TestHistoryCap(t *testing.T) {
	var h history
	for i := 0; i < maxHistory+5; i++ {
		h.add(fmt.Sprintf("cmd %d", i))
	}
	assert.Len(t, h.lines, maxHistory)
	assert.Equal(t, "cmd 5", h.lines[0])
}

func TestLineLevel(t *testing.T) {
	assert.Equal(t, levelError, lineLevel("2026-01-02 10:00:00 ERR load failed"))
	assert.Equal(t, levelWarn, lineLevel("2026-01-02 10:00:00 WRN sheet B row 4: bad x"))
	assert.Equal(t, levelDebug, lineLevel("2026-01-02 10:00:00 DBG reference to missing node skipped"))
	assert.Equal(t, levelInput, lineLevel("2026-01-02 10:00:00 INF > cmd reload"))
	assert.Equal(t, levelInfo, lineLevel("2026-01-02 10:00:00 INF loaded"))
}

func TestClipKeepsRunes(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	line := strings.Repeat("é", 12)
	got := clip(line, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
}
