package hud

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	panelWidth     = 420
)

var (
	panelColor = rl.NewColor(20, 20, 20, 200)
	errorColor = rl.NewColor(240, 90, 90, 255)
	warnColor  = rl.NewColor(240, 200, 80, 255)
)

// Stats is the model summary shown in the panel. The viewer fills it; hud does not
// depend on the model packages.
type Stats struct {
	Source     string
	Loading    bool
	Nodes      int
	Members    int // drawn
	Supports   int // drawn
	Skipped    int // rows or references not drawn
	Duplicates int
	LastError  string
}

// HUD draws 2D overlays over the scene: FPS and memory counters (top-right, off by default)
// and the model panel (top-left).
type HUD struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowPanel    bool

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats

	stats     Stats
	panelText []string
}

// New returns a HUD with the model panel visible and counters hidden.
func New() *HUD {
	return &HUD{ShowPanel: true}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (h *HUD) SetShowFPS(show bool) {
	h.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap allocation counter is drawn (under FPS).
func (h *HUD) SetShowMemAlloc(show bool) {
	h.ShowMemAlloc = show
}

// SetStats updates the panel. Text is rebuilt only when stats change.
func (h *HUD) SetStats(s Stats) {
	if s == h.stats && h.panelText != nil {
		return
	}
	h.stats = s
	h.panelText = PanelLines(s)
}

// PanelLines formats stats as the panel shows them.
func PanelLines(s Stats) []string {
	src := s.Source
	if src == "" {
		src = "(none)"
	}
	src = keepTail(src, 48)
	lines := []string{"Source: " + src}
	if s.Loading {
		lines = append(lines, "Loading...")
	}
	lines = append(lines,
		fmt.Sprintf("Nodes: %d", s.Nodes),
		fmt.Sprintf("Members: %d", s.Members),
		fmt.Sprintf("Supports: %d", s.Supports),
	)
	if s.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("Skipped: %d", s.Skipped))
	}
	if s.Duplicates > 0 {
		lines = append(lines, fmt.Sprintf("Duplicate node ids: %d", s.Duplicates))
	}
	if s.LastError != "" {
		msg := keepHead(s.LastError, 60)
		lines = append(lines, "Error: "+msg)
	}
	return lines
}

// Draw renders enabled overlays. Call after the scene and before the terminal.
// Counter text is only recomputed every updateInterval frames to limit allocations.
func (h *HUD) Draw() {
	h.frameCount++
	if h.ShowPanel {
		h.drawPanel()
	}

	update := h.frameCount%updateInterval == 0
	if h.ShowFPS && h.lastFpsText == "" {
		update = true
	}
	if h.ShowMemAlloc && h.lastMemText == "" {
		update = true
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if h.ShowFPS {
		if update {
			h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(h.lastFpsText, screenW, y)
		y += lineHeight
	}
	if h.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			mb := float64(h.lastMemStats.Alloc) / (1024 * 1024)
			h.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(h.lastMemText, screenW, y)
	}
}

// keepHead shortens s to at most n runes, ending in "...".
func keepHead(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// keepTail shortens s to at most n runes, starting with "..."; the end of a path matters most.
func keepTail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}

func (h *HUD) drawPanel() {
	if len(h.panelText) == 0 {
		h.panelText = PanelLines(h.stats)
	}
	height := int32(len(h.panelText)*lineHeight + 2*padding)
	rl.DrawRectangle(padding, padding, panelWidth, height, panelColor)
	y := int32(2 * padding)
	for _, line := range h.panelText {
		c := rl.LightGray
		switch {
		case len(line) > 6 && line[:6] == "Error:":
			c = errorColor
		case len(line) > 8 && line[:8] == "Skipped:":
			c = warnColor
		}
		rl.DrawText(line, 2*padding, y, fontSize, c)
		y += lineHeight
	}
}
