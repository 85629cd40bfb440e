package terminal

import (
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"stickview/internal/commands"
	"stickview/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineChars     = 200
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the command bar at the bottom of the screen, shown/hidden with ESC.
// While open it captures the keyboard and the camera ignores the mouse.
// Lines starting with "cmd " are parsed as subcommand + flags and run through the registry;
// anything else is echoed with a hint. Up/Down recall earlier lines.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	hist     history
}

type level int

const (
	levelInfo level = iota
	levelDebug
	levelWarn
	levelError
	levelInput
)

// clip shortens line to at most n runes, ending in "...".
func clip(line string, n int) string {
	if utf8.RuneCountInString(line) <= n {
		return line
	}
	r := []rune(line)
	return string(r[:n-3]) + "..."
}

// lineLevel classifies a console-formatted log line for coloring.
func lineLevel(line string) level {
	switch {
	case strings.Contains(line, " INF "+prompt):
		return levelInput
	case strings.Contains(line, " ERR "):
		return levelError
	case strings.Contains(line, " WRN "):
		return levelWarn
	case strings.Contains(line, " DBG "):
		return levelDebug
	}
	return levelInfo
}

var levelColors = map[level]rl.Color{
	levelInfo:  rl.LightGray,
	levelDebug: rl.Gray,
	levelWarn:  rl.NewColor(240, 200, 80, 255),
	levelError: rl.NewColor(240, 90, 90, 255),
	levelInput: rl.White,
}

// New returns a Terminal that logs lines and runs "cmd ..." through reg. It starts closed.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles ESC (toggle open/closed), and when open: typing, paste, backspace, enter.
// Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		t.inputBuf = t.hist.prev(t.inputBuf)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		t.inputBuf = t.hist.next()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Submit handles one entered line as if typed.
func (t *Terminal) Submit(line string) {
	t.hist.add(line)
	t.log.Log(prompt + line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		t.log.Info().Msg(`commands start with "cmd ", try "cmd help"`)
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Error().Err(err).Msg("command failed")
	}
}

// Draw draws the terminal bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	// Log history area above the bar: last maxLinesOnScreen lines
	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, termChatBgColor)
	}
	lines := t.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := chatY + int32(i-start)*lineHeight + padding
		rl.DrawText(clip(lines[i], maxLineChars), padding, y, fontSize, levelColors[lineLevel(lines[i])])
	}

	// Input bar
	rl.DrawRectangle(0, barY, screenW, BarHeight, termBarColor)
	rl.DrawRectangle(0, barY, screenW, 1, termLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
