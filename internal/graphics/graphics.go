package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configure the window.
type Options struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
	TargetFPS  int
	Background rl.Color
}

// Run opens the window and runs the main loop. Each frame it calls update (input), then clears
// the screen and calls draw. init runs once after the window and OpenGL context exist; shutdown
// runs before the window closes. Either may be nil.
// ESC is reserved for the terminal overlay; the window is closed with its close button.
func Run(opts Options, init, update, draw, shutdown func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	width, height := int32(opts.Width), int32(opts.Height)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(opts.TargetFPS))
	if init != nil {
		init()
	}
	if shutdown != nil {
		defer shutdown()
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(opts.Background)
		draw()
		rl.EndDrawing()
	}
}

// ToggleFullscreen switches between fullscreen and windowed mode.
func ToggleFullscreen(fullscreen bool) {
	if rl.IsWindowFullscreen() != fullscreen {
		rl.ToggleFullscreen()
	}
}
