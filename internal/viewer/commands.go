package viewer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"stickview/internal/commands"
	"stickview/internal/config"
	"stickview/internal/graphics"
)

// registerCommands adds the terminal's "cmd ..." subcommands.
func (v *Viewer) registerCommands() {
	v.cmds.Register("help", "help", nil, func() error {
		for _, line := range v.cmds.Help() {
			v.log.Log(line)
		}
		return nil
	})

	v.cmds.Register("reload", "reload", nil, func() error {
		v.log.Info().Str("source", v.session.Source()).Msg("reloading")
		v.session.Request(context.Background())
		return nil
	})

	sourceFS := flag.NewFlagSet("source", flag.ContinueOnError)
	v.cmds.Register("source", "source <path|url>", sourceFS, func() error {
		if sourceFS.NArg() != 1 {
			return errors.New("source: expected one path or URL")
		}
		src := sourceFS.Arg(0)
		v.prefs.Source = src
		v.session.SetSource(src)
		v.log.Info().Str("source", src).Msg("loading")
		v.session.Request(context.Background())
		v.rewatch()
		return nil
	})

	v.registerShowHide("grid", func(show bool) {
		v.scene.SetGridVisible(show)
		v.prefs.GridVisible = show
	})
	v.registerShowHide("fps", func(show bool) {
		v.hud.SetShowFPS(show)
		v.prefs.ShowFPS = show
	})
	v.registerShowHide("memalloc", func(show bool) {
		v.hud.SetShowMemAlloc(show)
		v.prefs.ShowMemAlloc = show
	})

	camFS := flag.NewFlagSet("camera", flag.ContinueOnError)
	camReset := camFS.Bool("reset", false, "return to the configured camera")
	camFit := camFS.Bool("fit", false, "frame the whole model")
	v.cmds.Register("camera", "camera --reset|--fit", camFS, func() error {
		fit, err := commands.Switch(*camFit, *camReset, "fit", "reset")
		if err != nil {
			return err
		}
		if fit {
			if v.scene.Bounds().Empty() {
				return errors.New("camera: no model loaded")
			}
			v.scene.Fit()
			return nil
		}
		v.ctrl.Reset()
		return nil
	})

	winFS := flag.NewFlagSet("window", flag.ContinueOnError)
	fullscreen := winFS.Bool("fullscreen", false, "switch to fullscreen")
	windowed := winFS.Bool("windowed", false, "switch to a window")
	v.cmds.Register("window", "window --fullscreen|--windowed", winFS, func() error {
		fs, err := commands.Switch(*fullscreen, *windowed, "fullscreen", "windowed")
		if err != nil {
			return err
		}
		graphics.ToggleFullscreen(fs)
		v.prefs.Window.Fullscreen = fs
		return nil
	})

	v.cmds.Register("save", "save (writes preferences and the current camera)", nil, func() error {
		p := v.prefs
		p.Camera.Position = fromVec(v.ctrl.Position)
		p.Camera.Target = fromVec(v.ctrl.Target)
		if err := config.Save(v.configPath, p); err != nil {
			return err
		}
		v.log.Info().Str("path", v.configPath).Msg("preferences saved")
		return nil
	})

	v.cmds.Register("info", "info", nil, func() error {
		if !v.loaded {
			v.log.Log("no model loaded")
			return nil
		}
		rep := v.report
		v.log.Log(fmt.Sprintf("%s: %s (%s)", rep.Source, rep.Summary(), rep.Elapsed.Round(time.Millisecond)))
		for _, line := range rep.Lines() {
			v.log.Log("  " + line)
		}
		b := v.scene.Bounds()
		if !b.Empty() {
			c, sz := b.Center(), b.Size()
			v.log.Log(fmt.Sprintf("bounds center (%.2f, %.2f, %.2f) size (%.2f, %.2f, %.2f)", c.X, c.Y, c.Z, sz.X, sz.Y, sz.Z))
		}
		return nil
	})
}

// registerShowHide adds a "name --show|--hide" command.
func (v *Viewer) registerShowHide(name string, set func(show bool)) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	show := fs.Bool("show", false, "show "+name)
	hide := fs.Bool("hide", false, "hide "+name)
	v.cmds.Register(name, name+" --show|--hide", fs, func() error {
		on, err := commands.Switch(*show, *hide, "show", "hide")
		if err != nil {
			return err
		}
		set(on)
		return nil
	})
}
