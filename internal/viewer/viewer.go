// Package viewer ties the loader, the scene and the overlays into one per-frame Update/Draw pair
// for graphics.Run. All model swaps happen on the render goroutine.
package viewer

import (
	"context"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"stickview/internal/commands"
	"stickview/internal/config"
	"stickview/internal/fetch"
	"stickview/internal/hud"
	"stickview/internal/loader"
	"stickview/internal/logger"
	"stickview/internal/orbit"
	"stickview/internal/scene"
	"stickview/internal/terminal"
	"stickview/internal/watch"
)

const watchDebounce = 300 * time.Millisecond

// Viewer owns the displayed model and everything that acts on it.
type Viewer struct {
	prefs      config.Prefs
	configPath string
	log        *logger.Logger

	session *loader.Session
	ctrl    *orbit.Controller
	scene   *scene.Scene
	hud     *hud.HUD
	term    *terminal.Terminal
	cmds    *commands.Registry
	watcher *watch.Watcher

	report  loader.Report
	loaded  bool
	lastErr string
}

// New builds a viewer from prefs. No window is needed yet; GPU resources are created on first draw.
// configPath is where "cmd save" writes.
func New(prefs config.Prefs, configPath string, log *logger.Logger) *Viewer {
	l := NewLoader(prefs)
	ctrl := orbit.New(toVec(prefs.Camera.Position), toVec(prefs.Camera.Target), prefs.Camera.Fovy)
	scn := scene.New(ctrl, styleFrom(prefs.Style, log), scene.Lights{
		Ambient:    float32(prefs.Lights.Ambient),
		PointLight: toFloat32(prefs.Lights.PointLight),
	})
	scn.GridVisible = prefs.GridVisible
	scn.OrbitSpeed = float32(prefs.Camera.OrbitSpeed)
	scn.ZoomStep = float32(prefs.Camera.ZoomStep)

	h := hud.New()
	h.SetShowFPS(prefs.ShowFPS)
	h.SetShowMemAlloc(prefs.ShowMemAlloc)

	v := &Viewer{
		prefs:      prefs,
		configPath: configPath,
		log:        log,
		session:    loader.NewSession(*l),
		ctrl:       ctrl,
		scene:      scn,
		hud:        h,
		cmds:       commands.NewRegistry(),
	}
	v.term = terminal.New(log, v.cmds)
	v.registerCommands()
	return v
}

// NewLoader returns a loader for the configured source, sheet names and timeout.
func NewLoader(prefs config.Prefs) *loader.Loader {
	l := loader.New(prefs.Source)
	l.Sheets = loader.Sheets{
		Members:  prefs.Sheets.Members,
		Nodes:    prefs.Sheets.Nodes,
		Supports: prefs.Sheets.Supports,
	}
	l.Fetch = fetch.Options{Timeout: prefs.Timeout}
	return l
}

// Background is the clear color for graphics.Options.
func (v *Viewer) Background() rl.Color {
	c, ok := scene.ParseHexColor(v.prefs.Style.Background)
	if !ok {
		return rl.Black
	}
	return c
}

// Start requests the first load and, when enabled, starts watching a local source.
func (v *Viewer) Start() {
	v.log.Info().Str("source", v.session.Source()).Msg("loading")
	v.session.Request(context.Background())
	v.rewatch()
}

// Update runs once per frame, before drawing.
func (v *Viewer) Update() {
	if out, ok := v.session.Poll(); ok {
		v.apply(out)
	}
	v.term.Update()
	v.scene.Update(!v.term.IsOpen())
	v.hud.SetStats(v.stats())
}

// Draw renders the scene, then the overlays.
func (v *Viewer) Draw() {
	v.scene.Draw()
	v.hud.Draw()
	v.term.Draw()
}

// Close stops background work and frees GPU resources. Call before the window closes.
func (v *Viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
		v.watcher = nil
	}
	v.session.Close()
	v.scene.Unload()
}

// apply swaps in a finished load. A failed load keeps the current model on screen.
func (v *Viewer) apply(out loader.Outcome) {
	if out.Err != nil {
		v.lastErr = out.Err.Error()
		loader.LogFailure(v.log, out.Source, out.Err)
		return
	}
	v.lastErr = ""
	r := out.Result
	v.scene.SetModel(r.Resolved)
	v.report = r.Report
	v.loaded = true

	rep := r.Report
	v.log.Info().
		Str("source", out.Source).
		Dur("elapsed", rep.Elapsed).
		Msg("loaded " + rep.Summary())
	for _, is := range rep.Issues {
		v.log.Warn().Msg(is.String())
	}
	for _, id := range rep.Duplicates {
		v.log.Warn().Int("node", id).Msg("node defined more than once; first definition used")
	}
	for _, u := range rep.Unresolved {
		v.log.Debug().Str("kind", u.Kind).Int("index", u.Index).Int("node", u.NodeID).Msg("reference to missing node skipped")
	}
	if rep.Degenerate > 0 {
		v.log.Debug().Int("count", rep.Degenerate).Msg("zero-length members skipped")
	}
}

func (v *Viewer) stats() hud.Stats {
	s := hud.Stats{
		Source:    v.session.Source(),
		Loading:   v.session.Pending(),
		LastError: v.lastErr,
	}
	if v.loaded {
		s.Nodes = v.report.Nodes
		s.Members, s.Supports = v.scene.Counts()
		s.Skipped = v.report.Skipped()
		s.Duplicates = len(v.report.Duplicates)
	}
	return s
}

// rewatch points the file watcher at the current source. URLs are not watched.
func (v *Viewer) rewatch() {
	if v.watcher != nil {
		_ = v.watcher.Close()
		v.watcher = nil
	}
	src := v.session.Source()
	if !v.prefs.Watch || src == "" || fetch.IsURL(src) {
		return
	}
	w, err := watch.Watch(src, watchDebounce, func() {
		v.log.Info().Str("source", src).Msg("source changed, reloading")
		v.session.Request(context.Background())
	}, func(err error) {
		v.log.Warn().Err(err).Msg("watch")
	})
	if err != nil {
		v.log.Warn().Err(err).Str("source", src).Msg("cannot watch source")
		return
	}
	v.watcher = w
}

// styleFrom converts configured colors; an unparseable color falls back to the default.
func styleFrom(s config.Style, log *logger.Logger) scene.Style {
	def := config.Default().Style
	color := func(name, val, fallback string) rl.Color {
		if c, ok := scene.ParseHexColor(val); ok {
			return c
		}
		log.Warn().Str(name, val).Msg("unsupported color, using default")
		c, _ := scene.ParseHexColor(fallback)
		return c
	}
	out := scene.Style{
		MemberRadius: float32(s.MemberRadius),
		MemberSlices: s.MemberSlices,
		MemberColor:  color("member_color", s.MemberColor, def.MemberColor),
		SupportSize:  float32(s.SupportSize),
		SupportColor: color("support_color", s.SupportColor, def.SupportColor),
	}
	if len(s.SupportColors) > 0 {
		out.SupportColors = make(map[string]rl.Color, len(s.SupportColors))
		for typ, val := range s.SupportColors {
			out.SupportColors[normalizeType(typ)] = color("support_colors."+typ, val, s.SupportColor)
		}
	}
	return out
}

func normalizeType(typ string) string {
	return strings.ToLower(strings.TrimSpace(typ))
}

func toVec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func toFloat32(a [3]float64) [3]float32 {
	return [3]float32{float32(a[0]), float32(a[1]), float32(a[2])}
}

func fromVec(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
