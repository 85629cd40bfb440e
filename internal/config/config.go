package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/stickview.yaml"

// Environment overrides, applied after the file.
const (
	EnvSource   = "STICKVIEW_SOURCE"
	EnvLogLevel = "STICKVIEW_LOG_LEVEL"
)

var validate = validator.New()

// Prefs holds viewer preferences. The model itself is never stored here.
type Prefs struct {
	Source   string        `yaml:"source"`
	Watch    bool          `yaml:"watch"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
	LogLevel string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Sheets   Sheets        `yaml:"sheets"`
	Window   Window        `yaml:"window"`
	Camera   Camera        `yaml:"camera"`
	Lights   Lights        `yaml:"lights"`
	Style    Style         `yaml:"style"`

	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	GridVisible  bool `yaml:"grid_visible"`
}

// Sheets names the member, node and support tables.
type Sheets struct {
	Members  string `yaml:"members" validate:"required"`
	Nodes    string `yaml:"nodes" validate:"required"`
	Supports string `yaml:"supports" validate:"required"`
}

type Window struct {
	Width      int    `yaml:"width" validate:"gte=320"`
	Height     int    `yaml:"height" validate:"gte=240"`
	Fullscreen bool   `yaml:"fullscreen"`
	Title      string `yaml:"title"`
	TargetFPS  int    `yaml:"target_fps" validate:"gte=1,lte=480"`
}

type Camera struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Fovy     float64    `yaml:"fov" validate:"gt=0,lt=180"`
	// OrbitSpeed is degrees of rotation per pixel of mouse drag.
	OrbitSpeed float64 `yaml:"orbit_speed" validate:"gt=0"`
	ZoomStep   float64 `yaml:"zoom_step" validate:"gt=0,lt=1"`
}

type Lights struct {
	Ambient    float64    `yaml:"ambient" validate:"gte=0,lte=1"`
	PointLight [3]float64 `yaml:"point_light"`
}

// Style controls how members and supports are drawn. Colors are #RGB or #RRGGBB.
type Style struct {
	MemberRadius  float64           `yaml:"member_radius" validate:"gt=0"`
	MemberSlices  int               `yaml:"member_slices" validate:"gte=3,lte=128"`
	MemberColor   string            `yaml:"member_color" validate:"hexcolor"`
	SupportSize   float64           `yaml:"support_size" validate:"gt=0"`
	SupportColor  string            `yaml:"support_color" validate:"hexcolor"`
	SupportColors map[string]string `yaml:"support_colors,omitempty" validate:"dive,keys,required,endkeys,hexcolor"`
	Background    string            `yaml:"background" validate:"hexcolor"`
}

// Default returns the standard view: camera at (100,100,100) with a 60 degree field of view,
// ambient light 0.5 plus a point light at (10,10,10), yellow members and red supports on black.
func Default() Prefs {
	return Prefs{
		Source:   "Sample.xlsx",
		Timeout:  30 * time.Second,
		LogLevel: "info",
		Sheets:   Sheets{Members: "A", Nodes: "B", Supports: "C"},
		Window: Window{
			Width:     1280,
			Height:    800,
			Title:     "stickview",
			TargetFPS: 60,
		},
		Camera: Camera{
			Position:   [3]float64{100, 100, 100},
			Fovy:       60,
			OrbitSpeed: 0.3,
			ZoomStep:   0.1,
		},
		Lights: Lights{
			Ambient:    0.5,
			PointLight: [3]float64{10, 10, 10},
		},
		Style: Style{
			MemberRadius: 0.5,
			MemberSlices: 32,
			MemberColor:  "#ffff00",
			SupportSize:  2,
			SupportColor: "#ff0000",
			Background:   "#000000",
		},
		GridVisible: true,
	}
}

// Load reads preferences from path. A missing file yields Default() and no error.
// A present but invalid file is an error so typos are not silently ignored.
// Environment overrides are applied last.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Default(), fmt.Errorf("config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Default(), fmt.Errorf("config: %s: %w", path, err)
		}
	}
	p.applyEnv()
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

func (p *Prefs) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvSource)); v != "" {
		p.Source = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		p.LogLevel = strings.ToLower(v)
	}
}

// Validate checks field constraints.
func (p Prefs) Validate() error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
