package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"

	"rigid-sim/internal/env"
	"rigid-sim/internal/frame"
	"rigid-sim/internal/logger"
	"rigid-sim/internal/sim"
)

// DefaultPath is the path to the config file, relative to the process working directory.
const DefaultPath = "config/sim.json"

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Window holds run-loop preferences. They affect only rendering.
type Window struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	TexturePath  string `json:"texture_path"`
	NoTextures   bool   `json:"no_textures"`
	NoShadows    bool   `json:"no_shadows"`
	Paused       bool   `json:"paused"`
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
}

// Simulation holds world and solver parameters.
type Simulation struct {
	StepSize   float64 `json:"step_size"`
	Gravity    float64 `json:"gravity"`
	CellSize   float64 `json:"cell_size"`
	ERP        float64 `json:"erp"`
	CFM        float64 `json:"cfm"`
	Iterations int     `json:"iterations"`
}

// Contact holds the contact policy. JSON cannot carry infinity, so MuInfinite
// stands for an unbounded friction coefficient and overrides Mu.
type Contact struct {
	MaxContacts int     `json:"max_contacts"`
	MuInfinite  bool    `json:"mu_infinite"`
	Mu          float64 `json:"mu"`
	Bounce      float64 `json:"bounce"`
	BounceVel   float64 `json:"bounce_vel"`
	GroundOnly  bool    `json:"ground_only"`
	Approx1     bool    `json:"approx1"`
	SoftCFM     float64 `json:"soft_cfm"`
}

// View is the initial camera.
type View struct {
	XYZ           [3]float32 `json:"xyz"`
	HPR           [3]float32 `json:"hpr"`
	SphereQuality int        `json:"sphere_quality"`
}

// Config is everything the binary reads from disk. Persisted across runs.
type Config struct {
	Window     Window     `json:"window"`
	Simulation Simulation `json:"simulation"`
	Contact    Contact    `json:"contact"`
	View       View       `json:"view"`
	LogPath    string     `json:"log_path"`
	ScenePath  string     `json:"scene_path,omitempty"`
}

// Default returns the reference setup: 720x450 window, 0.01 s steps under
// standard gravity, non-sliding contacts with 0.2 bounce.
func Default() Config {
	s := sim.DefaultConfig()
	c := Config{
		Window: Window{
			Width:       frame.DefaultWidth,
			Height:      frame.DefaultHeight,
			TexturePath: frame.DefaultTexturePath,
		},
		Contact: Contact{MuInfinite: true},
		LogPath: logger.DefaultPath,
	}
	mustCopy(&c.Simulation, &s)
	mustCopy(&c.View, &s.View)
	mustCopy(&c.Contact, &s.Contact)
	c.Contact.Mu = 0
	return c
}

// mustCopy copies between the fixed config and sim structs. copier only
// fails on unaddressable or nil arguments, so a failure is a programming error.
func mustCopy(to, from any) {
	if err := copier.Copy(to, from); err != nil {
		panic(fmt.Sprintf("config: copy %T: %v", to, err))
	}
}

// Load reads the config at path over Default(). A missing file yields
// Default() and no error; a malformed one is an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides c from RIGIDSIM_STEP, RIGIDSIM_GRAVITY, RIGIDSIM_PAUSED,
// RIGIDSIM_TEXTURES and RIGIDSIM_LOG.
func (c *Config) ApplyEnv() error {
	if v, ok, err := env.Float("RIGIDSIM_STEP"); err != nil {
		return err
	} else if ok {
		c.Simulation.StepSize = v
	}
	if v, ok, err := env.Float("RIGIDSIM_GRAVITY"); err != nil {
		return err
	} else if ok {
		c.Simulation.Gravity = v
	}
	if v, ok, err := env.Bool("RIGIDSIM_PAUSED"); err != nil {
		return err
	} else if ok {
		c.Window.Paused = v
	}
	if v, ok := env.String("RIGIDSIM_TEXTURES"); ok {
		c.Window.TexturePath = v
	}
	if v, ok := env.String("RIGIDSIM_LOG"); ok {
		c.LogPath = v
	}
	return nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case !(c.Simulation.StepSize > 0) || math.IsInf(c.Simulation.StepSize, 0):
		return fmt.Errorf("%w: step_size %v", ErrInvalid, c.Simulation.StepSize)
	case c.Contact.MaxContacts < 1:
		return fmt.Errorf("%w: max_contacts %d", ErrInvalid, c.Contact.MaxContacts)
	case c.Contact.Mu < 0:
		return fmt.Errorf("%w: mu %v", ErrInvalid, c.Contact.Mu)
	case c.Contact.Bounce < 0 || c.Contact.Bounce > 1:
		return fmt.Errorf("%w: bounce %v", ErrInvalid, c.Contact.Bounce)
	case c.Contact.SoftCFM < 0:
		return fmt.Errorf("%w: soft_cfm %v", ErrInvalid, c.Contact.SoftCFM)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// Sim returns the simulation parameters.
func (c Config) Sim() (sim.Config, error) {
	out := sim.DefaultConfig()
	if err := copier.Copy(&out, &c.Simulation); err != nil {
		return out, err
	}
	if err := copier.Copy(&out.Contact, &c.Contact); err != nil {
		return out, err
	}
	if err := copier.Copy(&out.View, &c.View); err != nil {
		return out, err
	}
	if c.Contact.MuInfinite {
		out.Contact.Mu = math.Inf(1)
	}
	return out, nil
}

// Frame returns the run-loop options.
func (c Config) Frame() frame.Options {
	return frame.Options{
		Width:       c.Window.Width,
		Height:      c.Window.Height,
		TexturePath: c.Window.TexturePath,
		NoTextures:  c.Window.NoTextures,
		NoShadows:   c.Window.NoShadows,
		Pause:       c.Window.Paused,
	}
}
