package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rigid-sim/internal/frame"
	"rigid-sim/internal/sim"
)

func TestDefault_MatchesSimulationDefaults(t *testing.T) {
	got, err := Default().Sim()
	if err != nil {
		t.Fatalf("Sim: %v", err)
	}
	if want := sim.DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sim() = %+v, want %+v", got, want)
	}
	if got := Default().Frame(); got != frame.DefaultOptions() {
		t.Errorf("Frame() = %+v, want %+v", got, frame.DefaultOptions())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Validate(Default()) = %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "sim.json")
	c := Default()
	c.Simulation.StepSize = 0.005
	c.Contact.MuInfinite = false
	c.Contact.Mu = 0.6
	c.Contact.SoftCFM = 0.01
	c.Window.NoShadows = true
	if err := Save(path, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("Load = %+v, want %+v", got, c)
	}
	s, err := got.Sim()
	if err != nil {
		t.Fatal(err)
	}
	if s.StepSize != 0.005 || s.Contact.Mu != 0.6 || s.Contact.SoftCFM != 0.01 {
		t.Errorf("Sim() step %v mu %v soft_cfm %v", s.StepSize, s.Contact.Mu, s.Contact.SoftCFM)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	if err := os.WriteFile(path, []byte(`{"contact": {"bounce": 0.5}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Contact.Bounce != 0.5 || c.Contact.MaxContacts != 10 || c.Simulation.StepSize != 0.01 {
		t.Errorf("Load = %+v", c)
	}
	s, _ := c.Sim()
	if !math.IsInf(s.Contact.Mu, 1) {
		t.Errorf("Mu = %v, want +Inf", s.Contact.Mu)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil || !reflect.DeepEqual(c, Default()) {
		t.Errorf("Load(missing) = %+v, %v; want defaults", c, err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(malformed) should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RIGIDSIM_STEP", "0.02")
	t.Setenv("RIGIDSIM_GRAVITY", "-1.62")
	t.Setenv("RIGIDSIM_PAUSED", "true")
	t.Setenv("RIGIDSIM_TEXTURES", "assets/tex")
	t.Setenv("RIGIDSIM_LOG", "")

	c := Default()
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Simulation.StepSize != 0.02 || c.Simulation.Gravity != -1.62 || !c.Window.Paused || c.Window.TexturePath != "assets/tex" {
		t.Errorf("ApplyEnv = %+v", c)
	}
	if c.LogPath != Default().LogPath {
		t.Errorf("empty RIGIDSIM_LOG should keep %q, got %q", Default().LogPath, c.LogPath)
	}

	t.Setenv("RIGIDSIM_STEP", "fast")
	if err := c.ApplyEnv(); err == nil {
		t.Error("ApplyEnv with a bad float should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.Simulation.StepSize = 0 }},
		{"no contacts", func(c *Config) { c.Contact.MaxContacts = 0 }},
		{"negative mu", func(c *Config) { c.Contact.Mu = -1 }},
		{"bounce above one", func(c *Config) { c.Contact.Bounce = 1.5 }},
		{"negative soft cfm", func(c *Config) { c.Contact.SoftCFM = -0.01 }},
		{"no window", func(c *Config) { c.Window.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestMustCopy(t *testing.T) {
	var v View
	mustCopy(&v, &sim.View{XYZ: [3]float32{1, 2, 3}, SphereQuality: 4})
	if v.XYZ != [3]float32{1, 2, 3} || v.SphereQuality != 4 {
		t.Errorf("copied view = %+v", v)
	}

	defer func() {
		if recover() == nil {
			t.Error("copy into an unaddressable value should panic")
		}
	}()
	mustCopy(View{}, &sim.View{})
}
