// Command rigidsim drops a scene of spheres, boxes and capsules onto a ground
// plane and steps it at a fixed rate. It runs in a raylib window, in the
// terminal, or headless for a fixed number of steps.
//
// Usage:
//
//	rigidsim [-config file] [-scene file] [-viewer raylib|console|headless] [-steps n]
//	         [-notex] [-noshadow] [-pause] [-texturepath dir]
//
// Keys: Ctrl+P pauses, Ctrl+O steps once while paused, Ctrl+X quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"rigid-sim/internal/config"
	"rigid-sim/internal/console"
	"rigid-sim/internal/env"
	"rigid-sim/internal/frame"
	"rigid-sim/internal/logger"
	"rigid-sim/internal/scene"
	"rigid-sim/internal/sim"
	"rigid-sim/internal/viewer"
)

var errUnknownViewer = errors.New("unknown viewer")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "rigidsim:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	// Run-loop switches use drawstuff spelling and may appear anywhere.
	opts, rest, err := frame.ParseOptions(frame.Options{}, args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("rigidsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath, "config file (JSON); missing means defaults")
	scenePath := fs.String("scene", "", "scene file (YAML); overrides the config's scene_path")
	viewerName := fs.String("viewer", "raylib", "raylib, console or headless")
	steps := fs.Int("steps", 1000, "frames to run with -viewer headless")
	envPath := fs.String("env", ".env", "environment file; the shell environment wins")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	if err := env.Load(*envPath); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *scenePath != "" {
		cfg.ScenePath = *scenePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	simCfg, err := cfg.Sim()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	opts = merge(cfg.Frame(), opts)

	log := logger.New(cfg.LogPath)
	s := sim.New(simCfg, log)
	if err := s.Initialize(); err != nil {
		return err
	}
	defer s.Shutdown()

	if cfg.ScenePath != "" {
		f, err := scene.Load(cfg.ScenePath)
		if err != nil {
			return err
		}
		objs, err := scene.Build(s, f)
		if err != nil {
			return err
		}
		log.Logf("scene %s: %d objects", cfg.ScenePath, len(objs))
	}

	status := func() string {
		st := s.Stats()
		return fmt.Sprintf("t=%.2f steps=%d pairs=%d contacts=%d", st.Time, st.Steps, st.Pairs, st.Contacts)
	}

	switch *viewerName {
	case "raylib":
		return viewer.Run(s, s, opts, viewer.Settings{
			ShowFPS:      cfg.Window.ShowFPS,
			ShowMemAlloc: cfg.Window.ShowMemAlloc,
			Status:       status,
			Log:          log,
		})
	case "console":
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		return console.Run(ctx, screen, s, s, opts, console.Settings{Status: status})
	case "headless":
		n, err := frame.RunHeadless(ctx, s, *steps, opts)
		log.Logf("headless: %d frames, %s", n, status())
		return err
	}
	return fmt.Errorf("%w: %q", errUnknownViewer, *viewerName)
}

// merge applies the command-line switches in cli over the configured options.
// Switches can only turn things on.
func merge(base, cli frame.Options) frame.Options {
	base.NoTextures = base.NoTextures || cli.NoTextures
	base.NoShadows = base.NoShadows || cli.NoShadows
	base.Pause = base.Pause || cli.Pause
	if cli.TexturePath != "" {
		base.TexturePath = cli.TexturePath
	}
	return base
}
