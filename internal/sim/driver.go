package sim

import (
	"errors"

	"rigid-sim/internal/commands"
	"rigid-sim/internal/frame"
	"rigid-sim/internal/logger"
)

var (
	_ frame.Driver = (*Simulation)(nil)
	_ frame.Scene  = (*Simulation)(nil)
)

// OnStart sets the initial camera pose and sphere quality.
func (s *Simulation) OnStart(v frame.Viewpoint) {
	v.SetViewpoint(s.cfg.View.XYZ, s.cfg.View.HPR)
	v.SetSphereQuality(s.cfg.View.SphereQuality)
}

// OnStep steps the simulation once.
func (s *Simulation) OnStep(paused bool) error {
	return s.Step(paused)
}

// OnCommand runs the command bound to code. Unbound keys are ignored.
func (s *Simulation) OnCommand(code int) {
	err := s.commands.Execute(code)
	if err != nil && !errors.Is(err, commands.ErrUnknownCommand) {
		s.log.Logf("command %s: %v", commands.KeyName(code), err)
	}
}

func defaultCommands(log *logger.Logger) *commands.Registry {
	r := commands.NewRegistry()
	r.Register('a', "ok", func() error {
		log.Log("ok")
		return nil
	})
	r.Register(' ', "newline", func() error {
		log.Log("")
		return nil
	})
	return r
}
