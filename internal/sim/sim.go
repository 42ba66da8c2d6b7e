// Package sim owns a rigid-body world and steps it: world and space
// lifecycle, the contact policy applied to every colliding pair, and the
// fixed-step driver called once per frame.
package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rigid-sim/internal/commands"
	"rigid-sim/internal/logger"
	"rigid-sim/internal/physics"
)

// Stats counts what the simulation has done.
type Stats struct {
	// Steps is the number of non-paused steps completed.
	Steps uint64
	// Time is the simulated time in seconds.
	Time float64
	// Pairs is the number of candidate pairs seen by the last step.
	Pairs int
	// Contacts is the number of contact constraints created by the last step.
	Contacts int
	// TotalContacts is the number of contact constraints created since Initialize.
	TotalContacts uint64
}

// Simulation bundles the world, the collision space, the ground plane and
// the per-step contact group.
type Simulation struct {
	cfg Config
	log *logger.Logger

	world    *physics.World
	space    *physics.Space
	ground   *physics.Geom
	contacts *physics.JointGroup

	objects  []*Object
	commands *commands.Registry
	stats    Stats
}

// New returns an uninitialized simulation. A nil log is replaced by a
// memory-only logger.
func New(cfg Config, log *logger.Logger) *Simulation {
	if log == nil {
		log = logger.New("")
	}
	s := &Simulation{cfg: cfg, log: log}
	s.commands = defaultCommands(log)
	return s
}

// Initialize creates the world, the space, the contact group and the ground
// plane z = 0.
func (s *Simulation) Initialize() error {
	if s.world != nil {
		return ErrAlreadyInitialized
	}
	s.world = physics.NewWorld()
	s.world.SetGravity(mgl64.Vec3{0, 0, s.cfg.Gravity})
	s.world.ERP = s.cfg.ERP
	s.world.CFM = s.cfg.CFM
	if s.cfg.Iterations > 0 {
		s.world.Iterations = s.cfg.Iterations
	}
	s.space = physics.NewHashSpace(s.cfg.CellSize)
	s.contacts = physics.NewJointGroup(max(s.cfg.Contact.MaxContacts, 1) * 16)
	s.ground = physics.NewPlane(s.space, 0, 0, 1, 0)
	s.stats = Stats{}
	s.log.Logf("simulation initialized: step %gs gravity %g", s.cfg.StepSize, s.cfg.Gravity)
	return nil
}

// Shutdown destroys the space with every geometry in it, then the contact
// group, then the world with every body and joint. Objects become invalid.
// It does nothing when the simulation is not initialized.
func (s *Simulation) Shutdown() {
	if s.world == nil {
		return
	}
	s.space.Destroy()
	s.contacts.Destroy()
	s.world.Destroy()
	s.space, s.ground, s.contacts, s.world = nil, nil, nil, nil
	s.objects = nil
	s.log.Logf("simulation shut down after %d steps", s.stats.Steps)
}

// Initialized reports whether Initialize has run without a later Shutdown.
func (s *Simulation) Initialized() bool {
	return s.world != nil
}

// Step advances the simulation by one fixed increment unless paused:
// collision detection over the whole space, one world step, then the
// contact group is emptied whatever the outcome of the world step.
func (s *Simulation) Step(paused bool) error {
	if s.world == nil {
		return ErrNotInitialized
	}
	if paused {
		return nil
	}
	s.stats.Pairs = 0
	s.stats.Contacts = 0
	s.space.Collide(nil, s.nearCallback)
	err := s.world.Step(s.cfg.StepSize)
	s.contacts.Empty()
	if err != nil {
		return fmt.Errorf("step %d: %w", s.stats.Steps+1, err)
	}
	s.stats.Steps++
	s.stats.Time = s.world.Time()
	return nil
}

// Stats returns the step and contact counters.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Config returns the configuration the simulation was created with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// World returns the physics world, or nil before Initialize.
func (s *Simulation) World() *physics.World { return s.world }

// Space returns the collision space, or nil before Initialize.
func (s *Simulation) Space() *physics.Space { return s.space }

// Ground returns the ground plane, or nil before Initialize.
func (s *Simulation) Ground() *physics.Geom { return s.ground }

// ContactGroup returns the per-step contact group, or nil before Initialize.
func (s *Simulation) ContactGroup() *physics.JointGroup { return s.contacts }

// Objects returns the live objects in creation order.
func (s *Simulation) Objects() []*Object { return s.objects }

// Commands returns the registry OnCommand dispatches to.
func (s *Simulation) Commands() *commands.Registry { return s.commands }

// Logger returns the simulation's logger.
func (s *Simulation) Logger() *logger.Logger { return s.log }
