package sim

import (
	"rigid-sim/internal/physics"
)

func (s *Simulation) nearCallback(_ any, g1, g2 *physics.Geom) {
	s.stats.Pairs++
	n := s.resolveContact(g1, g2)
	s.stats.Contacts += n
	s.stats.TotalContacts += uint64(n)
}

// resolveContact creates contact constraints for one candidate pair and
// returns how many it created. Bodies already joined by a non-contact joint
// are skipped before any narrow-phase work.
func (s *Simulation) resolveContact(g1, g2 *physics.Geom) int {
	b1, b2 := g1.Body(), g2.Body()
	if b1 != nil && b2 != nil && physics.AreConnectedExcluding(b1, b2, physics.JointTypeContact) {
		return 0
	}
	p := s.cfg.Contact
	if p.GroundOnly && g1 != s.ground && g2 != s.ground {
		return 0
	}

	points := physics.Collide(g1, g2, p.MaxContacts)
	surface := s.surface()
	for _, cg := range points {
		j := physics.NewContactJoint(s.world, s.contacts, physics.Contact{Surface: surface, Geom: cg})
		j.Attach(b1, b2)
	}
	return len(points)
}

func (s *Simulation) surface() physics.Surface {
	p := s.cfg.Contact
	mode := physics.ContactBounce
	if p.Approx1 {
		mode |= physics.ContactApprox1
	}
	if p.SoftCFM > 0 {
		mode |= physics.ContactSoftCFM
	}
	return physics.Surface{
		Mode:      mode,
		Mu:        p.Mu,
		Bounce:    p.Bounce,
		BounceVel: p.BounceVel,
		SoftCFM:   p.SoftCFM,
	}
}
