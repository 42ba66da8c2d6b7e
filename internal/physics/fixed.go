package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

var unitAxes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// FixedJoint locks the relative position and orientation of two bodies, or
// of one body and the environment.
type FixedJoint struct {
	jointBase
	anchor1 mgl64.Vec3 // body1 frame
	anchor2 mgl64.Vec3 // body2 frame, or world when body2 is nil
	qrel    mgl64.Quat
}

// NewFixedJoint creates a persistent fixed joint in w (group may be nil).
func NewFixedJoint(w *World, g *JointGroup) *FixedJoint {
	j := &FixedJoint{qrel: mgl64.QuatIdent()}
	j.init(w, g, j)
	return j
}

// Type implements Joint.
func (j *FixedJoint) Type() JointType {
	return JointTypeFixed
}

// SetFixed records the current relative pose as the one to maintain. Call
// it after Attach.
func (j *FixedJoint) SetFixed() {
	p1, q1 := bodyPose(j.b1)
	p2, q2 := bodyPose(j.b2)
	if j.b2 == nil {
		p2 = p1
	}
	j.anchor1 = q1.Inverse().Rotate(p2.Sub(p1))
	j.anchor2 = mgl64.Vec3{}
	if j.b2 == nil {
		j.anchor2 = p2
	}
	j.qrel = q1.Inverse().Mul(q2)
}

func (j *FixedJoint) appendRows(rows []row, info *stepInfo) []row {
	if j.b1 == nil && j.b2 == nil {
		return rows
	}
	p1, q1 := bodyPose(j.b1)
	p2, q2 := bodyPose(j.b2)
	r1 := q1.Rotate(j.anchor1)
	r2 := q2.Rotate(j.anchor2)
	if j.b2 == nil {
		p2, r2 = j.anchor2, mgl64.Vec3{}
	}
	err := p1.Add(r1).Sub(p2.Add(r2))
	for k, e := range unitAxes {
		r := newRow(j.b1, j.b2, e, r1, r2)
		r.rhs = -info.erp * err[k] / info.dt
		r.cfm = info.cfm
		rows = append(rows, r)
	}

	qerr := q1.Mul(j.qrel).Mul(q2.Inverse())
	theta := qerr.V.Mul(2)
	if qerr.W < 0 {
		theta = theta.Mul(-1)
	}
	for k, e := range unitAxes {
		r := angularRow(j.b1, j.b2, e)
		r.rhs = -info.erp * theta[k] / info.dt
		r.cfm = info.cfm
		rows = append(rows, r)
	}
	return rows
}

// BallJoint keeps one anchor point of two bodies coincident.
type BallJoint struct {
	jointBase
	anchor1 mgl64.Vec3
	anchor2 mgl64.Vec3
}

// NewBallJoint creates a persistent ball-and-socket joint in w.
func NewBallJoint(w *World, g *JointGroup) *BallJoint {
	j := &BallJoint{}
	j.init(w, g, j)
	return j
}

// Type implements Joint.
func (j *BallJoint) Type() JointType {
	return JointTypeBall
}

// SetAnchor sets the joint anchor in world coordinates. Call it after Attach.
func (j *BallJoint) SetAnchor(p mgl64.Vec3) {
	p1, q1 := bodyPose(j.b1)
	p2, q2 := bodyPose(j.b2)
	j.anchor1 = q1.Inverse().Rotate(p.Sub(p1))
	if j.b2 == nil {
		j.anchor2 = p
		return
	}
	j.anchor2 = q2.Inverse().Rotate(p.Sub(p2))
}

// Anchor returns the world anchor as seen from the first body.
func (j *BallJoint) Anchor() mgl64.Vec3 {
	p1, q1 := bodyPose(j.b1)
	return p1.Add(q1.Rotate(j.anchor1))
}

func (j *BallJoint) appendRows(rows []row, info *stepInfo) []row {
	if j.b1 == nil && j.b2 == nil {
		return rows
	}
	p1, q1 := bodyPose(j.b1)
	p2, q2 := bodyPose(j.b2)
	r1 := q1.Rotate(j.anchor1)
	r2 := q2.Rotate(j.anchor2)
	if j.b2 == nil {
		p2, r2 = j.anchor2, mgl64.Vec3{}
	}
	err := p1.Add(r1).Sub(p2.Add(r2))
	for k, e := range unitAxes {
		r := newRow(j.b1, j.b2, e, r1, r2)
		r.rhs = -info.erp * err[k] / info.dt
		r.cfm = info.cfm
		rows = append(rows, r)
	}
	return rows
}
