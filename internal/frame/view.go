package frame

import (
	"github.com/chewxy/math32"
)

const degToRad = math32.Pi / 180

// Direction returns the unit look direction of a z-up camera with heading
// hpr[0] about z (0 looks along +x) and pitch hpr[1] above the horizon.
// Roll does not change the direction.
func Direction(hpr [3]float32) [3]float32 {
	sh, ch := math32.Sincos(hpr[0] * degToRad)
	sp, cp := math32.Sincos(hpr[1] * degToRad)
	return [3]float32{ch * cp, sh * cp, sp}
}

// Target returns the point one unit in front of the camera.
func (c *Camera) Target() [3]float32 {
	d := Direction(c.HPR)
	return [3]float32{c.XYZ[0] + d[0], c.XYZ[1] + d[1], c.XYZ[2] + d[2]}
}

// SphereSegments maps a sphere quality level to ring and slice counts. Each
// level doubles the tessellation; levels below 1 count as 1.
func SphereSegments(quality int) (rings, slices int32) {
	quality = min(max(quality, 1), 5)
	n := int32(4) << quality
	return n, n
}
