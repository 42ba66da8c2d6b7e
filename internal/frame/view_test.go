package frame

import (
	"testing"

	"github.com/chewxy/math32"
)

func vecNear(a, b [3]float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > 1e-5 {
			return false
		}
	}
	return true
}

func TestDirection(t *testing.T) {
	tests := []struct {
		hpr  [3]float32
		want [3]float32
	}{
		{[3]float32{0, 0, 0}, [3]float32{1, 0, 0}},
		{[3]float32{90, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{-90, 0, 0}, [3]float32{0, -1, 0}},
		{[3]float32{0, 90, 0}, [3]float32{0, 0, 1}},
		{[3]float32{180, -90, 45}, [3]float32{0, 0, -1}},
	}
	for _, tt := range tests {
		if got := Direction(tt.hpr); !vecNear(got, tt.want) {
			t.Errorf("Direction(%v) = %v, want %v", tt.hpr, got, tt.want)
		}
	}
}

func TestCamera_TargetLooksAtOrigin(t *testing.T) {
	c := Camera{XYZ: [3]float32{0, 2, 0.8}, HPR: [3]float32{-90, 0, 0}}
	if got := c.Target(); !vecNear(got, [3]float32{0, 1, 0.8}) {
		t.Errorf("Target() = %v, want (0, 1, 0.8)", got)
	}
}

func TestSphereSegments(t *testing.T) {
	tests := []struct {
		quality int
		want    int32
	}{
		{-1, 8},
		{1, 8},
		{3, 32},
		{9, 128},
	}
	for _, tt := range tests {
		if r, s := SphereSegments(tt.quality); r != tt.want || s != tt.want {
			t.Errorf("SphereSegments(%d) = %d, %d; want %d", tt.quality, r, s, tt.want)
		}
	}
}
