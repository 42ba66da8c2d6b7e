// Package console runs a simulation in a terminal. Bodies are drawn as a
// side view (x to the right, z up) seen from the driver's viewpoint.
package console

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"rigid-sim/internal/frame"
	"rigid-sim/internal/physics"
)

// DefaultInterval is the frame period when Settings.Interval is zero.
const DefaultInterval = time.Second / 30

// DefaultScale is the number of columns per world unit. Rows are twice as
// tall as columns are wide, so a unit is DefaultScale/2 rows.
const DefaultScale = 8

// Settings configure the terminal view.
type Settings struct {
	Interval time.Duration
	Scale    float64
	// Status, when set, is printed on the top line each frame.
	Status func() string
}

var (
	groundStyle = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	statusStyle = tcell.StyleDefault.Reverse(true)
	geomStyles  = map[physics.Class]tcell.Style{
		physics.SphereClass:  tcell.StyleDefault.Foreground(tcell.ColorOrange),
		physics.BoxClass:     tcell.StyleDefault.Foreground(tcell.ColorSteelBlue),
		physics.CapsuleClass: tcell.StyleDefault.Foreground(tcell.ColorRed),
	}
	geomRunes = map[physics.Class]rune{
		physics.SphereClass:  'o',
		physics.BoxClass:     '#',
		physics.CapsuleClass: '8',
	}
)

// Run drives d on an initialized screen until Ctrl+X is pressed, ctx is done
// or OnStep fails. The caller owns the screen and calls Fini.
func Run(ctx context.Context, screen tcell.Screen, d frame.Driver, scene frame.Scene, opts frame.Options, set Settings) error {
	if set.Interval <= 0 {
		set.Interval = DefaultInterval
	}
	if set.Scale <= 0 {
		set.Scale = DefaultScale
	}

	var view frame.Camera
	d.OnStart(&view)
	v := viewport{originX: float64(view.XYZ[0]), scale: set.Scale}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	tick := time.NewTicker(set.Interval)
	defer tick.Stop()

	st := frame.NewState(opts)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				handleKey(st, d, ev)
			case *tcell.EventResize:
				screen.Sync()
			}
			if st.Exit {
				return nil
			}
		case <-tick.C:
			if err := st.Frame(d); err != nil {
				return fmt.Errorf("frame %d: %w", st.Frames, err)
			}
			status := ""
			if set.Status != nil {
				status = set.Status()
			}
			if st.Paused {
				status += " [paused]"
			}
			draw(screen, scene, v, status)
			screen.Show()
		}
	}
}

// handleKey maps terminal keys onto frame key codes. Terminals report Ctrl
// combinations as their own key values.
func handleKey(st *frame.State, d frame.Driver, ev *tcell.EventKey) {
	switch k := ev.Key(); {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		st.Key(d, int(k-tcell.KeyCtrlA)+'a', true)
	case k == tcell.KeyRune:
		st.Key(d, int(ev.Rune()), ev.Modifiers()&tcell.ModCtrl != 0)
	}
}

type viewport struct {
	originX float64
	scale   float64
}

// draw renders one frame of scene onto screen without showing it.
func draw(screen tcell.Screen, scene frame.Scene, v viewport, status string) {
	screen.Clear()
	w, h := screen.Size()
	groundRow := h - 2
	if v.scale <= 0 {
		v.scale = DefaultScale
	}

	// world coordinates of the center of cell (col, row)
	toWorld := func(col, row int) (x, z float64) {
		x = v.originX + float64(col-w/2)/v.scale
		z = float64(groundRow-row) / (v.scale / 2)
		return x, z
	}

	scene.EachGeom(func(g *physics.Geom) {
		if g.Class() == physics.PlaneClass {
			n, d := g.Plane()
			if n != (mgl64.Vec3{0, 0, 1}) {
				return
			}
			row := groundRow - int(math.Round(d*v.scale/2))
			for col := 0; col < w; col++ {
				screen.SetContent(col, row, '=', nil, groundStyle)
			}
			return
		}
		box := g.AABB()
		c0 := w/2 + int(math.Floor((box.Min[0]-v.originX)*v.scale))
		c1 := w/2 + int(math.Ceil((box.Max[0]-v.originX)*v.scale))
		r0 := groundRow - int(math.Ceil(box.Max[2]*v.scale/2))
		r1 := groundRow - int(math.Floor(box.Min[2]*v.scale/2))
		for row := max(r0, 1); row <= min(r1, h-1); row++ {
			for col := max(c0, 0); col <= min(c1, w-1); col++ {
				x, z := toWorld(col, row)
				if covers(g, x, z) {
					screen.SetContent(col, row, geomRunes[g.Class()], nil, geomStyles[g.Class()])
				}
			}
		}
	})

	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		screen.SetContent(i, 0, r, nil, statusStyle)
	}
}

// covers reports whether the point (x, z) lies inside the silhouette of g
// projected along y.
func covers(g *physics.Geom, x, z float64) bool {
	p := g.Position()
	switch g.Class() {
	case physics.SphereClass:
		return math.Hypot(x-p[0], z-p[2]) <= g.Radius()
	case physics.CapsuleClass:
		a, b := g.Segment()
		return segmentDistance(x, z, a, b) <= g.Radius()
	}
	box := g.AABB()
	return x >= box.Min[0] && x <= box.Max[0] && z >= box.Min[2] && z <= box.Max[2]
}

func segmentDistance(x, z float64, a, b mgl64.Vec3) float64 {
	ax, az := b[0]-a[0], b[2]-a[2]
	t := 0.0
	if l := ax*ax + az*az; l > 0 {
		t = mgl64.Clamp(((x-a[0])*ax+(z-a[2])*az)/l, 0, 1)
	}
	return math.Hypot(x-(a[0]+t*ax), z-(a[2]+t*az))
}
