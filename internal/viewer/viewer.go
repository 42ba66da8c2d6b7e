// Package viewer runs a simulation in a raylib window: z-up camera placed by
// the driver's OnStart, textured ground, projected shadows, and a status
// overlay. Key presses go through frame.State.
package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rigid-sim/internal/frame"
	"rigid-sim/internal/logger"
)

// Settings are window extras that do not affect the simulation.
type Settings struct {
	Title        string
	ShowFPS      bool
	ShowMemAlloc bool
	// Status, when set, is drawn in the top-left corner each frame.
	Status func() string
	// Log, when set, has its last lines drawn under the status.
	Log *logger.Logger
}

// Run opens the window and drives d until the window is closed, Ctrl+X is
// pressed or OnStep fails. The step phase of each frame always runs before
// anything is drawn.
func Run(d frame.Driver, scene frame.Scene, opts frame.Options, set Settings) error {
	if set.Title == "" {
		set.Title = "rigidsim"
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), set.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // Ctrl+X or the close button quit
	rl.SetTargetFPS(60)

	var view frame.Camera
	d.OnStart(&view)
	cam := newCamera(&view)

	r := newRenderer(opts, view.SphereQuality)
	defer r.unload()
	ov := newOverlay(set)

	st := frame.NewState(opts)
	for !rl.WindowShouldClose() {
		readKeys(st, d)
		if st.Exit {
			break
		}
		if err := st.Frame(d); err != nil {
			if set.Log != nil {
				set.Log.Logf("viewer stopped after %d frames: %v", st.Frames, err)
			}
			return fmt.Errorf("frame %d: %w", st.Frames, err)
		}
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			rl.UpdateCamera(&cam, rl.CameraFree)
		}

		rl.BeginDrawing()
		r.draw(cam, scene)
		ov.draw(st.Paused)
		rl.EndDrawing()
	}
	if set.Log != nil {
		set.Log.Logf("viewer closed after %d frames", st.Frames)
	}
	return nil
}

func newCamera(v *frame.Camera) rl.Camera3D {
	t := v.Target()
	return rl.Camera3D{
		Position:   rl.NewVector3(v.XYZ[0], v.XYZ[1], v.XYZ[2]),
		Target:     rl.NewVector3(t[0], t[1], t[2]),
		Up:         rl.NewVector3(0, 0, 1),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

// readKeys forwards this frame's key presses. Ctrl combinations arrive as
// key codes (lowered to ASCII); everything else as typed characters.
func readKeys(st *frame.State, d frame.Driver) {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if ctrl && k >= rl.KeyA && k <= rl.KeyZ {
			st.Key(d, int(k-rl.KeyA)+'a', true)
		}
	}
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		if !ctrl {
			st.Key(d, int(c), false)
		}
	}
}
