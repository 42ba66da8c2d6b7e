package viewer

import (
	"fmt"
	"runtime"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	logFontSize       = 14
	logLines          = 6
	// refreshInterval: FPS/Mem text is only rebuilt every N frames.
	refreshInterval = 30
)

// overlay draws the FPS and memory counters (top-right), the status line
// and recent log lines (top-left).
type overlay struct {
	set        Settings
	frameCount uint32
	fpsText    string
	memText    string
	memStats   runtime.MemStats
}

func newOverlay(set Settings) *overlay {
	return &overlay{set: set}
}

func (o *overlay) draw(paused bool) {
	o.frameCount++
	refresh := o.frameCount%refreshInterval == 0 ||
		(o.set.ShowFPS && o.fpsText == "") ||
		(o.set.ShowMemAlloc && o.memText == "")

	screenW := int32(rl.GetScreenWidth())
	y := int32(overlayPadding)
	if o.set.ShowFPS {
		if refresh {
			o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(o.fpsText, screenW, y)
		y += overlayLineHeight
	}
	if o.set.ShowMemAlloc {
		if refresh {
			runtime.ReadMemStats(&o.memStats)
			o.memText = fmt.Sprintf("Mem: %.2f MiB", float64(o.memStats.Alloc)/(1024*1024))
		}
		drawRight(o.memText, screenW, y)
	}

	y = overlayPadding
	status := ""
	if o.set.Status != nil {
		status = o.set.Status()
	}
	if paused {
		status = strings.TrimSpace("[paused] " + status)
	}
	if status != "" {
		rl.DrawText(status, overlayPadding, y, overlayFontSize, rl.RayWhite)
		y += overlayLineHeight
	}
	if o.set.Log != nil {
		for _, line := range o.set.Log.Tail(logLines) {
			rl.DrawText(line, overlayPadding, y, logFontSize, rl.Fade(rl.RayWhite, 0.7))
			y += logFontSize + 2
		}
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, overlayFontSize)
	rl.DrawText(text, screenW-w-overlayPadding, y, overlayFontSize, rl.Green)
}
