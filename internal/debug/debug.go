package debug

import (
	"fmt"
	"runtime"

	"drag-sandbox/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the on-screen overlays. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowDragInfo bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Draw renders the enabled overlays. Call after the scene in the draw loop.
// FPS and memory go top-right in green; the drag readout goes top-left.
func (d *Debug) Draw(status world.Status) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, y)
	}

	if d.ShowDragInfo {
		d.drawDragInfo(status)
	}
}

// drawDragInfo is refreshed every frame; the impulse changes each tick while dragging.
func (d *Debug) drawDragInfo(st world.Status) {
	if !st.Dragging {
		rl.DrawText("drag: idle", padding, padding, fontSize, rl.DarkGray)
		return
	}
	im := st.Impulse
	lines := [...]string{
		fmt.Sprintf("drag: body %v", st.Body),
		fmt.Sprintf("impulse: %.4f %.4f %.4f", im.Linear.X(), im.Linear.Y(), im.Linear.Z()),
		fmt.Sprintf("torque:  %.4f %.4f %.4f", im.Angular.X(), im.Angular.Y(), im.Angular.Z()),
	}
	for i, l := range lines {
		rl.DrawText(l, padding, padding+int32(i)*lineHeight, fontSize, rl.DarkGray)
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	x := int32(rl.GetScreenWidth()) - rl.MeasureText(text, fontSize) - padding
	rl.DrawText(text, x, y, fontSize, rl.Green)
}
