package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
}

// Run starts the window and main loop. Each frame it calls update with the frame time in seconds
// (input, camera, physics), then clears the screen and calls draw.
// This keeps the graphics layer separate from the simulation.
func Run(win Window, update func(dt float64), draw func()) {
	width, height := int32(win.Width), int32(win.Height)
	if win.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(width, height, win.Title)
	defer rl.CloseWindow()

	if win.TargetFPS > 0 {
		rl.SetTargetFPS(int32(win.TargetFPS))
	}

	for !rl.WindowShouldClose() {
		update(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(250, 235, 215, 255)) // antique white
		draw()
		rl.EndDrawing()
	}
}
