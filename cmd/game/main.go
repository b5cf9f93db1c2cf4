package main

import (
	"flag"
	"fmt"
	"os"

	"drag-sandbox/internal/commands"
	"drag-sandbox/internal/debug"
	"drag-sandbox/internal/engineconfig"
	"drag-sandbox/internal/env"
	"drag-sandbox/internal/graphics"
	"drag-sandbox/internal/logger"
	"drag-sandbox/internal/pick"
	"drag-sandbox/internal/scene"
	"drag-sandbox/internal/terminal"
	"drag-sandbox/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configPath := flag.String("config", engineconfig.EngineConfigPath, "engine preferences file (YAML)")
	writeDefaults := flag.Bool("write-config", false, "write default preferences to -config and exit")
	flag.Parse()

	log := logger.New()

	if *writeDefaults {
		if err := engineconfig.SaveFile(*configPath, engineconfig.Default()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if set, err := env.Load(".env"); err != nil {
		log.Logf("env: %v", err)
	} else if len(set) > 0 {
		log.Logf("env: loaded %d variables from .env", len(set))
	}

	prefs, err := engineconfig.LoadFile(*configPath)
	if err != nil {
		log.Logf("config: %v", err)
		prefs = engineconfig.Default()
	}
	opts, err := options(prefs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sb := world.New(opts, log)
	sc := world.Populate(sb)

	scn := scene.New(sb, prefs.Window.FovY)
	scn.SetGridVisible(prefs.GridVisible)
	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS
	dbg.ShowDragInfo = prefs.ShowDragInfo

	reg := commands.NewRegistry()
	(&console{log: log, sandbox: sb, scene: sc, view: scn, debug: dbg, prefs: &prefs, configPath: *configPath}).register(reg)
	term := terminal.New(log, reg)

	update := func(dt float64) {
		term.Update()
		scn.SetKeysBlocked(term.IsOpen())
		scn.Update(dt)
	}
	draw := func() {
		scn.Draw()
		dbg.Draw(sb.Status())
		term.Draw()
	}
	graphics.Run(graphics.Window{
		Title:      "drag sandbox",
		Width:      prefs.Window.Width,
		Height:     prefs.Window.Height,
		Fullscreen: prefs.Window.Fullscreen,
		TargetFPS:  prefs.Window.TargetFPS,
	}, update, draw)
}

// options turns preferences into sandbox options. The viewport is corrected on the first frame.
func options(p engineconfig.EnginePrefs) (world.Options, error) {
	oc, err := p.OrbitConfig()
	if err != nil {
		return world.Options{}, err
	}
	dc, err := p.DragConfig()
	if err != nil {
		return world.Options{}, err
	}
	return world.Options{
		Orbit:   oc,
		Drag:    dc,
		Physics: p.PhysicsConfig(),
		Projection: pick.Projection{
			FovY:   mgl64.DegToRad(p.Window.FovY),
			Width:  float64(p.Window.Width),
			Height: float64(p.Window.Height),
		},
		DeadZone:     p.Drag.DeadZone,
		FocusSeconds: p.Camera.FocusSeconds,
	}, nil
}
