package main

import (
	"flag"
	"fmt"

	"drag-sandbox/internal/commands"
	"drag-sandbox/internal/debug"
	"drag-sandbox/internal/drag"
	"drag-sandbox/internal/engineconfig"
	"drag-sandbox/internal/logger"
	"drag-sandbox/internal/scene"
	"drag-sandbox/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// console bundles what the console commands act on.
type console struct {
	log        *logger.Logger
	sandbox    *world.Sandbox
	scene      world.Scene
	view       *scene.Scene
	debug      *debug.Debug
	prefs      *engineconfig.EnginePrefs
	configPath string
}

func onOff(args []string) (bool, error) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return false, fmt.Errorf("want on or off")
	}
	return args[0] == "on", nil
}

func (c *console) register(reg *commands.Registry) {
	reg.Register("help", "list commands", nil, func([]string) error {
		for _, l := range reg.Help() {
			c.log.Log(l)
		}
		return nil
	})

	reg.Register("focus", "ease the camera onto the box", nil, func([]string) error {
		c.sandbox.FocusDragged()
		return nil
	})

	reg.Register("reset", "put the box back at rest above the floor", nil, func([]string) error {
		return c.sandbox.ResetBody(c.scene.Box, mgl64.Vec3{0, 0.05, 0})
	})

	cur := c.sandbox.DragConfig()
	fs := flag.NewFlagSet("drag", flag.ContinueOnError)
	gain := fs.Float64("gain", cur.Gain, "impulse gain")
	clamp := fs.Float64("clamp", cur.Clamp, "max offset length per tick")
	zoom := fs.Float64("zoom", cur.ZoomScale, "pixels to world units at the grab depth")
	mode := fs.String("mode", cur.Mode.String(), "distance or ray")
	reg.Register("drag", "-gain N -clamp N -zoom N -mode distance|ray", fs, func([]string) error {
		m, err := drag.ParseTargetMode(*mode)
		if err != nil {
			return err
		}
		cfg := drag.Config{ZoomScale: *zoom, Clamp: *clamp, Gain: *gain, Mode: m}
		c.sandbox.SetDragConfig(cfg)
		c.prefs.Drag.Gain, c.prefs.Drag.Clamp, c.prefs.Drag.ZoomScale, c.prefs.Drag.TargetMode = cfg.Gain, cfg.Clamp, cfg.ZoomScale, m.String()
		c.log.Logf("drag: gain %.3g clamp %.3g zoom %.3g mode %v", cfg.Gain, cfg.Clamp, cfg.ZoomScale, m)
		return nil
	})

	reg.Register("grid", "on|off", nil, func(args []string) error {
		v, err := onOff(args)
		if err != nil {
			return err
		}
		c.view.SetGridVisible(v)
		c.prefs.GridVisible = v
		return nil
	})

	reg.Register("fps", "on|off", nil, func(args []string) error {
		v, err := onOff(args)
		if err != nil {
			return err
		}
		c.debug.ShowFPS = v
		c.prefs.ShowFPS = v
		return nil
	})

	reg.Register("save", "write current preferences to the config file", nil, func([]string) error {
		if err := engineconfig.SaveFile(c.configPath, *c.prefs); err != nil {
			return err
		}
		c.log.Logf("saved %s", c.configPath)
		return nil
	})
}
