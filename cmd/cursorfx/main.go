package main

import (
	"flag"
	"log"
	"runtime"

	cursorfx "github.com/gekko3d/cursorfx"
)

func init() {
	// GLFW needs the main goroutine pinned to the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "cursorfx.yaml", "path to the config file; missing file runs on defaults")
	debug := flag.Bool("debug", false, "enable debug logging")
	overlay := flag.Bool("overlay", true, "borderless always-on-top transparent window")
	flag.Parse()

	cfg, notes, err := cursorfx.LoadConfig(*configPath)
	if err != nil {
		log.Printf("config: %v, running on defaults", err)
		cfg = cursorfx.DefaultConfig()
		notes = nil
	}
	for _, n := range notes {
		log.Printf("config: %s", n)
	}

	registry := cursorfx.BuiltinEffects(cfg.Seed)

	modules := []cursorfx.Module{
		cursorfx.LoggingModule{Prefix: "cursorfx", Debug: *debug},
		cursorfx.TimeModule{},
		cursorfx.ConfigModule{Config: cfg},
		cursorfx.WindowModule{
			Width:   cfg.Window.Width,
			Height:  cfg.Window.Height,
			Title:   cfg.Window.Title,
			Overlay: *overlay,
		},
		cursorfx.GpuModule{},
		cursorfx.PointerModule{},
		cursorfx.FieldsModule{Seed: cfg.Seed},
	}
	modules = append(modules, registry.Modules()...)
	modules = append(modules, cursorfx.SyncModule{}, cursorfx.RenderModule{})

	cursorfx.NewApp().UseModules(modules...).Run()
}
