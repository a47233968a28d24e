// Command tuiosnap renders a TUIO 2.0 session headlessly and writes the
// final frame as a PNG. It needs no window or GPU, which makes it usable in
// CI to capture reference images.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/phanxgames/tuiocanvas"
	"github.com/phanxgames/tuiocanvas/sim"
	"github.com/phanxgames/tuiocanvas/tuio"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	scriptPath := flag.String("script", "", "Replay a JSON session script instead of the simulator")
	seed := flag.Uint64("seed", 1, "Simulator seed")
	frames := flag.Int("frames", 120, "Frames to render (simulator mode)")
	width := flag.Int("width", 0, "Override the configured width")
	height := flag.Int("height", 0, "Override the configured height")
	out := flag.String("out", "tuiosnap.png", "Output PNG path")
	flag.Parse()

	cfg := tuiocanvas.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tuiocanvas.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	tuiocanvas.SetLogger(cfg.NewLogger(os.Stderr))

	font, err := tuiocanvas.DefaultLabelFont()
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	surface, err := tuiocanvas.NewGGSurface(cfg.Window.Width, cfg.Window.Height, font)
	if err != nil {
		log.Fatalf("Failed to create surface: %v", err)
	}
	defer surface.Close()

	client := tuio.NewClient()
	ticks := tuiocanvas.NewTickQueue()
	canvas := tuiocanvas.NewCanvas(client, ticks, cfg.CanvasOptions())
	canvas.Mount(surface)
	canvas.Start()
	defer canvas.Destroy()

	shots := tuiocanvas.NewScreenshots(cfg.Window.ScreenshotDir)

	if *scriptPath != "" {
		player, err := tuiocanvas.LoadScriptFile(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to load session script: %v", err)
		}
		hooks := tuiocanvas.ScriptHooks{
			Frame:      client.Apply,
			Screenshot: shots.Queue,
			Correlate: func(id uint32, u uuid.UUID) {
				canvas.CorrelateToken(id, u)
			},
		}
		for !player.Done() {
			player.Step(hooks)
			ticks.RunPending()
			shots.Flush(surface.Image())
		}
	} else {
		simCfg := sim.DefaultConfig()
		simCfg.Seed = *seed
		gen := sim.NewGenerator(simCfg)
		for range *frames {
			client.Apply(gen.Next())
			ticks.RunPending()
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	if err := surface.EncodePNG(f); err != nil {
		f.Close()
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %s (%d frames drawn)", *out, canvas.FramesDrawn())
}
