// Command tuio20canvas opens a window rendering a TUIO 2.0 session. The
// session comes from the built-in simulator or from a JSON session script.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tuiocanvas"
	"github.com/phanxgames/tuiocanvas/sim"
	"github.com/phanxgames/tuiocanvas/tuio"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	scriptPath := flag.String("script", "", "Replay a JSON session script instead of the simulator")
	exitAfter := flag.Bool("exit", false, "Exit once the session script has finished")
	seed := flag.Uint64("seed", 1, "Simulator seed")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg := tuiocanvas.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tuiocanvas.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid -log-level: %v", err)
		}
	}
	tuiocanvas.SetLogger(cfg.NewLogger(os.Stderr))

	client := tuio.NewClient()
	canvas := tuiocanvas.NewCanvas(client, nil, cfg.CanvasOptions())
	shots := tuiocanvas.NewScreenshots(cfg.Window.ScreenshotDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var update func() error
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
		update = func() error {
			player.Step(hooks)
			if *exitAfter && player.Done() && shots.Pending() == 0 {
				return ebiten.Termination
			}
			return nil
		}
	} else {
		simCfg := sim.DefaultConfig()
		simCfg.Seed = *seed
		sim.NewGenerator(simCfg).Start(ctx, client, time.Second/60)
		update = func() error {
			client.Drain()
			return nil
		}
	}

	rc := cfg.RunConfig()
	rc.Screenshots = shots
	rc.Update = update
	if err := tuiocanvas.Run(canvas, rc); err != nil {
		log.Fatal(err)
	}
}
