// Package tuiocanvas renders live TUIO 2.0 entities (pointers, tokens and
// bounded blobs) onto a 2D canvas with [Ebitengine] or, headlessly, with
// [gg].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	client := tuio.NewClient()
//	canvas := tuiocanvas.NewCanvas(client, nil, tuiocanvas.Options{})
//	tuiocanvas.Run(canvas, tuiocanvas.RunConfig{
//		Title: "TUIO", Width: 1280, Height: 720,
//		Update: func() error { client.Drain(); return nil },
//	})
//
// A network receiver decodes bundles into [tuio.Frame] values and hands them
// to [tuio.Client.Enqueue] from its own goroutine; the Update hook drains
// them on the game loop, where the canvas receives add, update, remove and
// refresh notifications.
//
// # Lifecycle
//
// [Canvas] is a [tuio.Listener]. An add notification creates a record in
// the [Registry] with a new [Visual] and the next [Palette] color; removes
// forget the session id; updates change nothing, because positions are
// re-read from the client on every frame. Refresh notifications decode the
// client's packed sensor dimension into the logical sensor size.
//
// # Projection
//
// Each frame [Project] letterboxes the logical sensor rectangle into the
// canvas, keeping its aspect ratio, and shrinks it by the drawing scale so a
// margin of background stays visible. The calibration backdrop (a black
// rectangle with an optional QR code) covers exactly the sensor area.
//
// # Render loop
//
// Drawing is driven by a [Scheduler]. [TickQueue] is the scheduler used by
// the ebiten host and by tests: every [TickQueue.RunPending] draws one frame.
// [Canvas.Stop] is cooperative; the next tick observes it and ends the loop.
//
// # Surfaces
//
// Draw routines target the small [Surface] interface. [EbitenSurface]
// renders into the window; [GGSurface] renders into memory and can encode
// PNG files.
//
// # Tooling
//
// [LoadScript] replays JSON session scripts, [Screenshots] queues PNG
// captures, and [LoadConfig] reads YAML configuration for the programs under
// cmd/.
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/gogpu/gg
package tuiocanvas
