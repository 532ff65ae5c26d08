// Package lumen is a generative animation toolkit for [Ebitengine] and other
// 2D targets: a connected particle field, animated text (typewriter, word
// rotator, count-up), and pointer-reactive tilt and magnet effects, plus the
// gradient backdrops that sit behind them.
//
// # Quick start
//
// Every engine binds to a [Host], which owns a logical [Clock], the pointer
// and resize listeners, and the surfaces particle fields draw on. [Run]
// creates a window and drives the host from the Ebitengine loop:
//
//	host := lumen.NewHost()
//	surface := lumen.NewImageSurface(960, 540)
//	field, _ := lumen.NewParticleField("hero", lumen.DefaultFieldConfig())
//	_ = field.Start(host, surface)
//
//	cfg, _ := lumen.ParseRunConfig()
//	lumen.Run(host, cfg, func(screen *ebiten.Image) {
//		surface.DrawTo(screen)
//	})
//
// Without a window, advance the host yourself. Nothing reads wall time, so a
// host stepped by fixed increments replays identically:
//
//	host.Update(16 * time.Millisecond)
//
// # Engines
//
// Each engine is constructed from a config struct with a DefaultXConfig
// starting point, validated up front, and mounted with Start. Stop releases
// every frame request, timer, and listener the engine holds; it is safe to
// call more than once, and a stopped engine never touches its host again.
//
//   - [ParticleField] spawns drifting particles on a [Surface], reflects them
//     off its edges, cycles their hue, and joins near pairs with lines whose
//     alpha fades with distance.
//   - [Typewriter] types, holds, and deletes each candidate string in turn.
//   - [WordRotator] swaps words on a fixed interval with a slide-in.
//   - [CountUp] eases a number from start to target once, with locale digit
//     grouping.
//   - [Tilt] rotates an element toward the pointer in 3D and [Magnet] pulls it
//     toward the pointer; both smooth with a damped spring.
//
// # Surfaces
//
// A [Surface] is the drawing capability a particle field needs: clear, disc,
// line. [ImageSurface] draws to an Ebitengine image, [RasterSurface] to an
// in-memory RGBA image for headless renders, and [TerminalSurface] to a tcell
// screen. A surface belongs to at most one field at a time.
//
// # Configuration
//
// [LoadConfig] reads every engine's tuning from one YAML document over the
// defaults, and [ConfigWatcher] delivers a fresh [Config] whenever a file in
// a watched directory changes. [ParseRunConfig] reads window settings from
// LUMEN_* environment variables.
//
// # Events and debugging
//
// Engines report lifecycle and content changes as [EngineEvent] values on
// the host's [EventSink]; the ecs subpackage forwards them into a Donburi
// world. A callback that panics stops only its own engine, logs the failure,
// and emits [EngineFailed]. [Host.SetDebugMode] logs per-frame particle
// statistics.
//
// For automated runs, [LoadScript] replays pointer input and captures PNG
// screenshots through [Host.SetScriptRunner].
//
// [Ebitengine]: https://ebitengine.org
package lumen
