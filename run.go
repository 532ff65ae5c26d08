package lumen

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and loop created by Run. ParseRunConfig
// fills it from LUMEN_* environment variables.
type RunConfig struct {
	Title     string `env:"TITLE" envDefault:"lumen"`
	Width     int    `env:"WIDTH" envDefault:"960"`
	Height    int    `env:"HEIGHT" envDefault:"540"`
	TPS       int    `env:"TPS" envDefault:"60"`
	Resizable bool   `env:"RESIZABLE" envDefault:"true"`
	ShowFPS   bool   `env:"SHOW_FPS"`
	Debug     bool   `env:"DEBUG"`
	// ConfigPath is an optional engine config file for programs that load
	// one; Run itself does not read it.
	ConfigPath string `env:"CONFIG"`
	// ScriptPath is an optional replay script attached to the host.
	ScriptPath    string `env:"SCRIPT"`
	ScreenshotDir string `env:"SCREENSHOT_DIR" envDefault:"screenshots"`
	// ExitWhenDone ends the loop once the replay script finishes.
	ExitWhenDone bool `env:"EXIT_WHEN_DONE"`
}

// ParseRunConfig reads RunConfig from the environment.
func ParseRunConfig() (RunConfig, error) {
	var cfg RunConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "LUMEN_"}); err != nil {
		return RunConfig{}, fmt.Errorf("lumen: parse env: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.TPS <= 0 {
		return RunConfig{}, fmt.Errorf("lumen: parse env: %w: window %dx%d at %d TPS",
			ErrInvalidConfig, cfg.Width, cfg.Height, cfg.TPS)
	}
	return cfg, nil
}

// DrawFunc paints one frame onto the screen.
type DrawFunc func(screen *ebiten.Image)

// Run opens a window and drives h from the Ebitengine loop until the window
// closes: layout changes become Resize events, the cursor becomes pointer
// move and leave events, and every tick advances the host by one tick of
// logical time. draw is called once per rendered frame.
func Run(h *Host, cfg RunConfig, draw DrawFunc) error {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.DefaultTPS
	}
	h.SetDebugMode(cfg.Debug)
	if cfg.ScreenshotDir != "" {
		h.ScreenshotDir = cfg.ScreenshotDir
	}
	if cfg.ScriptPath != "" {
		data, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("lumen: read script: %w", err)
		}
		runner, err := LoadScript(data)
		if err != nil {
			return err
		}
		h.SetScriptRunner(runner)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{host: h, cfg: cfg, draw: draw, tick: time.Second / time.Duration(cfg.TPS)}
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// game adapts a Host to ebiten.Game.
type game struct {
	host *Host
	cfg  RunConfig
	draw DrawFunc
	tick time.Duration

	w, h       int
	lastCursor [2]int
	cursorIn   bool
}

func (g *game) Update() error {
	g.pollCursor()
	g.host.Update(g.tick)
	if g.cfg.ExitWhenDone && g.host.runner != nil && g.host.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

// pollCursor turns the cursor position into pointer events. Injected input
// takes over while any is queued.
func (g *game) pollCursor() {
	if g.host.PendingInjected() > 0 {
		return
	}
	x, y := ebiten.CursorPosition()
	in := x >= 0 && y >= 0 && x < g.w && y < g.h && ebiten.IsFocused()
	switch {
	case in && (!g.cursorIn || g.lastCursor != [2]int{x, y}):
		g.host.PointerMove(float64(x), float64(y))
	case !in && g.cursorIn:
		g.host.PointerLeave()
	}
	g.cursorIn = in
	g.lastCursor = [2]int{x, y}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.draw != nil {
		g.draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.host.Resize(float64(g.w), float64(g.h))
	}
	return outsideWidth, outsideHeight
}
