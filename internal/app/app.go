// Package app runs the demo programs: it owns the window and the input
// state and drives a Demo once per frame.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/config"
	"github.com/Faultbox/gldemos/internal/engine/debug"
	"github.com/Faultbox/gldemos/internal/engine/input"
	"github.com/Faultbox/gldemos/internal/engine/renderer"
	"github.com/Faultbox/gldemos/internal/engine/window"
	"github.com/Faultbox/gldemos/internal/logger"
)

// Demo is one demo program. It receives input through the embedded
// input.Handler; OnResize gets the drawable size in pixels.
type Demo interface {
	input.Handler
	Update(dt float32, in *input.State)
	Render()
	Close()
}

// Host is what a demo may ask of the application.
type Host interface {
	Quit()
	MouseCaptured() bool
	SetMouseCaptured(captured bool)
}

// App is the main application instance.
type App struct {
	cfg    *config.Config
	window *window.Window
	input  *input.State
	demo   Demo

	screenshots    *debug.ScreenshotCapture
	wantScreenshot bool
}

// New creates the window and loads OpenGL.
func New(cfg *config.Config, title string) (*App, error) {
	a := &App{
		cfg:         cfg,
		input:       input.NewState(),
		screenshots: debug.NewScreenshotCapture(cfg.Resources.ScreenshotDir, "screenshot"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:        title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		CaptureMouse: cfg.Window.CaptureMouse,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.input.Relative = a.window.MouseCaptured()

	if _, err := renderer.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	renderer.Resize(a.window.DrawableSize())

	return a, nil
}

// Run drives demo until it or the user quits.
func (a *App) Run(demo Demo) {
	a.demo = demo
	demo.OnResize(a.window.DrawableSize())

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	logger.Info("starting main loop")
	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		input.Pump(a.input, a)
		if a.input.Quit {
			break
		}

		demo.Update(dt, a.input)
		demo.Render()
		if a.wantScreenshot {
			a.wantScreenshot = false
			a.saveScreenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	logger.Info("main loop finished")
}

func (a *App) saveScreenshot() {
	path, err := a.screenshots.Capture(a.window.DrawableSize())
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close destroys the window.
func (a *App) Close() {
	if a.window != nil {
		a.window.Close()
	}
}

// Quit stops Run after the current frame.
func (a *App) Quit() {
	a.input.Quit = true
}

// MouseCaptured reports whether the window is in relative mouse mode.
func (a *App) MouseCaptured() bool {
	return a.window.MouseCaptured()
}

// SetMouseCaptured toggles relative mouse mode.
func (a *App) SetMouseCaptured(captured bool) {
	a.window.SetMouseCaptured(captured)
	a.input.Relative = a.window.MouseCaptured()
	a.input.ResetMouse()
}

// OnKey quits on Escape, queues a screenshot on F12 and forwards
// everything else to the demo.
func (a *App) OnKey(key sdl.Scancode, down bool) {
	switch {
	case key == sdl.SCANCODE_ESCAPE && down:
		a.Quit()
		return
	case key == sdl.SCANCODE_F12:
		if down {
			a.wantScreenshot = true
		}
		return
	}
	a.demo.OnKey(key, down)
}

// OnResize resizes the viewport to the drawable, which may differ from the
// window size reported by the event.
func (a *App) OnResize(_, _ int) {
	w, h := a.window.DrawableSize()
	renderer.Resize(w, h)
	a.demo.OnResize(w, h)
}

// OnMouseMove forwards to the demo.
func (a *App) OnMouseMove(dx, dy float32) { a.demo.OnMouseMove(dx, dy) }

// OnScroll forwards to the demo.
func (a *App) OnScroll(dy float32) { a.demo.OnScroll(dy) }
