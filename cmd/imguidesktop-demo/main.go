// Command imguidesktop-demo opens a primary window with a spinning cube and
// a few widgets, plus an about window that can be opened from the menu.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v2"

	imguidesktop "github.com/PazerOP/imgui-desktop"
	"github.com/PazerOP/imgui-desktop/logsink"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
	}
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "windowing backend, sdl or glfw",
		Value: "sdl",
	}
	vsyncFlag = &cli.BoolFlag{
		Name:  "vsync",
		Usage: "synchronize buffer swaps with the display",
	}
	dumpConfigFlag = &cli.BoolFlag{
		Name:  "dump-config",
		Usage: "print the effective configuration and exit",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log debug messages",
	}
)

// GL calls and most windowing calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:  "imguidesktop-demo",
		Usage: "Dear ImGui desktop windows on a shared OpenGL context",
		Flags: []cli.Flag{
			configFlag,
			backendFlag,
			vsyncFlag,
			dumpConfigFlag,
			verboseFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool(verboseFlag.Name) {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg := imguidesktop.DefaultConfig()
	if path := c.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = imguidesktop.LoadConfig(path); err != nil {
			return err
		}
	}
	if c.IsSet(vsyncFlag.Name) {
		cfg.VSync = c.Bool(vsyncFlag.Name)
	}

	if c.Bool(dumpConfigFlag.Name) {
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	backend, err := newBackend(c.String(backendFlag.Name), cfg)
	if err != nil {
		return err
	}

	app, err := imguidesktop.NewApplication(backend, cfg, imguidesktop.WithHooks(&appHooks{}))
	if err != nil {
		return err
	}
	defer app.Close()

	demo := &mainContent{app: app}
	w, err := imguidesktop.NewWindow(app, cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, demo)
	if err != nil {
		return err
	}
	w.Show()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = app.Run(ctx)

	if demo.cube != nil {
		scope := w.EnterGLScope()
		demo.cube.release()
		scope.Exit()
	}
	return err
}

// appHooks reports application level events.
type appHooks struct{}

func (appHooks) OnOpenGLInit(app *imguidesktop.Application) {
	logsink.Logger().Info("shared OpenGL context ready", "version", app.GLContext().Version())
}

func (appHooks) OnAddingManagedWindow(w *imguidesktop.Window) {
	logsink.Logger().Debug("managed window added", "id", w.ID())
}

func (appHooks) OnRemovingManagedWindow(w *imguidesktop.Window) {
	logsink.Logger().Debug("managed window removed", "id", w.ID())
}
