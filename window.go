package imguidesktop

import (
	"errors"
	"fmt"
	"time"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gldriver"
	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/internal/assert"
	"github.com/PazerOP/imgui-desktop/platform"
)

// windowHost is what a Window needs from the Application that owns it.
type windowHost interface {
	addWindow(w *Window)
	removeWindow(w *Window)
	getOrCreateGLContext(nw platform.NativeWindow) (*glcontext.Context, error)
	queueUpdate(w *Window)
	fatal(title string, err error, parent platform.NativeWindow)

	backend() Backend
	config() Config
	owner() *glcontext.Owner
	fontAtlas() gui.FontAtlas
	now() time.Time
}

// Window is a native window showing one full-client-area GUI panel.
type Window struct {
	host    windowHost
	native  platform.NativeWindow
	gui     gui.Context
	glctx   *glcontext.Context
	content Drawer

	closeRequested bool
	updateQueued   bool
	sleepDuration  time.Duration
	primary        bool
	initialized    bool
	destroyed      bool

	fps        float64
	lastUpdate time.Time
}

// NewWindow creates a window of the given size drawing content. The window
// starts hidden; call Show once it is set up.
func NewWindow(app *Application, width, height int, title string, content Drawer) (*Window, error) {
	if content == nil {
		return nil, errors.New("imguidesktop: nil window content")
	}
	return newWindow(app, width, height, title, content)
}

func newWindow(host windowHost, width, height int, title string, content Drawer) (*Window, error) {
	b := host.backend()
	nw, err := b.Platform.CreateWindow(platform.WindowOptions{
		Title:     title,
		Width:     width,
		Height:    height,
		Hidden:    true,
		Resizable: true,
		HighDPI:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrWindowCreation, title, err)
	}

	ctx, err := host.getOrCreateGLContext(nw)
	if err != nil {
		nw.Destroy()
		host.fatal("Failed to create OpenGL context", err, nil)
		return nil, err
	}

	w := &Window{
		host:          host,
		native:        nw,
		glctx:         ctx,
		content:       content,
		sleepDuration: host.config().SleepDuration.Duration,
		primary:       true,
		fps:           1,
		lastUpdate:    host.now(),
	}

	if err := w.setupGL(); err != nil {
		nw.Destroy()
		return nil, err
	}

	scope := w.EnterGLScope()
	w.gui, err = b.GUI.NewContext(host.fontAtlas(), nw, ctx.Version().Major)
	scope.Exit()
	if err != nil {
		nw.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrGUIBackend, err)
	}

	host.addWindow(w)
	return w, nil
}

func (w *Window) setupGL() error {
	scope := w.EnterGLScope()
	defer scope.Exit()

	b := w.host.backend()
	cfg := w.host.config()
	version := w.glctx.Version()

	info := b.GL.Info()
	log().Info("OpenGL driver",
		"window", w.ID(),
		"context", version,
		"vendor", info.Vendor,
		"renderer", info.Renderer,
		"version", info.Version,
		"glsl", info.ShadingLanguage)

	if err := gldriver.CheckCompatibility(info, cfg.BlockedDrivers); err != nil {
		w.host.fatal("Unsupported graphics driver", err, w.native)
		return err
	}

	if cfg.DebugOutput {
		out := b.GL.EnableDebugOutput(version, func(msg string) {
			log().Warn(msg)
		})
		if out == gldriver.DebugNone {
			log().Info("no OpenGL debug message callback supported", "version", version)
		} else {
			log().Debug("installed OpenGL debug message callback", "via", out)
		}
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := b.Platform.SetSwapInterval(interval); err != nil {
		log().Warn("failed to set swap interval", "window", w.ID(), "interval", interval, "err", err)
	}
	return nil
}

// EnterGLScope makes the shared GL context current on this window until the
// returned scope exits. Scopes nest.
func (w *Window) EnterGLScope() *glcontext.Scope {
	return glcontext.Enter(w.host.owner(), w.native, w.glctx)
}

// Destroy releases the window. It is safe to call more than once.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.host.removeWindow(w)

	if w.gui != nil {
		scope := w.EnterGLScope()
		w.gui.Destroy()
		scope.Exit()
		w.gui = nil
	}
	w.native.Destroy()
}

func (w *Window) update() {
	w.updatePhase()
	w.drawPhase()
}

func (w *Window) updatePhase() {
	u, ok := w.content.(Updater)
	if !ok {
		return
	}
	scope := w.EnterGLScope()
	defer scope.Exit()
	u.OnUpdate(w)
}

func (w *Window) drawPhase() {
	now := w.host.now()
	dt := now.Sub(w.lastUpdate)
	w.fps = smoothFPS(w.fps, dt)
	w.lastUpdate = now

	scope := w.EnterGLScope()
	defer scope.Exit()

	w.host.backend().GL.Clear()
	w.gui.Activate()

	if !w.initialized {
		w.initialized = true
		if h, ok := w.content.(GLInitializer); ok {
			h.OnOpenGLInit(w)
		}
		if h, ok := w.content.(GUIInitializer); ok {
			h.OnGUIInit(w)
		}
	}

	if h, ok := w.content.(PreDrawer); ok {
		h.OnPreDraw(w)
	}

	w.gui.NewFrame(dt)
	width, height := w.Size()
	mb, hasMenu := w.content.(MenuBarDrawer)
	hasMenu = hasMenu && mb.HasMenuBar()
	if w.gui.BeginMainWindow(float32(width), float32(height), hasMenu) {
		if hasMenu && w.gui.BeginMenuBar() {
			mb.OnDrawMenuBar(w)
			w.gui.EndMenuBar()
		}
		w.content.OnDraw(w)
	}
	w.gui.EndMainWindow()
	w.gui.Render()

	w.native.SwapBuffers()

	if h, ok := w.content.(EndFramer); ok {
		h.OnEndFrame(w)
	}
}

// QueueUpdate makes the next Application.Update redraw this window without
// waiting for input.
func (w *Window) QueueUpdate() {
	w.updateQueued = true
	w.host.queueUpdate(w)
}

func (w *Window) sleepingEnabled() bool {
	if s, ok := w.content.(SleepController); ok {
		return s.IsSleepingEnabled()
	}
	return true
}

// Size returns the client area size in screen coordinates.
func (w *Window) Size() (width, height int) {
	width, height = w.native.Size()
	assert.That(width >= 0 && height >= 0, "negative window size %dx%d", width, height)
	return width, height
}

func (w *Window) ID() platform.WindowID { return w.native.ID() }
func (w *Window) Native() platform.NativeWindow { return w.native }
func (w *Window) Content() Drawer { return w.content }
func (w *Window) HasFocus() bool { return w.native.HasFocus() }
func (w *Window) IsVisible() bool { return w.native.IsVisible() }
func (w *Window) Show() { w.native.Show() }
func (w *Window) Hide() { w.native.Hide() }
func (w *Window) Raise() { w.native.Raise() }
func (w *Window) SetTitle(title string) { w.native.SetTitle(title) }

// GLVersion returns the version of the shared context.
func (w *Window) GLVersion() glcontext.Version {
	return w.glctx.Version()
}

// FPS returns the smoothed frame rate.
func (w *Window) FPS() float64 {
	return w.fps
}

// SetSleepDuration caps how long the application may sleep between events
// while this window is open.
func (w *Window) SetSleepDuration(d time.Duration) {
	w.sleepDuration = d
}

func (w *Window) SleepDuration() time.Duration {
	return w.sleepDuration
}

// OnCloseButtonClicked is called when the user asks to close the window.
func (w *Window) OnCloseButtonClicked() {
	w.closeRequested = true
}

// SetShouldClose marks the window for closing. A close request cannot be
// withdrawn, so false is ignored once the window is marked.
func (w *Window) SetShouldClose(v bool) {
	w.closeRequested = w.closeRequested || v
}

func (w *Window) ShouldClose() bool {
	return w.closeRequested
}

// SetPrimary controls whether the window keeps the application alive.
func (w *Window) SetPrimary(primary bool) {
	w.primary = primary
}

func (w *Window) IsPrimary() bool {
	return w.primary
}
