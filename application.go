// Package imguidesktop runs Dear ImGui in native desktop windows that share
// a single OpenGL context.
//
// An Application owns the event loop. Each Update waits for platform events
// (or a timeout), forwards them to the GUI, and redraws every window. Windows
// can ask for a redraw without input through QueueUpdate, and content that
// animates can keep the loop from sleeping by implementing SleepController.
package imguidesktop

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/internal/assert"
	"github.com/PazerOP/imgui-desktop/platform"
)

const wakeupCode = 1

// Application drives a set of windows. It is not safe for concurrent use;
// create and update it from one goroutine locked to its OS thread.
type Application struct {
	b     Backend
	cfg   Config
	hooks any

	registry *glcontext.Registry
	glOwner  *glcontext.Owner
	glctx    *glcontext.Context
	atlas    gui.FontAtlas

	windows []*Window
	byID    map[platform.WindowID]*Window
	managed []*Window

	wakeType      uint32
	quitRequested bool
	closed        bool

	clock func() time.Time
	exit  func(code int)
}

// Option configures an Application.
type Option func(*Application)

// WithHooks registers application level hooks. h may implement any of
// AppGLInitializer, AppEndFramer and ManagedWindowObserver.
func WithHooks(h any) Option {
	return func(a *Application) { a.hooks = h }
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(a *Application) { a.clock = now }
}

// WithExitFunc replaces os.Exit for fatal errors.
func WithExitFunc(exit func(code int)) Option {
	return func(a *Application) { a.exit = exit }
}

// NewApplication prepares an application on backend. No window exists yet.
func NewApplication(b Backend, cfg Config, opts ...Option) (*Application, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{
		b:       b,
		cfg:     cfg,
		glOwner: glcontext.NewOwner(),
		byID:    map[platform.WindowID]*Window{},
		clock:   time.Now,
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.registry = b.Registry
	if a.registry == nil {
		a.registry = glcontext.Shared(b.Platform, cfg.GL.Attempts)
	}

	wake, err := b.Platform.RegisterEventType()
	if err != nil {
		return nil, fmt.Errorf("registering wakeup event: %w", err)
	}
	a.wakeType = wake

	atlas, err := b.GUI.NewFontAtlas()
	if err != nil {
		return nil, fmt.Errorf("creating font atlas: %w", err)
	}
	a.atlas = atlas
	return a, nil
}

// Update runs one iteration of the event loop.
func (a *Application) Update() {
	skipWait := false
	for _, w := range a.windows {
		if w.updateQueued || !w.sleepingEnabled() {
			skipWait = true
			w.updateQueued = false
		}
	}

	active := skipWait
	if !skipWait {
		active = a.b.Platform.WaitEventTimeout(a.sleepBudget())
	}

	if active {
		a.processEvents()
		// Windows may be added or removed by their own hooks.
		for i := 0; i < len(a.windows); i++ {
			a.windows[i].update()
		}
	}

	if h, ok := a.hooks.(AppEndFramer); ok {
		h.OnEndFrame(a)
	}
	a.reapManagedWindows()
}

func (a *Application) sleepBudget() time.Duration {
	d := a.cfg.SleepDuration.Duration
	for _, w := range a.windows {
		if s := w.sleepDuration; s > 0 && s < d {
			d = s
		}
	}
	return d
}

func (a *Application) processEvents() {
	sawInput := false
	for e := a.b.Platform.PollEvent(); e != nil; e = a.b.Platform.PollEvent() {
		if a.b.GUI.ProcessEvent(e) {
			sawInput = true
			continue
		}

		switch e := e.(type) {
		case platform.QuitEvent:
			a.quitRequested = true
			for _, w := range a.windows {
				w.OnCloseButtonClicked()
			}
			sawInput = true
		case platform.WindowEvent:
			if e.Kind == platform.WindowClose {
				if w, ok := a.byID[e.WindowID]; assert.Ensure(ok, "close event for unknown window %d", e.WindowID) {
					w.OnCloseButtonClicked()
				}
			}
			sawInput = true
		case platform.UserEvent:
			if e.Type != a.wakeType {
				sawInput = true
			}
		default:
			sawInput = true
		}
	}

	// GUI widgets often need one more frame to settle after input.
	if sawInput {
		a.QueueUpdate(nil)
	}
}

// reapManagedWindows destroys managed windows that were asked to close. The
// observer may destroy other windows, so it walks a snapshot and skips
// windows that left the managed list meanwhile.
func (a *Application) reapManagedWindows() {
	obs, _ := a.hooks.(ManagedWindowObserver)
	for _, w := range slices.Clone(a.managed) {
		if w.destroyed || !w.ShouldClose() || !slices.Contains(a.managed, w) {
			continue
		}
		if obs != nil {
			obs.OnRemovingManagedWindow(w)
		}
		if i := slices.Index(a.managed, w); i >= 0 {
			a.managed = slices.Delete(a.managed, i, i+1)
		}
		w.Destroy()
	}
}

// Run calls Update until ShouldQuit reports true or ctx is done.
func (a *Application) Run(ctx context.Context) error {
	for !a.ShouldQuit() {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Update()
	}
	return nil
}

// QueueUpdate wakes the event loop. A nil window wakes it without a target.
func (a *Application) QueueUpdate(w *Window) {
	ev := platform.UserEvent{Type: a.wakeType, Code: wakeupCode}
	if w != nil {
		ev.WindowID = w.ID()
	}
	if err := a.b.Platform.PushEvent(ev); err != nil {
		log().Warn("failed to queue wakeup event", "err", err)
	}
}

// ShouldQuit reports whether no primary window is left open.
func (a *Application) ShouldQuit() bool {
	for _, w := range a.windows {
		if w.IsPrimary() && !w.ShouldClose() {
			return false
		}
	}
	return true
}

// QuitRequested reports whether the platform asked the application to quit.
func (a *Application) QuitRequested() bool {
	return a.quitRequested
}

// AddManagedWindow hands w over to the application, which destroys it once
// it should close.
func (a *Application) AddManagedWindow(w *Window) {
	if !assert.Ensure(w != nil, "nil managed window") {
		return
	}
	if slices.Contains(a.managed, w) {
		return
	}
	if h, ok := a.hooks.(ManagedWindowObserver); ok {
		h.OnAddingManagedWindow(w)
	}
	a.managed = append(a.managed, w)
}

// Windows returns the live windows in creation order.
func (a *Application) Windows() []*Window {
	return slices.Clone(a.windows)
}

// FontAtlas returns the atlas shared by every window's GUI context.
func (a *Application) FontAtlas() gui.FontAtlas {
	return a.atlas
}

// GLContext returns the shared context, or nil before the first window.
func (a *Application) GLContext() *glcontext.Context {
	return a.glctx
}

func (a *Application) Config() Config {
	return a.cfg
}

// Close destroys every remaining window and the shared GL context, then
// shuts the platform down.
func (a *Application) Close() {
	if a.closed {
		return
	}
	a.closed = true

	for len(a.managed) > 0 {
		w := a.managed[len(a.managed)-1]
		a.managed = a.managed[:len(a.managed)-1]
		w.Destroy()
	}
	for len(a.windows) > 0 {
		w := a.windows[len(a.windows)-1]
		log().Warn("destroying window still open at shutdown", "window", w.ID())
		w.Destroy()
	}

	if a.atlas != nil {
		a.atlas.Destroy()
		a.atlas = nil
	}
	if a.glctx != nil {
		a.glctx.Delete()
		a.glctx = nil
	}
	a.b.Platform.Quit()
}

func (a *Application) addWindow(w *Window) {
	assert.That(a.byID[w.ID()] == nil, "window %d added twice", w.ID())
	a.windows = append(a.windows, w)
	a.byID[w.ID()] = w
}

func (a *Application) removeWindow(w *Window) {
	i := slices.Index(a.windows, w)
	if !assert.Ensure(i >= 0, "removing unknown window %d", w.ID()) {
		return
	}
	a.windows = slices.Delete(a.windows, i, i+1)
	delete(a.byID, w.ID())
	if j := slices.Index(a.managed, w); j >= 0 {
		a.managed = slices.Delete(a.managed, j, j+1)
	}
}

func (a *Application) getOrCreateGLContext(nw platform.NativeWindow) (*glcontext.Context, error) {
	ctx, err := a.registry.GetOrCreate(nw)
	if err != nil {
		return nil, err
	}
	if a.glctx != nil {
		assert.That(a.glctx == ctx, "shared GL context changed")
		return ctx, nil
	}

	a.glctx = ctx
	scope := glcontext.Enter(a.glOwner, nw, ctx)
	defer scope.Exit()
	if err := a.b.GL.Init(ctx.Version(), a.b.Platform.GLProcAddress); err != nil {
		a.glctx = nil
		return nil, fmt.Errorf("loading OpenGL %v functions: %w", ctx.Version(), err)
	}
	if h, ok := a.hooks.(AppGLInitializer); ok {
		h.OnOpenGLInit(a)
	}
	return ctx, nil
}

func (a *Application) queueUpdate(w *Window) { a.QueueUpdate(w) }

// fatal reports an unrecoverable error to the user and exits.
func (a *Application) fatal(title string, err error, parent platform.NativeWindow) {
	log().Error(title, "err", err)
	if derr := a.b.Platform.ShowErrorDialog(title, err.Error(), parent); derr != nil {
		log().Error("failed to show error dialog", "err", derr)
	}
	a.exit(1)
}

func (a *Application) backend() Backend { return a.b }
func (a *Application) config() Config { return a.cfg }
func (a *Application) owner() *glcontext.Owner { return a.glOwner }
func (a *Application) fontAtlas() gui.FontAtlas { return a.atlas }
func (a *Application) now() time.Time { return a.clock() }
