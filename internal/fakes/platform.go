// Package fakes provides in-memory Platform, GL driver and GUI library
// implementations so the desktop layer can be exercised without a display.
package fakes

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/PazerOP/imgui-desktop/platform"
)

// GLHandle is a fake native context.
type GLHandle struct {
	ID int
}

// Platform records every call made to it.
type Platform struct {
	mu sync.Mutex

	Queue        []platform.Event
	Windows      map[platform.WindowID]*Window
	nextWindowID platform.WindowID
	nextType     uint32

	// CreateWindowErr makes CreateWindow fail.
	CreateWindowErr error

	// AcceptContext decides whether CreateGLContext succeeds for the last
	// applied attributes. Nil accepts everything.
	AcceptContext func(attrs platform.GLAttributes) bool
	// ReportedVersion overrides what CurrentGLVersion returns.
	ReportedVersion [2]int
	// CreateDelay slows down context creation to widen race windows.
	CreateDelay time.Duration

	Attrs          []platform.GLAttributes
	ContextCreates int
	MakeCurrents   int
	Releases       int
	ClearErrors    int
	Current        platform.GLHandle
	Deleted        []platform.GLHandle
	nextHandle     int

	SwapInterval    int
	SwapIntervalErr error
	MakeCurrentErr  error

	// Waits holds the timeout of every WaitEventTimeout that had to block.
	Waits []time.Duration
	// OnWait runs whenever WaitEventTimeout blocks, e.g. to advance a clock.
	OnWait func(d time.Duration)

	Dialogs    []string
	QuitCalled bool
}

// NewPlatform returns an empty fake platform.
func NewPlatform() *Platform {
	return &Platform{
		Windows:  map[platform.WindowID]*Window{},
		nextType: 0x8000,
	}
}

// Window is a fake native window.
type Window struct {
	p         *Platform
	id        platform.WindowID
	Opts      platform.WindowOptions
	Width     int
	Height    int
	Visible   bool
	Focused   bool
	Raised    int
	Title     string
	Swaps     int
	Destroyed bool
}

func (p *Platform) CreateWindow(opts platform.WindowOptions) (platform.NativeWindow, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CreateWindowErr != nil {
		return nil, p.CreateWindowErr
	}
	p.nextWindowID++
	w := &Window{
		p:       p,
		id:      p.nextWindowID,
		Opts:    opts,
		Width:   opts.Width,
		Height:  opts.Height,
		Visible: !opts.Hidden,
		Title:   opts.Title,
	}
	p.Windows[w.id] = w
	return w, nil
}

// Push queues e as if it came from the OS.
func (p *Platform) Push(e platform.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queue = append(p.Queue, e)
}

// Pending returns a copy of the queued events.
func (p *Platform) Pending() []platform.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.Event(nil), p.Queue...)
}

func (p *Platform) WaitEventTimeout(timeout time.Duration) bool {
	p.mu.Lock()
	if len(p.Queue) > 0 {
		p.mu.Unlock()
		return true
	}
	p.Waits = append(p.Waits, timeout)
	onWait := p.OnWait
	p.mu.Unlock()

	if onWait != nil {
		onWait(timeout)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Queue) > 0
}

func (p *Platform) PollEvent() platform.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Queue) == 0 {
		return nil
	}
	e := p.Queue[0]
	p.Queue = p.Queue[1:]
	return e
}

func (p *Platform) PushEvent(e platform.Event) error {
	p.Push(e)
	return nil
}

func (p *Platform) RegisterEventType() (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.nextType
	p.nextType++
	return t, nil
}

func (p *Platform) SetGLAttributes(attrs platform.GLAttributes) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Attrs = append(p.Attrs, attrs)
	return nil
}

func (p *Platform) CreateGLContext(w platform.NativeWindow) (platform.GLHandle, error) {
	p.mu.Lock()
	p.ContextCreates++
	delay := p.CreateDelay
	var attrs platform.GLAttributes
	if len(p.Attrs) > 0 {
		attrs = p.Attrs[len(p.Attrs)-1]
	}
	accept := p.AcceptContext
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if accept != nil && !accept(attrs) {
		return nil, fmt.Errorf("GL %d.%d %s not supported", attrs.Major, attrs.Minor, attrs.Profile)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextHandle++
	h := &GLHandle{ID: p.nextHandle}
	p.Current = h
	if p.ReportedVersion == [2]int{} {
		p.ReportedVersion = [2]int{attrs.Major, attrs.Minor}
	}
	return h, nil
}

func (p *Platform) CurrentGLVersion() (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Current == nil {
		return 0, 0, errors.New("no current context")
	}
	return p.ReportedVersion[0], p.ReportedVersion[1], nil
}

func (p *Platform) MakeCurrent(w platform.NativeWindow, h platform.GLHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.MakeCurrents++
	if p.MakeCurrentErr != nil {
		return p.MakeCurrentErr
	}
	p.Current = h
	return nil
}

func (p *Platform) ReleaseCurrent(w platform.NativeWindow) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Releases++
	p.Current = nil
	return nil
}

func (p *Platform) DeleteGLContext(h platform.GLHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Deleted = append(p.Deleted, h)
}

func (p *Platform) SetSwapInterval(interval int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SwapIntervalErr != nil {
		return p.SwapIntervalErr
	}
	p.SwapInterval = interval
	return nil
}

func (p *Platform) GLProcAddress(name string) unsafe.Pointer {
	return nil
}

func (p *Platform) ClearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ClearErrors++
}

func (p *Platform) ShowErrorDialog(title, message string, parent platform.NativeWindow) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Dialogs = append(p.Dialogs, title+": "+message)
	return nil
}

func (p *Platform) Quit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.QuitCalled = true
}

// Counts returns make-current and release counts under the lock.
func (p *Platform) Counts() (creates, makeCurrents, releases int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ContextCreates, p.MakeCurrents, p.Releases
}

func (w *Window) ID() platform.WindowID { return w.id }
func (w *Window) Size() (int, int) { return w.Width, w.Height }
func (w *Window) DrawableSize() (int, int) { return w.Width, w.Height }
func (w *Window) HasFocus() bool { return w.Focused }
func (w *Window) IsVisible() bool { return w.Visible }
func (w *Window) Show() { w.Visible = true }
func (w *Window) Hide() { w.Visible = false }
func (w *Window) Raise() { w.Raised++ }
func (w *Window) SetTitle(title string) { w.Title = title }
func (w *Window) SwapBuffers() { w.Swaps++ }

func (w *Window) Destroy() {
	w.p.mu.Lock()
	defer w.p.mu.Unlock()
	w.Destroyed = true
	delete(w.p.Windows, w.id)
}

// NewWindow returns a window not registered with any platform, for tests
// that only need a surface.
func NewWindow(id platform.WindowID) *Window {
	return &Window{p: NewPlatform(), id: id, Width: 640, Height: 480}
}
