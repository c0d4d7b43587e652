// Package glfwplatform implements platform.Platform on GLFW.
//
// GLFW creates a context together with each window, so the shared context
// is a share group: the first window picks the context version, and every
// later window shares objects with it. GLFW callbacks are turned into
// platform events and queued until the application polls for them.
package glfwplatform

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/PazerOP/imgui-desktop/logsink"
	"github.com/PazerOP/imgui-desktop/platform"
)

// firstUserEvent is where RegisterEventType starts numbering.
const firstUserEvent = 0x8000

// Context is the handle of a share group.
type Context struct {
	root *glfw.Window
}

// Platform drives GLFW. All methods except PushEvent must be called from
// the main thread.
type Platform struct {
	// candidates are tried in order when the first window is created.
	candidates []platform.GLAttributes
	achieved   platform.GLAttributes
	requested  platform.GLAttributes
	root       *Window

	windows map[platform.WindowID]*Window
	nextID  platform.WindowID

	mu       sync.Mutex
	queue    []platform.Event
	nextType uint32
	polled   bool
}

var _ platform.Platform = (*Platform)(nil)

// New initializes GLFW. candidates are the context configurations tried,
// in order, when the first window is created; they should match the
// attempts given to the context registry.
func New(candidates ...platform.GLAttributes) (*Platform, error) {
	if len(candidates) == 0 {
		return nil, errors.New("glfwplatform: no GL context configurations")
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	logsink.Logger().Info("initialized GLFW", "version", glfw.GetVersionString())

	return &Platform{
		candidates: candidates,
		windows:    map[platform.WindowID]*Window{},
		nextType:   firstUserEvent,
	}, nil
}

func applyHints(attrs platform.GLAttributes, opts platform.WindowOptions) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, attrs.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, attrs.Minor)
	if attrs.Major > 3 || (attrs.Major == 3 && attrs.Minor >= 2) {
		profile := glfw.OpenGLCoreProfile
		if attrs.Profile == platform.ProfileCompatibility {
			profile = glfw.OpenGLCompatProfile
		}
		glfw.WindowHint(glfw.OpenGLProfile, profile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfwBool(attrs.ForwardCompatible))
	glfw.WindowHint(glfw.OpenGLDebugContext, glfwBool(attrs.Debug))
	glfw.WindowHint(glfw.DoubleBuffer, glfwBool(attrs.DoubleBuffer))
	glfw.WindowHint(glfw.DepthBits, attrs.DepthBits)
	glfw.WindowHint(glfw.StencilBits, attrs.StencilBits)

	glfw.WindowHint(glfw.Visible, glfwBool(!opts.Hidden))
	glfw.WindowHint(glfw.Resizable, glfwBool(opts.Resizable))
	glfw.WindowHint(glfw.ScaleToMonitor, glfwBool(opts.HighDPI))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfwBool(opts.HighDPI))
}

func (p *Platform) CreateWindow(opts platform.WindowOptions) (platform.NativeWindow, error) {
	var (
		gw  *glfw.Window
		err error
	)
	if p.root != nil && p.root.glfw != nil {
		applyHints(p.achieved, opts)
		gw, err = glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, p.root.glfw)
	} else {
		for _, attrs := range p.candidates {
			applyHints(attrs, opts)
			if gw, err = glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil); err == nil {
				p.achieved = attrs
				break
			}
			logsink.Logger().Debug("glfw window creation failed", "major", attrs.Major, "minor", attrs.Minor, "err", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	p.nextID++
	w := &Window{p: p, glfw: gw, id: p.nextID}
	w.installCallbacks()
	p.windows[w.id] = w
	if p.root == nil || p.root.glfw == nil {
		p.root = w
	}
	return w, nil
}

func (p *Platform) enqueue(e platform.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, e)
}

func (p *Platform) pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) > 0
}

func (p *Platform) WaitEventTimeout(timeout time.Duration) bool {
	if p.pending() {
		return true
	}
	glfw.WaitEventsTimeout(timeout.Seconds())
	return p.pending()
}

func (p *Platform) PollEvent() platform.Event {
	p.mu.Lock()
	if len(p.queue) == 0 && !p.polled {
		p.polled = true
		p.mu.Unlock()
		glfw.PollEvents()
		p.mu.Lock()
	}
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		p.polled = false
		return nil
	}
	e := p.queue[0]
	p.queue = p.queue[1:]
	return e
}

// PushEvent is safe to call from any goroutine.
func (p *Platform) PushEvent(e platform.Event) error {
	p.enqueue(e)
	glfw.PostEmptyEvent()
	return nil
}

func (p *Platform) RegisterEventType() (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nextType == ^uint32(0) {
		return 0, platform.ErrNoEventTypes
	}
	t := p.nextType
	p.nextType++
	return t, nil
}

// SetGLAttributes records what the next CreateGLContext must satisfy.
func (p *Platform) SetGLAttributes(attrs platform.GLAttributes) error {
	p.requested = attrs
	return nil
}

// CreateGLContext checks that the share group w belongs to satisfies the
// last requested attributes and makes it current.
func (p *Platform) CreateGLContext(w platform.NativeWindow) (platform.GLHandle, error) {
	gw, err := p.window(w)
	if err != nil {
		return nil, err
	}
	major := gw.glfw.GetAttrib(glfw.ContextVersionMajor)
	minor := gw.glfw.GetAttrib(glfw.ContextVersionMinor)
	req := p.requested
	if major < req.Major || (major == req.Major && minor < req.Minor) {
		return nil, fmt.Errorf("window has OpenGL %d.%d, need %d.%d", major, minor, req.Major, req.Minor)
	}
	if req.Profile == platform.ProfileCore && req.Major >= 3 &&
		gw.glfw.GetAttrib(glfw.OpenGLProfile) == glfw.OpenGLCompatProfile {
		return nil, fmt.Errorf("window has a compatibility profile context, need core")
	}
	gw.glfw.MakeContextCurrent()
	return Context{root: p.root.glfw}, nil
}

func (p *Platform) CurrentGLVersion() (int, int, error) {
	cur := glfw.GetCurrentContext()
	if cur == nil {
		return 0, 0, errors.New("no current OpenGL context")
	}
	return cur.GetAttrib(glfw.ContextVersionMajor), cur.GetAttrib(glfw.ContextVersionMinor), nil
}

func (p *Platform) MakeCurrent(w platform.NativeWindow, h platform.GLHandle) error {
	gw, err := p.window(w)
	if err != nil {
		return err
	}
	if _, ok := h.(Context); !ok {
		return fmt.Errorf("glfwplatform: foreign GL context %T", h)
	}
	gw.glfw.MakeContextCurrent()
	return nil
}

func (p *Platform) ReleaseCurrent(platform.NativeWindow) error {
	glfw.DetachCurrentContext()
	return nil
}

// DeleteGLContext does nothing; GLFW contexts die with their windows.
func (p *Platform) DeleteGLContext(platform.GLHandle) {}

func (p *Platform) SetSwapInterval(interval int) error {
	if glfw.GetCurrentContext() == nil {
		return errors.New("no current OpenGL context")
	}
	glfw.SwapInterval(interval)
	return nil
}

func (p *Platform) GLProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// ClearError does nothing; GLFW reports errors through return values.
func (p *Platform) ClearError() {}

// ShowErrorDialog uses SDL's message box, which works without initializing
// SDL; GLFW has no dialogs of its own.
func (p *Platform) ShowErrorDialog(title, message string, _ platform.NativeWindow) error {
	return sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_ERROR, title, message, nil)
}

func (p *Platform) Quit() {
	for _, w := range p.windows {
		w.Destroy()
	}
	glfw.Terminate()
}

func (p *Platform) window(w platform.NativeWindow) (*Window, error) {
	gw, ok := w.(*Window)
	if !ok || gw.glfw == nil {
		return nil, fmt.Errorf("glfwplatform: foreign or destroyed window %T", w)
	}
	return gw, nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
