// Package sdlplatform implements platform.Platform on SDL2.
package sdlplatform

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/PazerOP/imgui-desktop/logsink"
	"github.com/PazerOP/imgui-desktop/platform"
)

// Platform drives SDL. Only one may exist per process, and all methods
// must be called from the thread that created it.
type Platform struct {
	windows map[platform.WindowID]*Window
	// pending holds an event taken off SDL's queue by WaitEventTimeout.
	pending sdl.Event
}

var _ platform.Platform = (*Platform)(nil)

// New initializes SDL's video and event subsystems.
func New() (*Platform, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}
	sdl.SetHint(sdl.HINT_MOUSE_FOCUS_CLICKTHROUGH, "1")
	sdl.StartTextInput()

	v := sdl.Version{}
	sdl.GetVersion(&v)
	logsink.Logger().Info("initialized SDL", "version", fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch))

	return &Platform{windows: map[platform.WindowID]*Window{}}, nil
}

func (p *Platform) CreateWindow(opts platform.WindowOptions) (platform.NativeWindow, error) {
	flags := uint32(sdl.WINDOW_OPENGL)
	if opts.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	} else {
		flags |= sdl.WINDOW_SHOWN
	}
	if opts.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if opts.HighDPI {
		flags |= sdl.WINDOW_ALLOW_HIGHDPI
	}

	sw, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	id, err := sw.GetID()
	if err != nil {
		sw.Destroy()
		return nil, fmt.Errorf("SDL_GetWindowID failed: %w", err)
	}

	w := &Window{p: p, sdl: sw, id: platform.WindowID(id)}
	p.windows[w.id] = w
	return w, nil
}

func (p *Platform) WaitEventTimeout(timeout time.Duration) bool {
	if p.pending != nil {
		return true
	}
	ms := int(timeout.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	p.pending = sdl.WaitEventTimeout(ms)
	return p.pending != nil
}

func (p *Platform) PollEvent() platform.Event {
	for {
		var e sdl.Event
		if p.pending != nil {
			e, p.pending = p.pending, nil
		} else if e = sdl.PollEvent(); e == nil {
			return nil
		}
		if pe := translateEvent(e); pe != nil {
			return pe
		}
	}
}

func (p *Platform) PushEvent(e platform.Event) error {
	var se sdl.Event
	switch e := e.(type) {
	case platform.UserEvent:
		se = &sdl.UserEvent{
			Type:      e.Type,
			Timestamp: sdl.GetTicks(),
			WindowID:  uint32(e.WindowID),
			Code:      e.Code,
		}
	case platform.QuitEvent:
		se = &sdl.QuitEvent{Type: sdl.QUIT, Timestamp: sdl.GetTicks()}
	default:
		return fmt.Errorf("sdlplatform: cannot push %T", e)
	}

	filtered, err := sdl.PushEvent(se)
	if err != nil {
		return fmt.Errorf("%w: %w", platform.ErrEventQueueFull, err)
	}
	if filtered {
		logsink.Logger().Debug("pushed event was filtered", "event", e)
	}
	return nil
}

func (p *Platform) RegisterEventType() (uint32, error) {
	t := sdl.RegisterEvents(1)
	if t == ^uint32(0) {
		return 0, platform.ErrNoEventTypes
	}
	return t, nil
}

func (p *Platform) SetGLAttributes(attrs platform.GLAttributes) error {
	profile := int(sdl.GL_CONTEXT_PROFILE_CORE)
	if attrs.Profile == platform.ProfileCompatibility {
		profile = int(sdl.GL_CONTEXT_PROFILE_COMPATIBILITY)
	}
	flags := 0
	if attrs.ForwardCompatible {
		flags |= int(sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	}
	if attrs.Debug {
		flags |= int(sdl.GL_CONTEXT_DEBUG_FLAG)
	}

	var errs []error
	set := func(attr sdl.GLattr, value int) {
		if err := sdl.GLSetAttribute(attr, value); err != nil {
			errs = append(errs, fmt.Errorf("SDL_GL_SetAttribute(%d, %d): %w", attr, value, err))
		}
	}
	set(sdl.GL_CONTEXT_MAJOR_VERSION, attrs.Major)
	set(sdl.GL_CONTEXT_MINOR_VERSION, attrs.Minor)
	set(sdl.GL_CONTEXT_PROFILE_MASK, profile)
	set(sdl.GL_CONTEXT_FLAGS, flags)
	set(sdl.GL_DOUBLEBUFFER, boolInt(attrs.DoubleBuffer))
	set(sdl.GL_DEPTH_SIZE, attrs.DepthBits)
	set(sdl.GL_STENCIL_SIZE, attrs.StencilBits)
	return errors.Join(errs...)
}

func (p *Platform) CreateGLContext(w platform.NativeWindow) (platform.GLHandle, error) {
	sw, err := p.window(w)
	if err != nil {
		return nil, err
	}
	ctx, err := sw.sdl.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}
	if ctx == nil {
		return nil, errors.New("SDL_GL_CreateContext returned no context")
	}
	return ctx, nil
}

// CurrentGLVersion reports the version SDL created the current context
// with.
func (p *Platform) CurrentGLVersion() (int, int, error) {
	major, err := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	if err != nil {
		return 0, 0, err
	}
	minor, err := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

func (p *Platform) MakeCurrent(w platform.NativeWindow, h platform.GLHandle) error {
	sw, err := p.window(w)
	if err != nil {
		return err
	}
	ctx, ok := h.(sdl.GLContext)
	if !ok {
		return fmt.Errorf("sdlplatform: foreign GL context %T", h)
	}
	return sw.sdl.GLMakeCurrent(ctx)
}

func (p *Platform) ReleaseCurrent(w platform.NativeWindow) error {
	sw, err := p.window(w)
	if err != nil {
		return err
	}
	return sw.sdl.GLMakeCurrent(nil)
}

func (p *Platform) DeleteGLContext(h platform.GLHandle) {
	if ctx, ok := h.(sdl.GLContext); ok && ctx != nil {
		sdl.GLDeleteContext(ctx)
	}
}

func (p *Platform) SetSwapInterval(interval int) error {
	return sdl.GLSetSwapInterval(interval)
}

func (p *Platform) GLProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

func (p *Platform) ClearError() {
	sdl.ClearError()
}

func (p *Platform) ShowErrorDialog(title, message string, parent platform.NativeWindow) error {
	var sw *sdl.Window
	if w, ok := parent.(*Window); ok && w != nil {
		sw = w.sdl
	}
	return sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_ERROR, title, message, sw)
}

func (p *Platform) Quit() {
	for _, w := range p.windows {
		w.Destroy()
	}
	sdl.StopTextInput()
	sdl.Quit()
}

func (p *Platform) window(w platform.NativeWindow) (*Window, error) {
	sw, ok := w.(*Window)
	if !ok || sw.sdl == nil {
		return nil, fmt.Errorf("sdlplatform: foreign or destroyed window %T", w)
	}
	return sw, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
