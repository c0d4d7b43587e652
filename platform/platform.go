// Package platform defines the native windowing services the desktop layer
// depends on: window creation, event waiting and polling, GL context
// management and a few user facing utilities. Backends live in the
// sdlplatform and glfwplatform subpackages.
package platform

import (
	"errors"
	"fmt"
	"time"
	"unsafe"
)

// WindowID identifies a native window within one Platform. Zero is never a
// valid window.
type WindowID uint32

// GLHandle is an opaque native GL context.
type GLHandle interface{}

// GLProfile selects the GL context profile.
type GLProfile int

const (
	ProfileCore GLProfile = iota
	ProfileCompatibility
)

func (p GLProfile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompatibility:
		return "compatibility"
	}
	return "unknown"
}

func (p GLProfile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *GLProfile) UnmarshalText(text []byte) error {
	switch string(text) {
	case "core":
		*p = ProfileCore
	case "compatibility", "compat", "legacy":
		*p = ProfileCompatibility
	default:
		return fmt.Errorf("platform: unknown GL profile %q", text)
	}
	return nil
}

// GLAttributes are the hints applied before creating a GL context.
type GLAttributes struct {
	Major, Minor      int
	Profile           GLProfile
	ForwardCompatible bool
	Debug             bool
	DoubleBuffer      bool
	DepthBits         int
	StencilBits       int
}

// WindowOptions describes a native window to create.
type WindowOptions struct {
	Title     string
	Width     int
	Height    int
	Hidden    bool
	Resizable bool
	HighDPI   bool
}

// NativeWindow is an on-screen window owned by exactly one Window.
type NativeWindow interface {
	ID() WindowID
	// Size returns the client area size in screen coordinates.
	Size() (width, height int)
	// DrawableSize returns the client area size in pixels.
	DrawableSize() (width, height int)
	HasFocus() bool
	IsVisible() bool
	Show()
	Hide()
	Raise()
	SetTitle(title string)
	SwapBuffers()
	Destroy()
}

// Platform is a native windowing and input library.
type Platform interface {
	CreateWindow(opts WindowOptions) (NativeWindow, error)

	// WaitEventTimeout blocks until an event is pending or timeout elapses,
	// reporting whether an event is pending. The event is not consumed.
	WaitEventTimeout(timeout time.Duration) bool
	// PollEvent removes and returns the next pending event, or nil.
	PollEvent() Event
	PushEvent(e Event) error
	// RegisterEventType reserves a type number for UserEvents.
	RegisterEventType() (uint32, error)

	SetGLAttributes(attrs GLAttributes) error
	// CreateGLContext creates a context for w and makes it current.
	CreateGLContext(w NativeWindow) (GLHandle, error)
	// CurrentGLVersion reports the version of the current context.
	CurrentGLVersion() (major, minor int, err error)
	MakeCurrent(w NativeWindow, h GLHandle) error
	ReleaseCurrent(w NativeWindow) error
	DeleteGLContext(h GLHandle)
	SetSwapInterval(interval int) error
	GLProcAddress(name string) unsafe.Pointer
	// ClearError resets any sticky error state of the library.
	ClearError()

	ShowErrorDialog(title, message string, parent NativeWindow) error
	Quit()
}

var (
	// ErrEventQueueFull is returned by PushEvent when the queue is full.
	ErrEventQueueFull = errors.New("platform: event queue full")
	// ErrNoEventTypes is returned when no more user event types exist.
	ErrNoEventTypes = errors.New("platform: no user event types left")
)
