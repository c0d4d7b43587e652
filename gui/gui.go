// Package gui is the seam between the desktop layer and the immediate-mode
// GUI library that actually builds widgets. The imguibackend subpackage
// implements it with Dear ImGui.
package gui

import (
	"time"

	"github.com/PazerOP/imgui-desktop/platform"
)

// FontAtlas is a font texture shared by every GUI context of the process.
type FontAtlas interface {
	Destroy()
}

// Library creates GUI contexts and feeds them input.
type Library interface {
	// NewFontAtlas creates a font atlas holding the default font.
	NewFontAtlas() (FontAtlas, error)
	// NewContext creates a context for w backed by atlas, rendering with the
	// backend matching glMajor. The shared GL context must be current.
	// The previously active context stays active.
	NewContext(atlas FontAtlas, w platform.NativeWindow, glMajor int) (Context, error)
	// ProcessEvent forwards e to the context of the window it targets and
	// reports whether the GUI consumed it.
	ProcessEvent(e platform.Event) bool
}

// Context is the GUI state of one window.
type Context interface {
	// Activate makes c the context subsequent GUI calls go to.
	Activate()
	// NewFrame starts a frame; dt is the time since the previous frame.
	NewFrame(dt time.Duration)
	// BeginMainWindow opens an undecorated window covering the whole
	// client area and reports whether its contents are visible.
	// EndMainWindow must be called regardless.
	BeginMainWindow(width, height float32, menuBar bool) bool
	EndMainWindow()
	BeginMenuBar() bool
	EndMenuBar()
	// Render finishes the frame and draws it with the GL backend.
	Render()
	Destroy()
}
