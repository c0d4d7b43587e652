// Package imguibackend implements the gui interfaces with Dear ImGui through
// imgui-go. Every window gets its own imgui context; all of them share one
// font atlas. Rendering uses the OpenGL 3.2 core renderer when the shared
// GL context allows it and the OpenGL 2.1 fixed function renderer otherwise.
package imguibackend

import (
	"errors"
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/platform"
)

// Library hands out imgui contexts and routes input to them by window.
type Library struct {
	contexts    map[platform.WindowID]*Context
	newRenderer func(glMajor int, atlas *FontAtlas) (renderer, error)

	// IniFilename is where new contexts persist window layout. Empty
	// disables persistence.
	IniFilename string
}

var _ gui.Library = (*Library)(nil)

func New() *Library {
	return &Library{
		contexts:    map[platform.WindowID]*Context{},
		newRenderer: newRenderer,
	}
}

func (l *Library) NewFontAtlas() (gui.FontAtlas, error) {
	return newFontAtlas(), nil
}

// NewContext creates the imgui context of w together with its renderer. The
// shared GL context must be current.
func (l *Library) NewContext(atlas gui.FontAtlas, w platform.NativeWindow, glMajor int) (gui.Context, error) {
	fa, ok := atlas.(*FontAtlas)
	if !ok {
		return nil, fmt.Errorf("imguibackend: foreign font atlas %T", atlas)
	}
	if fa.owner == nil {
		return nil, errors.New("imguibackend: font atlas already destroyed")
	}
	if _, dup := l.contexts[w.ID()]; dup {
		return nil, fmt.Errorf("imguibackend: window %d already has a context", w.ID())
	}

	// Frames record the font texture id, so it must exist before the first
	// one starts.
	r, err := l.newRenderer(glMajor, fa)
	if err != nil {
		return nil, fmt.Errorf("imguibackend: creating OpenGL %d renderer: %w", glMajor, err)
	}

	prev, prevErr := imgui.CurrentContext()
	ctx := imgui.CreateContext(&fa.fonts)
	if err := ctx.SetCurrent(); err != nil {
		ctx.Destroy()
		r.Dispose()
		return nil, fmt.Errorf("imguibackend: activating new context: %w", err)
	}
	configureIO(imgui.CurrentIO(), l.IniFilename)
	if prevErr == nil {
		_ = prev.SetCurrent()
	}

	c := &Context{
		lib:      l,
		imgui:    ctx,
		atlas:    fa,
		window:   w,
		renderer: r,
	}
	l.contexts[w.ID()] = c
	return c, nil
}

// ProcessEvent applies input events to the context of their window. Events
// for windows without a context, window events and user events are left to
// the caller.
func (l *Library) ProcessEvent(e platform.Event) bool {
	if !isInput(e) {
		return false
	}
	c, ok := l.contexts[platform.EventWindowID(e)]
	if !ok {
		return false
	}

	prev, prevErr := imgui.CurrentContext()
	if err := c.imgui.SetCurrent(); err != nil {
		return false
	}
	applyInput(imgui.CurrentIO(), e)
	if prevErr == nil {
		_ = prev.SetCurrent()
	}
	return true
}

func (l *Library) forget(c *Context) {
	if l.contexts[c.window.ID()] == c {
		delete(l.contexts, c.window.ID())
	}
}
