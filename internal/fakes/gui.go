package fakes

import (
	"time"

	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/platform"
)

// FontAtlas is a fake gui.FontAtlas.
type FontAtlas struct {
	Destroyed bool
}

func (a *FontAtlas) Destroy() { a.Destroyed = true }

// GUI is a fake gui.Library.
type GUI struct {
	Atlases    []*FontAtlas
	Contexts   []*GUIContext
	Active     *GUIContext
	Processed  []platform.Event
	ContextErr error
	// Consume decides whether ProcessEvent swallows an event.
	Consume func(e platform.Event) bool
	// Trace records GUI calls across all contexts, in order.
	Trace []string
}

func NewGUI() *GUI {
	return &GUI{}
}

func (g *GUI) NewFontAtlas() (gui.FontAtlas, error) {
	a := &FontAtlas{}
	g.Atlases = append(g.Atlases, a)
	return a, nil
}

func (g *GUI) NewContext(atlas gui.FontAtlas, w platform.NativeWindow, glMajor int) (gui.Context, error) {
	if g.ContextErr != nil {
		return nil, g.ContextErr
	}
	c := &GUIContext{g: g, Atlas: atlas, Window: w, GLMajor: glMajor}
	g.Contexts = append(g.Contexts, c)
	return c, nil
}

func (g *GUI) ProcessEvent(e platform.Event) bool {
	g.Processed = append(g.Processed, e)
	return g.Consume != nil && g.Consume(e)
}

// GUIContext is a fake gui.Context.
type GUIContext struct {
	g         *GUI
	Atlas     gui.FontAtlas
	Window    platform.NativeWindow
	GLMajor   int
	Frames    int
	Renders   int
	Deltas    []time.Duration
	MainSize  [2]float32
	MenuBar   bool
	Destroyed bool
}

func (c *GUIContext) trace(s string) { c.g.Trace = append(c.g.Trace, s) }

func (c *GUIContext) Activate() {
	c.g.Active = c
	c.trace("activate")
}

func (c *GUIContext) NewFrame(dt time.Duration) {
	c.Frames++
	c.Deltas = append(c.Deltas, dt)
	c.trace("new-frame")
}

func (c *GUIContext) BeginMainWindow(width, height float32, menuBar bool) bool {
	c.MainSize = [2]float32{width, height}
	c.MenuBar = menuBar
	c.trace("begin")
	return true
}

func (c *GUIContext) EndMainWindow() { c.trace("end") }

func (c *GUIContext) BeginMenuBar() bool {
	c.trace("begin-menu-bar")
	return true
}

func (c *GUIContext) EndMenuBar() { c.trace("end-menu-bar") }

func (c *GUIContext) Render() {
	c.Renders++
	c.trace("render")
}

func (c *GUIContext) Destroy() {
	c.Destroyed = true
	if c.g.Active == c {
		c.g.Active = nil
	}
}
