package imguibackend

import (
	"time"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/platform"
)

// minDelta stands in for a zero frame delta, which imgui rejects.
const minDelta = time.Second / 60

const mainWindowFlags = imgui.WindowFlagsNoTitleBar |
	imgui.WindowFlagsNoResize |
	imgui.WindowFlagsNoCollapse |
	imgui.WindowFlagsNoMove |
	imgui.WindowFlagsNoSavedSettings |
	imgui.WindowFlagsNoBringToFrontOnFocus

// Context is the imgui state of one window.
type Context struct {
	lib      *Library
	imgui    *imgui.Context
	atlas    *FontAtlas
	window   platform.NativeWindow
	renderer renderer

	displaySize     [2]float32
	framebufferSize [2]float32
}

var _ gui.Context = (*Context)(nil)

func (c *Context) Activate() {
	_ = c.imgui.SetCurrent()
}

// NewFrame starts a frame. The shared GL context must be current.
func (c *Context) NewFrame(dt time.Duration) {
	w, h := c.window.Size()
	fw, fh := c.window.DrawableSize()
	c.displaySize = [2]float32{float32(w), float32(h)}
	c.framebufferSize = [2]float32{float32(fw), float32(fh)}

	if dt <= 0 {
		dt = minDelta
	}
	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: c.displaySize[0], Y: c.displaySize[1]})
	io.SetDeltaTime(float32(dt.Seconds()))
	imgui.NewFrame()
}

func (c *Context) BeginMainWindow(width, height float32, menuBar bool) bool {
	flags := mainWindowFlags
	if menuBar {
		flags |= imgui.WindowFlagsMenuBar
	}
	imgui.SetNextWindowPosV(imgui.Vec2{}, imgui.ConditionAlways, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: width, Y: height}, imgui.ConditionAlways)
	imgui.PushStyleVarFloat(imgui.StyleVarWindowRounding, 0)
	imgui.PushStyleVarFloat(imgui.StyleVarWindowBorderSize, 0)
	visible := imgui.BeginV("##main", nil, flags)
	imgui.PopStyleVarV(2)
	return visible
}

func (c *Context) EndMainWindow() { imgui.End() }

func (c *Context) BeginMenuBar() bool { return imgui.BeginMenuBar() }

func (c *Context) EndMenuBar() { imgui.EndMenuBar() }

func (c *Context) Render() {
	imgui.Render()
	c.renderer.Render(c.displaySize, c.framebufferSize, imgui.RenderedDrawData())
}

// Destroy frees the context and its renderer, leaving the font atlas
// context active. The shared GL context must be current if anything was
// rendered.
func (c *Context) Destroy() {
	if c.imgui == nil {
		return
	}
	if c.renderer != nil {
		c.renderer.Dispose()
		c.renderer = nil
	}
	c.lib.forget(c)

	c.imgui.Destroy()
	c.imgui = nil
	// Never leave a freed context current.
	if c.atlas.owner != nil {
		_ = c.atlas.owner.SetCurrent()
	}
}
