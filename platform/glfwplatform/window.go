package glfwplatform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/PazerOP/imgui-desktop/platform"
)

// Window is a GLFW window with its own context in the share group.
type Window struct {
	p    *Platform
	glfw *glfw.Window
	id   platform.WindowID
}

var _ platform.NativeWindow = (*Window)(nil)

func (w *Window) ID() platform.WindowID { return w.id }

// GLFW returns the underlying window, or nil once destroyed.
func (w *Window) GLFW() *glfw.Window { return w.glfw }

func (w *Window) Size() (int, int) { return w.glfw.GetSize() }

func (w *Window) DrawableSize() (int, int) { return w.glfw.GetFramebufferSize() }

func (w *Window) HasFocus() bool {
	return w.glfw.GetAttrib(glfw.Focused) == glfw.True || w.glfw.GetAttrib(glfw.Hovered) == glfw.True
}

func (w *Window) IsVisible() bool {
	return w.glfw.GetAttrib(glfw.Visible) == glfw.True
}

func (w *Window) Show() { w.glfw.Show() }
func (w *Window) Hide() { w.glfw.Hide() }
func (w *Window) Raise() { w.glfw.Focus() }
func (w *Window) SetTitle(title string) { w.glfw.SetTitle(title) }
func (w *Window) SwapBuffers() { w.glfw.SwapBuffers() }

func (w *Window) Destroy() {
	if w.glfw == nil {
		return
	}
	w.glfw.Destroy()
	w.glfw = nil
	delete(w.p.windows, w.id)

	if w.p.root == w {
		w.p.root = nil
		for _, other := range w.p.windows {
			w.p.root = other
			break
		}
	}
}

func (w *Window) installCallbacks() {
	gw := w.glfw
	emit := func(kind platform.WindowEventKind, d1, d2 int) {
		w.p.enqueue(platform.WindowEvent{WindowID: w.id, Kind: kind, Data1: int32(d1), Data2: int32(d2)})
	}

	gw.SetCloseCallback(func(*glfw.Window) {
		// The application decides whether the window really closes.
		gw.SetShouldClose(false)
		emit(platform.WindowClose, 0, 0)
	})
	gw.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		emit(platform.WindowResized, width, height)
	})
	gw.SetPosCallback(func(_ *glfw.Window, x, y int) {
		emit(platform.WindowMoved, x, y)
	})
	gw.SetRefreshCallback(func(*glfw.Window) {
		emit(platform.WindowExposed, 0, 0)
	})
	gw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused {
			emit(platform.WindowFocusGained, 0, 0)
		} else {
			emit(platform.WindowFocusLost, 0, 0)
		}
	})
	gw.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		if iconified {
			emit(platform.WindowMinimized, 0, 0)
		} else {
			emit(platform.WindowRestored, 0, 0)
		}
	})
	gw.SetMaximizeCallback(func(_ *glfw.Window, maximized bool) {
		if maximized {
			emit(platform.WindowMaximized, 0, 0)
		} else {
			emit(platform.WindowRestored, 0, 0)
		}
	})
	gw.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			emit(platform.WindowEnter, 0, 0)
		} else {
			emit(platform.WindowLeave, 0, 0)
		}
	})

	gw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.p.enqueue(platform.KeyEvent{
			WindowID: w.id,
			Key:      keys[key],
			Down:     action != glfw.Release,
			Repeat:   action == glfw.Repeat,
			Mods:     modifiers(mods),
		})
	})
	gw.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.p.enqueue(platform.TextInputEvent{WindowID: w.id, Text: string(char)})
	})
	gw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.p.enqueue(platform.MouseMotionEvent{WindowID: w.id, X: float32(x), Y: float32(y)})
	})
	gw.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := mouseButtons[button]
		if !ok {
			return
		}
		x, y := gw.GetCursorPos()
		w.p.enqueue(platform.MouseButtonEvent{
			WindowID: w.id,
			Button:   b,
			Down:     action == glfw.Press,
			X:        float32(x),
			Y:        float32(y),
		})
	})
	gw.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.p.enqueue(platform.MouseWheelEvent{WindowID: w.id, X: float32(xoff), Y: float32(yoff)})
	})
}

var keys = map[glfw.Key]platform.Key{
	glfw.KeyTab:          platform.KeyTab,
	glfw.KeyLeft:         platform.KeyLeft,
	glfw.KeyRight:        platform.KeyRight,
	glfw.KeyUp:           platform.KeyUp,
	glfw.KeyDown:         platform.KeyDown,
	glfw.KeyPageUp:       platform.KeyPageUp,
	glfw.KeyPageDown:     platform.KeyPageDown,
	glfw.KeyHome:         platform.KeyHome,
	glfw.KeyEnd:          platform.KeyEnd,
	glfw.KeyInsert:       platform.KeyInsert,
	glfw.KeyDelete:       platform.KeyDelete,
	glfw.KeyBackspace:    platform.KeyBackspace,
	glfw.KeySpace:        platform.KeySpace,
	glfw.KeyEnter:        platform.KeyEnter,
	glfw.KeyEscape:       platform.KeyEscape,
	glfw.KeyKPEnter:      platform.KeyKeypadEnter,
	glfw.KeyA:            platform.KeyA,
	glfw.KeyC:            platform.KeyC,
	glfw.KeyV:            platform.KeyV,
	glfw.KeyX:            platform.KeyX,
	glfw.KeyY:            platform.KeyY,
	glfw.KeyZ:            platform.KeyZ,
	glfw.KeyLeftShift:    platform.KeyLeftShift,
	glfw.KeyRightShift:   platform.KeyRightShift,
	glfw.KeyLeftControl:  platform.KeyLeftCtrl,
	glfw.KeyRightControl: platform.KeyRightCtrl,
	glfw.KeyLeftAlt:      platform.KeyLeftAlt,
	glfw.KeyRightAlt:     platform.KeyRightAlt,
	glfw.KeyLeftSuper:    platform.KeyLeftSuper,
	glfw.KeyRightSuper:   platform.KeyRightSuper,
}

var mouseButtons = map[glfw.MouseButton]platform.MouseButton{
	glfw.MouseButtonLeft:   platform.MouseLeft,
	glfw.MouseButtonRight:  platform.MouseRight,
	glfw.MouseButtonMiddle: platform.MouseMiddle,
	glfw.MouseButton4:      platform.MouseX1,
	glfw.MouseButton5:      platform.MouseX2,
}

func modifiers(mods glfw.ModifierKey) platform.Modifiers {
	var m platform.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= platform.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= platform.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= platform.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= platform.ModSuper
	}
	return m
}
