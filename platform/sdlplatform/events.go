package sdlplatform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/PazerOP/imgui-desktop/platform"
)

var windowEventKinds = map[uint8]platform.WindowEventKind{
	sdl.WINDOWEVENT_SHOWN:        platform.WindowShown,
	sdl.WINDOWEVENT_HIDDEN:       platform.WindowHidden,
	sdl.WINDOWEVENT_EXPOSED:      platform.WindowExposed,
	sdl.WINDOWEVENT_MOVED:        platform.WindowMoved,
	sdl.WINDOWEVENT_SIZE_CHANGED: platform.WindowResized,
	sdl.WINDOWEVENT_MINIMIZED:    platform.WindowMinimized,
	sdl.WINDOWEVENT_MAXIMIZED:    platform.WindowMaximized,
	sdl.WINDOWEVENT_RESTORED:     platform.WindowRestored,
	sdl.WINDOWEVENT_ENTER:        platform.WindowEnter,
	sdl.WINDOWEVENT_LEAVE:        platform.WindowLeave,
	sdl.WINDOWEVENT_FOCUS_GAINED: platform.WindowFocusGained,
	sdl.WINDOWEVENT_FOCUS_LOST:   platform.WindowFocusLost,
	sdl.WINDOWEVENT_CLOSE:        platform.WindowClose,
}

var keys = map[sdl.Keycode]platform.Key{
	sdl.K_TAB:       platform.KeyTab,
	sdl.K_LEFT:      platform.KeyLeft,
	sdl.K_RIGHT:     platform.KeyRight,
	sdl.K_UP:        platform.KeyUp,
	sdl.K_DOWN:      platform.KeyDown,
	sdl.K_PAGEUP:    platform.KeyPageUp,
	sdl.K_PAGEDOWN:  platform.KeyPageDown,
	sdl.K_HOME:      platform.KeyHome,
	sdl.K_END:       platform.KeyEnd,
	sdl.K_INSERT:    platform.KeyInsert,
	sdl.K_DELETE:    platform.KeyDelete,
	sdl.K_BACKSPACE: platform.KeyBackspace,
	sdl.K_SPACE:     platform.KeySpace,
	sdl.K_RETURN:    platform.KeyEnter,
	sdl.K_ESCAPE:    platform.KeyEscape,
	sdl.K_KP_ENTER:  platform.KeyKeypadEnter,
	sdl.K_a:         platform.KeyA,
	sdl.K_c:         platform.KeyC,
	sdl.K_v:         platform.KeyV,
	sdl.K_x:         platform.KeyX,
	sdl.K_y:         platform.KeyY,
	sdl.K_z:         platform.KeyZ,
	sdl.K_LSHIFT:    platform.KeyLeftShift,
	sdl.K_RSHIFT:    platform.KeyRightShift,
	sdl.K_LCTRL:     platform.KeyLeftCtrl,
	sdl.K_RCTRL:     platform.KeyRightCtrl,
	sdl.K_LALT:      platform.KeyLeftAlt,
	sdl.K_RALT:      platform.KeyRightAlt,
	sdl.K_LGUI:      platform.KeyLeftSuper,
	sdl.K_RGUI:      platform.KeyRightSuper,
}

var mouseButtons = map[uint8]platform.MouseButton{
	sdl.BUTTON_LEFT:   platform.MouseLeft,
	sdl.BUTTON_RIGHT:  platform.MouseRight,
	sdl.BUTTON_MIDDLE: platform.MouseMiddle,
	sdl.BUTTON_X1:     platform.MouseX1,
	sdl.BUTTON_X2:     platform.MouseX2,
}

func modifiers(mod uint16) platform.Modifiers {
	var m platform.Modifiers
	if mod&sdl.KMOD_SHIFT != 0 {
		m |= platform.ModShift
	}
	if mod&sdl.KMOD_CTRL != 0 {
		m |= platform.ModCtrl
	}
	if mod&sdl.KMOD_ALT != 0 {
		m |= platform.ModAlt
	}
	if mod&sdl.KMOD_GUI != 0 {
		m |= platform.ModSuper
	}
	return m
}

// translateEvent converts an SDL event. It returns nil for events nobody
// listens to, such as the ignored window event kinds.
func translateEvent(e sdl.Event) platform.Event {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return platform.QuitEvent{}

	case *sdl.WindowEvent:
		kind, ok := windowEventKinds[e.Event]
		if !ok {
			// SDL sends RESIZED alongside SIZE_CHANGED.
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				return nil
			}
			kind = platform.WindowOther
		}
		return platform.WindowEvent{
			WindowID: platform.WindowID(e.WindowID),
			Kind:     kind,
			Data1:    e.Data1,
			Data2:    e.Data2,
		}

	case *sdl.UserEvent:
		return platform.UserEvent{
			Type:     e.Type,
			Code:     e.Code,
			WindowID: platform.WindowID(e.WindowID),
		}

	case *sdl.KeyboardEvent:
		return platform.KeyEvent{
			WindowID: platform.WindowID(e.WindowID),
			Key:      keys[e.Keysym.Sym],
			Down:     e.State == sdl.PRESSED,
			Repeat:   e.Repeat != 0,
			Mods:     modifiers(e.Keysym.Mod),
		}

	case *sdl.TextInputEvent:
		return platform.TextInputEvent{
			WindowID: platform.WindowID(e.WindowID),
			Text:     e.GetText(),
		}

	case *sdl.MouseMotionEvent:
		return platform.MouseMotionEvent{
			WindowID: platform.WindowID(e.WindowID),
			X:        float32(e.X),
			Y:        float32(e.Y),
		}

	case *sdl.MouseButtonEvent:
		button, ok := mouseButtons[e.Button]
		if !ok {
			return platform.OtherEvent{Native: e}
		}
		return platform.MouseButtonEvent{
			WindowID: platform.WindowID(e.WindowID),
			Button:   button,
			Down:     e.State == sdl.PRESSED,
			X:        float32(e.X),
			Y:        float32(e.Y),
		}

	case *sdl.MouseWheelEvent:
		x, y := float32(e.X), float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			x, y = -x, -y
		}
		return platform.MouseWheelEvent{
			WindowID: platform.WindowID(e.WindowID),
			X:        x,
			Y:        y,
		}
	}
	return platform.OtherEvent{Native: e}
}
