package sdlplatform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/PazerOP/imgui-desktop/logsink"
	"github.com/PazerOP/imgui-desktop/platform"
)

// Window is an SDL window.
type Window struct {
	p   *Platform
	sdl *sdl.Window
	id  platform.WindowID
}

var _ platform.NativeWindow = (*Window)(nil)

func (w *Window) ID() platform.WindowID { return w.id }

// SDL returns the underlying window, or nil once destroyed.
func (w *Window) SDL() *sdl.Window { return w.sdl }

func (w *Window) Size() (int, int) {
	width, height := w.sdl.GetSize()
	return int(width), int(height)
}

func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdl.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) HasFocus() bool {
	return hasFocus(w.sdl.GetFlags())
}

// hasFocus counts mouse focus too, so hovering an unfocused window still
// keeps its frames coming.
func hasFocus(flags uint32) bool {
	return flags&(sdl.WINDOW_INPUT_FOCUS|sdl.WINDOW_MOUSE_FOCUS) != 0
}

func (w *Window) IsVisible() bool {
	return w.sdl.GetFlags()&sdl.WINDOW_SHOWN != 0
}

func (w *Window) Show() { w.sdl.Show() }
func (w *Window) Hide() { w.sdl.Hide() }
func (w *Window) Raise() { w.sdl.Raise() }
func (w *Window) SetTitle(title string) { w.sdl.SetTitle(title) }
func (w *Window) SwapBuffers() { w.sdl.GLSwap() }

func (w *Window) Destroy() {
	if w.sdl == nil {
		return
	}
	delete(w.p.windows, w.id)
	if err := w.sdl.Destroy(); err != nil {
		logsink.Logger().Warn("failed to destroy SDL window", "window", w.id, "err", err)
	}
	w.sdl = nil
}
