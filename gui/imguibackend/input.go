package imguibackend

import (
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/PazerOP/imgui-desktop/platform"
)

// keyMap points imgui's navigation keys at platform key codes, which are
// also the indices into the KeysDown array.
var keyMap = []struct {
	imgui int
	key   platform.Key
}{
	{int(imgui.KeyTab), platform.KeyTab},
	{int(imgui.KeyLeftArrow), platform.KeyLeft},
	{int(imgui.KeyRightArrow), platform.KeyRight},
	{int(imgui.KeyUpArrow), platform.KeyUp},
	{int(imgui.KeyDownArrow), platform.KeyDown},
	{int(imgui.KeyPageUp), platform.KeyPageUp},
	{int(imgui.KeyPageDown), platform.KeyPageDown},
	{int(imgui.KeyHome), platform.KeyHome},
	{int(imgui.KeyEnd), platform.KeyEnd},
	{int(imgui.KeyInsert), platform.KeyInsert},
	{int(imgui.KeyDelete), platform.KeyDelete},
	{int(imgui.KeyBackspace), platform.KeyBackspace},
	{int(imgui.KeySpace), platform.KeySpace},
	{int(imgui.KeyEnter), platform.KeyEnter},
	{int(imgui.KeyEscape), platform.KeyEscape},
	{int(imgui.KeyA), platform.KeyA},
	{int(imgui.KeyC), platform.KeyC},
	{int(imgui.KeyV), platform.KeyV},
	{int(imgui.KeyX), platform.KeyX},
	{int(imgui.KeyY), platform.KeyY},
	{int(imgui.KeyZ), platform.KeyZ},
}

func configureIO(io imgui.IO, iniFilename string) {
	io.SetIniFilename(iniFilename)
	io.SetConfigFlags(imgui.ConfigFlagsNavEnableKeyboard)
	for _, m := range keyMap {
		io.KeyMap(m.imgui, int(m.key))
	}
}

func isInput(e platform.Event) bool {
	switch e.(type) {
	case platform.KeyEvent, platform.TextInputEvent,
		platform.MouseMotionEvent, platform.MouseButtonEvent, platform.MouseWheelEvent:
		return true
	}
	return false
}

func applyInput(io imgui.IO, e platform.Event) {
	switch e := e.(type) {
	case platform.KeyEvent:
		key := e.Key
		if key == platform.KeyKeypadEnter {
			key = platform.KeyEnter
		}
		if key != platform.KeyUnknown {
			if e.Down {
				io.KeyPress(int(key))
			} else {
				io.KeyRelease(int(key))
			}
		}
		io.KeyShift(int(platform.KeyLeftShift), int(platform.KeyRightShift))
		io.KeyCtrl(int(platform.KeyLeftCtrl), int(platform.KeyRightCtrl))
		io.KeyAlt(int(platform.KeyLeftAlt), int(platform.KeyRightAlt))
		io.KeySuper(int(platform.KeyLeftSuper), int(platform.KeyRightSuper))
	case platform.TextInputEvent:
		io.AddInputCharacters(e.Text)
	case platform.MouseMotionEvent:
		io.SetMousePosition(imgui.Vec2{X: e.X, Y: e.Y})
	case platform.MouseButtonEvent:
		io.SetMousePosition(imgui.Vec2{X: e.X, Y: e.Y})
		io.SetMouseButtonDown(int(e.Button), e.Down)
	case platform.MouseWheelEvent:
		io.AddMouseWheelDelta(e.X, e.Y)
	}
}
