package imguibackend

import (
	"errors"
	"testing"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/internal/fakes"
	"github.com/PazerOP/imgui-desktop/platform"
)

type stubRenderer struct {
	frames   int
	disposed bool
}

func (r *stubRenderer) Render([2]float32, [2]float32, imgui.DrawData) { r.frames++ }

func (r *stubRenderer) Dispose() { r.disposed = true }

func newLibrary(t *testing.T) (*Library, gui.FontAtlas) {
	t.Helper()
	lib := New()
	lib.newRenderer = func(int, *FontAtlas) (renderer, error) { return &stubRenderer{}, nil }
	atlas, err := lib.NewFontAtlas()
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, c := range lib.contexts {
			c.Destroy()
		}
		atlas.Destroy()
	})
	return lib, atlas
}

func newContext(t *testing.T, lib *Library, atlas gui.FontAtlas, id platform.WindowID) *Context {
	t.Helper()
	c, err := lib.NewContext(atlas, fakes.NewWindow(id), 3)
	require.NoError(t, err)
	return c.(*Context)
}

func TestInputIsRoutedByWindow(t *testing.T) {
	lib, atlas := newLibrary(t)
	first := newContext(t, lib, atlas, 1)
	second := newContext(t, lib, atlas, 2)

	consumed := lib.ProcessEvent(platform.KeyEvent{WindowID: 1, Key: platform.KeyA, Down: true})
	assert.True(t, consumed)

	first.Activate()
	assert.True(t, imgui.IsKeyDown(int(platform.KeyA)))
	second.Activate()
	assert.False(t, imgui.IsKeyDown(int(platform.KeyA)))

	lib.ProcessEvent(platform.KeyEvent{WindowID: 1, Key: platform.KeyA, Down: false})
	first.Activate()
	assert.False(t, imgui.IsKeyDown(int(platform.KeyA)))
}

func TestKeypadEnterActsAsEnter(t *testing.T) {
	lib, atlas := newLibrary(t)
	c := newContext(t, lib, atlas, 1)

	lib.ProcessEvent(platform.KeyEvent{WindowID: 1, Key: platform.KeyKeypadEnter, Down: true})
	c.Activate()
	assert.True(t, imgui.IsKeyDown(int(platform.KeyEnter)))
}

func TestProcessEventIgnoresNonInput(t *testing.T) {
	lib, atlas := newLibrary(t)
	newContext(t, lib, atlas, 1)

	assert.False(t, lib.ProcessEvent(platform.WindowEvent{WindowID: 1, Kind: platform.WindowClose}))
	assert.False(t, lib.ProcessEvent(platform.UserEvent{Type: 0x8000, WindowID: 1}))
	assert.False(t, lib.ProcessEvent(platform.QuitEvent{}))
	assert.False(t, lib.ProcessEvent(platform.KeyEvent{WindowID: 9, Key: platform.KeyA, Down: true}))
}

func TestMouseEventsAreConsumed(t *testing.T) {
	lib, atlas := newLibrary(t)
	newContext(t, lib, atlas, 1)

	assert.True(t, lib.ProcessEvent(platform.MouseMotionEvent{WindowID: 1, X: 10, Y: 20}))
	assert.True(t, lib.ProcessEvent(platform.MouseButtonEvent{WindowID: 1, Button: platform.MouseLeft, Down: true, X: 10, Y: 20}))
	assert.True(t, lib.ProcessEvent(platform.MouseWheelEvent{WindowID: 1, Y: 1}))
	assert.True(t, lib.ProcessEvent(platform.TextInputEvent{WindowID: 1, Text: "a"}))
}

func TestNewContextErrors(t *testing.T) {
	lib, atlas := newLibrary(t)
	newContext(t, lib, atlas, 1)

	_, err := lib.NewContext(atlas, fakes.NewWindow(1), 3)
	assert.ErrorContains(t, err, "already has a context")

	_, err = lib.NewContext(&fakes.FontAtlas{}, fakes.NewWindow(2), 3)
	assert.ErrorContains(t, err, "foreign font atlas")

	dead := newFontAtlas()
	dead.Destroy()
	_, err = lib.NewContext(dead, fakes.NewWindow(3), 3)
	assert.ErrorContains(t, err, "already destroyed")
}

func TestNewContextFailsWhenRendererFails(t *testing.T) {
	lib, atlas := newLibrary(t)
	shaderErr := errors.New("shader failed to compile")
	var majors []int
	lib.newRenderer = func(glMajor int, _ *FontAtlas) (renderer, error) {
		majors = append(majors, glMajor)
		return nil, shaderErr
	}

	_, err := lib.NewContext(atlas, fakes.NewWindow(1), 2)
	assert.ErrorIs(t, err, shaderErr)
	assert.Equal(t, []int{2}, majors)
	assert.Empty(t, lib.contexts)
	assert.False(t, lib.ProcessEvent(platform.KeyEvent{WindowID: 1, Key: platform.KeyA, Down: true}))
}

func TestDestroyDisposesRenderer(t *testing.T) {
	lib, atlas := newLibrary(t)
	c := newContext(t, lib, atlas, 1)
	r := c.renderer.(*stubRenderer)

	c.Destroy()
	assert.True(t, r.disposed)
}

func TestNewContextKeepsPreviousContextCurrent(t *testing.T) {
	lib, atlas := newLibrary(t)
	newContext(t, lib, atlas, 1)

	lib.ProcessEvent(platform.KeyEvent{WindowID: 1, Key: platform.KeyA, Down: true})
	_, err := imgui.CurrentContext()
	require.NoError(t, err)
	assert.False(t, imgui.IsKeyDown(int(platform.KeyA)), "window 1 must not be the active context")
}

func TestDestroyForgetsContext(t *testing.T) {
	lib, atlas := newLibrary(t)
	c := newContext(t, lib, atlas, 1)

	c.Destroy()
	c.Destroy()
	assert.Empty(t, lib.contexts)
	assert.False(t, lib.ProcessEvent(platform.KeyEvent{WindowID: 1, Key: platform.KeyA, Down: true}))

	_, err := imgui.CurrentContext()
	assert.NoError(t, err, "the atlas context stays active")
}

func TestFontTextureIsReferenceCounted(t *testing.T) {
	atlas := &FontAtlas{}
	uploads, removals := 0, 0
	upload := func(*imgui.RGBA32Image) uint32 { uploads++; return 7 }
	remove := func(texture uint32) {
		assert.Equal(t, uint32(7), texture)
		removals++
	}

	atlas.users = 1
	atlas.texture = 7
	atlas.acquire(upload)
	assert.Equal(t, 0, uploads)
	atlas.release(remove)
	assert.Equal(t, 0, removals)
	atlas.release(remove)
	assert.Equal(t, 1, removals)
	atlas.release(remove)
	assert.Equal(t, 1, removals)
	assert.Zero(t, atlas.texture)
}
