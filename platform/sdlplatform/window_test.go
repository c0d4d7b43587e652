package sdlplatform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestHasFocus(t *testing.T) {
	assert.True(t, hasFocus(sdl.WINDOW_INPUT_FOCUS))
	assert.True(t, hasFocus(sdl.WINDOW_MOUSE_FOCUS))
	assert.True(t, hasFocus(sdl.WINDOW_SHOWN|sdl.WINDOW_MOUSE_FOCUS))
	assert.False(t, hasFocus(sdl.WINDOW_SHOWN))
	assert.False(t, hasFocus(0))
}
