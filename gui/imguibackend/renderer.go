package imguibackend

import (
	"github.com/inkyblackness/imgui-go/v4"
)

type renderer interface {
	Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData)
	Dispose()
}

// newRenderer picks the renderer for the GL major version. The shared GL
// context must be current.
func newRenderer(glMajor int, atlas *FontAtlas) (renderer, error) {
	if glMajor >= 3 {
		r, err := newOpenGL3(atlas)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r, err := newOpenGL2(atlas)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// drawType returns the GL index type matching imgui's index size.
func drawType(unsignedShort, unsignedInt uint32) uint32 {
	const bytesPerUint32 = 4
	if imgui.IndexBufferLayout() == bytesPerUint32 {
		return unsignedInt
	}
	return unsignedShort
}
