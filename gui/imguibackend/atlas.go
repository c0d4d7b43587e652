package imguibackend

import (
	"github.com/inkyblackness/imgui-go/v4"
)

// FontAtlas owns the fonts every context of the process draws with. The
// fonts live in a hidden imgui context that is never rendered.
type FontAtlas struct {
	owner *imgui.Context
	fonts imgui.FontAtlas

	// texture is uploaded by the first renderer and deleted by the last.
	texture uint32
	users   int
}

// newFontAtlas builds the fonts in a fresh owner context. If no context was
// current before, the owner is left current so imgui never runs without one;
// it has no frame in progress and no window routes input to it.
func newFontAtlas() *FontAtlas {
	prev, prevErr := imgui.CurrentContext()
	owner := imgui.CreateContext(nil)
	_ = owner.SetCurrent()

	io := imgui.CurrentIO()
	fonts := io.Fonts()
	fonts.AddFontDefault()
	// Contexts refuse to start a frame until the atlas is built.
	fonts.TextureDataRGBA32()

	if prevErr == nil {
		_ = prev.SetCurrent()
	}
	return &FontAtlas{owner: owner, fonts: fonts}
}

// acquire returns the font texture, calling upload to create it first if no
// renderer holds it yet.
func (a *FontAtlas) acquire(upload func(image *imgui.RGBA32Image) uint32) imgui.TextureID {
	if a.users == 0 {
		a.texture = upload(a.fonts.TextureDataRGBA32())
		a.fonts.SetTextureID(imgui.TextureID(a.texture))
	}
	a.users++
	return imgui.TextureID(a.texture)
}

// release drops a reference and calls remove once nothing uses the texture.
func (a *FontAtlas) release(remove func(texture uint32)) {
	if a.users == 0 {
		return
	}
	a.users--
	if a.users == 0 {
		remove(a.texture)
		a.texture = 0
	}
}

// Destroy frees the fonts. Every context created from the atlas must be
// destroyed first.
func (a *FontAtlas) Destroy() {
	if a.owner == nil {
		return
	}
	a.owner.Destroy()
	a.owner = nil
}
