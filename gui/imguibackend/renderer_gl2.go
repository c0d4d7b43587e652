package imguibackend

import (
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

// openGL2 draws imgui data with the OpenGL 2.1 fixed function pipeline.
type openGL2 struct {
	atlas *FontAtlas
}

func newOpenGL2(atlas *FontAtlas) (*openGL2, error) {
	atlas.acquire(uploadFontTexture2)
	return &openGL2{atlas: atlas}, nil
}

func uploadFontTexture2(image *imgui.RGBA32Image) uint32 {
	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(image.Width), int32(image.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)

	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	return texture
}

func (r *openGL2) Dispose() {
	r.atlas.release(func(texture uint32) { gl.DeleteTextures(1, &texture) })
}

func (r *openGL2) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{X: fbWidth / displayWidth, Y: fbHeight / displayHeight})

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	var lastPolygonMode [2]int32
	gl.GetIntegerv(gl.POLYGON_MODE, &lastPolygonMode[0])
	var lastViewport, lastScissorBox [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &lastViewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	var lastShadeModel int32
	gl.GetIntegerv(gl.SHADE_MODEL, &lastShadeModel)
	var lastTexEnvMode int32
	gl.GetTexEnviv(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, &lastTexEnvMode)

	gl.PushAttrib(gl.ENABLE_BIT | gl.COLOR_BUFFER_BIT | gl.TRANSFORM_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.LIGHTING)
	gl.Disable(gl.COLOR_MATERIAL)
	gl.Enable(gl.SCISSOR_TEST)
	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.EnableClientState(gl.COLOR_ARRAY)
	gl.Enable(gl.TEXTURE_2D)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.ShadeModel(gl.SMOOTH)
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0, float64(displayWidth), float64(displayHeight), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()

	vertexSize, vertexOffsetPos, vertexOffsetUV, vertexOffsetCol := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	indexType := drawType(gl.UNSIGNED_SHORT, gl.UNSIGNED_INT)

	for _, list := range drawData.CommandLists() {
		vertexBuffer, _ := list.VertexBuffer()
		indexBuffer, _ := list.IndexBuffer()

		gl.VertexPointer(2, gl.FLOAT, int32(vertexSize), unsafe.Add(vertexBuffer, vertexOffsetPos))
		gl.TexCoordPointer(2, gl.FLOAT, int32(vertexSize), unsafe.Add(vertexBuffer, vertexOffsetUV))
		gl.ColorPointer(4, gl.UNSIGNED_BYTE, int32(vertexSize), unsafe.Add(vertexBuffer, vertexOffsetCol))

		indexOffset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, unsafe.Add(indexBuffer, indexOffset))
			}
			indexOffset += cmd.ElementCount() * indexSize
		}
	}

	gl.DisableClientState(gl.COLOR_ARRAY)
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.DisableClientState(gl.VERTEX_ARRAY)
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.PopAttrib()
	gl.PolygonMode(gl.FRONT, uint32(lastPolygonMode[0]))
	gl.PolygonMode(gl.BACK, uint32(lastPolygonMode[1]))
	gl.Viewport(lastViewport[0], lastViewport[1], lastViewport[2], lastViewport[3])
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
	gl.ShadeModel(uint32(lastShadeModel))
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, lastTexEnvMode)
}
