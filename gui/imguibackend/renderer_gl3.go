package imguibackend

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/PazerOP/imgui-desktop/internal/glutil"
)

const vertexShader150 = `#version 150
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main()
{
	Frag_UV = UV;
	Frag_Color = Color;
	gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const fragmentShader150 = `#version 150
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main()
{
	Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`

// openGL3 draws imgui data with OpenGL 3.2 core.
type openGL3 struct {
	atlas *FontAtlas

	program          uint32
	locationTex      int32
	locationProjMtx  int32
	locationPosition uint32
	locationUV       uint32
	locationColor    uint32
	vbo              uint32
	elements         uint32
}

func newOpenGL3(atlas *FontAtlas) (*openGL3, error) {
	program, err := glutil.CompileProgram(vertexShader150, fragmentShader150)
	if err != nil {
		return nil, err
	}
	r := &openGL3{
		atlas:            atlas,
		program:          program,
		locationTex:      glutil.Uniform(program, "Texture"),
		locationProjMtx:  glutil.Uniform(program, "ProjMtx"),
		locationPosition: glutil.Attrib(program, "Position"),
		locationUV:       glutil.Attrib(program, "UV"),
		locationColor:    glutil.Attrib(program, "Color"),
	}
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.elements)
	atlas.acquire(uploadFontTexture3)
	return r, nil
}

func uploadFontTexture3(image *imgui.RGBA32Image) uint32 {
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

func (r *openGL3) Dispose() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.elements != 0 {
		gl.DeleteBuffers(1, &r.elements)
		r.elements = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	r.atlas.release(func(texture uint32) { gl.DeleteTextures(1, &texture) })
}

func (r *openGL3) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{X: fbWidth / displayWidth, Y: fbHeight / displayHeight})

	var lastActiveTexture int32
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &lastActiveTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	var lastProgram, lastTexture, lastArrayBuffer, lastVertexArray int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &lastArrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &lastVertexArray)
	var lastViewport, lastScissorBox [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &lastViewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	var lastBlendSrc, lastBlendDst, lastBlendEquation int32
	gl.GetIntegerv(gl.BLEND_SRC, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST, &lastBlendDst)
	gl.GetIntegerv(gl.BLEND_EQUATION, &lastBlendEquation)
	lastEnableBlend := gl.IsEnabled(gl.BLEND)
	lastEnableCullFace := gl.IsEnabled(gl.CULL_FACE)
	lastEnableDepthTest := gl.IsEnabled(gl.DEPTH_TEST)
	lastEnableScissorTest := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	projection := mgl32.Ortho(0, displayWidth, displayHeight, 0, -1, 1)
	gl.UseProgram(r.program)
	gl.Uniform1i(r.locationTex, 0)
	gl.UniformMatrix4fv(r.locationProjMtx, 1, false, &projection[0])

	// Vertex arrays are not shared between contexts, so each frame binds a
	// fresh one.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.EnableVertexAttribArray(r.locationPosition)
	gl.EnableVertexAttribArray(r.locationUV)
	gl.EnableVertexAttribArray(r.locationColor)
	vertexSize, vertexOffsetPos, vertexOffsetUV, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(r.locationPosition, 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(r.locationUV, 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUV))
	gl.VertexAttribPointerWithOffset(r.locationColor, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))
	indexSize := imgui.IndexBufferLayout()
	indexType := drawType(gl.UNSIGNED_SHORT, gl.UNSIGNED_INT)

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elements)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		var indexOffset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, indexOffset)
			}
			indexOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}
	gl.DeleteVertexArrays(1, &vao)

	gl.UseProgram(uint32(lastProgram))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	gl.ActiveTexture(uint32(lastActiveTexture))
	gl.BindVertexArray(uint32(lastVertexArray))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(lastArrayBuffer))
	gl.BlendEquation(uint32(lastBlendEquation))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))
	setEnabled3(gl.BLEND, lastEnableBlend)
	setEnabled3(gl.CULL_FACE, lastEnableCullFace)
	setEnabled3(gl.DEPTH_TEST, lastEnableDepthTest)
	setEnabled3(gl.SCISSOR_TEST, lastEnableScissorTest)
	gl.Viewport(lastViewport[0], lastViewport[1], lastViewport[2], lastViewport[3])
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
}

func setEnabled3(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
