package main

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/PazerOP/imgui-desktop/internal/glutil"
)

const cubeVertexShader = `#version 150
in vec3 aPos;
in vec3 aColor;
out vec3 ourColor;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
void main() {
	gl_Position = projection * view * model * vec4(aPos, 1.0);
	ourColor = aColor;
}
`

const cubeFragmentShader = `#version 150
in vec3 ourColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(ourColor, 1.0);
}
`

// Position and color of every corner, one face at a time.
var cubeVertices = []float32{
	// Front (red)
	-0.5, -0.5, 0.5, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0, 0.0,

	// Back (green)
	-0.5, -0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, -0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0, 0.0,

	// Right (blue)
	0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 0.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 0.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0,

	// Left (yellow)
	-0.5, -0.5, 0.5, 1.0, 1.0, 0.0,
	-0.5, -0.5, -0.5, 1.0, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 1.0, 0.0,

	// Top (cyan)
	-0.5, 0.5, 0.5, 0.0, 1.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 1.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0, 1.0,

	// Bottom (magenta)
	-0.5, -0.5, 0.5, 1.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 0.0, 1.0,
	-0.5, -0.5, -0.5, 1.0, 0.0, 1.0,
}

var cubeIndices = []uint32{
	0, 1, 2, 2, 3, 0,
	4, 5, 6, 6, 7, 4,
	8, 9, 10, 10, 11, 8,
	12, 13, 14, 14, 15, 12,
	16, 17, 18, 18, 19, 16,
	20, 21, 22, 22, 23, 20,
}

// cube draws a spinning colored cube. Its vertex array belongs to the GL
// context it was created on, so it only draws in one window.
type cube struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32

	modelUniform      int32
	viewUniform       int32
	projectionUniform int32

	rotationX, rotationY float32
}

func newCube() (*cube, error) {
	program, err := glutil.CompileProgram(cubeVertexShader, cubeFragmentShader)
	if err != nil {
		return nil, err
	}
	c := &cube{
		program:           program,
		modelUniform:      glutil.Uniform(program, "model"),
		viewUniform:       glutil.Uniform(program, "view"),
		projectionUniform: glutil.Uniform(program, "projection"),
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &c.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(cubeIndices)*4, gl.Ptr(cubeIndices), gl.STATIC_DRAW)

	position := glutil.Attrib(program, "aPos")
	gl.VertexAttribPointerWithOffset(position, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(position)
	color := glutil.Attrib(program, "aColor")
	gl.VertexAttribPointerWithOffset(color, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(color)

	gl.BindVertexArray(0)
	return c, nil
}

// advance turns the cube by one frame at degreesPerSecond.
func (c *cube) advance(degreesPerSecond float32, fps float64) {
	if fps <= 0 {
		return
	}
	step := mgl32.DegToRad(degreesPerSecond) / float32(fps)
	c.rotationY += step
	c.rotationX += step / 2
}

func (c *cube) draw(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	var lastProgram, lastVertexArray int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &lastVertexArray)

	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.UseProgram(c.program)

	cameraPos := mgl32.Vec3{0, 0, 3}
	view := mgl32.LookAtV(cameraPos, cameraPos.Add(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, 1, 0})
	gl.UniformMatrix4fv(c.viewUniform, 1, false, &view[0])
	projection := mgl32.Perspective(mgl32.DegToRad(45), float32(width)/float32(height), 0.1, 100)
	gl.UniformMatrix4fv(c.projectionUniform, 1, false, &projection[0])
	model := mgl32.HomogRotate3DY(c.rotationY).Mul4(mgl32.HomogRotate3DX(c.rotationX))
	gl.UniformMatrix4fv(c.modelUniform, 1, false, &model[0])

	gl.BindVertexArray(c.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(cubeIndices)), gl.UNSIGNED_INT, 0)

	gl.BindVertexArray(uint32(lastVertexArray))
	gl.UseProgram(uint32(lastProgram))
	gl.Disable(gl.DEPTH_TEST)
}

func (c *cube) release() {
	gl.DeleteVertexArrays(1, &c.vao)
	gl.DeleteBuffers(1, &c.vbo)
	gl.DeleteBuffers(1, &c.ebo)
	gl.DeleteProgram(c.program)
}
