package fakes

import (
	"unsafe"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gldriver"
)

// GLDriver is a fake gldriver.Driver.
type GLDriver struct {
	InfoValue gldriver.Info
	InitErr   error
	Inits     []glcontext.Version
	Clears    int
	Debug     gldriver.DebugOutput
	DebugFunc func(msg string)
}

// NewGLDriver returns a driver describing a healthy Mesa install.
func NewGLDriver() *GLDriver {
	return &GLDriver{
		InfoValue: gldriver.Info{
			Vendor:          "Mesa",
			Renderer:        "llvmpipe (LLVM 15.0.7, 256 bits)",
			Version:         "4.5 (Core Profile) Mesa 23.1.0",
			ShadingLanguage: "4.50",
			Extensions:      []string{"GL_ARB_debug_output", "GL_KHR_debug"},
		},
	}
}

func (d *GLDriver) Init(version glcontext.Version, procAddr func(string) unsafe.Pointer) error {
	d.Inits = append(d.Inits, version)
	return d.InitErr
}

func (d *GLDriver) Info() gldriver.Info { return d.InfoValue }

func (d *GLDriver) EnableDebugOutput(version glcontext.Version, fn func(msg string)) gldriver.DebugOutput {
	d.DebugFunc = fn
	return d.Debug
}

func (d *GLDriver) Clear() { d.Clears++ }
