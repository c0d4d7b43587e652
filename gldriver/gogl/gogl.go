// Package gogl implements gldriver.Driver with the go-gl bindings. Contexts
// older than 3.2 use the 2.1 bindings, newer ones the 3.2 core bindings.
// Both load the KHR_debug and ARB_debug_output entry points when the driver
// has them.
package gogl

import (
	"fmt"
	"strings"
	"unsafe"

	gl21 "github.com/go-gl/gl/v2.1/gl"
	gl32 "github.com/go-gl/gl/v3.2-core/gl"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gldriver"
	"github.com/PazerOP/imgui-desktop/logsink"
)

// Driver issues GL calls through go-gl.
type Driver struct {
	version glcontext.Version
	core    bool
	onDebug func(msg string)
}

var _ gldriver.Driver = (*Driver)(nil)

func New() *Driver {
	return &Driver{}
}

// Core reports whether the 3.2 core bindings are in use.
func (d *Driver) Core() bool {
	return d.core
}

func (d *Driver) Init(version glcontext.Version, procAddr func(name string) unsafe.Pointer) error {
	if d.version == version {
		return nil
	}
	if version.AtLeast(3, 2) {
		if err := gl32.InitWithProcAddrFunc(procAddr); err != nil {
			return fmt.Errorf("initializing OpenGL 3.2 core bindings: %w", err)
		}
		d.core = true
	} else {
		if err := gl21.InitWithProcAddrFunc(procAddr); err != nil {
			return fmt.Errorf("initializing OpenGL 2.1 bindings: %w", err)
		}
		d.core = false
	}
	d.version = version
	return nil
}

func (d *Driver) Info() gldriver.Info {
	if d.core {
		info := gldriver.Info{
			Vendor:          gl32.GoStr(gl32.GetString(gl32.VENDOR)),
			Renderer:        gl32.GoStr(gl32.GetString(gl32.RENDERER)),
			Version:         gl32.GoStr(gl32.GetString(gl32.VERSION)),
			ShadingLanguage: gl32.GoStr(gl32.GetString(gl32.SHADING_LANGUAGE_VERSION)),
		}
		var n int32
		gl32.GetIntegerv(gl32.NUM_EXTENSIONS, &n)
		for i := int32(0); i < n; i++ {
			info.Extensions = append(info.Extensions, gl32.GoStr(gl32.GetStringi(gl32.EXTENSIONS, uint32(i))))
		}
		return info
	}
	return gldriver.Info{
		Vendor:          gl21.GoStr(gl21.GetString(gl21.VENDOR)),
		Renderer:        gl21.GoStr(gl21.GetString(gl21.RENDERER)),
		Version:         gl21.GoStr(gl21.GetString(gl21.VERSION)),
		ShadingLanguage: gl21.GoStr(gl21.GetString(gl21.SHADING_LANGUAGE_VERSION)),
		Extensions:      strings.Fields(gl21.GoStr(gl21.GetString(gl21.EXTENSIONS))),
	}
}

func (d *Driver) EnableDebugOutput(version glcontext.Version, fn func(msg string)) gldriver.DebugOutput {
	out := gldriver.SelectDebugOutput(version, d.Info())
	if out == gldriver.DebugNone {
		return out
	}
	d.onDebug = fn
	if d.core {
		enableDebug32(out, d.handleDebug)
	} else {
		enableDebug21(out, d.handleDebug)
	}
	logsink.Logger().Debug("muted low severity OpenGL debug messages", "via", out)
	return out
}

func enableDebug32(out gldriver.DebugOutput, fn gl32.DebugProc) {
	if out == gldriver.DebugKHR {
		gl32.Enable(gl32.DEBUG_OUTPUT)
		gl32.Enable(gl32.DEBUG_OUTPUT_SYNCHRONOUS)
		gl32.DebugMessageCallback(fn, nil)
		gl32.DebugMessageControl(gl32.DONT_CARE, gl32.DONT_CARE, gl32.DEBUG_SEVERITY_LOW, 0, nil, false)
		return
	}
	gl32.Enable(gl32.DEBUG_OUTPUT_SYNCHRONOUS_ARB)
	gl32.DebugMessageCallbackARB(fn, nil)
	gl32.DebugMessageControlARB(gl32.DONT_CARE, gl32.DONT_CARE, gl32.DEBUG_SEVERITY_LOW_ARB, 0, nil, false)
}

func enableDebug21(out gldriver.DebugOutput, fn gl21.DebugProc) {
	if out == gldriver.DebugKHR {
		gl21.Enable(gl21.DEBUG_OUTPUT)
		gl21.Enable(gl21.DEBUG_OUTPUT_SYNCHRONOUS)
		gl21.DebugMessageCallback(fn, nil)
		gl21.DebugMessageControl(gl21.DONT_CARE, gl21.DONT_CARE, gl21.DEBUG_SEVERITY_LOW, 0, nil, false)
		return
	}
	gl21.Enable(gl21.DEBUG_OUTPUT_SYNCHRONOUS_ARB)
	gl21.DebugMessageCallbackARB(fn, nil)
	gl21.DebugMessageControlARB(gl21.DONT_CARE, gl21.DONT_CARE, gl21.DEBUG_SEVERITY_LOW_ARB, 0, nil, false)
}

func (d *Driver) handleDebug(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
	if severity == gl32.DEBUG_SEVERITY_NOTIFICATION || d.onDebug == nil {
		return
	}
	d.onDebug(gldriver.FormatDebugMessage(source, gltype, id, severity, message))
}

func (d *Driver) Clear() {
	if d.core {
		gl32.ClearColor(0, 0, 0, 0)
		gl32.Clear(gl32.COLOR_BUFFER_BIT | gl32.DEPTH_BUFFER_BIT | gl32.STENCIL_BUFFER_BIT)
		return
	}
	gl21.ClearColor(0, 0, 0, 0)
	gl21.Clear(gl21.COLOR_BUFFER_BIT | gl21.DEPTH_BUFFER_BIT | gl21.STENCIL_BUFFER_BIT)
}
