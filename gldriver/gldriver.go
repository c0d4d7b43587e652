// Package gldriver describes the OpenGL driver behind the shared context and
// decides whether it is usable at all.
package gldriver

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/PazerOP/imgui-desktop/glcontext"
)

// Info is what the driver says about itself.
type Info struct {
	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
	Extensions      []string
}

// HasExtension reports whether the driver advertises ext.
func (i Info) HasExtension(ext string) bool {
	for _, e := range i.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DebugOutput is the debug message mechanism that got installed.
type DebugOutput int

const (
	DebugNone DebugOutput = iota
	DebugKHR
	DebugARB
)

func (d DebugOutput) String() string {
	switch d {
	case DebugKHR:
		return "GL_KHR_debug"
	case DebugARB:
		return "GL_ARB_debug_output"
	}
	return "none"
}

// SelectDebugOutput picks the debug mechanism a context offers. KHR_debug is
// core from 4.3 on and preferred at any version; ARB_debug_output is the
// fallback for older drivers.
func SelectDebugOutput(version glcontext.Version, info Info) DebugOutput {
	switch {
	case version.AtLeast(4, 3), info.HasExtension("GL_KHR_debug"):
		return DebugKHR
	case info.HasExtension("GL_ARB_debug_output"):
		return DebugARB
	}
	return DebugNone
}

// Driver issues the handful of GL calls the desktop layer makes itself.
// All methods require the shared context to be current.
type Driver interface {
	// Init loads GL entry points for a context of the given version.
	Init(version glcontext.Version, procAddr func(name string) unsafe.Pointer) error
	Info() Info
	// EnableDebugOutput installs fn as the driver debug message callback if
	// the context supports one, with low severity messages muted.
	EnableDebugOutput(version glcontext.Version, fn func(msg string)) DebugOutput
	// Clear clears the color, depth and stencil buffers to transparent black.
	Clear()
}

// BlockedDriver is a vendor/version combination known not to work.
// Vendor and Version match as case-insensitive substrings.
type BlockedDriver struct {
	Vendor  string `toml:"vendor"`
	Version string `toml:"version"`
	Reason  string `toml:"reason"`
}

func (b BlockedDriver) matches(info Info) bool {
	return containsFold(info.Vendor, b.Vendor) && containsFold(info.Version, b.Version)
}

// ErrBlockedDriver is returned by CheckCompatibility.
var ErrBlockedDriver = errors.New("gldriver: unsupported graphics driver")

// DefaultBlockedDrivers lists drivers that cannot run the GUI.
func DefaultBlockedDrivers() []BlockedDriver {
	return []BlockedDriver{
		{
			Vendor:  "Microsoft Corporation",
			Version: "1.1.0",
			Reason:  "no OpenGL driver is installed, only the GDI Generic software renderer is available",
		},
	}
}

// CheckCompatibility returns an error wrapping ErrBlockedDriver when info
// matches an entry of blocked.
func CheckCompatibility(info Info, blocked []BlockedDriver) error {
	for _, b := range blocked {
		if b.matches(info) {
			return fmt.Errorf("%w: %s (vendor %q, version %q)", ErrBlockedDriver, b.Reason, info.Vendor, info.Version)
		}
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FormatDebugMessage renders a driver debug message for the log.
func FormatDebugMessage(source, typ, id, severity uint32, message string) string {
	return fmt.Sprintf("OpenGL Error:\n\tSource   : 0x%x\n\tType     : 0x%x\n\tID       : %d\n\tSeverity : 0x%x\n\tMessage  : %s",
		source, typ, id, severity, message)
}
