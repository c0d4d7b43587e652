package gldriver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PazerOP/imgui-desktop/glcontext"
)

func TestCheckCompatibility(t *testing.T) {
	blocked := []BlockedDriver{
		{Vendor: "ATI", Version: "3.3.13399", Reason: "crashes on shared contexts"},
	}

	err := CheckCompatibility(Info{Vendor: "ATI Technologies Inc.", Version: "4.5.13399 Compatibility Profile"}, blocked)
	assert.NoError(t, err)

	err = CheckCompatibility(Info{Vendor: "ati technologies inc.", Version: "3.3.13399 Core Profile"}, blocked)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlockedDriver))
	assert.Contains(t, err.Error(), "crashes on shared contexts")

	assert.NoError(t, CheckCompatibility(Info{Vendor: "NVIDIA Corporation", Version: "4.6.0 NVIDIA 535.54"}, nil))
}

func TestDefaultBlockedDriversRejectsGDIGeneric(t *testing.T) {
	err := CheckCompatibility(Info{Vendor: "Microsoft Corporation", Renderer: "GDI Generic", Version: "1.1.0"}, DefaultBlockedDrivers())
	assert.ErrorIs(t, err, ErrBlockedDriver)

	err = CheckCompatibility(Info{Vendor: "Mesa", Renderer: "llvmpipe", Version: "4.5 (Core Profile) Mesa 23.1"}, DefaultBlockedDrivers())
	assert.NoError(t, err)
}

func TestHasExtension(t *testing.T) {
	info := Info{Extensions: []string{"GL_ARB_debug_output", "GL_KHR_debug"}}
	assert.True(t, info.HasExtension("GL_KHR_debug"))
	assert.False(t, info.HasExtension("GL_KHR"))
}

func TestSelectDebugOutput(t *testing.T) {
	khr := Info{Extensions: []string{"GL_KHR_debug"}}
	arb := Info{Extensions: []string{"GL_ARB_debug_output"}}
	both := Info{Extensions: []string{"GL_ARB_debug_output", "GL_KHR_debug"}}

	tests := []struct {
		name    string
		version glcontext.Version
		info    Info
		want    DebugOutput
	}{
		{"core 4.3 without extension list", glcontext.Version{Major: 4, Minor: 3}, Info{}, DebugKHR},
		{"KHR extension on 3.3", glcontext.Version{Major: 3, Minor: 3}, khr, DebugKHR},
		{"KHR extension on 2.1", glcontext.Version{Major: 2, Minor: 1}, khr, DebugKHR},
		{"KHR preferred over ARB", glcontext.Version{Major: 3, Minor: 2}, both, DebugKHR},
		{"ARB only", glcontext.Version{Major: 3, Minor: 2}, arb, DebugARB},
		{"ARB on 2.1", glcontext.Version{Major: 2, Minor: 1}, arb, DebugARB},
		{"nothing", glcontext.Version{Major: 3, Minor: 2}, Info{}, DebugNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectDebugOutput(tt.version, tt.info))
		})
	}
}
