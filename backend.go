package imguidesktop

import (
	"errors"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gldriver"
	"github.com/PazerOP/imgui-desktop/gui"
	"github.com/PazerOP/imgui-desktop/platform"
)

var (
	// ErrWindowCreation wraps native window failures in NewWindow.
	ErrWindowCreation = errors.New("imguidesktop: failed to create window")
	// ErrGUIBackend wraps GUI context failures in NewWindow.
	ErrGUIBackend = errors.New("imguidesktop: failed to initialize GUI backend")
	// ErrIncompleteBackend is returned by NewApplication when a Backend
	// field is missing.
	ErrIncompleteBackend = errors.New("imguidesktop: incomplete backend")
)

// Backend bundles the implementations an Application runs on.
type Backend struct {
	Platform platform.Platform
	GL       gldriver.Driver
	GUI      gui.Library
	// Registry hands out the shared GL context. Nil uses the process-wide
	// registry.
	Registry *glcontext.Registry
}

func (b Backend) validate() error {
	switch {
	case b.Platform == nil:
		return errors.Join(ErrIncompleteBackend, errors.New("no platform"))
	case b.GL == nil:
		return errors.Join(ErrIncompleteBackend, errors.New("no GL driver"))
	case b.GUI == nil:
		return errors.Join(ErrIncompleteBackend, errors.New("no GUI library"))
	}
	return nil
}
