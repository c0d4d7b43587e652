package imguidesktop

import "time"

// Drawer is the only hook a window's content must implement. OnDraw runs
// inside the window's main GUI panel every frame.
type Drawer interface {
	OnDraw(w *Window)
}

// Updater runs before drawing, with the GL context current.
type Updater interface {
	OnUpdate(w *Window)
}

// PreDrawer runs after the GUI context is activated and before the GUI
// frame begins.
type PreDrawer interface {
	OnPreDraw(w *Window)
}

// EndFramer runs after the buffers were swapped.
type EndFramer interface {
	OnEndFrame(w *Window)
}

// MenuBarDrawer gives the main panel a menu bar.
type MenuBarDrawer interface {
	HasMenuBar() bool
	OnDrawMenuBar(w *Window)
}

// SleepController lets content keep the application from sleeping between
// events, e.g. while animating.
type SleepController interface {
	IsSleepingEnabled() bool
}

// GUIInitializer runs once, on the first frame, with the window's GUI
// context active.
type GUIInitializer interface {
	OnGUIInit(w *Window)
}

// GLInitializer runs once, on the first frame, with the GL context current.
type GLInitializer interface {
	OnOpenGLInit(w *Window)
}

// AppGLInitializer is called once when the shared GL context is created.
type AppGLInitializer interface {
	OnOpenGLInit(app *Application)
}

// AppEndFramer is called at the end of every Update.
type AppEndFramer interface {
	OnEndFrame(app *Application)
}

// ManagedWindowObserver is told when managed windows come and go.
type ManagedWindowObserver interface {
	OnAddingManagedWindow(w *Window)
	OnRemovingManagedWindow(w *Window)
}

// DrawFunc adapts a function to Drawer.
type DrawFunc func(w *Window)

func (f DrawFunc) OnDraw(w *Window) { f(w) }

// smoothFPS folds a frame time into a running frame rate estimate. Frame
// times that are not positive or reach a full second restart the estimate.
func smoothFPS(fps float64, dt time.Duration) float64 {
	if dt <= 0 || dt >= time.Second {
		return 1
	}
	s := dt.Seconds()
	return fps + (1/s-fps)*s
}
