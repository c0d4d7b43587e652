package platform

// Event is a platform event translated into a backend neutral form.
type Event interface {
	isEvent()
}

// QuitEvent is sent when the user asks the whole application to quit.
type QuitEvent struct{}

// WindowEventKind is the kind of a WindowEvent.
type WindowEventKind int

const (
	WindowShown WindowEventKind = iota
	WindowHidden
	WindowExposed
	WindowMoved
	WindowResized
	WindowMinimized
	WindowMaximized
	WindowRestored
	WindowEnter
	WindowLeave
	WindowFocusGained
	WindowFocusLost
	WindowClose
	WindowOther
)

// WindowEvent reports a change to a single window.
type WindowEvent struct {
	WindowID WindowID
	Kind     WindowEventKind
	// Data1 and Data2 carry position or size for moves and resizes.
	Data1, Data2 int32
}

// UserEvent is a custom event registered through Platform.RegisterEventType.
type UserEvent struct {
	Type     uint32
	Code     int32
	WindowID WindowID
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	WindowID WindowID
	Key      Key
	Down     bool
	Repeat   bool
	Mods     Modifiers
}

// TextInputEvent carries composed text input.
type TextInputEvent struct {
	WindowID WindowID
	Text     string
}

// MouseMotionEvent reports the pointer position in window coordinates.
type MouseMotionEvent struct {
	WindowID WindowID
	X, Y     float32
}

// MouseButtonEvent is a mouse button press or release.
type MouseButtonEvent struct {
	WindowID WindowID
	Button   MouseButton
	Down     bool
	X, Y     float32
}

// MouseWheelEvent is a scroll. Positive Y scrolls up, positive X right.
type MouseWheelEvent struct {
	WindowID WindowID
	X, Y     float32
}

// OtherEvent wraps events the neutral model has no type for.
type OtherEvent struct {
	Native any
}

func (QuitEvent) isEvent()        {}
func (WindowEvent) isEvent()      {}
func (UserEvent) isEvent()        {}
func (KeyEvent) isEvent()         {}
func (TextInputEvent) isEvent()   {}
func (MouseMotionEvent) isEvent() {}
func (MouseButtonEvent) isEvent() {}
func (MouseWheelEvent) isEvent()  {}
func (OtherEvent) isEvent()       {}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseX1
	MouseX2
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Key is a backend neutral key code. Only the keys the GUI layer maps are
// named; everything else arrives as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyKeypadEnter
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper

	KeyCount
)

// EventWindowID returns the window an event is addressed to, or 0.
func EventWindowID(e Event) WindowID {
	switch e := e.(type) {
	case WindowEvent:
		return e.WindowID
	case UserEvent:
		return e.WindowID
	case KeyEvent:
		return e.WindowID
	case TextInputEvent:
		return e.WindowID
	case MouseMotionEvent:
		return e.WindowID
	case MouseButtonEvent:
		return e.WindowID
	case MouseWheelEvent:
		return e.WindowID
	}
	return 0
}
