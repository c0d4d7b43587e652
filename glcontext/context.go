// Package glcontext shares one native GL context between every window of
// the process. A Context is made current through a Scope, which tolerates
// nesting by the same owner and only talks to the driver on the outermost
// entry and exit.
package glcontext

import (
	"sync/atomic"

	"github.com/PazerOP/imgui-desktop/internal/assert"
	"github.com/PazerOP/imgui-desktop/internal/reentrant"
	"github.com/PazerOP/imgui-desktop/logsink"
	"github.com/PazerOP/imgui-desktop/platform"
)

// Driver is the part of a platform that creates and binds GL contexts.
// Every platform.Platform is a Driver.
type Driver interface {
	SetGLAttributes(attrs platform.GLAttributes) error
	CreateGLContext(w platform.NativeWindow) (platform.GLHandle, error)
	CurrentGLVersion() (major, minor int, err error)
	MakeCurrent(w platform.NativeWindow, h platform.GLHandle) error
	ReleaseCurrent(w platform.NativeWindow) error
	DeleteGLContext(h platform.GLHandle)
	ClearError()
}

// Owner identifies the logical owner of a scope. All scopes entered by the
// same Owner may nest; scopes of other owners block until it lets go.
type Owner struct {
	_ byte
}

// NewOwner returns a fresh owner token.
func NewOwner() *Owner {
	return &Owner{}
}

// Context is a native GL context shared by many windows.
type Context struct {
	driver  Driver
	handle  platform.GLHandle
	version Version
	attempt Attempt

	active reentrant.Mutex
	depth  atomic.Int32

	deleted atomic.Bool
}

// Version is the version the driver actually gave us.
func (c *Context) Version() Version {
	return c.version
}

// Attempt is the configuration that produced c.
func (c *Context) Attempt() Attempt {
	return c.attempt
}

// Handle returns the native context.
func (c *Context) Handle() platform.GLHandle {
	return c.handle
}

// Depth returns the current scope nesting depth.
func (c *Context) Depth() int {
	return int(c.depth.Load())
}

// Delete destroys the native context. It must not be called from inside a
// scope, and c is unusable afterwards.
func (c *Context) Delete() {
	assert.That(c.Depth() == 0, "deleting GL context at depth %d", c.Depth())
	if !c.deleted.CompareAndSwap(false, true) {
		return
	}
	c.driver.DeleteGLContext(c.handle)
	c.handle = nil
}

// Scope keeps a Context current until Exit.
type Scope struct {
	ctx    *Context
	owner  *Owner
	window platform.NativeWindow
	exited bool
}

// Enter makes ctx current on w for owner. If owner is already inside a
// scope of ctx this only deepens the nesting. Another owner blocks until
// every scope of the current owner has exited.
func Enter(owner *Owner, w platform.NativeWindow, ctx *Context) *Scope {
	ctx.active.Lock(owner)

	depth := ctx.depth.Add(1)
	assert.That(depth > 0, "GL context depth %d after enter", depth)
	if depth == 1 {
		if err := ctx.driver.MakeCurrent(w, ctx.handle); err != nil {
			logsink.Logger().Error("failed to make GL context current", "window", w.ID(), "err", err)
			assert.That(false, "make current failed: %v", err)
		}
	}
	return &Scope{ctx: ctx, owner: owner, window: w}
}

// Exit leaves the scope. Only the outermost exit releases the context.
// Calling Exit twice is a no-op.
func (s *Scope) Exit() {
	if s == nil || s.exited {
		return
	}
	s.exited = true

	depth := s.ctx.depth.Add(-1)
	assert.That(depth >= 0, "negative GL context depth %d", depth)
	if depth == 0 {
		if err := s.ctx.driver.ReleaseCurrent(s.window); err != nil {
			logsink.Logger().Warn("failed to release GL context", "window", s.window.ID(), "err", err)
		}
	}
	s.ctx.active.Unlock(s.owner)
}

// Do runs fn inside a scope.
func Do(owner *Owner, w platform.NativeWindow, ctx *Context, fn func()) {
	s := Enter(owner, w, ctx)
	defer s.Exit()
	fn()
}
