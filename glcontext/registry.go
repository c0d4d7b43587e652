package glcontext

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/PazerOP/imgui-desktop/logsink"
	"github.com/PazerOP/imgui-desktop/platform"
)

// ErrNoContext is returned when no configuration produced a context.
var ErrNoContext = errors.New("glcontext: unable to create an OpenGL context")

// Registry lazily creates the single Context of a process and hands it out
// to every window. It only keeps a weak reference, so the Context lives as
// long as some window or application holds it.
type Registry struct {
	driver   Driver
	attempts []Attempt

	mu     sync.Mutex
	cached atomic.Pointer[weak.Pointer[Context]]
}

// NewRegistry returns a registry creating contexts through driver, trying
// attempts in order. A nil or empty attempts uses DefaultAttempts.
func NewRegistry(driver Driver, attempts []Attempt) *Registry {
	if len(attempts) == 0 {
		attempts = DefaultAttempts()
	}
	return &Registry{driver: driver, attempts: attempts}
}

var shared struct {
	once sync.Once
	reg  *Registry
}

// Shared returns the process-wide registry, creating it with driver and
// attempts on the first call. Later calls return the same registry and
// ignore their arguments.
func Shared(driver Driver, attempts []Attempt) *Registry {
	shared.once.Do(func() {
		shared.reg = NewRegistry(driver, attempts)
	})
	return shared.reg
}

// GetOrCreate returns the shared context, creating it for w if no live one
// exists.
func (r *Registry) GetOrCreate(w platform.NativeWindow) (*Context, error) {
	if ctx := r.lookup(); ctx != nil {
		return ctx, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx := r.lookup(); ctx != nil {
		return ctx, nil
	}
	ctx, err := r.create(w)
	if err != nil {
		return nil, err
	}
	wp := weak.Make(ctx)
	r.cached.Store(&wp)
	return ctx, nil
}

// Attempts returns the configurations r tries, in order.
func (r *Registry) Attempts() []Attempt {
	return append([]Attempt(nil), r.attempts...)
}

func (r *Registry) lookup() *Context {
	wp := r.cached.Load()
	if wp == nil {
		return nil
	}
	ctx := wp.Value()
	if ctx == nil || ctx.deleted.Load() {
		return nil
	}
	return ctx
}

func (r *Registry) create(w platform.NativeWindow) (*Context, error) {
	log := logsink.Logger()

	var lastErr error
	for _, a := range r.attempts {
		r.driver.ClearError()
		if err := r.driver.SetGLAttributes(a.Attributes()); err != nil {
			log.Warn("failed to apply GL attributes", "attempt", a.String(), "err", err)
		}

		h, err := r.driver.CreateGLContext(w)
		if err == nil && h == nil {
			err = errors.New("driver returned no context")
		}
		if err != nil {
			log.Info("GL context creation failed", "attempt", a.String(), "err", err)
			lastErr = err
			continue
		}
		r.driver.ClearError()

		version := a.Version
		if major, minor, err := r.driver.CurrentGLVersion(); err != nil {
			log.Warn("unable to query GL context version", "err", err)
		} else if v := (Version{major, minor}); v.IsValid() {
			version = v
		}
		if err := r.driver.ReleaseCurrent(w); err != nil {
			log.Warn("failed to release new GL context", "err", err)
		}

		log.Info("created GL context", "version", version.String(), "requested", a.String())
		return &Context{driver: r.driver, handle: h, version: version, attempt: a}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no configurations to try")
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrNoContext, len(r.attempts), lastErr)
}
