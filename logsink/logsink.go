// Package logsink routes every log message produced by the desktop layer to
// a single process-wide sink function. When no sink is registered, records
// are passed on to the default [slog] handler.
package logsink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
)

// Location is the source location a message was logged from.
type Location struct {
	File     string
	Line     int
	Function string
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Func receives a fully formatted message and where it was logged from.
type Func func(msg string, loc Location)

var sink atomic.Pointer[Func]

// SetFunc registers fn as the process-wide sink. Passing nil restores the
// default slog output.
func SetFunc(fn Func) {
	if fn == nil {
		sink.Store(nil)
		return
	}
	sink.Store(&fn)
}

var logger = slog.New(&handler{})

// Logger returns the logger all packages of this module log through.
func Logger() *slog.Logger {
	return logger
}

type handler struct {
	attrs  []slog.Attr
	groups []string
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	if sink.Load() != nil {
		return true
	}
	return fallback().Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	fn := sink.Load()
	if fn == nil {
		fh := fallback()
		if len(h.attrs) > 0 {
			fh = fh.WithAttrs(h.attrs)
		}
		for _, g := range h.groups {
			fh = fh.WithGroup(g)
		}
		return fh.Handle(ctx, r)
	}

	var sb strings.Builder
	sb.WriteString(r.Message)
	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, prefix, a)
		return true
	})
	(*fn)(sb.String(), locationOf(r.PC))
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &handler{groups: h.groups}
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return nh
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &handler{attrs: h.attrs, groups: append(append([]string{}, h.groups...), name)}
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, key, ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Resolve())
}

func locationOf(pc uintptr) Location {
	if pc == 0 {
		return Location{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return Location{File: frame.File, Line: frame.Line, Function: frame.Function}
}

// stderrHandler is used when somebody installs our logger as the slog
// default, which would otherwise recurse forever.
var stderrHandler = slog.NewTextHandler(os.Stderr, nil)

func fallback() slog.Handler {
	dh := slog.Default().Handler()
	if _, ok := dh.(*handler); ok {
		return stderrHandler
	}
	return dh
}
