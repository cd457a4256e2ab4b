package script

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cellstorm/backend"
	"github.com/dshills/cellstorm/screen"
)

// DefaultTimeout bounds a single script call. Lua that never yields back
// into Go cannot be interrupted faster than the VM checks its context.
const DefaultTimeout = 5 * time.Second

// Engine runs Lua scripts against one session.
//
// gopher-lua states are not goroutine-safe. The mutex serializes the Go
// entry points; script code itself always runs single-threaded.
type Engine struct {
	mu      sync.Mutex
	L       *lua.LState
	session *backend.Session
	timeout time.Duration
	frameFn *lua.LFunction
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each script call. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// New creates a sandboxed engine drawing through the given session.
func New(session *backend.Session, opts ...Option) *Engine {
	e := &Engine{
		session: session,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	sandbox(L)

	e.L = L
	e.register()
	return e
}

// sandbox removes the escape hatches the base library carries. io, os,
// debug and package are never opened.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("module %q is not available in scripts", L.CheckString(1))
		return 0
	}))
}

// DoFile runs a script file.
func (e *Engine) DoFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	return e.guarded(func() error { return e.L.DoFile(path) })
}

// DoString runs script source.
func (e *Engine) DoString(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	return e.guarded(func() error { return e.L.DoString(code) })
}

// HasFrame reports whether the script registered a frame callback.
func (e *Engine) HasFrame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameFn != nil
}

// RunFrame invokes the script's frame callback with the elapsed time in
// seconds.
func (e *Engine) RunFrame(elapsed float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	if e.frameFn == nil {
		return ErrNoFrameFunction
	}
	return e.guarded(func() error {
		e.L.Push(e.frameFn)
		e.L.Push(lua.LNumber(elapsed))
		return e.L.PCall(1, 0, nil)
	})
}

// guarded runs fn with the call timeout installed and panics converted to
// errors. Callers hold e.mu.
func (e *Engine) guarded(fn func() error) (err error) {
	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer e.L.RemoveContext()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// buffer returns the session's drawing surface, raising a Lua error when
// the session has not started.
func (e *Engine) buffer(L *lua.LState) *screen.ScreenBuffer {
	sb := e.session.Buffer()
	if sb == nil {
		L.RaiseError("session is not started")
	}
	return sb
}

// IsClosed reports whether Close has run.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close releases the Lua state. Further calls return ErrEngineClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.L.Close()
	e.frameFn = nil
	e.closed = true
}
