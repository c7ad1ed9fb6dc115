package runtime

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
)

// ErrNoScope is returned or panicked when a hook is called outside a
// component render. Hooks need the current component scope, which only
// exists while a component function is executing on the loop.
var ErrNoScope = errors.New("veld: hook called outside component render")

// ErrInvalidContainer is returned by Mount when the container element is nil.
// Mount fails before touching any document state.
var ErrInvalidContainer = errors.New("veld: mount target is not a valid element")

// ErrInvalidComponent is returned by Mount when the value is not a
// component: not a ComponentFunc, a Component, a render function or a VNode.
var ErrInvalidComponent = errors.New("veld: value is not mountable")

// ErrScopeDisposed is returned when an operation targets a scope that has
// already been unmounted.
var ErrScopeDisposed = errors.New("veld: component scope is disposed")

// RenderError wraps a panic raised while a component was rendering. Node
// names the component that failed.
type RenderError struct {
	Node  string
	Cause any
	Stack []byte
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("veld: render of %s panicked: %v", e.Node, e.Cause)
}

// Unwrap exposes a wrapped error cause for errors.Is/As.
func (e *RenderError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

var (
	handlerMu    sync.RWMutex
	errorHandler = defaultErrorHandler
)

// SetErrorHandler installs the sink for errors the runtime cannot return to
// a caller, such as a panic during a setter-triggered re-render. Passing nil
// restores the default stderr logger.
func SetErrorHandler(fn func(error)) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if fn == nil {
		fn = defaultErrorHandler
	}
	errorHandler = fn
}

func reportError(err error) {
	handlerMu.RLock()
	fn := errorHandler
	handlerMu.RUnlock()
	fn(err)
}

var stderrLog = log.New(os.Stderr, "veld: ", log.LstdFlags)

func defaultErrorHandler(err error) {
	stderrLog.Printf("unhandled error: %v", err)
}

func captureStack() []byte {
	return debug.Stack()
}
