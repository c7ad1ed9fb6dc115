package runtime

import (
	"runtime"
	"sync"
)

// The current component scope is tracked per goroutine. Render always
// happens on the loop goroutine, but async hooks hand work to other
// goroutines, so a plain package variable would race.

var currentScopes sync.Map // goroutine id -> *Scope

// getGoroutineID extracts the current goroutine's id from the runtime stack
// header ("goroutine <id> ..."). Implementation detail, never exposed.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentScope() *Scope {
	if s, ok := currentScopes.Load(getGoroutineID()); ok {
		return s.(*Scope)
	}
	return nil
}

// setCurrentScope sets the rendering scope for this goroutine and returns
// the previous one so it can be restored.
func setCurrentScope(s *Scope) *Scope {
	gid := getGoroutineID()
	var old *Scope
	if prev, ok := currentScopes.Load(gid); ok {
		old = prev.(*Scope)
	}
	if s == nil {
		currentScopes.Delete(gid)
	} else {
		currentScopes.Store(gid, s)
	}
	return old
}

// mustScope returns the current scope or panics with ErrNoScope. Hooks fail
// loudly instead of silently corrupting another component's slots.
func mustScope() *Scope {
	s := currentScope()
	if s == nil {
		panic(ErrNoScope)
	}
	return s
}
