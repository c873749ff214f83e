/*
ctxsw.go is the context switch collaborator

The kernel never touches registers or stacks itself. It asks a Switcher for
an opaque Context bound to an entry function, and later asks it to transfer
the CPU from one Context to another. The default Switcher runs every
context on its own goroutine and parks the ones not holding the CPU on a
permit channel, so exactly one of them executes at any time.
*/

package include

import (
	"sync"
)

// Context is an opaque execution context handle
type Context interface{}

// Switcher creates execution contexts and moves the CPU between them.
type Switcher interface {
	// NewContext binds entry to a fresh context. entry does not run until
	// the first Transfer naming the context.
	NewContext(entry func(), stackSize uint32) (Context, error)

	// Transfer resumes to and suspends from until a later Transfer names
	// from again. A nil from means the caller does not wait for its turn.
	// It returns ErrHalted if the switcher was halted while from was parked.
	Transfer(from, to Context) error

	// Halt releases every parked context. Contexts that never ran are
	// discarded.
	Halt()
}

// gcontext is a context run by a goroutine
type gcontext struct {
	permit chan struct{}
}

type goSwitcher struct {
	done chan struct{}
	once sync.Once
}

// NewSwitcher function returns the goroutine backed Switcher
func NewSwitcher() Switcher {
	return &goSwitcher{done: make(chan struct{})}
}

// NewContext starts a goroutine that waits for its first permit. stackSize
// is only advisory, goroutine stacks grow on demand.
func (s *goSwitcher) NewContext(entry func(), stackSize uint32) (Context, error) {
	if entry == nil {
		return nil, ErrBadArg
	}

	c := &gcontext{permit: make(chan struct{}, 1)}
	go func() {
		select {
		case <-c.permit:
		case <-s.done:
			return
		}
		entry()
	}()
	return c, OK
}

func (s *goSwitcher) Transfer(from, to Context) error {
	var fc, tc *gcontext
	var ok bool
	if from != nil {
		if fc, ok = from.(*gcontext); !ok {
			return ErrBadArg
		}
	}
	if to != nil {
		if tc, ok = to.(*gcontext); !ok {
			return ErrBadArg
		}
		// the permit channel has room for exactly one pending resume
		tc.permit <- struct{}{}
	}

	if fc == nil {
		return OK
	}
	select {
	case <-fc.permit:
		return OK
	case <-s.done:
		return ErrHalted
	}
}

func (s *goSwitcher) Halt() {
	s.once.Do(func() { close(s.done) })
}
