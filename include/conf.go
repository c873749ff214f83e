package include

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

/* Configuration and Size Constants */

const (
	// NPROC is the maximum number of user processes
	NPROC int = 10
	// NSEM is the maximum number of semaphores
	NSEM int = 10
	// NMON is the maximum number of monitors
	NMON int = 10
	// NEVENT is the maximum number of events
	NEVENT int = 10
	// NPORTS is the maximum number of ports
	NPORTS int = 10
	// NNEST is the depth of a process's monitor stack
	NNEST int = 10
	// NTRACE is the number of scheduling records kept
	NTRACE int = 64
)

// FaultPolicy selects what a kernel call does after detecting a fault.
type FaultPolicy uint8

const (
	// FaultAbort logs the fault at fatal level, which terminates the host.
	FaultAbort FaultPolicy = iota
	// FaultReturn logs the fault and hands it back to the caller.
	FaultReturn
)

func (p FaultPolicy) String() string {
	switch p {
	case FaultAbort:
		return "abort"
	case FaultReturn:
		return "return"
	}
	return fmt.Sprintf("FaultPolicy(%d)", uint8(p))
}

// Config sizes the kernel tables and selects its collaborators.
type Config struct {
	NProc   int // process table size
	NSem    int // semaphore table size, shared with ports
	NMon    int // monitor table size
	NEvent  int // event table size
	NPorts  int // port table size
	NNest   int // monitor stack depth per process
	NTrace  int // trace ring size, 0 disables tracing
	OnFault FaultPolicy

	// Logger receives kernel logs. nil means logrus.StandardLogger().
	Logger *logrus.Logger
	// Switcher performs context creation and transfer. nil means NewSwitcher().
	Switcher Switcher
}

// DefaultConfig function returns ten entries per table and a 64 record trace
func DefaultConfig() Config {
	return Config{
		NProc:   NPROC,
		NSem:    NSEM,
		NMon:    NMON,
		NEvent:  NEVENT,
		NPorts:  NPORTS,
		NNest:   NNEST,
		NTrace:  NTRACE,
		OnFault: FaultAbort,
	}
}

// nqueues is the number of queue head/tail pairs the tables need:
// 1 for ready list, 1 per semaphore, 2 per monitor, 1 per event
func (c Config) nqueues() int {
	return 1 + c.NSem + 2*c.NMon + c.NEvent
}

// Validate checks that every table size is usable.
func (c Config) Validate() error {
	switch {
	case c.NProc <= 0:
		return fmt.Errorf("NProc must be positive, got %d", c.NProc)
	case c.NSem < 0 || c.NMon < 0 || c.NEvent < 0 || c.NPorts < 0:
		return fmt.Errorf("table sizes must not be negative")
	case c.NNest <= 0:
		return fmt.Errorf("NNest must be positive, got %d", c.NNest)
	case c.NTrace < 0:
		return fmt.Errorf("NTrace must not be negative, got %d", c.NTrace)
	case c.OnFault != FaultAbort && c.OnFault != FaultReturn:
		return fmt.Errorf("unknown fault policy %v", c.OnFault)
	}

	// every queue entry index must fit in a Qid16
	if c.NProc+2*c.nqueues() > math.MaxInt16 {
		return fmt.Errorf("queue table of %d entries overflows Qid16", c.NProc+2*c.nqueues())
	}
	return nil
}
