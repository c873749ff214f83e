package include

import (
	"errors"
	"fmt"
	"math"
)

// Qid16 is the process queue ID
type Qid16 int16

// Pid32 is the process ID
type Pid32 int32

// Sid32 is the semaphore ID
type Sid32 int32

// Mid32 is the monitor ID
type Mid32 int32

// Eid32 is the event ID
type Eid32 int32

// Umsg32 is the message type
type Umsg32 uint32

// NonePid represent the universal invalid process id
const NonePid Pid32 = -1

// NoneQid represent the universal invalid queue id
const NoneQid Qid16 = -1

// NoneSem represent the universal invalid semaphore id
const NoneSem Sid32 = -1

// NoneMon represent the universal invalid monitor id
const NoneMon Mid32 = -1

// NoneEvent represent the universal invalid event id
const NoneEvent Eid32 = -1

// NoneMsg represent the universal invalid message content
const NoneMsg Umsg32 = math.MaxUint32

/* Universal return constants */
var (
	// OK: system call ok
	OK error = nil

	// ErrFull : a fixed-capacity table has no free slot left
	ErrFull = errors.New("table full")
	// ErrBadPid : process id out of range, unassigned or finished
	ErrBadPid = errors.New("bad process id")
	// ErrBadSem : semaphore id out of range or unassigned
	ErrBadSem = errors.New("bad semaphore id")
	// ErrBadMon : monitor id out of range or unassigned
	ErrBadMon = errors.New("bad monitor id")
	// ErrBadEvent : event id out of range or unassigned
	ErrBadEvent = errors.New("bad event id")
	// ErrBadPort : port id out of range or unassigned
	ErrBadPort = errors.New("bad port id")
	// ErrBadQid : queue id is not a head node of an allocated queue
	ErrBadQid = errors.New("bad queue id")
	// ErrBadArg : invalid argument such as a nil entry function
	ErrBadArg = errors.New("bad argument")

	// ErrInQueue : the process already sits on some queue
	ErrInQueue = errors.New("process already queued")
	// ErrNoMonitor : the running process holds no monitor
	ErrNoMonitor = errors.New("process holds no monitor")
	// ErrMonitorHeld : a process finished while still holding monitors
	ErrMonitorHeld = errors.New("process finished inside a monitor")
	// ErrNoProcess : start with an empty ready list
	ErrNoProcess = errors.New("no process in the ready list")
	// ErrStarted : the kernel was already started
	ErrStarted = errors.New("kernel already started")
	// ErrNotRunning : a process-context call made outside a running kernel
	ErrNotRunning = errors.New("kernel not running")
	// ErrHalted : the kernel has stopped scheduling
	ErrHalted = errors.New("kernel halted")
	// ErrDeadlock : nothing runnable while processes are still blocked
	ErrDeadlock = errors.New("deadlock: no runnable process")

	// ErrEmpty is the error that caused by invalid operation on empty queue
	ErrEmpty = errors.New("empty")
	// ErrMsgPending : the receiver already has an undelivered message
	ErrMsgPending = errors.New("message pending")
)

// Fault is the error returned by every failing kernel call. It records the
// operation, the process that made the call and the object involved.
type Fault struct {
	Op  string
	Pid Pid32
	ID  int32
	Err error
}

func (f *Fault) Error() string {
	if f.ID < 0 {
		return fmt.Sprintf("%s: pid %d: %v", f.Op, f.Pid, f.Err)
	}
	return fmt.Sprintf("%s(%d): pid %d: %v", f.Op, f.ID, f.Pid, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
