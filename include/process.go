/*
process.go defines process's operating functions and constants

files combined from the original X86 version include:
process.h
create.c
getpid.c

*/

package include

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// process state constants
const (
	PrCurr     uint16 = 1  // process is currently running
	PrReady    uint16 = 2  // process is on ready queue
	PrRecv     uint16 = 3  // process waiting for message
	PrWait     uint16 = 6  // process is on semaphore queue
	PrMonEnter uint16 = 8  // process is queued to acquire a monitor
	PrMonWait  uint16 = 9  // process is on a monitor's waiting list
	PrEvWait   uint16 = 10 // process is waiting for an event
	PrDone     uint16 = 11 // process entry function returned
)

// StateName function returns a printable name for a process state
func StateName(state uint16) string {
	switch state {
	case PrCurr:
		return "current"
	case PrReady:
		return "ready"
	case PrRecv:
		return "receiving"
	case PrWait:
		return "sem-wait"
	case PrMonEnter:
		return "mon-enter"
	case PrMonWait:
		return "mon-wait"
	case PrEvWait:
		return "event-wait"
	case PrDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", state)
}

// ProcEnt struct is the entry in the process table.
type ProcEnt struct {
	PrState  uint16  // process state
	PrName   string  // process name
	PrStkLen uint32  // stack length in bytes
	PrCtx    Context // execution context handed to the switcher

	// PrMon is the monitor stack: every monitor entry not yet matched by an
	// exit, innermost last. A monitor entered twice appears twice.
	PrMon []Mid32

	PrMsg    Umsg32 // message sent to this process
	PrHasMsg bool   // true if msg is valid
}

// holds reports whether m is anywhere on the monitor stack
func (p *ProcEnt) holds(m Mid32) bool {
	return p.depth(m) > 0
}

// depth counts the nested holds of m
func (p *ProcEnt) depth(m Mid32) int {
	n := 0
	for _, mid := range p.PrMon {
		if mid == m {
			n++
		}
	}
	return n
}

// innermost returns the most recently entered monitor, NoneMon if none
func (p *ProcEnt) innermost() Mid32 {
	if len(p.PrMon) == 0 {
		return NoneMon
	}
	return p.PrMon[len(p.PrMon)-1]
}

func (p *ProcEnt) pushmon(m Mid32) {
	p.PrMon = append(p.PrMon, m)
}

func (p *ProcEnt) popmon() Mid32 {
	m := p.innermost()
	if m != NoneMon {
		p.PrMon = p.PrMon[:len(p.PrMon)-1]
	}
	return m
}

// IsBadPid function checks if pid is valid or not
// True: pid is invalid;
// False: pid is valid;
func (k *Kernel) IsBadPid(pid Pid32) bool {
	return pid < 0 || int(pid) >= len(k.proctab)
}

// Create function creates a process that starts running entry when the
// scheduler first reaches it. The new process goes to the tail of the
// ready list, the caller keeps running.
func (k *Kernel) Create(entry func(), stackSize uint32, name string) (Pid32, error) {
	k.disable()
	defer k.restore()

	if err := k.alive("create", -1); err != OK {
		return NonePid, err
	}
	if entry == nil {
		return NonePid, k.fault("create", -1, ErrBadArg)
	}
	if len(k.proctab) >= k.cfg.NProc {
		return NonePid, k.fault("create", -1, ErrFull)
	}

	pid := Pid32(len(k.proctab))
	if name == "" {
		name = fmt.Sprintf("proc%d", pid)
	}
	ssize := getstk(stackSize)

	ctx, err := k.sw.NewContext(k.procmain(pid, entry), ssize)
	if err != OK {
		return NonePid, k.fault("create", int32(pid), err)
	}

	k.proctab = append(k.proctab, ProcEnt{
		PrName:   name,
		PrStkLen: ssize,
		PrCtx:    ctx,
		PrMon:    make([]Mid32, 0, k.cfg.NNest),
	})
	k.prcount++
	k.ready(pid)

	k.log.WithFields(logrus.Fields{"pid": pid, "name": name, "stack": ssize}).Debug("process created")
	return pid, OK
}

// procmain wraps a process entry so that returning from it finishes the
// process
func (k *Kernel) procmain(pid Pid32, entry func()) func() {
	return func() {
		entry()
		k.exit(pid)
	}
}

// GetPid function returns the id of the running process, NonePid when the
// kernel is not running
func (k *Kernel) GetPid() Pid32 {
	k.disable()
	defer k.restore()

	if !k.started || k.down {
		return NonePid
	}
	return k.currpid()
}

// State function returns the state of process pid
func (k *Kernel) State(pid Pid32) (uint16, error) {
	k.disable()
	defer k.restore()

	if k.IsBadPid(pid) {
		return 0, &Fault{Op: "state", Pid: NonePid, ID: int32(pid), Err: ErrBadPid}
	}
	return k.proctab[pid].PrState, OK
}

// Name function returns the name process pid was created with
func (k *Kernel) Name(pid Pid32) string {
	k.disable()
	defer k.restore()

	if k.IsBadPid(pid) {
		return ""
	}
	return k.proctab[pid].PrName
}

// Monitors function returns a copy of the monitor stack of process pid,
// innermost last
func (k *Kernel) Monitors(pid Pid32) []Mid32 {
	k.disable()
	defer k.restore()

	if k.IsBadPid(pid) {
		return nil
	}
	return append([]Mid32(nil), k.proctab[pid].PrMon...)
}
