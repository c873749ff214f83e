/*
resched.go is about process reschedule

files combined from the original X86 version include:
resched.h
resched.c
ready.c
yield.c

The ready list is strictly FIFO and its first process is the one running.
A process leaving the CPU either moves to the ready list tail (yield) or to
some wait list (blocking calls); resched then hands the CPU to whoever is
first in the ready list.
*/

package include

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// reschedule reasons recorded in the trace
const (
	ReasonStart   = "start"
	ReasonYield   = "yield"
	ReasonSem     = "sem"
	ReasonEnter   = "enter"
	ReasonWait    = "wait"
	ReasonEvent   = "event"
	ReasonReceive = "receive"
	ReasonExit    = "exit"
)

// currpid returns the running process: the first one in the ready list
func (k *Kernel) currpid() Pid32 {
	return k.queues.FirstID(k.readylist)
}

// ready function makes process pid eligible for CPU service by appending it
// to the ready list
func (k *Kernel) ready(pid Pid32) {
	k.proctab[pid].PrState = PrReady
	if err := k.queues.Enqueue(pid, k.readylist); err != OK {
		k.log.WithError(err).WithField("pid", pid).Panic("ready list corrupted")
	}
}

// block takes the running process pid off the ready list and parks it on q
// in the given state. q may be NoneQid for waits that need no list.
func (k *Kernel) block(pid Pid32, q Qid16, state uint16) {
	k.queues.Dequeue(k.readylist)
	k.proctab[pid].PrState = state
	if q == NoneQid {
		return
	}
	if err := k.queues.Enqueue(pid, q); err != OK {
		k.log.WithError(err).WithField("pid", pid).Panic("wait list corrupted")
	}
}

// resched function gives the CPU to the first process in the ready list.
// old is the process that just left the front. The call returns when old
// runs again. If nothing is runnable the kernel halts and the calling
// goroutine is ended.
func (k *Kernel) resched(old Pid32, reason string) {
	next := k.currpid()
	if next == NonePid {
		k.halt(reason)
		// the deferred restore of the kernel call releases the lock
		runtime.Goexit()
	}

	k.record(old, next, reason)
	k.proctab[next].PrState = PrCurr
	if next == old {
		// yield with nobody else ready
		return
	}

	from, to := k.proctab[old].PrCtx, k.proctab[next].PrCtx
	k.restore()
	err := k.sw.Transfer(from, to)
	k.disable()

	if err != OK {
		if err != ErrHalted {
			k.log.WithError(err).WithField("pid", old).Error("context switch failed")
		}
		runtime.Goexit()
	}
}

// Yield function moves the running process to the ready list tail and runs
// the new first process. A lone process simply continues.
func (k *Kernel) Yield() error {
	k.disable()
	defer k.restore()

	pid, err := k.running("yield", -1)
	if err != OK {
		return err
	}

	k.queues.Dequeue(k.readylist)
	k.ready(pid)
	k.resched(pid, ReasonYield)
	return OK
}

// Start function hands the CPU from the caller to the first process in the
// ready list. It blocks until the kernel halts: nil means every process
// finished, ErrDeadlock means processes are left blocked with nothing
// runnable.
func (k *Kernel) Start() error {
	k.disable()
	if k.started {
		err := k.fault("start", -1, ErrStarted)
		k.restore()
		return err
	}
	first := k.currpid()
	if first == NonePid {
		err := k.fault("start", -1, ErrNoProcess)
		k.restore()
		return err
	}

	k.started = true
	k.log.WithFields(logrus.Fields{"pid": first, "nproc": len(k.proctab)}).Info("starting kernel")
	k.record(NonePid, first, ReasonStart)
	k.proctab[first].PrState = PrCurr
	to := k.proctab[first].PrCtx
	k.restore()

	if err := k.sw.Transfer(nil, to); err != OK {
		k.disable()
		defer k.restore()
		k.halt(ReasonStart)
		return &Fault{Op: "start", Pid: NonePid, ID: int32(first), Err: err}
	}

	<-k.halted

	k.disable()
	defer k.restore()
	if k.haltErr != nil {
		return &Fault{Op: "start", Pid: NonePid, ID: -1, Err: k.haltErr}
	}
	return OK
}

// exit finishes process pid after its entry function returned. Monitors it
// still holds are released so that their queues do not stall.
func (k *Kernel) exit(pid Pid32) {
	k.disable()
	if k.down {
		k.restore()
		return
	}

	prptr := &k.proctab[pid]
	if len(prptr.PrMon) > 0 {
		k.fault("exit", int32(prptr.innermost()), ErrMonitorHeld)
		for len(prptr.PrMon) > 0 {
			k.release(prptr)
		}
	}

	k.queues.Dequeue(k.readylist)
	prptr.PrState = PrDone
	k.prcount--
	k.log.WithFields(logrus.Fields{"pid": pid, "name": prptr.PrName}).Debug("process finished")

	next := k.currpid()
	if next == NonePid {
		k.halt(ReasonExit)
		k.restore()
		return
	}

	k.record(pid, next, ReasonExit)
	k.proctab[next].PrState = PrCurr
	to := k.proctab[next].PrCtx
	k.restore()

	if err := k.sw.Transfer(nil, to); err != OK {
		k.log.WithError(err).WithField("pid", next).Error("context switch failed")
	}
}

// halt stops scheduling: Start returns and every parked process goroutine
// is released.
func (k *Kernel) halt(reason string) {
	if k.down {
		return
	}
	k.down = true

	fields := logrus.Fields{"reason": reason, "switches": k.traceNo}
	if k.prcount > 0 {
		k.haltErr = ErrDeadlock
		blocked := make([]string, 0, k.prcount)
		for pid := range k.proctab {
			if st := k.proctab[pid].PrState; st != PrDone {
				blocked = append(blocked, k.proctab[pid].PrName+":"+StateName(st))
			}
		}
		fields["blocked"] = blocked
		k.log.WithFields(fields).Warn("kernel halted with blocked processes")
	} else {
		k.log.WithFields(fields).Info("kernel halted, all processes finished")
	}

	close(k.halted)
	k.sw.Halt()
}

// Halted function returns a channel closed once the kernel stops scheduling
func (k *Kernel) Halted() <-chan struct{} {
	return k.halted
}

// ReadyList function returns the processes on the ready list, the running
// one first
func (k *Kernel) ReadyList() []Pid32 {
	k.disable()
	defer k.restore()

	return k.queues.Items(k.readylist)
}
