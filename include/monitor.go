/*
monitor.go monitor manager

A monitor is a lock with two lists. The waiting list holds processes
suspended in Wait until some holder calls Notify. The ready list holds
processes queued to take the monitor over: blocked enterers and notified
waiters alike. Releasing the monitor hands it straight to the first of
them, the lock never becomes free while someone is queued.

A process may enter a monitor it already holds. Every entry is pushed on
the process's monitor stack, and the lock goes only when the last of the
matching exits pops it.
*/

package include

import "github.com/sirupsen/logrus"

// MEntry struct is the monitor table entry
type MEntry struct {
	MLocked bool  // some process holds the monitor
	MOwner  Pid32 // the holder, NonePid when free

	MWaitQ  Qid16 // processes suspended in Wait
	MReadyQ Qid16 // processes queued to acquire the monitor
}

// IsBadMon function checks if monitor id is bad
func (k *Kernel) IsBadMon(m Mid32) bool {
	return m < 0 || int(m) >= len(k.montab)
}

// MonCreate function allocates a free monitor
func (k *Kernel) MonCreate() (Mid32, error) {
	k.disable()
	defer k.restore()

	if err := k.alive("moncreate", -1); err != OK {
		return NoneMon, err
	}
	if len(k.montab) >= k.cfg.NMon {
		return NoneMon, k.fault("moncreate", -1, ErrFull)
	}

	waitq, err := k.queues.NewQueue()
	if err != OK {
		return NoneMon, k.fault("moncreate", -1, err)
	}
	readyq, err := k.queues.NewQueue()
	if err != OK {
		return NoneMon, k.fault("moncreate", -1, err)
	}

	mon := Mid32(len(k.montab))
	k.montab = append(k.montab, MEntry{
		MOwner:  NonePid,
		MWaitQ:  waitq,
		MReadyQ: readyq,
	})
	k.log.WithField("mon", mon).Debug("monitor created")
	return mon, OK
}

// EnterMonitor function makes the running process enter monitor m. It
// blocks only when another process holds m.
func (k *Kernel) EnterMonitor(m Mid32) error {
	k.disable()
	defer k.restore()

	pid, err := k.running("entermonitor", int32(m))
	if err != OK {
		return err
	}
	if k.IsBadMon(m) {
		return k.fault("entermonitor", int32(m), ErrBadMon)
	}
	prptr := &k.proctab[pid]
	if len(prptr.PrMon) >= k.cfg.NNest {
		// too many nested monitors for one process
		return k.fault("entermonitor", int32(m), ErrFull)
	}

	mptr := &k.montab[m]
	reentry := prptr.holds(m)
	prptr.pushmon(m)

	if mptr.MLocked && !reentry {
		k.log.WithFields(logrus.Fields{"pid": pid, "mon": m, "owner": mptr.MOwner}).Trace("monitor busy")
		k.block(pid, mptr.MReadyQ, PrMonEnter)
		// resumes once the monitor was handed over
		k.resched(pid, ReasonEnter)
		return OK
	}

	mptr.MLocked = true
	mptr.MOwner = pid
	return OK
}

// Wait function suspends the running process on its innermost monitor and
// gives that monitor to the next queued process, or frees it. The process
// holds the monitor again when it resumes.
func (k *Kernel) Wait() error {
	k.disable()
	defer k.restore()

	pid, err := k.running("wait", -1)
	if err != OK {
		return err
	}
	prptr := &k.proctab[pid]
	m := prptr.innermost()
	if m == NoneMon {
		return k.fault("wait", -1, ErrNoMonitor)
	}

	mptr := &k.montab[m]
	k.block(pid, mptr.MWaitQ, PrMonWait)
	k.handoff(m)
	k.resched(pid, ReasonWait)
	return OK
}

// Notify function moves the longest waiting process of the innermost
// monitor to that monitor's ready list. Nothing happens if no one waits.
func (k *Kernel) Notify() error {
	k.disable()
	defer k.restore()

	pid, err := k.running("notify", -1)
	if err != OK {
		return err
	}
	m := k.proctab[pid].innermost()
	if m == NoneMon {
		return k.fault("notify", -1, ErrNoMonitor)
	}

	k.notify(m)
	return OK
}

// NotifyAll function moves every waiting process of the innermost monitor
// to that monitor's ready list, keeping their order.
func (k *Kernel) NotifyAll() error {
	k.disable()
	defer k.restore()

	pid, err := k.running("notifyall", -1)
	if err != OK {
		return err
	}
	m := k.proctab[pid].innermost()
	if m == NoneMon {
		return k.fault("notifyall", -1, ErrNoMonitor)
	}

	for k.notify(m) {
	}
	return OK
}

// notify moves one waiter of m to its ready list and reports whether there
// was one
func (k *Kernel) notify(m Mid32) bool {
	mptr := &k.montab[m]
	pid := k.queues.Dequeue(mptr.MWaitQ)
	if pid == NonePid {
		return false
	}
	k.proctab[pid].PrState = PrMonEnter
	if err := k.queues.Enqueue(pid, mptr.MReadyQ); err != OK {
		k.log.WithError(err).WithField("pid", pid).Panic("monitor ready list corrupted")
	}
	return true
}

// ExitMonitor function leaves the innermost monitor of the running process.
// The monitor is released only if this was the outermost entry.
func (k *Kernel) ExitMonitor() error {
	k.disable()
	defer k.restore()

	pid, err := k.running("exitmonitor", -1)
	if err != OK {
		return err
	}
	prptr := &k.proctab[pid]
	if len(prptr.PrMon) == 0 {
		return k.fault("exitmonitor", -1, ErrNoMonitor)
	}

	k.release(prptr)
	return OK
}

// release pops the innermost monitor of prptr and lets it go unless prptr
// still holds it further out
func (k *Kernel) release(prptr *ProcEnt) {
	m := prptr.popmon()
	if prptr.holds(m) {
		return
	}
	k.handoff(m)
}

// handoff gives monitor m to the first process on its ready list, or frees
// it when the list is empty
func (k *Kernel) handoff(m Mid32) {
	mptr := &k.montab[m]
	next := k.queues.Dequeue(mptr.MReadyQ)
	if next == NonePid {
		mptr.MLocked = false
		mptr.MOwner = NonePid
		return
	}

	mptr.MOwner = next
	k.ready(next)
	k.log.WithFields(logrus.Fields{"mon": m, "owner": next}).Trace("monitor handed off")
}

// MonHolder function returns the holder of monitor m and whether it is
// locked
func (k *Kernel) MonHolder(m Mid32) (Pid32, bool, error) {
	k.disable()
	defer k.restore()

	if k.IsBadMon(m) {
		return NonePid, false, &Fault{Op: "monholder", Pid: NonePid, ID: int32(m), Err: ErrBadMon}
	}
	mptr := &k.montab[m]
	return mptr.MOwner, mptr.MLocked, OK
}

// MonWaiting function returns the processes suspended in Wait on monitor m
func (k *Kernel) MonWaiting(m Mid32) []Pid32 {
	k.disable()
	defer k.restore()

	if k.IsBadMon(m) {
		return nil
	}
	return k.queues.Items(k.montab[m].MWaitQ)
}

// MonQueued function returns the processes queued to acquire monitor m, in
// the order they will get it
func (k *Kernel) MonQueued(m Mid32) []Pid32 {
	k.disable()
	defer k.restore()

	if k.IsBadMon(m) {
		return nil
	}
	return k.queues.Items(k.montab[m].MReadyQ)
}

// MonDepth function returns how many times process pid entered monitor m
// without exiting it
func (k *Kernel) MonDepth(pid Pid32, m Mid32) int {
	k.disable()
	defer k.restore()

	if k.IsBadPid(pid) {
		return 0
	}
	return k.proctab[pid].depth(m)
}
