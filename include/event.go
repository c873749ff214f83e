/*
event.go event manager

An event is a latch. Until it is triggered every process awaiting it
blocks; triggering releases all of them at once and lets every later Await
through, until the event is reset.

*/

package include

import "github.com/sirupsen/logrus"

// EEntry struct is the event table entry
type EEntry struct {
	// EHappened is the latch. While it is set EQueue is empty.
	EHappened bool

	// queue id of processes that are waiting for the event
	EQueue Qid16
}

// IsBadEvent function checks if event id is bad
func (k *Kernel) IsBadEvent(e Eid32) bool {
	return e < 0 || int(e) >= len(k.evtab)
}

// EvCreate function allocates an event that has not happened
func (k *Kernel) EvCreate() (Eid32, error) {
	k.disable()
	defer k.restore()

	if err := k.alive("evcreate", -1); err != OK {
		return NoneEvent, err
	}
	if len(k.evtab) >= k.cfg.NEvent {
		return NoneEvent, k.fault("evcreate", -1, ErrFull)
	}
	q, err := k.queues.NewQueue()
	if err != OK {
		return NoneEvent, k.fault("evcreate", -1, err)
	}

	ev := Eid32(len(k.evtab))
	k.evtab = append(k.evtab, EEntry{EQueue: q})
	k.log.WithField("event", ev).Debug("event created")
	return ev, OK
}

// Await function (attendre) blocks the running process until event e is
// triggered. It returns at once if e already happened.
func (k *Kernel) Await(e Eid32) error {
	k.disable()
	defer k.restore()

	pid, err := k.running("await", int32(e))
	if err != OK {
		return err
	}
	if k.IsBadEvent(e) {
		return k.fault("await", int32(e), ErrBadEvent)
	}

	eptr := &k.evtab[e]
	if eptr.EHappened {
		return OK
	}
	k.block(pid, eptr.EQueue, PrEvWait)
	k.resched(pid, ReasonEvent)
	return OK
}

// Trigger function (declencher) marks event e as happened and makes every
// process waiting for it ready, in the order they started waiting. The
// caller keeps the CPU.
func (k *Kernel) Trigger(e Eid32) error {
	k.disable()
	defer k.restore()

	if err := k.alive("trigger", int32(e)); err != OK {
		return err
	}
	if k.IsBadEvent(e) {
		return k.fault("trigger", int32(e), ErrBadEvent)
	}

	eptr := &k.evtab[e]
	eptr.EHappened = true
	n := 0
	for pid := k.queues.Dequeue(eptr.EQueue); pid != NonePid; pid = k.queues.Dequeue(eptr.EQueue) {
		k.ready(pid)
		n++
	}
	k.log.WithFields(logrus.Fields{"event": e, "released": n}).Trace("event triggered")
	return OK
}

// Reset function (reinitialiser) clears event e so that later Await calls
// block again. Processes already released stay released.
func (k *Kernel) Reset(e Eid32) error {
	k.disable()
	defer k.restore()

	if err := k.alive("reset", int32(e)); err != OK {
		return err
	}
	if k.IsBadEvent(e) {
		return k.fault("reset", int32(e), ErrBadEvent)
	}

	k.evtab[e].EHappened = false
	return OK
}

// Happened function reports whether event e is set
func (k *Kernel) Happened(e Eid32) (bool, error) {
	k.disable()
	defer k.restore()

	if k.IsBadEvent(e) {
		return false, &Fault{Op: "happened", Pid: NonePid, ID: int32(e), Err: ErrBadEvent}
	}
	return k.evtab[e].EHappened, OK
}

// EvWaiters function returns the processes waiting for event e
func (k *Kernel) EvWaiters(e Eid32) []Pid32 {
	k.disable()
	defer k.restore()

	if k.IsBadEvent(e) {
		return nil
	}
	return k.queues.Items(k.evtab[e].EQueue)
}
