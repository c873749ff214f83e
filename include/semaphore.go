/*
semaphore.go semaphore manager

files combined from the original X86 version include:
semaphore.h
semcreate.c
wait.c
signal.c
semcount.c

*/

package include

import "github.com/sirupsen/logrus"

// SEntry struct is the semaphore table entry
type SEntry struct {
	// SCount is the count for the semaphore
	// Positive SCount means that P() can be called SCount more times before any process blocks;
	// Negative SCount means that the semaphore queue contains -SCount waiting processes.
	SCount int32

	// queue id of processes that are waiting on the semaphore
	SQueue Qid16
}

// IsBadSem function checks if semaphore id is bad
func (k *Kernel) IsBadSem(s Sid32) bool {
	return s < 0 || int(s) >= len(k.semtab)
}

// SemCreate function allocates a semaphore with initial count n
func (k *Kernel) SemCreate(n int32) (Sid32, error) {
	k.disable()
	defer k.restore()

	if err := k.alive("semcreate", -1); err != OK {
		return NoneSem, err
	}
	return k.semcreate(n)
}

// semcreate does the work of SemCreate with the kernel entered
func (k *Kernel) semcreate(n int32) (Sid32, error) {
	if len(k.semtab) >= k.cfg.NSem {
		return NoneSem, k.fault("semcreate", -1, ErrFull)
	}
	q, err := k.queues.NewQueue()
	if err != OK {
		return NoneSem, k.fault("semcreate", -1, err)
	}

	sem := Sid32(len(k.semtab))
	k.semtab = append(k.semtab, SEntry{SCount: n, SQueue: q})
	k.log.WithFields(logrus.Fields{"sem": sem, "count": n}).Debug("semaphore created")
	return sem, OK
}

// P function decrements the count of semaphore s and blocks the running
// process on it when no permit was left
func (k *Kernel) P(s Sid32) error {
	k.disable()
	defer k.restore()

	pid, err := k.running("P", int32(s))
	if err != OK {
		return err
	}
	if k.IsBadSem(s) {
		return k.fault("P", int32(s), ErrBadSem)
	}
	k.semwait(pid, s)
	return OK
}

// semwait does the work of P with the kernel entered
func (k *Kernel) semwait(pid Pid32, s Sid32) {
	sptr := &k.semtab[s]
	sptr.SCount--
	if sptr.SCount < 0 {
		k.block(pid, sptr.SQueue, PrWait)
		k.resched(pid, ReasonSem)
	}
}

// V function increments the count of semaphore s and makes its longest
// waiting process ready. The caller keeps the CPU.
func (k *Kernel) V(s Sid32) error {
	k.disable()
	defer k.restore()

	if err := k.alive("V", int32(s)); err != OK {
		return err
	}
	if k.IsBadSem(s) {
		return k.fault("V", int32(s), ErrBadSem)
	}
	k.semsignal(s)
	return OK
}

// semsignal does the work of V with the kernel entered
func (k *Kernel) semsignal(s Sid32) {
	sptr := &k.semtab[s]
	sptr.SCount++
	if sptr.SCount <= 0 {
		if pid := k.queues.Dequeue(sptr.SQueue); pid != NonePid {
			k.ready(pid)
		}
	}
}

// SemCount function returns the count of semaphore s
func (k *Kernel) SemCount(s Sid32) (int32, error) {
	k.disable()
	defer k.restore()

	if k.IsBadSem(s) {
		return 0, &Fault{Op: "semcount", Pid: NonePid, ID: int32(s), Err: ErrBadSem}
	}
	return k.semtab[s].SCount, OK
}

// SemWaiters function returns the processes blocked on semaphore s in wake
// up order
func (k *Kernel) SemWaiters(s Sid32) []Pid32 {
	k.disable()
	defer k.restore()

	if k.IsBadSem(s) {
		return nil
	}
	return k.queues.Items(k.semtab[s].SQueue)
}
