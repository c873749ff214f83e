package include

const (
	// EMPTY is the NULL value for qnext or qprev index
	EMPTY Qid16 = -1
)

// Qentry struct represents a entry struction in the queue
// One per process plus two per list
type Qentry struct {
	Qnext Qid16 // index of next process or tail
	Qprev Qid16 // index of previous process or head
}

// QueueTab represents the table of process queues.
// [0, nproc) saves the process nodes, every entry after that is a
// head node immediately followed by its tail node:
// 2: head and tail node for ready list;
// 2*nsem: head and tail node for each semaphore;
// 4*nmon: head and tail node for each monitor waiting and ready list;
// 2*nevent: head and tail node for each event.
// A process node is linked into at most one list at a time.
type QueueTab struct {
	ent   []Qentry
	nproc int
	nextq int // next unallocated head node
}

// NewQueueTab function builds a queue table for nproc processes and at most
// nqueues lists
func NewQueueTab(nproc, nqueues int) *QueueTab {
	qt := &QueueTab{
		ent:   make([]Qentry, nproc+2*nqueues),
		nproc: nproc,
		nextq: nproc,
	}
	for i := range qt.ent {
		qt.ent[i] = Qentry{Qnext: EMPTY, Qprev: EMPTY}
	}
	return qt
}

// NewQueue function allocates a head and tail node pair and links them
// into an empty list
func (qt *QueueTab) NewQueue() (Qid16, error) {
	if qt.nextq+2 > len(qt.ent) {
		return NoneQid, ErrFull
	}

	q := Qid16(qt.nextq)
	qt.nextq += 2

	qt.ent[QueueHead(q)] = Qentry{Qnext: QueueTail(q), Qprev: EMPTY}
	qt.ent[QueueTail(q)] = Qentry{Qnext: EMPTY, Qprev: QueueHead(q)}
	return q, OK
}

// QueueHead function returns the index of head node of queue q
func QueueHead(q Qid16) Qid16 {
	return q
}

// QueueTail function returns the index of tail node of queue q,
// which is right after the head node
func QueueTail(q Qid16) Qid16 {
	return q + 1
}

// IsBadQid function checks if queue id q is a bad.
// A valid queue id is an allocated head node
func (qt *QueueTab) IsBadQid(q Qid16) bool {
	return int(q) < qt.nproc || int(q) >= qt.nextq || (int(q)-qt.nproc)%2 != 0
}

func (qt *QueueTab) isBadPid(pid Pid32) bool {
	return pid < 0 || int(pid) >= qt.nproc
}

// FirstID function returns the first process in queue q without removing it,
// NonePid if q is empty
func (qt *QueueTab) FirstID(q Qid16) Pid32 {
	if qt.IsBadQid(q) {
		return NonePid
	}
	next := qt.ent[QueueHead(q)].Qnext
	if int(next) >= qt.nproc {
		return NonePid
	}
	return Pid32(next)
}

// IsEmpty function checks if the queue q is empty
func (qt *QueueTab) IsEmpty(q Qid16) bool {
	return qt.FirstID(q) == NonePid
}

// NonEmpty function checks if the queue q is not emtpy
func (qt *QueueTab) NonEmpty(q Qid16) bool {
	return !qt.IsEmpty(q)
}

// Queued function reports whether pid is currently linked into some list
func (qt *QueueTab) Queued(pid Pid32) bool {
	return !qt.isBadPid(pid) && qt.ent[pid].Qnext != EMPTY
}

// getitem removes a process(pid) from an arbitrary point in the queue it
// resides in
func (qt *QueueTab) getitem(pid Pid32) Pid32 {
	next := qt.ent[pid].Qnext
	prev := qt.ent[pid].Qprev

	// kick out the proces pid
	qt.ent[prev].Qnext = next
	qt.ent[next].Qprev = prev

	qt.ent[pid].Qnext = EMPTY
	qt.ent[pid].Qprev = EMPTY
	return pid
}

// Enqueue function inserts a process pid at the tail of queue q.
// Enqueueing NonePid does nothing.
func (qt *QueueTab) Enqueue(pid Pid32, q Qid16) error {
	if pid == NonePid {
		return OK
	}
	if qt.IsBadQid(q) {
		return ErrBadQid
	}
	if qt.isBadPid(pid) {
		return ErrBadPid
	}
	if qt.Queued(pid) {
		return ErrInQueue
	}

	tail := QueueTail(q)
	prev := qt.ent[tail].Qprev

	// insert just before tail node
	qt.ent[pid].Qnext = tail
	qt.ent[pid].Qprev = prev
	qt.ent[prev].Qnext = Qid16(pid)
	qt.ent[tail].Qprev = Qid16(pid)

	return OK
}

// Dequeue function remove and return the first process on queue q,
// NonePid if q is empty or bad
func (qt *QueueTab) Dequeue(q Qid16) Pid32 {
	pid := qt.FirstID(q)
	if pid == NonePid {
		return NonePid
	}
	return qt.getitem(pid)
}

// Len function counts the processes on queue q
func (qt *QueueTab) Len(q Qid16) int {
	n := 0
	if qt.IsBadQid(q) {
		return n
	}
	for next := qt.ent[QueueHead(q)].Qnext; next != QueueTail(q); next = qt.ent[next].Qnext {
		n++
	}
	return n
}

// Items function returns the processes on queue q from front to back
func (qt *QueueTab) Items(q Qid16) []Pid32 {
	var pids []Pid32
	if qt.IsBadQid(q) {
		return pids
	}
	for next := qt.ent[QueueHead(q)].Qnext; next != QueueTail(q); next = qt.ent[next].Qnext {
		pids = append(pids, Pid32(next))
	}
	return pids
}
