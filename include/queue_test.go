package include

import (
	"reflect"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	qt := NewQueueTab(4, 2)
	q, err := qt.NewQueue()
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	if !qt.IsEmpty(q) || qt.FirstID(q) != NonePid {
		t.Fatalf("new queue not empty")
	}

	for _, pid := range []Pid32{2, 0, 3} {
		if err := qt.Enqueue(pid, q); err != nil {
			t.Fatalf("Enqueue %d: %v", pid, err)
		}
	}
	if got := qt.Items(q); !reflect.DeepEqual(got, []Pid32{2, 0, 3}) {
		t.Fatalf("Items = %v", got)
	}
	if qt.Len(q) != 3 || qt.FirstID(q) != 2 {
		t.Fatalf("Len %d FirstID %d", qt.Len(q), qt.FirstID(q))
	}

	for _, want := range []Pid32{2, 0, 3, NonePid} {
		if got := qt.Dequeue(q); got != want {
			t.Fatalf("Dequeue = %d, want %d", got, want)
		}
	}
	if qt.NonEmpty(q) {
		t.Fatalf("drained queue not empty")
	}
}

func TestQueueSingleMembership(t *testing.T) {
	qt := NewQueueTab(2, 2)
	q1, _ := qt.NewQueue()
	q2, _ := qt.NewQueue()

	if err := qt.Enqueue(1, q1); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := qt.Enqueue(1, q2); err != ErrInQueue {
		t.Fatalf("second Enqueue: got %v, want ErrInQueue", err)
	}
	if !qt.Queued(1) || qt.Queued(0) {
		t.Fatalf("Queued bookkeeping wrong")
	}

	qt.Dequeue(q1)
	if err := qt.Enqueue(1, q2); err != nil {
		t.Fatalf("Enqueue after Dequeue: %v", err)
	}
	if qt.FirstID(q2) != 1 || qt.NonEmpty(q1) {
		t.Fatalf("move between queues failed")
	}
}

func TestQueueBadInput(t *testing.T) {
	qt := NewQueueTab(2, 1)
	q, _ := qt.NewQueue()

	if err := qt.Enqueue(NonePid, q); err != nil || qt.NonEmpty(q) {
		t.Fatalf("Enqueue(NonePid) should do nothing, got %v", err)
	}
	if err := qt.Enqueue(5, q); err != ErrBadPid {
		t.Fatalf("got %v, want ErrBadPid", err)
	}
	for _, bad := range []Qid16{0, 1, q + 1, q + 2, NoneQid} {
		if !qt.IsBadQid(bad) {
			t.Fatalf("qid %d should be bad", bad)
		}
		if err := qt.Enqueue(0, bad); err != ErrBadQid {
			t.Fatalf("Enqueue on %d: got %v, want ErrBadQid", bad, err)
		}
		if qt.Dequeue(bad) != NonePid {
			t.Fatalf("Dequeue on bad qid %d", bad)
		}
	}
	if _, err := qt.NewQueue(); err != ErrFull {
		t.Fatalf("got %v, want ErrFull", err)
	}
}
