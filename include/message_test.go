package include

import (
	"errors"
	"testing"
)

func TestSendReceive(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal
	var r Pid32

	r = spawn(t, k, "R", func() {
		_, err := k.RecvClr()
		j.add("R clr empty=%v", errors.Is(err, ErrEmpty))
		msg, err := k.Receive()
		j.add("R got %d err=%v", msg, err)
	})
	spawn(t, k, "S", func() {
		st, _ := k.State(r)
		j.add("S R=%s", StateName(st))
		k.Send(r, 42)
		st, _ = k.State(r)
		j.add("S sent R=%s", StateName(st))
		j.add("S pending=%v", errors.Is(k.Send(r, 43), ErrMsgPending))
		j.add("S bad=%v", errors.Is(k.Send(9, 1), ErrBadPid))
	})
	run(t, k, nil)

	j.check(t,
		"R clr empty=true",
		"S R=receiving",
		"S sent R=ready",
		"S pending=true",
		"S bad=true",
		"R got 42 err=<nil>",
	)
}

func TestReceiveQueuedMessage(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal
	var r Pid32

	spawn(t, k, "S", func() {
		k.Send(r, 7)
	})
	r = spawn(t, k, "R", func() {
		msg, _ := k.Receive()
		j.add("got %d", msg)
		msg, _ = k.RecvClr()
		j.add("then %d", msg)
	})
	run(t, k, nil)

	j.check(t, "got 7", "then 4294967295")
	if k.Switches() != 2 {
		t.Fatalf("Receive with a message waiting switched: %+v", k.Trace())
	}
}

func TestSendToFinished(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal

	done := spawn(t, k, "short", func() {})
	spawn(t, k, "S", func() {
		j.add("%v", errors.Is(k.Send(done, 1), ErrBadPid))
	})
	run(t, k, nil)
	j.check(t, "true")
}
