package include

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestCreateFillsReadyList(t *testing.T) {
	k, hook := newKernel(t, func(c *Config) { c.NProc = 4 })

	var want []Pid32
	for i := 0; i < 4; i++ {
		want = append(want, spawn(t, k, "", func() {}))
	}
	if got := k.ReadyList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadyList = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(want, []Pid32{0, 1, 2, 3}) {
		t.Fatalf("pids not sequential: %v", want)
	}
	for _, pid := range want {
		if st, _ := k.State(pid); st != PrReady {
			t.Fatalf("pid %d state %s", pid, StateName(st))
		}
	}
	if k.Name(2) != "proc2" {
		t.Fatalf("default name %q", k.Name(2))
	}

	_, err := k.Create(func() {}, 0, "extra")
	if !errors.Is(err, ErrFull) {
		t.Fatalf("got %v, want ErrFull", err)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Fatalf("fault not logged: %+v", e)
	}
	if got := k.ReadyList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("failed Create changed the ready list: %v", got)
	}

	run(t, k, nil)
}

func TestCreateNilEntry(t *testing.T) {
	k, _ := newKernel(t, nil)
	if _, err := k.Create(nil, 0, "nil"); !errors.Is(err, ErrBadArg) {
		t.Fatalf("got %v, want ErrBadArg", err)
	}
}

func TestStartEmpty(t *testing.T) {
	k, _ := newKernel(t, nil)
	run(t, k, ErrNoProcess)
}

func TestYieldRoundRobin(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal

	for _, name := range []string{"a", "b", "c"} {
		name := name
		spawn(t, k, name, func() {
			for i := 0; i < 2; i++ {
				j.add("%s%d", name, i)
				k.Yield()
			}
		})
	}
	run(t, k, nil)
	j.check(t, "a0", "b0", "c0", "a1", "b1", "c1")

	for pid := Pid32(0); pid < 3; pid++ {
		if st, _ := k.State(pid); st != PrDone {
			t.Fatalf("pid %d state %s", pid, StateName(st))
		}
	}
}

func TestYieldAlone(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal

	spawn(t, k, "solo", func() {
		k.Yield()
		j.add("ready=%v", k.ReadyList())
		k.Yield()
		j.add("pid=%d", k.GetPid())
	})
	run(t, k, nil)
	j.check(t, "ready=[0]", "pid=0")

	want := []TraceRec{
		{Seq: 1, From: NonePid, To: 0, Reason: ReasonStart},
		{Seq: 2, From: 0, To: 0, Reason: ReasonYield},
		{Seq: 3, From: 0, To: 0, Reason: ReasonYield},
	}
	if got := k.Trace(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Trace = %+v", got)
	}
}

func TestCreateFromProcess(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal

	spawn(t, k, "parent", func() {
		pid, err := k.Create(func() { j.add("child") }, 0, "child")
		j.add("created %d err=%v ready=%v", pid, err, k.ReadyList())
		k.Yield()
		j.add("parent back")
	})
	run(t, k, nil)
	j.check(t, "created 1 err=<nil> ready=[0 1]", "child", "parent back")
}

func TestStartTwice(t *testing.T) {
	k, _ := newKernel(t, nil)
	var j journal

	spawn(t, k, "p", func() {
		j.add("%v", errors.Is(k.Start(), ErrStarted))
	})
	run(t, k, nil)
	j.check(t, "true")
}

func TestProcessCallsBeforeStart(t *testing.T) {
	k, _ := newKernel(t, nil)
	sem, _ := k.SemCreate(0)
	mon, _ := k.MonCreate()
	ev, _ := k.EvCreate()

	calls := map[string]error{
		"yield":  k.Yield(),
		"P":      k.P(sem),
		"enter":  k.EnterMonitor(mon),
		"wait":   k.Wait(),
		"notify": k.Notify(),
		"exit":   k.ExitMonitor(),
		"await":  k.Await(ev),
	}
	_, calls["receive"] = k.Receive()
	for name, err := range calls {
		if !errors.Is(err, ErrNotRunning) {
			t.Fatalf("%s: got %v, want ErrNotRunning", name, err)
		}
	}

	// V, Trigger and Reset need no current process
	if err := k.V(sem); err != nil {
		t.Fatalf("V: %v", err)
	}
	if n, _ := k.SemCount(sem); n != 1 {
		t.Fatalf("count %d after V", n)
	}
	if err := k.Trigger(ev); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if k.GetPid() != NonePid {
		t.Fatalf("GetPid before start = %d", k.GetPid())
	}
}

func TestDeadlockHalts(t *testing.T) {
	k, hook := newKernel(t, nil)
	sem, _ := k.SemCreate(0)
	var j journal

	stuck := spawn(t, k, "stuck", func() {
		j.add("before")
		k.P(sem)
		j.add("never")
	})
	run(t, k, ErrDeadlock)
	j.check(t, "before")

	if st, _ := k.State(stuck); st != PrWait {
		t.Fatalf("state %s, want sem-wait", StateName(st))
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Fatalf("halt not logged as warning: %+v", e)
	}
	select {
	case <-k.Halted():
	default:
		t.Fatalf("Halted channel still open")
	}
}

func TestHaltedRefusesCalls(t *testing.T) {
	k, _ := newKernel(t, nil)
	spawn(t, k, "p", func() {})
	run(t, k, nil)

	if _, err := k.SemCreate(1); !errors.Is(err, ErrHalted) {
		t.Fatalf("SemCreate: got %v, want ErrHalted", err)
	}
	if err := k.Yield(); !errors.Is(err, ErrHalted) {
		t.Fatalf("Yield: got %v, want ErrHalted", err)
	}
	if _, err := k.Create(func() {}, 0, ""); !errors.Is(err, ErrHalted) {
		t.Fatalf("Create: got %v, want ErrHalted", err)
	}
}

func TestTraceRing(t *testing.T) {
	k, _ := newKernel(t, func(c *Config) { c.NTrace = 3 })

	spawn(t, k, "p", func() {
		for i := 0; i < 5; i++ {
			k.Yield()
		}
	})
	run(t, k, nil)

	got := k.Trace()
	if len(got) != 3 {
		t.Fatalf("trace holds %d records", len(got))
	}
	for i, rec := range got {
		if rec.Seq != uint64(4+i) || rec.Reason != ReasonYield {
			t.Fatalf("record %d = %+v", i, rec)
		}
	}
	if k.Switches() != 6 {
		t.Fatalf("Switches = %d, want 6", k.Switches())
	}
}

func TestTraceDisabled(t *testing.T) {
	k, _ := newKernel(t, func(c *Config) { c.NTrace = 0 })
	spawn(t, k, "p", func() { k.Yield() })
	run(t, k, nil)

	if len(k.Trace()) != 0 || k.Switches() != 2 {
		t.Fatalf("trace %v switches %d", k.Trace(), k.Switches())
	}
}
