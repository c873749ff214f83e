package include

import (
	"testing"
)

func TestSwitcherPingPong(t *testing.T) {
	sw := NewSwitcher()
	got := make(chan string, 4)
	errc := make(chan error, 1)
	var a, b Context

	a, err := sw.NewContext(func() {
		got <- "a1"
		sw.Transfer(a, b)
		got <- "a2"
		// nobody will resume a again
		errc <- sw.Transfer(a, nil)
	}, 0)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	b, err = sw.NewContext(func() {
		got <- "b1"
		if sw.Transfer(b, a) != nil {
			return
		}
		got <- "b2"
	}, 0)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := sw.Transfer(nil, a); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	for _, want := range []string{"a1", "b1", "a2"} {
		if s := <-got; s != want {
			t.Fatalf("got %s, want %s", s, want)
		}
	}

	sw.Halt()
	if err := <-errc; err != ErrHalted {
		t.Fatalf("parked Transfer returned %v, want ErrHalted", err)
	}
	select {
	case s := <-got:
		t.Fatalf("b resumed after halt: %s", s)
	default:
	}
	sw.Halt()
}

func TestSwitcherBadInput(t *testing.T) {
	sw := NewSwitcher()
	defer sw.Halt()

	if _, err := sw.NewContext(nil, 0); err != ErrBadArg {
		t.Fatalf("NewContext(nil): got %v", err)
	}
	if err := sw.Transfer(nil, "foreign"); err != ErrBadArg {
		t.Fatalf("Transfer to foreign context: got %v", err)
	}
	c, _ := sw.NewContext(func() { t.Errorf("context resumed by a failed Transfer") }, 0)
	if err := sw.Transfer(struct{}{}, c); err != ErrBadArg {
		t.Fatalf("Transfer from foreign context: got %v", err)
	}
}
