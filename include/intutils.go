/* intutils.go kernel entry and fault reporting

Disabling interrupts on a single CPU is what keeps two kernel calls from
interleaving. Here the same job is done by the kernel mutex: a process
holds it for the whole call and drops it only for the instant it hands the
CPU to another process.

*/

package include

import (
	"github.com/sirupsen/logrus"
)

// disable enters the kernel
func (k *Kernel) disable() {
	k.mu.Lock()
}

// restore leaves the kernel
func (k *Kernel) restore() {
	k.mu.Unlock()
}

// fault reports err detected by op on object id according to the fault
// policy. Callers return before touching any table, so a returned fault
// leaves the kernel as it was.
func (k *Kernel) fault(op string, id int32, err error) error {
	pid := NonePid
	if k.started && !k.down {
		pid = k.currpid()
	}
	f := &Fault{Op: op, Pid: pid, ID: id, Err: err}

	entry := k.log.WithFields(logrus.Fields{"op": op, "pid": pid, "id": id})
	if k.cfg.OnFault == FaultAbort {
		entry.Fatal(err)
		// only reached when the logger's ExitFunc does not exit
		return f
	}
	entry.Error(err)
	return f
}

// running checks that a call needing a current process may go on and
// returns that process. After a halt the call is refused quietly, the
// goroutine making it is being torn down.
func (k *Kernel) running(op string, id int32) (Pid32, error) {
	if k.down {
		return NonePid, &Fault{Op: op, Pid: NonePid, ID: id, Err: ErrHalted}
	}
	if !k.started {
		return NonePid, k.fault(op, id, ErrNotRunning)
	}
	return k.currpid(), OK
}

// alive refuses calls made after a halt
func (k *Kernel) alive(op string, id int32) error {
	if k.down {
		return &Fault{Op: op, Pid: NonePid, ID: id, Err: ErrHalted}
	}
	return OK
}
