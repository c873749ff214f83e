/* ports.go port management

files combined from the original X86 version include:
ports.h
ptcreate.c
ptsend.c
ptrecv.c
ptcount.c

A port is a bounded message queue guarded by two semaphores: the sender
semaphore counts free slots, the receiver semaphore counts queued
messages. Both come from the kernel semaphore table.

*/

package include

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

// PtEntry struct is the entry in port table
type PtEntry struct {
	PtSsem Sid32 // sender semaphore
	PtRsem Sid32 // receiver semaphore

	PtMaxCnt uint16 // max messages to be queued

	PtMsgs deque.Deque[Umsg32] // queued messages, oldest first
}

// IsBadPort function check if portid is bad
func (k *Kernel) IsBadPort(portid int32) bool {
	return portid < 0 || int(portid) >= len(k.porttab)
}

// PtCreate function create a port that allows 'count' outstanding messages
func (k *Kernel) PtCreate(count uint16) (int32, error) {
	k.disable()
	defer k.restore()

	if err := k.alive("ptcreate", -1); err != OK {
		return -1, err
	}
	if count == 0 {
		return -1, k.fault("ptcreate", -1, ErrBadArg)
	}
	// both semaphores must fit, a port with only one is useless
	if len(k.porttab) >= k.cfg.NPorts || len(k.semtab)+2 > k.cfg.NSem {
		return -1, k.fault("ptcreate", -1, ErrFull)
	}

	rsem, err := k.semcreate(0) // cannot receive message right now
	if err != OK {
		return -1, err
	}
	ssem, err := k.semcreate(int32(count)) // can send message count times
	if err != OK {
		return -1, err
	}

	ptnum := int32(len(k.porttab))
	k.porttab = append(k.porttab, PtEntry{
		PtSsem:   ssem,
		PtRsem:   rsem,
		PtMaxCnt: count,
	})
	k.log.WithFields(logrus.Fields{"port": ptnum, "count": count}).Debug("port created")
	return ptnum, OK
}

// PtSend function send a message to a port by adding it to the tail of
// queue. It blocks while the port is full.
func (k *Kernel) PtSend(portid int32, msg Umsg32) error {
	k.disable()
	defer k.restore()

	pid, err := k.running("ptsend", portid)
	if err != OK {
		return err
	}
	if k.IsBadPort(portid) {
		return k.fault("ptsend", portid, ErrBadPort)
	}

	ptptr := &k.porttab[portid]
	// wait for a free slot
	k.semwait(pid, ptptr.PtSsem)

	ptptr.PtMsgs.PushBack(msg)

	// let the reveiver know that there is msg avilable
	k.semsignal(ptptr.PtRsem)
	return OK
}

// PtRecv function receive a message from a port, blocking while the port is
// empty
func (k *Kernel) PtRecv(portid int32) (Umsg32, error) {
	k.disable()
	defer k.restore()

	pid, err := k.running("ptrecv", portid)
	if err != OK {
		return NoneMsg, err
	}
	if k.IsBadPort(portid) {
		return NoneMsg, k.fault("ptrecv", portid, ErrBadPort)
	}

	ptptr := &k.porttab[portid]
	// wait for a message
	k.semwait(pid, ptptr.PtRsem)

	msg := ptptr.PtMsgs.PopFront()

	// a slot is free again
	k.semsignal(ptptr.PtSsem)
	return msg, OK
}

// PtCount function returns the number of messages queued on a port
func (k *Kernel) PtCount(portid int32) (int, error) {
	k.disable()
	defer k.restore()

	if k.IsBadPort(portid) {
		return 0, &Fault{Op: "ptcount", Pid: NonePid, ID: portid, Err: ErrBadPort}
	}
	return k.porttab[portid].PtMsgs.Len(), OK
}
