/*
message.go inter-process communication of message

files combined from the original X86 version include:
send.c
receive.c
recvclr.c

*/

package include

// Send function pass a message to process and start recepient if waiting
func (k *Kernel) Send(pid Pid32, msg Umsg32) error {
	k.disable()
	defer k.restore()

	if err := k.alive("send", int32(pid)); err != OK {
		return err
	}
	if k.IsBadPid(pid) || k.proctab[pid].PrState == PrDone {
		return k.fault("send", int32(pid), ErrBadPid)
	}

	prptr := &k.proctab[pid]
	if prptr.PrHasMsg {
		// if there is a previous message to be received, do not overwrite it
		return k.fault("send", int32(pid), ErrMsgPending)
	}

	// save the msg to process pid and notify it by set the PrHasMsg field
	prptr.PrMsg = msg
	prptr.PrHasMsg = true

	if prptr.PrState == PrRecv {
		// if process pid is in PrRecv state, make it ready
		k.ready(pid)
	}

	return OK
}

// Receive function wait for message and return the message to the caller
func (k *Kernel) Receive() (Umsg32, error) {
	k.disable()
	defer k.restore()

	pid, err := k.running("receive", -1)
	if err != OK {
		return NoneMsg, err
	}

	prptr := &k.proctab[pid]
	if !prptr.PrHasMsg {
		// no message available now, waiting for it
		k.block(pid, NoneQid, PrRecv)
		// give chance to another process to run
		k.resched(pid, ReasonReceive)
		// when returned from resched(), it means another process
		// must have send message to it by calling Send() function.
	}

	msg := prptr.PrMsg     // retrieve message and save it on stack
	prptr.PrHasMsg = false // reset message nofity flag
	return msg, OK
}

// RecvClr function clear incoming message and return message if one message is
// waitting to be retrieved. It not block when there is no message available.
func (k *Kernel) RecvClr() (Umsg32, error) {
	k.disable()
	defer k.restore()

	pid, err := k.running("recvclr", -1)
	if err != OK {
		return NoneMsg, err
	}

	prptr := &k.proctab[pid]
	if !prptr.PrHasMsg {
		// no rescheduling when no message available
		return NoneMsg, ErrEmpty
	}

	msg := prptr.PrMsg
	prptr.PrHasMsg = false

	return msg, OK
}
