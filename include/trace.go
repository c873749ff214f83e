package include

import "github.com/sirupsen/logrus"

// TraceRec records one hand-over of the CPU
type TraceRec struct {
	Seq    uint64 // switch number, from 1
	From   Pid32  // process leaving the CPU, NonePid at start
	To     Pid32  // process getting the CPU
	Reason string // what made From leave
}

// record logs a switch and keeps it in the trace ring, dropping the oldest
// record once the ring holds NTrace of them
func (k *Kernel) record(from, to Pid32, reason string) {
	k.traceNo++
	k.log.WithFields(logrus.Fields{
		"seq":    k.traceNo,
		"from":   from,
		"to":     to,
		"reason": reason,
	}).Trace("context switch")

	if k.cfg.NTrace == 0 {
		return
	}
	if k.trace.Len() >= k.cfg.NTrace {
		k.trace.PopFront()
	}
	k.trace.PushBack(TraceRec{Seq: k.traceNo, From: from, To: to, Reason: reason})
}

// Trace function returns the kept switch records, oldest first
func (k *Kernel) Trace() []TraceRec {
	k.disable()
	defer k.restore()

	recs := make([]TraceRec, k.trace.Len())
	for i := range recs {
		recs[i] = k.trace.At(i)
	}
	return recs
}

// Switches function returns how many times the CPU was handed over,
// including records already dropped from the trace
func (k *Kernel) Switches() uint64 {
	k.disable()
	defer k.restore()

	return k.traceNo
}
