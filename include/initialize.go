/*
initialize.go builds a kernel and its tables

All state that the Xinu port kept in package level tables (Proctab,
SemTab, Queuetab, ReadyList, ...) lives in one Kernel value here, so
several kernels can coexist in one host process.
*/

package include

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

// Kernel is one cooperative single-CPU kernel instance.
type Kernel struct {
	mu  sync.Mutex // held by the running process while inside a kernel call
	cfg Config
	log *logrus.Entry
	sw  Switcher

	queues    *QueueTab
	readylist Qid16

	proctab []ProcEnt
	prcount int // processes created and not yet finished

	semtab  []SEntry
	montab  []MEntry
	evtab   []EEntry
	porttab []PtEntry

	started bool
	down    bool
	halted  chan struct{}
	haltErr error

	trace   deque.Deque[TraceRec]
	traceNo uint64
}

// New function validates cfg and returns a kernel with empty tables and an
// empty ready list
func New(cfg Config) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sw := cfg.Switcher
	if sw == nil {
		sw = NewSwitcher()
	}

	k := &Kernel{
		cfg:     cfg,
		log:     logger.WithField("component", "kernel"),
		sw:      sw,
		queues:  NewQueueTab(cfg.NProc, cfg.nqueues()),
		proctab: make([]ProcEnt, 0, cfg.NProc),
		semtab:  make([]SEntry, 0, cfg.NSem),
		montab:  make([]MEntry, 0, cfg.NMon),
		evtab:   make([]EEntry, 0, cfg.NEvent),
		porttab: make([]PtEntry, 0, cfg.NPorts),
		halted:  make(chan struct{}),
	}

	var err error
	if k.readylist, err = k.queues.NewQueue(); err != OK {
		return nil, err
	}

	k.log.WithFields(logrus.Fields{
		"nproc":   cfg.NProc,
		"nsem":    cfg.NSem,
		"nmon":    cfg.NMon,
		"nevent":  cfg.NEvent,
		"nports":  cfg.NPorts,
		"onfault": cfg.OnFault,
	}).Debug("kernel initialized")
	return k, OK
}

// Config returns the configuration the kernel was built with
func (k *Kernel) Config() Config {
	return k.cfg
}
