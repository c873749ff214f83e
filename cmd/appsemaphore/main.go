// Command appsemaphore runs counter-increment processes that share one
// counter, guarded either by a semaphore of count 1 or by a monitor.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/SonicFrog/FPGAMicroKernel/include"
)

var (
	nprocs     = flag.Int("procs", 2, "number of counting processes")
	iterations = flag.Int("n", 5, "increments per process")
	guard      = flag.String("guard", "sem", "counter guard: sem or monitor")
	level      = flag.String("log", "info", "log level")
	stack      = flag.Uint("stack", 10000, "stack size per process in bytes")
)

func main() {
	flag.Parse()

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "appsemaphore: %v\n", err)
		os.Exit(2)
	}
	log.SetLevel(lvl)

	cfg := include.DefaultConfig()
	if *nprocs > cfg.NProc {
		cfg.NProc = *nprocs
	}
	k, err := include.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var procs []func()
	switch *guard {
	case "sem":
		procs, err = semWorkload(k, *nprocs, *iterations)
	case "monitor":
		procs, err = monWorkload(k, *nprocs, *iterations)
	default:
		err = fmt.Errorf("unknown guard %q", *guard)
	}
	if err != nil {
		log.Fatal(err)
	}

	for i, f := range procs {
		if _, err := k.Create(f, uint32(*stack), fmt.Sprintf("process%d", i+1)); err != nil {
			log.Fatal(err)
		}
	}

	if err := k.Start(); err != nil {
		log.Fatal(err)
	}
	log.WithField("switches", k.Switches()).Info("all processes finished")
}

// semWorkload builds processes that bump a counter inside P/V and yield in
// the critical section so the others pile up on the semaphore
func semWorkload(k *include.Kernel, nprocs, n int) ([]func(), error) {
	sem, err := k.SemCreate(1)
	if err != nil {
		return nil, err
	}

	counter := 0
	procs := make([]func(), nprocs)
	for i := range procs {
		id := i + 1
		procs[i] = func() {
			log.Infof("Process %d...", id)
			for j := 0; j < n; j++ {
				k.P(sem)
				counter++
				k.Yield()
				temp := counter
				k.V(sem)
				k.Yield()
				log.WithField("pid", k.GetPid()).Infof("Process %d, counter = %d", id, temp)
			}
		}
	}
	return procs, nil
}

// monWorkload does the same as semWorkload with a monitor, entered twice to
// exercise reentrancy
func monWorkload(k *include.Kernel, nprocs, n int) ([]func(), error) {
	mon, err := k.MonCreate()
	if err != nil {
		return nil, err
	}

	counter := 0
	procs := make([]func(), nprocs)
	for i := range procs {
		id := i + 1
		procs[i] = func() {
			log.Infof("Process %d...", id)
			for j := 0; j < n; j++ {
				k.EnterMonitor(mon)
				k.EnterMonitor(mon)
				counter++
				k.Yield()
				temp := counter
				k.ExitMonitor()
				k.ExitMonitor()
				k.Yield()
				log.WithField("pid", k.GetPid()).Infof("Process %d, counter = %d", id, temp)
			}
		}
	}
	return procs, nil
}
