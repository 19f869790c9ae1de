// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package parallel partitions index ranges across goroutines.
//
// All hot-path concurrency in veil is CPU bound and partitioned up front:
// workers write to disjoint sub-ranges of pre-allocated buffers, so no locks
// are needed and results do not depend on scheduling order.
package parallel

import (
	"runtime"
	"sync"
)

// Execute calls work(start, end) on sub-ranges of [0, nbIterations) and waits
// for all calls to return.
//
// The optional nbTasks caps the number of concurrent workers; 0 or absent
// defaults to runtime.NumCPU(). nbTasks == 1 runs work inline, giving a fully
// serial execution path.
func Execute(nbIterations int, work func(int, int), nbTasks ...int) {
	nbCpus := runtime.NumCPU()
	if len(nbTasks) > 0 && nbTasks[0] > 0 {
		nbCpus = nbTasks[0]
	}

	if nbIterations <= 0 {
		return
	}

	if nbCpus == 1 || nbIterations == 1 {
		work(0, nbIterations)
		return
	}

	nbIterationsPerCpus := nbIterations / nbCpus
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbCpus = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - (nbCpus * nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbCpus; i++ {
		wg.Add(1)
		_start := i*nbIterationsPerCpus + extraTasksOffset
		_end := _start + nbIterationsPerCpus
		if extraTasks > 0 {
			_end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(_start, _end)
			wg.Done()
		}()
	}

	wg.Wait()
}
