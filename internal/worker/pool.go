// Package worker provides a worker pool for printing several expressions in
// parallel.
package worker

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
)

// WorkItem represents an expression to be resolved and printed.
type WorkItem struct {
	Expression string
	Index      int // Original index for ordering
}

// ProcessResult represents the result of printing an expression.
type ProcessResult struct {
	Expression string
	Index      int
	Text       string // Rendered value; empty on error
	Error      error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel expression printing.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// processFunc is required; other settings have sensible defaults.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Run prints every expression with fn on up to numWorkers goroutines and
// returns the results in expression order. numWorkers < 1 uses one worker per
// CPU. The first failed result stops the pool, so items not yet started are
// skipped and left out of the results.
func Run(expressions []string, numWorkers int, fn ProcessFunc) []ProcessResult {
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(expressions) {
		numWorkers = len(expressions)
	}

	pool := NewPoolWithOptions(fn, WithWorkers(numWorkers), WithBufferSize(len(expressions)))
	pool.Start()
	for i, expr := range expressions {
		pool.Submit(WorkItem{Expression: expr, Index: i})
	}
	go pool.Close()

	return pool.collect()
}

// collect drains the result channel, stopping the pool at the first error,
// and sorts the results by index.
func (p *Pool) collect() []ProcessResult {
	var out []ProcessResult
	for r := range p.Results() {
		if r.Error != nil {
			p.Stop()
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// FirstError returns the error of the lowest-indexed failed result.
func FirstError(results []ProcessResult) error {
	for _, r := range results {
		if r.Error != nil {
			return r.Error
		}
	}
	return nil
}
