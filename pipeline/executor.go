package pipeline

import "sync"

// Executor runs one unit of work. Stages that fan out to sub-pipelines
// depend only on this abstraction; by default work runs synchronously on
// the calling goroutine, so the engine is single-threaded unless a caller
// opts in to a pool.
type Executor interface {
	Execute(task func())
}

// DirectExecutor runs every task synchronously on the calling goroutine.
// This is the default for all concurrency-bearing stages and preserves
// fully deterministic single-threaded behavior.
type DirectExecutor struct{}

func (DirectExecutor) Execute(task func()) { task() }

// PoolExecutor runs tasks on a fixed set of worker goroutines. Its
// lifecycle belongs to the caller: create it, share it across stages, and
// Close it when no more work will be submitted. Stages never close an
// executor handed to them.
type PoolExecutor struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPoolExecutor creates a pool with the given number of workers.
// A non-positive count falls back to a single worker.
func NewPoolExecutor(workers int) *PoolExecutor {
	if workers <= 0 {
		workers = 1
	}
	p := &PoolExecutor{tasks: make(chan func())}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Execute submits a task to the pool. It blocks while all workers are
// busy. Submitting after Close panics, like any send on a closed channel.
func (p *PoolExecutor) Execute(task func()) {
	p.tasks <- task
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Safe to call more than once.
func (p *PoolExecutor) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
