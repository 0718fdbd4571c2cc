// ABOUTME: Worker pool for parallel batch correction submission
// ABOUTME: Provides submit-and-wait with error collection

package pool

import "sync"

// WorkerPool runs submitted tasks on a fixed number of goroutines and
// collects their errors. Batch submission is I/O bound, so the worker count
// is chosen by the caller rather than tied to CPU count.
type WorkerPool struct {
	taskChan chan func() error
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	taskWg   sync.WaitGroup // tracks submitted tasks completion

	mu   sync.Mutex
	errs []error
}

// NewWorkerPool creates a pool with the given number of workers.
// The bufferSize determines the task channel capacity.
func NewWorkerPool(workers, bufferSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}

	pool := &WorkerPool{
		taskChan: make(chan func() error, bufferSize),
	}

	for range workers {
		pool.workerWg.Add(1)

		go func() {
			defer pool.workerWg.Done()

			for task := range pool.taskChan {
				if err := task(); err != nil {
					pool.mu.Lock()
					pool.errs = append(pool.errs, err)
					pool.mu.Unlock()
				}

				pool.taskWg.Done()
			}
		}()
	}

	return pool
}

// Submit adds a task to the pool
// Blocks if the task channel is full
func (p *WorkerPool) Submit(task func() error) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// Wait blocks until all submitted tasks have completed and returns the
// errors collected so far
func (p *WorkerPool) Wait() []error {
	p.taskWg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	errs := make([]error, len(p.errs))
	copy(errs, p.errs)

	return errs
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}
