package worker

import "sync"

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a simple worker pool.
type Pool interface {
	// Submit queues t and reports whether it was accepted.
	// It returns false once Stop has been called.
	Submit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

// Stop waits for queued tasks to finish. Safe to call more than once.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
