package concurrent

import (
	"errors"
	"sync"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// TaskPool. goroutine pool for fire-and-forget tasks, at most size goroutines are alive.
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
type TaskPool struct {
	sem  chan struct{}
	work chan func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewTaskPool. size is the maximum number of goroutines, queue the number of tasks waiting for
// an idle goroutine.
func NewTaskPool(size, queue int) *TaskPool {
	if size < 1 {
		size = 1
	}
	return &TaskPool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn. start n goroutines up front
func (p *TaskPool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(func() {})
		default:
			return
		}
	}
}

// Schedule. blocks until the task is picked up or the pool is closed.
func (p *TaskPool) Schedule(task func()) {
	p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule, but gives up after timeout with ErrScheduleTimeout.
func (p *TaskPool) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return p.schedule(task, timer.C)
}

func (p *TaskPool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-p.done:
		return ErrScheduleTimeout
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *TaskPool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for {
		select {
		case task := <-p.work:
			task()
		case <-p.done:
			return
		}
	}
}

func (p *TaskPool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
