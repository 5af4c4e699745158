package pool

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	minConcurrency = 1
)

type Config struct {
	Concurrency int
	Capacity    int
}

// WorkerPool runs executor over enqueued tasks on a fixed number of
// goroutines. The first executor error cancels the pool and is returned by
// Close. A WorkerPool can be restarted after Close.
type WorkerPool[T any] struct {
	tasks       chan T
	executor    func(v T) error
	g           *errgroup.Group
	ctx         context.Context
	ctxCancel   context.CancelCauseFunc
	concurrency int
	capacity    int
}

func NewWorkerPool[T any](executor func(v T) error, config *Config) (*WorkerPool[T], error) {
	if config.Concurrency < minConcurrency {
		return nil, errors.New("number of workers must be greater than 0")
	}

	return &WorkerPool[T]{
		tasks:       make(chan T, config.Capacity),
		executor:    executor,
		g:           new(errgroup.Group),
		concurrency: config.Concurrency,
		capacity:    config.Capacity,
	}, nil
}

func (p *WorkerPool[T]) Start(ctx context.Context) {
	p.reset()

	p.ctx, p.ctxCancel = context.WithCancelCause(ctx)

	for i := 0; i < p.concurrency; i++ {
		p.g.Go(func() error {
			if err := p.listen(p.ctx); err != nil {
				p.ctxCancel(err)
				return err
			}

			return nil
		})
	}
}

// Enqueue blocks until a worker can accept v or the pool is cancelled, in
// which case the cancellation cause is returned.
func (p *WorkerPool[T]) Enqueue(v T) error {
	select {
	case p.tasks <- v:
		return nil
	case <-p.ctx.Done():
		return context.Cause(p.ctx)
	}
}

func (p *WorkerPool[T]) PendingTasks() int {
	return len(p.tasks)
}

func (p *WorkerPool[T]) Close() error {
	close(p.tasks)
	err := p.g.Wait()
	p.ctxCancel(err)
	return err
}

func (p *WorkerPool[T]) listen(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case task, ok := <-p.tasks:
			if !ok {
				return nil
			}
			if err := p.executor(task); err != nil {
				return errors.Wrap(err, "ERROR: could not process task")
			}
		}
	}
}

func (p *WorkerPool[T]) reset() {
	p.tasks = make(chan T, p.capacity)
	p.g = new(errgroup.Group)
}
