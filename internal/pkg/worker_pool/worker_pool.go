package worker_pool

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"seo_insight/internal/pkg/errors"
)

type TaskFunc func(ctx context.Context) (any, error)

// TaskResult holds the outcome of a finished task (its ID, result value, or error).
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

type workItem struct {
	id string
	fn TaskFunc
}

// WorkerPool runs submitted tasks on a fixed number of workers and reports
// every outcome on ResultsCh, error or not. One pool serves one analysis.
type WorkerPool struct {
	tasksCh    chan workItem
	ResultsCh  chan TaskResult
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	log        *log.Logger
}

// NewWorkerPool starts numWorkers workers bound to parentCtx.
func NewWorkerPool(parentCtx context.Context, numWorkers int, logger *log.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(parentCtx)
	wp := &WorkerPool{
		tasksCh:    make(chan workItem),
		ResultsCh:  make(chan TaskResult, numWorkers),
		ctx:        ctx,
		cancelFunc: cancel,
		log:        logger,
	}
	for i := 1; i <= numWorkers; i++ {
		go wp.worker(i)
	}
	go func() {
		<-wp.ctx.Done()
		close(wp.tasksCh)
		wp.wg.Wait()
		close(wp.ResultsCh)
	}()
	return wp
}

// Submit adds a new task to the pool. It returns an error if the pool is
// already canceled.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) error {
	select {
	case <-wp.ctx.Done():
		wp.log.Warnf("submit rejected for task %s: pool is shutting down", id)
		return errors.New("worker pool is canceled; cannot accept new tasks")
	default:
	}

	select {
	case wp.tasksCh <- workItem{id: id, fn: taskFn}:
		return nil
	case <-wp.ctx.Done():
		wp.log.Warnf("submit failed for task %s: pool was canceled", id)
		return errors.New("worker pool is canceled; task not accepted")
	}
}

// Collect reads n results from the pool, keyed by task id. It blocks until
// all n tasks have finished or the pool context is canceled.
func (wp *WorkerPool) Collect(n int) (map[string]TaskResult, error) {
	results := make(map[string]TaskResult, n)
	for i := 0; i < n; i++ {
		select {
		case res, ok := <-wp.ResultsCh:
			if !ok {
				return results, errors.New("results channel closed before all tasks finished")
			}
			results[res.ID] = res
		case <-wp.ctx.Done():
			return results, wp.ctx.Err()
		}
	}
	return results, nil
}

func (wp *WorkerPool) worker(workerID int) {
	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasksCh:
			if !ok {
				return
			}
			wp.wg.Add(1)
			wp.log.Debugf("worker %d starting task %s", workerID, task.id)
			result, err := task.fn(wp.ctx)
			if err != nil {
				wp.log.Errorf("task %s failed: %v", task.id, err)
			}
			wp.ResultsCh <- TaskResult{ID: task.id, Result: result, Err: err}
			wp.wg.Done()
		}
	}
}

// Stop cancels the pool's context, triggering graceful shutdown.
func (wp *WorkerPool) Stop() {
	wp.cancelFunc()
}
