// Package background runs fire-and-forget tasks (vector index upserts,
// session persistence) off the request path so responses are not delayed by
// best-effort side work.
package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"interviewgen/internal/config"
	"interviewgen/internal/logging"
)

// Task is a unit of background work. The context carries the task timeout.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Manager executes submitted tasks on a bounded worker pool
type Manager struct {
	taskChan    chan Task
	maxWorkers  int
	taskTimeout time.Duration
	logger      logging.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.RWMutex
	running     bool
}

// NewManager creates a task manager from configuration
func NewManager(cfg *config.Config) *Manager {
	maxWorkers := cfg.BackgroundTasks.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	queueSize := cfg.BackgroundTasks.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Manager{
		taskChan:    make(chan Task, queueSize),
		maxWorkers:  maxWorkers,
		taskTimeout: cfg.BackgroundTasks.TaskTimeout,
		logger:      logging.GetGlobalLogger(),
	}
}

// Start launches the worker pool
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("task manager already running")
	}

	m.ctx, m.cancel = context.WithCancel(ctx)
	for i := 0; i < m.maxWorkers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	m.running = true

	m.logger.Info("Background task manager started", map[string]interface{}{
		"workers": m.maxWorkers,
	})

	return nil
}

// Stop drains the workers, waiting up to the context deadline
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.cancel()
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Background task manager stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for background tasks to finish")
	}
}

// Submit queues a task. When the queue is full the task is dropped with a
// warning; background work is best-effort by contract.
func (m *Manager) Submit(task Task) {
	m.mu.RLock()
	running := m.running
	m.mu.RUnlock()

	if !running {
		m.logger.Warn("Background task dropped, manager not running", map[string]interface{}{
			"task": task.Name,
		})
		return
	}

	select {
	case m.taskChan <- task:
	default:
		m.logger.Warn("Background task dropped, queue full", map[string]interface{}{
			"task": task.Name,
		})
	}
}

// IsHealthy reports whether the manager is accepting tasks
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

func (m *Manager) worker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case task := <-m.taskChan:
			m.execute(task)
		}
	}
}

func (m *Manager) execute(task Task) {
	timeout := m.taskTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Tasks run on a detached context: the request that queued them has
	// already been answered.
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	startTime := time.Now()
	if err := task.Run(ctx); err != nil {
		m.logger.Warn("Background task failed", map[string]interface{}{
			"task":  task.Name,
			"error": err.Error(),
		})
		return
	}

	m.logger.Debug("Background task completed", map[string]interface{}{
		"task":            task.Name,
		"processing_time": time.Since(startTime),
	})
}
