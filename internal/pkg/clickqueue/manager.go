package clickqueue

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/env"
	"github.com/ramoneds/linkwhats/internal/pkg/metrics/counter"
)

// Manager manages the global click queue and the counter flush ticker
type Manager struct {
	queue              *Queue
	counterFlushTicker *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global click queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := env.GetEnvAsInt("CLICK_QUEUE_WORKERS", 2)
		globalManager = &Manager{
			queue:  NewQueue(workerCount, repository.GetGlobalFactory().GetRepositories()),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed click queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the click queue and the periodic counter flush
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[ClickQueue Manager] Starting click queue and background tasks")

	m.queue.Start()

	flushInterval := time.Duration(env.GetEnvAsInt("CLICK_FLUSH_INTERVAL_SECONDS", 60)) * time.Second
	m.counterFlushTicker = time.NewTicker(flushInterval)
	m.wg.Add(1)
	go m.counterFlushWorker()
}

// Stop stops the click queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[ClickQueue Manager] Stopping click queue and background tasks")
	close(m.stopCh)
	m.running = false

	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}

	m.queue.Stop()
	m.wg.Wait()

	// Final flush so pending increments survive a shutdown
	if err := counter.FlushAll(); err != nil {
		log.Errorf("[ClickQueue Manager] Final counter flush failed: %v", err)
	}
}

// counterFlushWorker periodically flushes pending click counters to the database
func (m *Manager) counterFlushWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stopCh:
			return
		case <-m.counterFlushTicker.C:
			if err := counter.FlushAll(); err != nil {
				log.Errorf("[ClickQueue Manager] Counter flush failed: %v", err)
			}
		}
	}
}
