package clickqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/cache"
	"github.com/ramoneds/linkwhats/internal/pkg/metrics/counter"
)

const (
	// Redis key prefixes
	EventKeyPrefix     = "click:"
	EventQueueKey      = "click_queue"
	EventProcessingKey = "click_processing"
	EventStatsKey      = "click_stats"

	// Event settings
	DefaultMaxRetries = 3
	EventTTL          = 24 * time.Hour
)

// Queue persists click events in the background using Redis
type Queue struct {
	client  *redis.Client
	repos   *repository.Repositories
	workers int
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewQueue creates a new click queue
func NewQueue(workers int, repos *repository.Repositories) *Queue {
	if workers <= 0 {
		workers = 2
	}

	return &Queue{
		client:  cache.GetClient(),
		repos:   repos,
		workers: workers,
		stopCh:  make(chan struct{}),
	}
}

// Start starts the click queue workers
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return
	}

	q.running = true
	log.Infof("[ClickQueue] Starting %d workers", q.workers)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Stop stops the click queue workers
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running {
		return
	}

	log.Info("[ClickQueue] Stopping workers...")
	close(q.stopCh)
	q.running = false
	q.wg.Wait()
	log.Info("[ClickQueue] All workers stopped")
}

// worker processes click events from the queue
func (q *Queue) worker(id int) {
	defer q.wg.Done()
	log.Infof("[ClickQueue] Worker %d started", id)

	ctx := context.Background()

	for {
		select {
		case <-q.stopCh:
			log.Infof("[ClickQueue] Worker %d stopping", id)
			return
		default:
			event, err := q.dequeueEvent(ctx)
			if err != nil {
				if err != redis.Nil {
					log.Errorf("[ClickQueue] Worker %d: Error dequeuing event: %v", id, err)
					time.Sleep(time.Second)
				}
				continue
			}

			if event != nil {
				q.processEvent(ctx, event)
			}
		}
	}
}

// Enqueue adds a click event to the queue
func (q *Queue) Enqueue(event *ClickEvent) error {
	ctx := context.Background()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal click event: %w", err)
	}

	eventKey := EventKeyPrefix + event.ID

	pipe := q.client.Pipeline()
	pipe.Set(ctx, eventKey, data, EventTTL)
	pipe.LPush(ctx, EventQueueKey, event.ID)
	pipe.HIncrBy(ctx, EventStatsKey, string(EventStatusPending), 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue click event: %w", err)
	}

	return nil
}

// dequeueEvent moves the next event from pending to processing atomically
func (q *Queue) dequeueEvent(ctx context.Context) (*ClickEvent, error) {
	result, err := q.client.BRPopLPush(ctx, EventQueueKey, EventProcessingKey, time.Second).Result()
	if err != nil {
		return nil, err
	}

	eventID := result
	eventKey := EventKeyPrefix + eventID

	data, err := q.client.Get(ctx, eventKey).Result()
	if err != nil {
		q.client.LRem(ctx, EventProcessingKey, 1, eventID)
		return nil, fmt.Errorf("event data not found for ID %s", eventID)
	}

	var event ClickEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		q.client.LRem(ctx, EventProcessingKey, 1, eventID)
		return nil, fmt.Errorf("failed to unmarshal event %s: %w", eventID, err)
	}

	return &event, nil
}

// processEvent writes the click log row and bumps the pending counter
func (q *Queue) processEvent(ctx context.Context, event *ClickEvent) {
	event.Status = EventStatusProcessing
	q.updateEvent(ctx, event)

	err := q.persist(event)
	if err != nil {
		log.Errorf("[ClickQueue] Event %s failed: %v", event.ID, err)
		event.Status = EventStatusFailed
		event.RetryCount++

		if event.IsRetryable() {
			event.Status = EventStatusPending
			q.updateEvent(ctx, event)
			time.AfterFunc(time.Minute*time.Duration(event.RetryCount), func() {
				q.client.LPush(ctx, EventQueueKey, event.ID)
			})
		} else {
			log.Errorf("[ClickQueue] Event %s permanently failed after %d retries", event.ID, event.RetryCount)
			q.updateEvent(ctx, event)
			q.client.HIncrBy(ctx, EventStatsKey, string(EventStatusFailed), 1)
		}
	} else {
		event.Status = EventStatusCompleted
		q.client.HIncrBy(ctx, EventStatsKey, string(EventStatusCompleted), 1)
		q.client.Del(ctx, EventKeyPrefix+event.ID)
	}

	q.client.LRem(ctx, EventProcessingKey, 1, event.ID)
}

// persist stores the event as a click log row and increments the pending counter
func (q *Queue) persist(event *ClickEvent) error {
	clickLog := &models.ClickLog{
		LinkID:    event.LinkID,
		IPv4:      event.IPv4,
		IPv6:      event.IPv6,
		UserAgent: event.UserAgent,
		Referer:   event.Referer,
		Country:   event.Country,
		CreatedAt: event.OccurredAt,
	}
	if err := q.repos.Click.Create(clickLog); err != nil {
		return err
	}
	return counter.AddLinkClick(event.LinkID)
}

// updateEvent updates event data in Redis
func (q *Queue) updateEvent(ctx context.Context, event *ClickEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("[ClickQueue] Failed to marshal event %s: %v", event.ID, err)
		return
	}

	if err := q.client.Set(ctx, EventKeyPrefix+event.ID, data, EventTTL).Err(); err != nil {
		log.Errorf("[ClickQueue] Failed to update event %s: %v", event.ID, err)
	}
}

// GetQueueSize returns the number of pending events
func (q *Queue) GetQueueSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, EventQueueKey).Result()
}

// GetStats returns counts of events per status
func (q *Queue) GetStats(ctx context.Context) (map[EventStatus]int64, error) {
	stats, err := q.client.HGetAll(ctx, EventStatsKey).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[EventStatus]int64)
	for status, count := range stats {
		if countInt, err := json.Number(count).Int64(); err == nil {
			result[EventStatus(status)] = countInt
		}
	}

	return result, nil
}
