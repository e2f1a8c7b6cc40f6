package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueInvoiceEmail = "jobs:invoice-email"

	JobInvoiceEmail = "invoice-email"

	// MaxAttempts is how many times a job runs before it is dead-lettered.
	MaxAttempts = 3
)

// Job is the envelope stored in a Redis list.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler runs one job type. A returned error makes the job eligible for a
// retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// pusher is the slice of the Redis client used to (re)queue jobs.
type pusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Dispatcher enqueues jobs; the pool dequeues them with BRPOP.
type Dispatcher struct {
	rdb pusher
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueInvoiceEmail queues an already rendered invoice for mailing.
func (d *Dispatcher) EnqueueInvoiceEmail(ctx context.Context, payload InvoiceEmailPayload) error {
	if payload.ToEmail == "" {
		return errors.New("worker: invoice email needs a recipient")
	}
	return enqueue(ctx, d.rdb, QueueInvoiceEmail, JobInvoiceEmail, payload)
}

func enqueue(ctx context.Context, q pusher, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("worker: encode payload: %w", err)
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return q.LPush(ctx, queue, encoded).Err()
}

// Pool is a fixed set of goroutines consuming the job queues.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	wg       sync.WaitGroup
}

// StartWorkerPool launches numWorkers goroutines. They stop when ctx is
// cancelled; Wait blocks until they have.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers map[string]Handler, numWorkers int) *Pool {
	p := &Pool{rdb: rdb, handlers: handlers}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return p
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
		}

		// Waits up to 5s so cancellation is noticed.
		result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueInvoiceEmail).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Int("worker", id).Msg("worker: dequeue failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		process(ctx, p.rdb, p.handlers, result[0], result[1])
	}
}

// process runs one raw job. Failures are re-queued with the attempt count
// bumped until MaxAttempts, then moved to the dead letter queue.
// ErrPermanent skips the retries.
func process(ctx context.Context, q pusher, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("worker: failed to unmarshal job")
		SendToDLQ(ctx, q, queue, "", json.RawMessage(quote(raw)), "unreadable job: "+err.Error(), 0)
		return
	}

	h, ok := handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, q, queue, job.Type, job.Payload, "no handler for job type", job.Attempts)
		return
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		return
	}

	if job.Attempts >= MaxAttempts || errors.Is(err, ErrPermanent) {
		SendToDLQ(ctx, q, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	log.Warn().Err(err).Str("type", job.Type).Int("attempt", job.Attempts).Msg("worker: job failed, re-queued")
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		log.Error().Err(mErr).Msg("worker: failed to re-encode job")
		return
	}
	if pErr := q.LPush(ctx, queue, encoded).Err(); pErr != nil {
		log.Error().Err(pErr).Str("queue", queue).Msg("worker: failed to re-queue job")
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
