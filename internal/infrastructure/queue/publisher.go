// Package queue decouples event publication from the request path. The
// Publisher implements ports.EventNotifier: services "publish" into a
// buffered worker queue and return immediately; workers forward to the
// real fabric notifier in the background.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/tracknest/issuetracker/internal/api/metrics"
	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type envelope struct {
	topic   string
	key     string
	payload any
}

// Publisher routes events to a fixed set of workers using consistent
// hashing on the routing key, keeping per-user event ordering.
type Publisher struct {
	workers  []chan envelope
	notifier ports.EventNotifier
	log      zerolog.Logger
}

// NewPublisher creates a Publisher with numWorkers sharded workers in
// front of the given fabric notifier. If numWorkers <= 0, defaultWorkers
// is used.
func NewPublisher(numWorkers int, notifier ports.EventNotifier, log zerolog.Logger) *Publisher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	p := &Publisher{
		workers:  make([]chan envelope, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range p.workers {
		p.workers[i] = make(chan envelope, channelBuffer)
	}
	return p
}

// Start launches the worker goroutines. Workers stop when ctx is
// cancelled; envelopes already dequeued still complete their publish.
func (p *Publisher) Start(ctx context.Context) {
	for i, ch := range p.workers {
		go p.runWorker(ctx, i, ch)
	}
}

// Publish enqueues one event and never blocks: when the responsible
// worker's buffer is full the event is dropped and counted. The returned
// error is always nil; failures downstream are logged by the worker.
func (p *Publisher) Publish(_ context.Context, topic, routingKey string, payload any) error {
	env := envelope{topic: topic, key: routingKey, payload: payload}
	select {
	case p.workers[p.shardIndex(routingKey)] <- env:
		if ev, ok := payload.(domain.IssueEvent); ok {
			metrics.EventsPublishedTotal.WithLabelValues(ev.Kind).Inc()
		}
	default:
		metrics.EventsDroppedTotal.Inc()
		p.log.Warn().Str("topic", topic).Str("routing_key", routingKey).Msg("publish queue full, event dropped")
	}
	return nil
}

func (p *Publisher) shardIndex(routingKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(routingKey))
	return int(h.Sum32()) % len(p.workers)
}

func (p *Publisher) runWorker(ctx context.Context, id int, ch <-chan envelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-ch:
			if !ok {
				return
			}
			if err := p.notifier.Publish(ctx, env.topic, env.key, env.payload); err != nil {
				metrics.EventsErrorsTotal.Inc()
				p.log.Error().Err(err).
					Str("topic", env.topic).
					Str("routing_key", env.key).
					Int("worker_id", id).
					Msg("event publish failed")
			}
		}
	}
}
