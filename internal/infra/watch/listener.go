package watch

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const channelName = "reservations_changed"

// Event is one row-change notification emitted by the reservations trigger.
type Event struct {
	Op string `json:"op"`
	ID string `json:"id"`
}

// Listener holds a dedicated connection on LISTEN reservations_changed and
// fans every notification out to all subscribers. Slow subscribers drop
// events rather than blocking the feed; clients are expected to re-query the
// listing on every event anyway.
type Listener struct {
	pool *pgxpool.Pool

	mu     sync.Mutex
	subs   map[chan Event]struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

func NewListener(pool *pgxpool.Pool) *Listener {
	return &Listener{
		pool: pool,
		subs: make(map[chan Event]struct{}),
	}
}

func (l *Listener) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(runCtx)
}

func (l *Listener) Stop() {
	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
}

// Subscribe registers a feed channel. The returned func must be called to
// release it.
func (l *Listener) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	unsubscribe := func() {
		l.mu.Lock()
		delete(l.subs, ch)
		l.mu.Unlock()
	}
	return ch, unsubscribe
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)

	backoff := time.Second
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("reservation listener disconnected, reconnecting",
				"wait", backoff.String(),
				"error", err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event Event
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			slog.Warn("dropping malformed reservation notification", "payload", notification.Payload)
			continue
		}
		l.broadcast(event)
	}
}

func (l *Listener) broadcast(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
