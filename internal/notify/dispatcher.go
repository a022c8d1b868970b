package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/fixnet/internal/metrics"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

var ErrClosed = errors.New("dispatcher closed")

//go:generate mockgen -source=dispatcher.go -destination=sender_mock.go -package=notify
type Sender interface {
	Send(ctx context.Context, text string) error
}

type Options struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// Dispatcher delivers notifications from background workers. Notify never
// blocks: when the queue is full the notification is dropped and logged.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	queue   chan *repair.Request

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	d := &Dispatcher{
		sender:  sender,
		timeout: opts.Timeout,
		queue:   make(chan *repair.Request, opts.QueueSize),
	}

	d.wg.Add(opts.Workers)

	for range opts.Workers {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) Notify(req *repair.Request) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("notification dropped", "id", req.ID, "error", ErrClosed)
		metrics.NotificationOutcome(metrics.OutcomeDropped)

		return
	}

	select {
	case d.queue <- req:
	default:
		slog.Warn("notification queue full, dropping", "id", req.ID)
		metrics.NotificationOutcome(metrics.OutcomeDropped)
	}
}

// Close stops accepting notifications and waits for queued ones to be
// delivered, or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for req := range d.queue {
		d.deliver(req)
	}
}

func (d *Dispatcher) deliver(req *repair.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, FormatMessage(req)); err != nil {
		slog.Error("failed to send notification", "id", req.ID, "error", err)
		metrics.NotificationOutcome(metrics.OutcomeFailed)

		return
	}

	metrics.NotificationOutcome(metrics.OutcomeSent)
}

// LogSender writes notifications to the log instead of delivering them.
// It is used when no notification channel is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, text string) error {
	slog.Info("notification channel not configured, skipping delivery", "message", text)
	return nil
}
