package services

import (
	"context"
	"sync"
	"time"

	"github.com/biosecret/go-todo/notify"
	"go.uber.org/zap"
)

// Dispatcher gửi sự kiện trên goroutine riêng, không chặn request.
// Lỗi chỉ được ghi log.
type Dispatcher struct {
	notifier notify.Notifier
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(notifier notify.Notifier, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if notifier == nil {
		notifier = notify.Nop
	}
	return &Dispatcher{notifier: notifier, timeout: timeout, logger: logger, now: time.Now}
}

// Dispatch gửi sự kiện bất đồng bộ với timeout riêng.
// Sự kiện đến sau khi Wait đã bắt đầu sẽ bị bỏ qua.
func (d *Dispatcher) Dispatch(kind notify.Kind, user, detail string) {
	ev := notify.Event{Kind: kind, User: user, Detail: detail, At: d.now()}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Debug("Dropping notification after shutdown",
			zap.String("kind", string(ev.Kind)),
			zap.String("user", ev.User),
		)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, ev); err != nil {
			d.logger.Warn("Failed to deliver notification",
				zap.String("kind", string(ev.Kind)),
				zap.String("user", ev.User),
				zap.Error(err),
			)
		}
	}()
}

// Wait ngừng nhận sự kiện mới và chờ các thông báo đang gửi, dùng khi tắt server
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
