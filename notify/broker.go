package notify

import (
	"context"
	"sync"

	"github.com/biosecret/go-todo/utils"
)

const subscriberBuffer = 16

// Broker phát sự kiện tới các subscriber trong tiến trình (stream SSE).
// Subscriber chậm sẽ mất sự kiện thay vì chặn bên gửi.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]chan Event
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]chan Event)}
}

// Subscribe đăng ký subscriber mới, trả về id và kênh nhận sự kiện.
// Sau khi Close, kênh trả về đã bị đóng sẵn.
func (b *Broker) Subscribe() (string, <-chan Event) {
	id := utils.GenerateRandomID()
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe xoá subscriber và đóng kênh của nó
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	ch, ok := b.subs[id]
	delete(b.subs, id)
	b.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Close đóng mọi kênh subscriber để các stream SSE kết thúc khi tắt server
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broker) Notify(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}
