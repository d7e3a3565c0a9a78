// Package notify gửi sự kiện của service tới email, MQTT và các subscriber SSE.
package notify

import (
	"context"
	"time"

	"go.uber.org/multierr"
)

// Kind cho biết sự kiện gì đã xảy ra
type Kind string

const (
	KindUserCreated Kind = "user.created"
	KindAdminLogin  Kind = "admin.login"
	KindTodoAdded   Kind = "todo.added"
	KindTodoDeleted Kind = "todo.deleted"
	KindUserDeleted Kind = "user.deleted"
)

// Event là payload được gửi tới mọi Notifier
type Event struct {
	Kind   Kind      `json:"kind"`
	User   string    `json:"user"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier gửi một sự kiện. Cài đặt phải an toàn khi gọi đồng thời.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// NotifierFunc cho phép dùng hàm thường như một Notifier
type NotifierFunc func(ctx context.Context, ev Event) error

func (f NotifierFunc) Notify(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Multi gửi sự kiện tới mọi notifier và gộp các lỗi lại
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var err error
	for _, n := range m {
		err = multierr.Append(err, n.Notify(ctx, ev))
	}
	return err
}

// Nop bỏ qua mọi sự kiện
var Nop Notifier = NotifierFunc(func(context.Context, Event) error { return nil })
