package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/biosecret/go-todo/config"
	"github.com/wneessen/go-mail"
)

// Mailer gửi email cảnh báo khi admin đăng nhập, các loại sự kiện khác bị bỏ qua
type Mailer struct {
	client *mail.Client
	from   string
	to     string
}

func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From, to: cfg.To}, nil
}

// Verify mở rồi đóng một phiên SMTP để kiểm tra kết nối
func (m *Mailer) Verify(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	return m.client.Close()
}

func (m *Mailer) Notify(ctx context.Context, ev Event) error {
	if ev.Kind != KindAdminLogin {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject("Admin login alert")
	msg.SetBodyString(mail.TypeTextPlain, adminLoginBody(ev))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send admin login alert: %w", err)
	}
	return nil
}

func adminLoginBody(ev Event) string {
	return fmt.Sprintf("Admin account %q logged in at %s.", ev.User, ev.At.UTC().Format(time.RFC1123))
}
