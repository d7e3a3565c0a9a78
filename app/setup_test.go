package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/biosecret/go-todo/config"
	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/handlers"
	"github.com/biosecret/go-todo/notify"
	"github.com/biosecret/go-todo/services"
	"github.com/biosecret/go-todo/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestShutdownClosesEventStreams(t *testing.T) {
	logger := zaptest.NewLogger(t)
	store := database.NewMemoryStore()
	broker := notify.NewBroker()
	d := services.NewDispatcher(broker, time.Second, logger)
	admin := services.AdminCredentials{Name: "admin", Password: "s3cret"}

	a := NewFiberApp(&config.Config{CORSAllowOrigins: "*"}, &handlers.Handler{
		Accounts: services.NewAccountService(store, utils.PlainPasswords{}, admin, d, logger),
		Todos:    services.NewTodoService(store, d),
		Admin:    services.NewAdminService(store, admin, d),
		Store:    store,
		Broker:   broker,
		Logger:   logger,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go a.Listener(ln)

	body := make(chan string, 1)
	go func() {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get("http://" + ln.Addr().String() + "/admin/events?name=admin&password=s3cret")
		if err != nil {
			body <- "error: " + err.Error()
			return
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		body <- string(raw)
	}()

	require.Eventually(t, func() bool { return broker.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, broker.Notify(context.Background(), notify.Event{Kind: notify.KindTodoAdded, User: "alice"}))

	start := time.Now()
	err = Shutdown(a, broker, 5*time.Second)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 0, broker.Subscribers())

	select {
	case got := <-body:
		assert.Contains(t, got, "event: todo.added")
		assert.Contains(t, got, `"user":"alice"`)
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end after shutdown")
	}
	d.Wait()
}
