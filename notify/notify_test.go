package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestMultiCallsEveryNotifier(t *testing.T) {
	var calls []string
	first := NotifierFunc(func(_ context.Context, ev Event) error {
		calls = append(calls, "first:"+string(ev.Kind))
		return errors.New("first failed")
	})
	second := NotifierFunc(func(_ context.Context, ev Event) error {
		calls = append(calls, "second:"+string(ev.Kind))
		return nil
	})
	third := NotifierFunc(func(context.Context, Event) error {
		return errors.New("third failed")
	})

	err := Multi{first, second, third}.Notify(context.Background(), Event{Kind: KindAdminLogin})
	assert.Equal(t, []string{"first:admin.login", "second:admin.login"}, calls)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestMultiEmpty(t *testing.T) {
	assert.NoError(t, Multi(nil).Notify(context.Background(), Event{}))
	assert.NoError(t, Nop.Notify(context.Background(), Event{}))
}

func TestBrokerDeliversToSubscribers(t *testing.T) {
	b := NewBroker()
	id1, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()
	assert.Equal(t, 2, b.Subscribers())

	ev := Event{Kind: KindTodoAdded, User: "alice", At: time.Now()}
	require.NoError(t, b.Notify(context.Background(), ev))
	assert.Equal(t, ev, <-ch1)
	assert.Equal(t, ev, <-ch2)

	b.Unsubscribe(id1)
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, b.Subscribers())

	b.Unsubscribe(id1)
}

func TestBrokerDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroker()
	_, ch := b.Subscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, b.Notify(context.Background(), Event{Kind: KindTodoAdded}))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestBrokerCloseEndsSubscriptions(t *testing.T) {
	b := NewBroker()
	id, ch := b.Subscribe()

	b.Close()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Subscribers())

	b.Unsubscribe(id)
	b.Close()

	_, late := b.Subscribe()
	_, open = <-late
	assert.False(t, open)
	assert.Equal(t, 0, b.Subscribers())
	require.NoError(t, b.Notify(context.Background(), Event{Kind: KindTodoAdded}))
}

func TestAdminLoginBody(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	body := adminLoginBody(Event{Kind: KindAdminLogin, User: "root", At: at})
	assert.True(t, strings.Contains(body, `"root"`))
	assert.True(t, strings.Contains(body, "01 May 2024"))
}
