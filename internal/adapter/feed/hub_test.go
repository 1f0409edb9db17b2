package feed

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub(4, zerolog.Nop())

	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()
	assert.Equal(t, 2, hub.SubscriberCount())

	require.NoError(t, hub.Publish(context.Background(), "new-donation", map[string]any{"donor_name": "Alice"}))

	for _, ch := range []<-chan Message{a, b} {
		msg := <-ch
		assert.Equal(t, "new-donation", msg.Event)
		assert.JSONEq(t, `{"donor_name":"Alice"}`, string(msg.Data))
	}
}

func TestHub_DropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub(1, zerolog.Nop())
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Broadcast("new-donation", json.RawMessage(`1`))
	hub.Broadcast("new-donation", json.RawMessage(`2`)) // dropped, does not block

	msg := <-ch
	assert.Equal(t, json.RawMessage(`1`), msg.Data)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected message %s", extra.Data)
	default:
	}
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	hub := NewHub(1, zerolog.Nop())
	ch, cancel := hub.Subscribe()

	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount())

	// publishing with nobody listening is fine
	require.NoError(t, hub.Publish(context.Background(), "new-donation", 1))
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(1, zerolog.Nop())
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Close()
	_, open := <-ch
	assert.False(t, open)

	late, lateCancel := hub.Subscribe()
	defer lateCancel()
	_, open = <-late
	assert.False(t, open)
}

func TestHub_PublishUnencodable(t *testing.T) {
	hub := NewHub(1, zerolog.Nop())
	assert.Error(t, hub.Publish(context.Background(), "new-donation", make(chan int)))
}

func TestHub_ConcurrentSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub(8, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancel := hub.Subscribe()
			cancel()
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast("new-donation", json.RawMessage(`{}`))
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.SubscriberCount())
}
