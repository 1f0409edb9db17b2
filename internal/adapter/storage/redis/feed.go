package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// feedEnvelope is the pub/sub wire format shared by every API instance.
type feedEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// FeedPublisher implements ports.FeedPublisher over Redis pub/sub so that
// subscribers connected to any instance see every donation.
type FeedPublisher struct {
	client  goredis.UniversalClient
	channel string
}

// NewFeedPublisher creates a publisher on channel.
func NewFeedPublisher(client goredis.UniversalClient, channel string) *FeedPublisher {
	return &FeedPublisher{client: client, channel: channel}
}

// Publish sends one event. No subscriber is not an error.
func (p *FeedPublisher) Publish(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal feed payload: %w", err)
	}
	msg, err := json.Marshal(feedEnvelope{Event: event, Payload: data})
	if err != nil {
		return fmt.Errorf("marshal feed envelope: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, msg).Err(); err != nil {
		return fmt.Errorf("redis feed publish: %w", err)
	}
	return nil
}

// Broadcaster delivers an already-encoded event to local subscribers.
type Broadcaster interface {
	Broadcast(event string, data json.RawMessage)
}

// FeedRelay forwards events from the Redis channel to a local Broadcaster.
type FeedRelay struct {
	client  goredis.UniversalClient
	channel string
	sink    Broadcaster
	log     zerolog.Logger
}

// NewFeedRelay creates a relay from channel into sink.
func NewFeedRelay(client goredis.UniversalClient, channel string, sink Broadcaster, log zerolog.Logger) *FeedRelay {
	return &FeedRelay{client: client, channel: channel, sink: sink, log: log}
}

// Run subscribes and relays until ctx is done. ready, if not nil, is closed
// once the subscription is confirmed.
func (r *FeedRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	if ready != nil {
		close(ready)
	}
	r.log.Info().Str("channel", r.channel).Msg("feed relay subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env feedEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil || env.Event == "" {
				r.log.Warn().Err(err).Str("channel", r.channel).Msg("dropping malformed feed message")
				continue
			}
			r.sink.Broadcast(env.Event, env.Payload)
		}
	}
}
