package realtime

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster uses redis pub/sub, so every API instance sees every update.
type RedisBroadcaster struct {
	rdb *redis.Client
}

func NewRedisBroadcaster(rdb *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.rdb.Publish(ctx, channel, payload).Err()
}

func (b *RedisBroadcaster) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	ps := b.rdb.Subscribe(ctx, channel)
	// wait for the subscription confirmation so early publishes are not lost
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	s := &redisSubscription{ps: ps, out: make(chan []byte, 16)}
	go s.pump(ctx)
	return s, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	out  chan []byte
	once sync.Once
}

func (s *redisSubscription) pump(ctx context.Context) {
	defer close(s.out)
	in := s.ps.Channel()
	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case m, ok := <-in:
			if !ok {
				return
			}
			select {
			case s.out <- []byte(m.Payload):
			case <-ctx.Done():
				_ = s.Close()
				return
			}
		}
	}
}

func (s *redisSubscription) Messages() <-chan []byte { return s.out }

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() { err = s.ps.Close() })
	return err
}
