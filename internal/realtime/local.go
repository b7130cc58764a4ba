package realtime

import (
	"context"
	"sync"
)

// LocalBroadcaster fans out within one process. Slow subscribers drop messages.
type LocalBroadcaster struct {
	mu   sync.Mutex
	subs map[string]map[*localSubscription]struct{}
}

func NewLocalBroadcaster() *LocalBroadcaster {
	return &LocalBroadcaster{subs: map[string]map[*localSubscription]struct{}{}}
}

func (b *LocalBroadcaster) Publish(_ context.Context, channel string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs[channel] {
		select {
		case s.out <- payload:
		default:
		}
	}
	return nil
}

func (b *LocalBroadcaster) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	s := &localSubscription{b: b, channel: channel, out: make(chan []byte, 16)}

	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = map[*localSubscription]struct{}{}
	}
	b.subs[channel][s] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()
	return s, nil
}

type localSubscription struct {
	b       *LocalBroadcaster
	channel string
	out     chan []byte
	once    sync.Once
}

func (s *localSubscription) Messages() <-chan []byte { return s.out }

func (s *localSubscription) Close() error {
	s.once.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs[s.channel], s)
		close(s.out)
		s.b.mu.Unlock()
	})
	return nil
}
