// Package realtime fans JSON payloads out to subscribers of a named channel.
package realtime

import "context"

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

type Broadcaster interface {
	Publisher
	Subscriber
}

// Subscription delivers messages until Close is called or its context ends.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}
