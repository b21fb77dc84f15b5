package audit

import (
	"context"
	"time"
)

// Sink persists audit events. Implementations must be safe for concurrent
// use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is the append-only front door for audit events. Synchronous by
// default; WithAsyncBuffer decouples emitters from slow sinks, dropping
// events when the buffer is full rather than blocking the request path.
type Publisher struct {
	sink   Sink
	events chan Event
	done   chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous publishing with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.events = make(chan Event, size)
	}
}

func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	if p.events != nil {
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

// Emit records an event, stamping the time when the caller did not. In async
// mode a full buffer drops the event; audit must never stall classification.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.events == nil {
		return p.sink.Append(ctx, event)
	}
	select {
	case p.events <- event:
	default:
	}
	return nil
}

// Close drains any buffered events and stops the async worker. Safe to call
// on a synchronous publisher.
func (p *Publisher) Close() {
	if p.events == nil {
		return
	}
	close(p.events)
	<-p.done
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.events {
		_ = p.sink.Append(context.Background(), event)
	}
}
