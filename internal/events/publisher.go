package events

import (
	"context"

	"skynest/internal/domain"
)

// Publisher receives booking lifecycle notifications after the state
// change has committed. Implementations must not block the request path
// on delivery failures.
type Publisher interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	BookingStatusChanged(ctx context.Context, b *domain.Booking, from, to domain.BookingStatus)
}

// Noop drops every event; used when no broker is configured.
type Noop struct{}

func (Noop) BookingCreated(context.Context, *domain.Booking) {}

func (Noop) BookingStatusChanged(context.Context, *domain.Booking, domain.BookingStatus, domain.BookingStatus) {
}

// Fanout delivers each event to every child publisher in order.
type Fanout []Publisher

func (f Fanout) BookingCreated(ctx context.Context, b *domain.Booking) {
	for _, p := range f {
		p.BookingCreated(ctx, b)
	}
}

func (f Fanout) BookingStatusChanged(ctx context.Context, b *domain.Booking, from, to domain.BookingStatus) {
	for _, p := range f {
		p.BookingStatusChanged(ctx, b, from, to)
	}
}
