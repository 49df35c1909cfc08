package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"skynest/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// bookingEvent is the wire shape published to the broker.
type bookingEvent struct {
	Event      string `json:"event"`
	BookingID  int64  `json:"booking_id"`
	GuestID    int64  `json:"guest_id"`
	RoomID     *int64 `json:"room_id"`
	Status     string `json:"status"`
	FromStatus string `json:"from_status,omitempty"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	At         string `json:"at"`
}

// KafkaPublisher writes booking events to one topic, keyed by booking id
// so per-booking ordering survives partitioning. Delivery is best-effort:
// failures are logged and dropped, never surfaced to the caller.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
		log: log,
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, ev bookingEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("event marshal failed", zap.Error(err))
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.BookingID, 10)),
		Value: payload,
	})
	if err != nil {
		p.log.Error("event publish failed",
			zap.String("event", ev.Event),
			zap.Int64("booking_id", ev.BookingID),
			zap.Error(err))
	}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, b *domain.Booking) {
	p.publish(ctx, bookingEvent{
		Event:     "booking.created",
		BookingID: b.ID,
		GuestID:   b.GuestID,
		RoomID:    b.RoomID,
		Status:    b.Status.String(),
		CheckIn:   b.CheckInDate.Format("2006-01-02"),
		CheckOut:  b.CheckOutDate.Format("2006-01-02"),
		At:        time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *KafkaPublisher) BookingStatusChanged(ctx context.Context, b *domain.Booking, from, to domain.BookingStatus) {
	p.publish(ctx, bookingEvent{
		Event:      "booking.status_changed",
		BookingID:  b.ID,
		GuestID:    b.GuestID,
		RoomID:     b.RoomID,
		Status:     to.String(),
		FromStatus: from.String(),
		CheckIn:    b.CheckInDate.Format("2006-01-02"),
		CheckOut:   b.CheckOutDate.Format("2006-01-02"),
		At:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
