// Package events publishes leaderboard audit events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"example.com/leaderboard/internal/domain"
)

// EventRefreshed is the event_type header value for refresh events.
const EventRefreshed = "leaderboard.refreshed"

type messageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Refreshed is the payload emitted after a manual refresh.
type Refreshed struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Accepted   int       `json:"accepted"`
	Rejected   int       `json:"rejected"`
	Current    int       `json:"current"`
	Archived   int       `json:"archived"`
	Warning    string    `json:"warning,omitempty"`
}

// Publisher writes refresh events to one topic.
type Publisher struct {
	writer messageWriter
}

// NewKafkaPublisher publishes to topic on brokers. Writes are synchronous and
// wait for every in-sync replica.
func NewKafkaPublisher(brokers []string, topic string) *Publisher {
	return NewPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

// NewPublisher wraps an existing writer that is already bound to a topic.
func NewPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NotifyRefresh implements domain.RefreshNotifier.
func (p *Publisher) NotifyRefresh(ctx context.Context, r domain.Refresh) error {
	event := Refreshed{
		EventID:    uuid.NewString(),
		OccurredAt: r.At.UTC(),
		Accepted:   r.Accepted,
		Rejected:   r.Rejected,
		Current:    r.Current,
		Archived:   r.Archived,
		Warning:    r.Warning,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventID),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventRefreshed)},
		},
	})
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
