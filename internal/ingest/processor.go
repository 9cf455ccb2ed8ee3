// Package ingest consumes logged runs from Kafka and appends them to the
// activity log the leaderboard reads from.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded run messages.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message is a decoded run-logged record. Field values keep the text the
// producer sent so the leaderboard's normalizer stays the single validator.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Runner    string
	Team      string
	Distance  string
	Date      string
	Period    string
	Archive   string
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a Handler.
type Processor struct {
	reader  Reader
	handler Handler
	logger  *log.Logger
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:  reader,
		handler: handler,
		logger:  log.New(log.Writer(), "[ingest] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a blocking loop that processes Kafka messages until the context is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Printf("fetch error: %v", err)
			continue
		}

		run, decodeErr := decodeMessage(msg)
		if decodeErr != nil {
			p.logger.Printf("decode error (topic=%s, partition=%d, offset=%d): %v", msg.Topic, msg.Partition, msg.Offset, decodeErr)
			recordDecodeError(msg.Topic)
			// Commit malformed messages to avoid poison-pill loops.
			if commitErr := p.reader.CommitMessages(ctx, msg); commitErr != nil {
				p.logger.Printf("commit error after decode failure: %v", commitErr)
			}
			continue
		}

		if handleErr := p.handler.Handle(ctx, run); handleErr != nil {
			p.logger.Printf("handler error (runner=%s, team=%s): %v", run.Runner, run.Team, handleErr)
			recordHandlerError(run)
			continue
		}

		if commitErr := p.reader.CommitMessages(ctx, msg); commitErr != nil {
			p.logger.Printf("commit error: %v", commitErr)
		} else {
			recordProcessed(run)
		}
	}
}

type runPayload struct {
	Runner   text `json:"runner"`
	Team     text `json:"team"`
	Distance text `json:"distance"`
	Date     text `json:"date"`
	Period   text `json:"period"`
	Archive  text `json:"archive"`
}

func decodeMessage(msg kafka.Message) (Message, error) {
	if len(bytes.TrimSpace(msg.Value)) == 0 {
		return Message{}, errors.New("empty payload")
	}

	var payload runPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return Message{}, err
	}
	if payload.Runner == "" || payload.Team == "" {
		return Message{}, errors.New("runner and team are required")
	}

	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Runner:    string(payload.Runner),
		Team:      string(payload.Team),
		Distance:  string(payload.Distance),
		Date:      string(payload.Date),
		Period:    string(payload.Period),
		Archive:   string(payload.Archive),
	}, nil
}

// text accepts a JSON string, number or boolean and keeps its textual form.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(strings.TrimSpace(s))
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case float64, bool:
		*t = text(string(data))
		return nil
	default:
		return fmt.Errorf("unsupported value %s", data)
	}
}
