package ingest

import (
	"context"

	"example.com/leaderboard/internal/persistence/postgres"
)

type appender interface {
	Append(ctx context.Context, entry postgres.Entry) error
}

// PersistenceHandler writes consumed runs into the activity log.
type PersistenceHandler struct {
	repo appender
}

// NewPersistenceHandler constructs a handler backed by the provided repository.
func NewPersistenceHandler(repo appender) *PersistenceHandler {
	return &PersistenceHandler{repo: repo}
}

// Handle appends the run to the activity_log table.
func (h *PersistenceHandler) Handle(ctx context.Context, msg Message) error {
	return h.repo.Append(ctx, postgres.Entry{
		Runner:     msg.Runner,
		Team:       msg.Team,
		Distance:   msg.Distance,
		Date:       msg.Date,
		Period:     msg.Period,
		Archive:    msg.Archive,
		ReceivedAt: msg.Timestamp,
	})
}
