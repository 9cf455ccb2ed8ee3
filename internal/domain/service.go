package domain

import (
	"context"
	"errors"
	"log"
	"math"
	"sync/atomic"
	"time"
)

var (
	// ErrNoData indicates a partition holds no records.
	ErrNoData = errors.New("no data available")
	// ErrNoPeriods indicates the archived set holds no period labels.
	ErrNoPeriods = errors.New("no archive periods found")
	// ErrPeriodNotFound is returned for an unknown archive period.
	ErrPeriodNotFound = errors.New("archive period not found")
	// ErrTeamNotFound is returned for a team with no current records.
	ErrTeamNotFound = errors.New("team not found")
)

// Default truncation for entrant leaderboards.
const (
	IndividualLimit = 10
	CombinedLimit   = 20
)

// Source is the upstream tabular data collaborator.
type Source interface {
	Read(ctx context.Context) ([]Row, error)
	Invalidate()
}

// RefreshNotifier is told about every manual refresh.
type RefreshNotifier interface {
	NotifyRefresh(ctx context.Context, refresh Refresh) error
}

// Refresh describes the snapshot loaded by a manual refresh.
type Refresh struct {
	At       time.Time
	Accepted int
	Rejected int
	Current  int
	Archived int
	Warning  string
}

// Metrics receives snapshot and refresh outcomes.
type Metrics interface {
	RecordSnapshot(accepted, rejected, current, archived int)
	RecordSourceError()
	RecordRefresh()
}

type noopMetrics struct{}

func (noopMetrics) RecordSnapshot(int, int, int, int) {}
func (noopMetrics) RecordSourceError()                {}
func (noopMetrics) RecordRefresh()                    {}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the logger used to report source failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithNotifier registers a refresh notifier.
func WithNotifier(n RefreshNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithMetrics registers a metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithChallengeEnd sets the date the days-left figure counts down to.
func WithChallengeEnd(end time.Time) Option {
	return func(s *Service) {
		s.challengeEnd = end
	}
}

// Service loads snapshots from the source and hands them to the engine.
type Service struct {
	source       Source
	static       atomic.Pointer[StaticRosters]
	notifier     RefreshNotifier
	metrics      Metrics
	challengeEnd time.Time
	logger       *log.Logger
	now          func() time.Time
}

// NewService constructs a Service.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:  source,
		metrics: noopMetrics{},
		logger:  log.New(log.Writer(), "[leaderboard] ", log.LstdFlags),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetStaticRosters replaces the configured fallback rosters.
func (s *Service) SetStaticRosters(r StaticRosters) {
	s.static.Store(&r)
}

func (s *Service) staticRosters() StaticRosters {
	if r := s.static.Load(); r != nil {
		return *r
	}
	return nil
}

// Snapshot reads the source once and builds an immutable snapshot. A read
// failure is not returned: the snapshot is empty and carries a warning.
func (s *Service) Snapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{FetchedAt: s.now(), static: s.staticRosters()}

	rows, err := s.source.Read(ctx)
	if err != nil {
		s.logger.Printf("source read failed: %v", err)
		s.metrics.RecordSourceError()
		snap.Warning = "failed to load data: " + err.Error()
		rows = nil
	}

	normalized := Normalize(rows)
	snap.Rejected = normalized.Rejected
	snap.Current, snap.Archived = Partition(normalized.Records)
	snap.membership = BuildMembership(snap.Current)
	if !s.challengeEnd.IsZero() {
		days := DaysLeft(snap.FetchedAt, s.challengeEnd)
		snap.DaysLeft = &days
	}

	s.metrics.RecordSnapshot(len(normalized.Records), normalized.Rejected, len(snap.Current), len(snap.Archived))
	return snap
}

// Refresh invalidates the source cache, loads a fresh snapshot and notifies
// the registered notifier.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.source.Invalidate()
	s.metrics.RecordRefresh()
	snap := s.Snapshot(ctx)
	if s.notifier == nil {
		return snap, nil
	}
	err := s.notifier.NotifyRefresh(ctx, Refresh{
		At:       snap.FetchedAt,
		Accepted: len(snap.Current) + len(snap.Archived),
		Rejected: snap.Rejected,
		Current:  len(snap.Current),
		Archived: len(snap.Archived),
		Warning:  snap.Warning,
	})
	return snap, err
}

// DaysLeft counts whole days from now until end, rounding down.
func DaysLeft(now, end time.Time) int {
	return int(math.Floor(end.Sub(now).Hours() / 24))
}
