// Package daemon provides the long-running background budget monitor service.
package daemon

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	TrendMonths  int
	Now          func() time.Time
}

// Loader returns the current financial data with its analysis computed for asOf.
type Loader func(ctx context.Context, asOf time.Time) (model.FinancialData, error)

// Snapshot is a compact budget state for status/event payloads.
type Snapshot struct {
	At            time.Time `json:"at"`
	Month         string    `json:"month"`
	Incomes       int       `json:"incomes"`
	Expenses      int       `json:"expenses"`
	TotalIncome   float64   `json:"total_income"`
	TotalExpenses float64   `json:"total_expenses"`
	NetIncome     float64   `json:"net_income"`
	SavingsRate   float64   `json:"savings_rate"`
	OverBudget    int       `json:"over_budget"`
	UnderBudget   int       `json:"under_budget"`
	OnTrack       int       `json:"on_track"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Incomes       int     `json:"incomes"`
	Expenses      int     `json:"expenses"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetIncome     float64 `json:"net_income"`
	OverBudget    int     `json:"over_budget"`
}

func (d Delta) isZero() bool {
	return d.Incomes == 0 &&
		d.Expenses == 0 &&
		d.TotalIncome == 0 &&
		d.TotalExpenses == 0 &&
		d.NetIncome == 0 &&
		d.OverBudget == 0
}

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventBudgetDelta = "budget_delta"
)

// Event is emitted whenever the budget snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg  Config
	load Loader
	log  logrus.FieldLogger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	data        model.FinancialData
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, load Loader, log logrus.FieldLogger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.TrendMonths < 1 {
		cfg.TrendMonths = pipeline.DefaultTrendMonths
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		cfg:       cfg,
		load:      load,
		log:       log.WithField("component", "daemon"),
		startedAt: cfg.Now(),
		data:      model.DefaultFinancialData(),
		subs:      make(map[int]chan Event),
	}
}

// Run serves the API and polls the store until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.serve(gctx, srv) })
	g.Go(func() error { return s.watch(gctx) })
	return g.Wait()
}

// serve runs srv and shuts it down gracefully once ctx ends.
func (s *Service) serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watch polls once right away so /v1/status has data, then on every tick.
func (s *Service) watch(ctx context.Context) error {
	s.pollOnce(ctx)

	tick := time.NewTicker(s.cfg.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			s.pollOnce(ctx)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.cfg.Now()
	data, err := s.load(ctx, now)
	if err != nil {
		s.recordFailure(now, err)
		return
	}

	snap := snapshotFromData(data, now)
	ev, changed := s.recordSnapshot(now, snap, data)
	if !changed {
		return
	}
	s.log.WithFields(logrus.Fields{
		"event":      ev.Type,
		"net_income": snap.NetIncome,
	}).Debug("budget changed")
	s.publishEvent(ev)
}

func (s *Service) recordFailure(at time.Time, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = at
	s.pollCount++
	s.mu.Unlock()
	s.log.WithError(err).Warn("poll failed")
}

// recordSnapshot stores snap as the current state. It returns the event to
// publish: a full snapshot on the first poll, a delta when figures moved.
func (s *Service) recordSnapshot(at time.Time, snap Snapshot, data model.FinancialData) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, seen := s.snapshot, s.hasSnapshot
	s.hasSnapshot = true
	s.snapshot = snap
	s.data = data
	s.lastPollAt = at
	s.pollCount++
	s.lastError = ""

	ev := Event{Timestamp: at, Snapshot: snap}
	switch {
	case !seen:
		ev.Type = EventSnapshot
	default:
		ev.Delta = diffSnapshots(prev, snap)
		if ev.Delta.isZero() {
			return Event{}, false
		}
		ev.Type = EventBudgetDelta
	}
	s.nextEventID++
	ev.ID = s.nextEventID
	return ev, true
}

func snapshotFromData(d model.FinancialData, at time.Time) Snapshot {
	a := d.BudgetAnalysis
	counts := pipeline.CountByStatus(a.Recommendations)
	return Snapshot{
		At:            at,
		Month:         pipeline.MonthStart(at).Format(pipeline.MonthLabelLayout),
		Incomes:       len(d.Incomes),
		Expenses:      len(d.Expenses),
		TotalIncome:   a.TotalIncome,
		TotalExpenses: a.TotalExpenses,
		NetIncome:     a.NetIncome,
		SavingsRate:   a.SavingsRate,
		OverBudget:    counts[model.StatusOver],
		UnderBudget:   counts[model.StatusUnder],
		OnTrack:       counts[model.StatusOnTrack],
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Incomes:       curr.Incomes - prev.Incomes,
		Expenses:      curr.Expenses - prev.Expenses,
		TotalIncome:   curr.TotalIncome - prev.TotalIncome,
		TotalExpenses: curr.TotalExpenses - prev.TotalExpenses,
		NetIncome:     curr.NetIncome - prev.NetIncome,
		OverBudget:    curr.OverBudget - prev.OverBudget,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) currentData() model.FinancialData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
