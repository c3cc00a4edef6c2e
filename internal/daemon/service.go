// Package daemon provides the long-running background bank monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"calbank/internal/bank"
	"calbank/internal/model"
	"calbank/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	DailyTarget  float64
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Event types published between polls.
const (
	EventSnapshot        = "snapshot"
	EventCycleReset      = "cycle_reset"
	EventDayAdvanced     = "day_advanced"
	EventPlaisirUnlocked = "plaisir_unlocked"
	EventPlaisirLocked   = "plaisir_locked"
	EventBalanceChanged  = "balance_changed"
)

// Event is emitted whenever the bank state changes between polls.
type Event struct {
	ID        int64              `json:"id"`
	Type      string             `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Snapshot  model.BankSnapshot `json:"snapshot"`
	// BalanceDelta is the banked-total change for balance_changed events.
	BalanceDelta float64 `json:"balance_delta,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time          `json:"started_at"`
	LastPollAt      time.Time          `json:"last_poll_at"`
	PollIntervalSec int                `json:"poll_interval_sec"`
	PollCount       int64              `json:"poll_count"`
	DBPath          string             `json:"db_path"`
	Summary         model.BankSnapshot `json:"summary"`
	LastError       string             `json:"last_error,omitempty"`
	EventCount      int                `json:"event_count"`
	SubscriberCount int                `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    model.BankSnapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 256
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7077"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// pollOnce reopens the store so writes by the CLI or TUI in other
// processes are observed, and the bank's own day-rollover check runs.
func (s *Service) pollOnce() {
	snap, err := s.loadSnapshot()
	now := time.Now()

	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("calbank daemon poll error: %v", err)
		return
	}

	var pending []Event

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		pending = append(pending, Event{Type: EventSnapshot, Snapshot: snap})
	} else {
		pending = diffSnapshots(prev, snap)
	}
	for i := range pending {
		s.nextEventID++
		pending[i].ID = s.nextEventID
		pending[i].Timestamp = now
	}
	s.mu.Unlock()

	for _, ev := range pending {
		s.publishEvent(ev)
	}
}

func (s *Service) loadSnapshot() (model.BankSnapshot, error) {
	st, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return model.BankSnapshot{}, err
	}
	defer func() { _ = st.Close() }()

	b, err := bank.New(st)
	if err != nil {
		return model.BankSnapshot{}, err
	}
	return b.Snapshot(s.cfg.DailyTarget), nil
}

// diffSnapshots turns the state change between two polls into events.
// A cycle reset swallows the other transitions: the balance dropping to
// zero and the day index wrapping are part of the reset, not news.
func diffSnapshots(prev, curr model.BankSnapshot) []Event {
	var events []Event

	if curr.CycleStart != prev.CycleStart {
		events = append(events, Event{Type: EventCycleReset, Snapshot: curr})
		return events
	}

	if curr.DayIndex != prev.DayIndex {
		events = append(events, Event{Type: EventDayAdvanced, Snapshot: curr})
	}
	if curr.CanHavePlaisir && !prev.CanHavePlaisir {
		events = append(events, Event{Type: EventPlaisirUnlocked, Snapshot: curr})
	}
	if !curr.CanHavePlaisir && prev.CanHavePlaisir {
		events = append(events, Event{Type: EventPlaisirLocked, Snapshot: curr})
	}
	if curr.TotalBalance != prev.TotalBalance ||
		curr.TodayConsumed != prev.TodayConsumed ||
		curr.TodayTarget != prev.TodayTarget {
		events = append(events, Event{
			Type:         EventBalanceChanged,
			Snapshot:     curr,
			BalanceDelta: curr.TotalBalance - prev.TotalBalance,
		})
	}

	return events
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

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

// handleEvents returns buffered events, optionally only those after
// the ?since=<id> cursor so pollers can resume where they left off.
func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "bad since cursor", http.StatusBadRequest)
			return
		}
		since = n
	}

	s.mu.RLock()
	events := make([]Event, 0, len(s.events))
	for _, ev := range s.events {
		if ev.ID > since {
			events = append(events, ev)
		}
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
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
