// Package daemon provides the long-running progress monitor. It re-reads the
// entry store on an interval and serves today's progress over HTTP so status
// bars and widgets can show it without opening the TUI.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

// Source is the read side of the entry store.
type Source interface {
	LoadEntries() ([]model.Entry, error)
	LoadGoals() (model.GoalConfig, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Logger       *slog.Logger
	Now          func() time.Time
}

// Snapshot is today's progress as served in status and event payloads.
type Snapshot struct {
	At            time.Time `json:"at"`
	Date          string    `json:"date"`
	Entries       int       `json:"entries"`
	Calories      int       `json:"calories"`
	Protein       int       `json:"protein"`
	Carbs         int       `json:"carbs"`
	Fats          int       `json:"fats"`
	DailyGoal     int       `json:"daily_goal"`
	EffectiveGoal float64   `json:"effective_goal"`
	Remaining     float64   `json:"remaining"`
	Percent       float64   `json:"percent"`
	OnTarget      bool      `json:"on_target"`
	WeekCalories  int       `json:"week_calories"`
	WeeklyGoal    int       `json:"weekly_goal"`
	Streak        int       `json:"streak"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Entries      int `json:"entries"`
	Calories     int `json:"calories"`
	WeekCalories int `json:"week_calories"`
	DailyGoal    int `json:"daily_goal"`
}

func (d Delta) isZero() bool {
	return d.Entries == 0 &&
		d.Calories == 0 &&
		d.WeekCalories == 0 &&
		d.DailyGoal == 0
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventProgress = "progress"
	EventRollover = "day_rollover"
)

// Event is emitted whenever the progress snapshot changes.
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
	DataDir         string    `json:"data_dir"`
	Today           Snapshot  `json:"today"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	src Source
	log *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from src.
func New(src Source, cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       logger,
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/today", s.handleToday)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
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

func (s *Service) pollOnce() {
	now := s.cfg.Now()

	snap, err := s.buildSnapshot(now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Error("daemon poll failed", slog.String("error", err.Error()))
		return
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	switch {
	case !prevExists:
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: now, Snapshot: snap}
		publish = true
	case prev.Date != snap.Date:
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventRollover, Timestamp: now, Snapshot: snap}
		publish = true
	default:
		if delta := diffSnapshots(prev, snap); !delta.isZero() {
			s.nextEventID++
			ev = Event{ID: s.nextEventID, Type: EventProgress, Timestamp: now, Snapshot: snap, Delta: delta}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("daemon event", slog.String("type", ev.Type), slog.Int("calories", snap.Calories))
		s.publishEvent(ev)
	}
}

func (s *Service) buildSnapshot(now time.Time) (Snapshot, error) {
	entries, err := s.src.LoadEntries()
	if err != nil {
		return Snapshot{}, fmt.Errorf("load entries: %w", err)
	}
	goals, err := s.src.LoadGoals()
	if err != nil {
		return Snapshot{}, fmt.Errorf("load goals: %w", err)
	}
	return snapshotFor(entries, goals, now), nil
}

func snapshotFor(entries []model.Entry, goals model.GoalConfig, now time.Time) Snapshot {
	today := model.Today(now)
	day := pipeline.DayProgressFor(entries, goals, today, today)
	week := pipeline.WeekProgressFor(entries, goals, today)

	return Snapshot{
		At:            now,
		Date:          today,
		Entries:       len(pipeline.EntriesForDate(entries, today)),
		Calories:      day.Consumed.Calories,
		Protein:       day.Consumed.Protein,
		Carbs:         day.Consumed.Carbs,
		Fats:          day.Consumed.Fats,
		DailyGoal:     goals.DailyCalorieGoal,
		EffectiveGoal: day.EffectiveGoal,
		Remaining:     day.Remaining,
		Percent:       day.Percent,
		OnTarget:      day.OnTarget,
		WeekCalories:  week.Consumed,
		WeeklyGoal:    week.WeeklyGoal,
		Streak:        pipeline.ComputeStreaks(entries, today).Current,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Entries:      curr.Entries - prev.Entries,
		Calories:     curr.Calories - prev.Calories,
		WeekCalories: curr.WeekCalories - prev.WeekCalories,
		DailyGoal:    curr.DailyGoal - prev.DailyGoal,
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
		DataDir:         s.cfg.DataDir,
		Today:           s.snapshot,
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
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleToday(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus().Today)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, events)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
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

	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.cfg.Now(),
		Snapshot:  s.snapshotStatus().Today,
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
