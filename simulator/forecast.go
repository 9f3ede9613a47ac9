package simulator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// SegmentKind is the kind of a forecast timeline segment.
type SegmentKind string

const (
	SegmentLogin   SegmentKind = "login"
	SegmentLogout  SegmentKind = "logout"
	SegmentSetup   SegmentKind = "setup"
	SegmentWorking SegmentKind = "working"
)

// Segment is one piece of a forecasted agent timeline.
type Segment struct {
	AgentID string
	Start   time.Time
	End     time.Time
	Kind    SegmentKind
	QueueID string // only meaningful for SegmentWorking
}

// ForecastResult is the published output of a completed forecast run.
type ForecastResult struct {
	Segments []Segment
	ClockAt  time.Time
}

// ForecastRunner owns the single-writer "latest forecast" slot. At most
// one forecast runs at a time: starting a new one cancels whatever is in
// flight before spawning. Grounded on the teacher's use of
// context.Context for cancellable background work in cmd/observe.go.
type ForecastRunner struct {
	Horizon time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc

	latest atomic.Pointer[ForecastResult]
	log    *logrus.Entry
}

// NewForecastRunner returns a runner bounded to the given forecast
// horizon (config.Default uses 8h).
func NewForecastRunner(horizon time.Duration) *ForecastRunner {
	return &ForecastRunner{
		Horizon: horizon,
		log:     logrus.WithField("component", "forecast"),
	}
}

// Latest returns the most recently published result, or nil if none has
// completed yet.
func (r *ForecastRunner) Latest() *ForecastResult {
	return r.latest.Load()
}

// Start deep-clones live's state, clock, event queue, and pending task
// waves on the caller's thread (the live tick thread, since only that
// thread may safely read live's mutable state — cloning never happens on
// the background worker), cancels any in-flight forecast, and hands the
// clone to a new background worker.
func (r *ForecastRunner) Start(live *Simulator) {
	clonedState := live.State.Clone()
	clonedClock := live.Clock.Clone()
	clonedEvents := live.Events.Clone()
	clonedWaves := append([]TaskWave(nil), live.waves...)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	clone := &Simulator{
		State:  clonedState,
		Clock:  clonedClock,
		Events: clonedEvents,
		Worker: NewWorker(live.Worker.DecisionInterval, live.Worker.DecisionHorizon, live.Worker.Bias, live.Worker.Overrides),
		Step:   live.Step,
		Speed:  0,
		waves:  clonedWaves,
		log:    logrus.WithField("component", "forecast-clone"),
	}

	go r.run(ctx, clone)
}

// Cancel stops whatever forecast is in flight without publishing its
// (possibly partial) result.
func (r *ForecastRunner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *ForecastRunner) run(ctx context.Context, sim *Simulator) {
	defer func() {
		// Any panic inside the background forecast is swallowed and the
		// previously published result is retained.
		if rec := recover(); rec != nil {
			r.log.Errorf("forecast run panicked, discarding: %v", rec)
		}
	}()

	start := sim.Clock.Now()
	horizonEnd := start.Add(r.Horizon)

	tracker := newSegmentTracker()
	tracker.observe(sim.State, start)
	sim.OnStateChange = func(now time.Time) { tracker.observe(sim.State, now) }

	sim.Start()
	for sim.running && !sim.isFinished {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !sim.Clock.Now().Before(horizonEnd) {
			break
		}
		sim.Tick()
	}
	tracker.closeAll(sim.Clock.Now())

	select {
	case <-ctx.Done():
		return
	default:
	}

	r.latest.Store(&ForecastResult{Segments: tracker.segments, ClockAt: sim.Clock.Now()})
}

// segmentTracker incrementally builds timeline segments by diffing each
// agent's (kind, queue) pair across successive snapshots.
type segmentTracker struct {
	open     map[string]*Segment
	segments []Segment
}

func newSegmentTracker() *segmentTracker {
	return &segmentTracker{open: map[string]*Segment{}}
}

func segmentKindFor(state AgentState) (SegmentKind, bool) {
	switch state {
	case AgentLoggingIn:
		return SegmentLogin, true
	case AgentLoggingOut:
		return SegmentLogout, true
	case AgentSettingUpQueue:
		return SegmentSetup, true
	case AgentWorking:
		return SegmentWorking, true
	default:
		return "", false
	}
}

func (t *segmentTracker) observe(s *State, now time.Time) {
	for _, a := range s.Agents {
		kind, trackable := segmentKindFor(a.State)
		open := t.open[a.ID]

		if open != nil && (!trackable || open.Kind != kind || open.QueueID != a.CurrentQueue) {
			open.End = now
			t.segments = append(t.segments, *open)
			delete(t.open, a.ID)
			open = nil
		}
		if open == nil && trackable {
			t.open[a.ID] = &Segment{AgentID: a.ID, Start: now, Kind: kind, QueueID: a.CurrentQueue}
		}
	}
}

func (t *segmentTracker) closeAll(now time.Time) {
	for id, open := range t.open {
		open.End = now
		t.segments = append(t.segments, *open)
		delete(t.open, id)
	}
}
