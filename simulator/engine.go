package simulator

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleetsim/fleetsim/errs"
)

// TaskWave is a batch of tasks arriving at a simulated timestamp, the
// stand-in for out-of-scope CSV/log ingestion connectors.
type TaskWave struct {
	At    time.Time
	Tasks []*Task
}

// Simulator is the single-threaded tick loop: advance the clock, drain
// every event batch at or before now atomically, then let the Worker
// observe. There are no locks because there is no concurrent writer — the
// only shared mutable data outside this type is the forecast runner's
// published result (see ForecastRunner).
type Simulator struct {
	State  *State
	Clock  *Clock
	Events *EventQueue
	Worker *Worker

	Step  time.Duration
	Speed float64 // real-seconds-per-sim-step = Step/Speed; 0 = as fast as possible

	waves []TaskWave // remaining scheduled task waves, ordered by At

	running    bool
	isFinished bool
	lastError  string
	eventLog   []string

	// OnStateChange, if set, is called after the event-batch drain and
	// again after the observe pass, both times with the tick's simulated
	// time. The forecast runner uses this to snapshot state at exactly the
	// two points needed for timeline-segment diffing; the live loop leaves
	// it nil.
	OnStateChange func(now time.Time)

	log *logrus.Entry
}

// NewSimulator wires a Simulator around an initial state, starting clock,
// and decision parameters.
func NewSimulator(initial *State, start time.Time, step time.Duration, worker *Worker, waves []TaskWave) *Simulator {
	return &Simulator{
		State:  initial,
		Clock:  NewClock(start),
		Events: NewEventQueue(),
		Worker: worker,
		Step:   step,
		Speed:  1.0,
		waves:  waves,
		log:    logrus.WithField("component", "simulator"),
	}
}

// Start marks the simulator running; it does not tick by itself. The
// caller owns the loop (this just flips the running flag); RunUntil below
// drives it.
func (s *Simulator) Start() { s.running = true }

// Pause stops ticking without resetting any state.
func (s *Simulator) Pause() { s.running = false }

// Resume is an alias for Start, kept distinct for readability at call
// sites: Start, Pause, Resume, Reset, and SetSpeed are the five control
// operations exposed to callers.
func (s *Simulator) Resume() { s.Start() }

// Reset replaces the live state/clock/events with a fresh initial state,
// clearing isFinished and any prior error.
func (s *Simulator) Reset(initial *State, start time.Time) {
	s.State = initial
	s.Clock = NewClock(start)
	s.Events.Clear()
	s.isFinished = false
	s.lastError = ""
	s.Worker.lastCall = time.Time{}
}

// SetSpeed changes the real-seconds-per-sim-step multiplier; 0 means "as
// fast as possible" (no pacing sleep between ticks).
func (s *Simulator) SetSpeed(multiplier float64) error {
	if multiplier < 0 {
		return fmt.Errorf("%w: speed multiplier must be >= 0, got %v", errs.ErrConfigurationInvalid, multiplier)
	}
	s.Speed = multiplier
	return nil
}

func (s *Simulator) IsFinished() bool { return s.isFinished }
func (s *Simulator) IsRunning() bool  { return s.running }

// Tick is one iteration of the loop: advance, drain, observe. A tick
// exception halts the loop (isFinished=true, lastError populated) rather
// than retrying — the tick loop is deterministic given its inputs, so a
// failure here is a programming bug, not a transient condition.
func (s *Simulator) Tick() {
	if s.isFinished {
		return
	}

	tickErr := s.drainAndObserve()
	if tickErr != nil {
		s.fail(tickErr)
		return
	}

	if s.liveModeDone() {
		s.isFinished = true
		s.running = false
	}
}

// drainAndObserve advances the clock, drains every due event batch
// atomically, and runs the Worker's observe pass. A panic from
// EventQueue.Schedule (a successor event scheduled out of order) is
// recovered here and surfaced as a tick error instead of crashing the
// process: fail the tick, log, halt the loop.
func (s *Simulator) drainAndObserve() (tickErr error) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				tickErr = err
			} else {
				tickErr = fmt.Errorf("%w: %v", errs.ErrEventOrdering, r)
			}
		}
	}()

	now := s.Clock.Advance(s.Step)
	s.admitDueWaves(now)

	for {
		next, ok := s.Events.NextTimestamp()
		if !ok || next.After(now) {
			break
		}
		batch, err := s.Events.PopBatch()
		if err != nil {
			return err
		}
		for _, e := range batch {
			if err := e.Apply(s.State, s.Events); err != nil {
				return err
			}
		}
	}
	if s.OnStateChange != nil {
		s.OnStateChange(now)
	}

	s.Worker.Observe(s.State, s.Events, now)
	if s.OnStateChange != nil {
		s.OnStateChange(now)
	}
	return nil
}

// admitDueWaves appends any scheduled task wave whose timestamp has
// arrived to its queue's pending list.
func (s *Simulator) admitDueWaves(now time.Time) {
	var remaining []TaskWave
	for _, w := range s.waves {
		if w.At.After(now) {
			remaining = append(remaining, w)
			continue
		}
		for _, t := range w.Tasks {
			if q := s.State.Queue(t.QueueID); q != nil {
				q.Pending = append(q.Pending, t)
			}
		}
	}
	s.waves = remaining
}

// liveModeDone implements the live-mode termination check: event queue
// empty, no scheduled waves remain, every queue drained.
func (s *Simulator) liveModeDone() bool {
	if _, ok := s.Events.NextTimestamp(); ok {
		return false
	}
	if len(s.waves) > 0 {
		return false
	}
	return s.State.AllDrained()
}

func (s *Simulator) fail(err error) {
	s.isFinished = true
	s.running = false
	s.lastError = err.Error()
	s.eventLog = append(s.eventLog, fmt.Sprintf("tick failed at %s: %s", s.Clock.Now(), err))
	s.log.WithError(err).Error("tick failed, halting simulation")
}

// RunUntil ticks the simulator forward until it finishes or the clock
// reaches until, whichever comes first. The pacing sleep (step/speed) is
// the caller's responsibility for live, wall-clock-paced runs; RunUntil
// itself runs as fast as possible, which is what both CLI `run` and a
// forecast want.
func (s *Simulator) RunUntil(until time.Time) {
	s.Start()
	for s.running && !s.isFinished && s.Clock.Now().Before(until) {
		s.Tick()
	}
}
