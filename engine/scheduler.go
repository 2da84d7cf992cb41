package engine

import (
	"sort"

	"go.uber.org/zap"
)

// Step is one timed action of a sequence
type Step struct {
	// At is the offset in seconds from the moment the sequence is scheduled
	At float64

	// Name labels the step in logs
	Name string

	Do func()
}

// clockEpsilon absorbs float drift from summing per-frame deltas
const clockEpsilon = 1e-9

// Handle identifies a scheduled step for cancellation
type Handle uint64

type scheduledStep struct {
	handle Handle
	due    float64
	name   string
	do     func()
}

// Scheduler runs delayed one-shot actions against the scene clock. Steps never
// run before their due time; steps due at the same time run in the order they
// were scheduled.
type Scheduler struct {
	now     float64
	nextID  Handle
	pending []scheduledStep
	logger  *zap.Logger
}

// NewScheduler creates a scheduler starting at time zero
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		pending: make([]scheduledStep, 0, 16),
		logger:  logger,
	}
}

// Now returns the scheduler clock in seconds
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending returns the number of steps waiting to run
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// After schedules fn to run delay seconds from now
func (s *Scheduler) After(delay float64, name string, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	step := scheduledStep{handle: s.nextID, due: s.now + delay, name: name, do: fn}

	// keep pending sorted by due time, stable for equal times
	i := sort.Search(len(s.pending), func(i int) bool { return s.pending[i].due > step.due })
	s.pending = append(s.pending, scheduledStep{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = step
	return step.handle
}

// Sequence schedules an ordered list of steps relative to now
func (s *Scheduler) Sequence(steps ...Step) []Handle {
	handles := make([]Handle, 0, len(steps))
	for _, st := range steps {
		handles = append(handles, s.After(st.At, st.Name, st.Do))
	}
	return handles
}

// Cancel removes a pending step. It returns false if the step already ran.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, st := range s.pending {
		if st.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every pending step
func (s *Scheduler) Clear() {
	if len(s.pending) > 0 {
		s.logger.Debug("clearing pending steps", zap.Int("count", len(s.pending)))
	}
	s.pending = s.pending[:0]
}

// Advance moves the clock forward and runs every step that has come due.
// Steps scheduled by a running step run in the same call if they are already due.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	for len(s.pending) > 0 && s.pending[0].due <= s.now+clockEpsilon {
		st := s.pending[0]
		s.pending = s.pending[1:]
		s.logger.Debug("step", zap.String("name", st.name), zap.Float64("at", st.due))
		if st.do != nil {
			st.do()
		}
	}
}
