package engine

import (
	"go.uber.org/zap"
)

// Source says which kind of stimulus requested a mode change
type Source int

const (
	SourceScroll Source = iota
	SourceTimer
)

// String returns the source name
func (s Source) String() string {
	if s == SourceTimer {
		return "timer"
	}
	return "scroll"
}

// ModeEvent is published on every mode change
type ModeEvent struct {
	From   Mode
	To     Mode
	Label  string
	Source Source
}

// ModeListener receives mode changes
type ModeListener func(ModeEvent)

// Controller owns a scene's mode. Scroll requests always win and the latest
// one is kept. A timer request that arrives while a scroll-driven transition
// is still inside its transition window is dropped, so a delayed callback can
// never undo what the reader just scrolled to.
type Controller struct {
	mode  Mode
	label string

	// Transition is how long a scroll-driven change shields the mode from timers (seconds)
	Transition float64

	clock       func() float64
	scrollUntil float64
	listeners   []ModeListener
	logger      *zap.Logger
}

// NewController creates a controller in neutral mode. clock returns the
// scene time in seconds.
func NewController(clock func() float64, transition float64, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		mode:       ModeNeutral,
		Transition: transition,
		clock:      clock,
		logger:     logger,
	}
}

// Mode returns the current mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// Label returns the headline label that goes with the current mode
func (c *Controller) Label() string {
	return c.label
}

// Subscribe registers a listener for mode changes
func (c *Controller) Subscribe(fn ModeListener) {
	c.listeners = append(c.listeners, fn)
}

// Busy reports whether a scroll-driven transition is still in progress
func (c *Controller) Busy() bool {
	return c.clock() < c.scrollUntil
}

// Hold shields the mode from timer requests for d seconds, covering the lead-in
// of a scroll-driven transition before the mode itself flips
func (c *Controller) Hold(d float64) {
	c.scrollUntil = max(c.scrollUntil, c.clock()+d)
}

// Request asks for a mode change, optionally with a new label. It returns true
// if the mode or the label changed. Requesting the current mode and label is a
// no-op; an empty label keeps the current one.
func (c *Controller) Request(to Mode, label string, src Source) bool {
	now := c.clock()

	if src == SourceTimer && now < c.scrollUntil {
		c.logger.Debug("timer mode request dropped during scroll transition",
			zap.Stringer("requested", to),
			zap.Stringer("current", c.mode),
		)
		return false
	}
	if label == "" {
		label = c.label
	}
	if to == c.mode && label == c.label {
		return false
	}

	ev := ModeEvent{From: c.mode, To: to, Label: label, Source: src}
	c.mode = to
	c.label = label
	if src == SourceScroll {
		c.scrollUntil = max(c.scrollUntil, now+c.Transition)
	}

	c.logger.Debug("mode changed",
		zap.Stringer("from", ev.From),
		zap.Stringer("to", ev.To),
		zap.Stringer("source", src),
	)
	for _, fn := range c.listeners {
		fn(ev)
	}
	return true
}

// Reset returns to neutral without notifying listeners
func (c *Controller) Reset() {
	c.mode = ModeNeutral
	c.label = ""
	c.scrollUntil = 0
}
