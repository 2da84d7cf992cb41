package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Anchor is a scroll region of the page with crossing callbacks
type Anchor struct {
	// ID names the anchor in logs
	ID string

	// Section is the page section the positions are measured against
	Section string

	// Start and End are position strings ("top center"); an empty End never ends
	Start string
	End   string

	// Scrub smooths progress over this many seconds (0 = immediate)
	Scrub float64

	OnEnter     func()
	OnLeave     func()
	OnEnterBack func()
	OnLeaveBack func()

	// OnProgress receives the position inside [Start, End] as a fraction
	OnProgress func(p float64)
}

type anchorState struct {
	Anchor
	start, end float64
	hasEnd     bool

	pastStart bool
	pastEnd   bool

	target   float64
	progress float64
	removed  bool
}

// ScrollHost tracks the scroll offset and fires anchor callbacks on crossings
type ScrollHost struct {
	page    *Page
	pos     float64
	anchors []*anchorState
	logger  *zap.Logger
}

// NewScrollHost creates a host for a page, starting at offset zero
func NewScrollHost(page *Page, logger *zap.Logger) *ScrollHost {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScrollHost{page: page, logger: logger}
}

// Page returns the page the host scrolls
func (h *ScrollHost) Page() *Page {
	return h.page
}

// Position returns the current scroll offset in pixels
func (h *ScrollHost) Position() float64 {
	return h.pos
}

// Anchors returns the number of registered anchors
func (h *ScrollHost) Anchors() int {
	return len(h.anchors)
}

// Register adds an anchor and returns a func that removes it. If the page is
// already scrolled past the anchor's start its enter callbacks fire at once.
func (h *ScrollHost) Register(a Anchor) (func(), error) {
	st := &anchorState{Anchor: a}
	if err := h.resolve(st); err != nil {
		return nil, fmt.Errorf("register anchor %q: %w", a.ID, err)
	}
	h.anchors = append(h.anchors, st)
	h.sync(st, true)

	return func() { h.remove(st) }, nil
}

func (h *ScrollHost) remove(st *anchorState) {
	st.removed = true
	for i, a := range h.anchors {
		if a == st {
			h.anchors = append(h.anchors[:i], h.anchors[i+1:]...)
			return
		}
	}
}

// Kill removes every anchor without firing callbacks
func (h *ScrollHost) Kill() {
	for _, st := range h.anchors {
		st.removed = true
	}
	h.anchors = nil
}

func (h *ScrollHost) resolve(st *anchorState) error {
	start, err := h.page.Resolve(st.Section, st.Start)
	if err != nil {
		return err
	}
	st.start = start
	st.hasEnd = st.End != ""
	if st.hasEnd {
		end, err := h.page.Resolve(st.Section, st.End)
		if err != nil {
			return err
		}
		st.end = end
	}
	return nil
}

// Refresh recomputes anchor offsets after the page or viewport changed and
// fires callbacks for thresholds that moved across the current offset
func (h *ScrollHost) Refresh() error {
	h.pos = clamp(h.pos, 0, h.page.MaxScroll())
	for _, st := range h.snapshot() {
		if st.removed {
			continue
		}
		if err := h.resolve(st); err != nil {
			return fmt.Errorf("refresh anchor %q: %w", st.ID, err)
		}
		h.sync(st, false)
	}
	return nil
}

// ScrollBy moves the offset by d pixels
func (h *ScrollHost) ScrollBy(d float64) {
	h.ScrollTo(h.pos + d)
}

// ScrollTo moves to an absolute offset (clamped to the page) and fires the
// callbacks of every threshold crossed, in registration order
func (h *ScrollHost) ScrollTo(pos float64) {
	pos = clamp(pos, 0, h.page.MaxScroll())
	if pos == h.pos {
		return
	}
	h.pos = pos
	for _, st := range h.snapshot() {
		if st.removed {
			continue
		}
		h.sync(st, false)
	}
}

// Advance moves scrubbed progress toward its target
func (h *ScrollHost) Advance(dt float64) {
	for _, st := range h.snapshot() {
		if st.removed || st.Scrub <= 0 || st.progress == st.target {
			continue
		}
		k := math.Min(1, dt/st.Scrub)
		st.progress += (st.target - st.progress) * k
		if math.Abs(st.target-st.progress) < 1e-4 {
			st.progress = st.target
		}
		if st.OnProgress != nil {
			st.OnProgress(st.progress)
		}
	}
}

func (h *ScrollHost) snapshot() []*anchorState {
	out := make([]*anchorState, len(h.anchors))
	copy(out, h.anchors)
	return out
}

// sync compares the anchor's recorded side of each threshold with the current
// offset and fires the matching callbacks
func (h *ScrollHost) sync(st *anchorState, initial bool) {
	pastStart := h.pos >= st.start
	pastEnd := st.hasEnd && h.pos >= st.end

	// forward crossings: start then end
	if pastStart && !st.pastStart {
		st.pastStart = true
		h.fire(st, "enter", st.OnEnter)
	}
	if pastEnd && !st.pastEnd {
		st.pastEnd = true
		h.fire(st, "leave", st.OnLeave)
	}
	// backward crossings: end then start
	if !pastEnd && st.pastEnd {
		st.pastEnd = false
		h.fire(st, "enterBack", st.OnEnterBack)
	}
	if !pastStart && st.pastStart {
		st.pastStart = false
		h.fire(st, "leaveBack", st.OnLeaveBack)
	}

	if st.removed {
		return
	}
	h.updateProgress(st, initial)
}

func (h *ScrollHost) updateProgress(st *anchorState, initial bool) {
	var target float64
	switch {
	case st.hasEnd && st.end > st.start:
		target = clamp((h.pos-st.start)/(st.end-st.start), 0, 1)
	case h.pos >= st.start:
		target = 1
	}
	if target == st.target && !initial {
		return
	}
	st.target = target
	if st.Scrub > 0 {
		return
	}
	st.progress = target
	if st.OnProgress != nil {
		st.OnProgress(target)
	}
}

func (h *ScrollHost) fire(st *anchorState, event string, fn func()) {
	h.logger.Debug("scroll trigger",
		zap.String("anchor", st.ID),
		zap.String("event", event),
		zap.Float64("offset", h.pos),
	)
	if fn != nil {
		fn()
	}
}
