package engine

import (
	"fmt"
	"math/rand"
)

// SpawnPolicy decides where appended particles start
type SpawnPolicy int

const (
	// SpawnInside uses the factory's own placement inside the surface
	SpawnInside SpawnPolicy = iota
	// SpawnOffscreen places particles just past a random edge so they visibly enter
	SpawnOffscreen
)

// offscreenMargin is how far past an edge off-screen spawns are placed
const offscreenMargin = 50.0

type pendingBatch struct {
	count  int
	policy SpawnPolicy
}

// Store is the ordered particle collection of one scene
type Store struct {
	// Particles in creation order; indices are stable until Reset
	Particles []Particle

	// Stacked counts particles resting against a stack wall
	Stacked int

	factory Factory
	bounds  Bounds
	rand    *rand.Rand
	next    int
	pending []pendingBatch
}

// NewStore creates an empty store backed by a factory
func NewStore(factory Factory, rng *rand.Rand) *Store {
	return &Store{
		Particles: make([]Particle, 0, 64),
		factory:   factory,
		rand:      rng,
	}
}

// Len returns the number of live particles
func (s *Store) Len() int {
	return len(s.Particles)
}

// Bounds returns the current surface size
func (s *Store) Bounds() Bounds {
	return s.bounds
}

// Pending returns how many particles are waiting for a non-empty surface
func (s *Store) Pending() int {
	n := 0
	for _, b := range s.pending {
		n += b.count
	}
	return n
}

// Reset drops every particle and restarts index numbering
func (s *Store) Reset() {
	s.Particles = s.Particles[:0]
	s.Stacked = 0
	s.next = 0
	s.pending = s.pending[:0]
}

// Populate resets the store and creates n particles with factory placement
func (s *Store) Populate(n int) error {
	s.Reset()
	return s.Append(n, SpawnInside)
}

// Append adds n particles. Existing particles are left untouched. On an empty
// surface creation is deferred until Resize reports a size and ErrEmptySurface
// is returned.
func (s *Store) Append(n int, policy SpawnPolicy) error {
	if n <= 0 {
		return nil
	}
	if s.bounds.Empty() {
		s.pending = append(s.pending, pendingBatch{count: n, policy: policy})
		return fmt.Errorf("deferring %d particles: %w", n, ErrEmptySurface)
	}

	for i := 0; i < n; i++ {
		p, err := s.factory.Create(s.next, s.bounds)
		if err != nil {
			return fmt.Errorf("create particle %d: %w", s.next, err)
		}
		if policy == SpawnOffscreen {
			p.Pos = s.offscreenPosition()
		}
		s.Particles = append(s.Particles, p)
		s.next++
	}
	return nil
}

// Resize records a new surface size and flushes deferred creation once the
// surface has area. It returns the previous size.
func (s *Store) Resize(b Bounds) (Bounds, error) {
	old := s.bounds
	s.bounds = b
	if b.Empty() || len(s.pending) == 0 {
		return old, nil
	}

	batches := s.pending
	s.pending = nil
	for _, batch := range batches {
		if err := s.Append(batch.count, batch.policy); err != nil {
			return old, err
		}
	}
	return old, nil
}

// offscreenPosition picks a point just outside one of the four edges
func (s *Store) offscreenPosition() Vec2 {
	b := s.bounds
	switch s.rand.Intn(4) {
	case 0: // top
		return Vec2{s.rand.Float64() * b.W, -offscreenMargin}
	case 1: // right
		return Vec2{b.W + offscreenMargin, s.rand.Float64() * b.H}
	case 2: // bottom
		return Vec2{s.rand.Float64() * b.W, b.H + offscreenMargin}
	default: // left
		return Vec2{-offscreenMargin, s.rand.Float64() * b.H}
	}
}
