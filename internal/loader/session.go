package loader

import (
	"context"
	"sync"
)

// Outcome is the end of one asynchronous load.
type Outcome struct {
	Source string
	Result *Result
	Err    error
}

// Session runs loads in the background and hands results to a single consumer, typically the
// render loop, which must own the displayed model. Only the newest request's outcome is
// delivered; a reload started while another is in flight supersedes it.
type Session struct {
	mu      sync.Mutex
	loader  Loader
	gen     uint64
	pending bool
	cancel  context.CancelFunc
	out     chan genOutcome
}

type genOutcome struct {
	gen uint64
	Outcome
}

// NewSession returns a session that loads with l. l is copied; use SetSource to change it.
func NewSession(l Loader) *Session {
	return &Session{loader: l, out: make(chan genOutcome, 4)}
}

// Source returns the configured source.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.Source
}

// SetSource changes the source used by later requests.
func (s *Session) SetSource(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loader.Source = src
}

// Request starts a load. Safe to call from any goroutine.
func (s *Session) Request(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	l := s.loader
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.pending = true
	s.mu.Unlock()

	go func() {
		defer cancel()
		res, err := l.Load(ctx)
		select {
		case s.out <- genOutcome{gen: gen, Outcome: Outcome{Source: l.Source, Result: res, Err: err}}:
		case <-ctx.Done():
			// superseded or closed; nobody wants this outcome
		}
	}()
}

// Pending reports whether a requested load has not been delivered yet.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Poll returns the newest finished outcome without blocking. ok is false when nothing
// current has finished. Superseded outcomes are discarded.
func (s *Session) Poll() (o Outcome, ok bool) {
	for {
		select {
		case g := <-s.out:
			s.mu.Lock()
			current := g.gen == s.gen
			if current {
				s.pending = false
			}
			s.mu.Unlock()
			if current {
				return g.Outcome, true
			}
		default:
			return Outcome{}, false
		}
	}
}

// Wait blocks until the current request is delivered or ctx is done.
func (s *Session) Wait(ctx context.Context) (Outcome, error) {
	for {
		select {
		case g := <-s.out:
			s.mu.Lock()
			current := g.gen == s.gen
			if current {
				s.pending = false
			}
			s.mu.Unlock()
			if current {
				return g.Outcome, nil
			}
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}
}

// Close cancels any load in flight. Nothing is pending afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.pending = false
}
