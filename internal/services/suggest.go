package services

import (
	"context"
	"sync"
	"time"
)

// SuggestDebounce is how long location typing must settle before a
// suggestion request is issued.
const SuggestDebounce = 400 * time.Millisecond

// LocationSuggester debounces a stream of location inputs against the
// analysis backend. Each new input supersedes the pending one, and a
// generation guard ensures a slow earlier response is never delivered
// over a newer input: only the result matching the latest input reaches
// the caller.
type LocationSuggester struct {
	analyzer Analyzer
	delay    time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewLocationSuggester(analyzer Analyzer, delay time.Duration) *LocationSuggester {
	if delay <= 0 {
		delay = SuggestDebounce
	}
	return &LocationSuggester{analyzer: analyzer, delay: delay}
}

// Input registers the latest typed text. After the debounce window passes
// without newer input, deliver is called once with the input and its
// suggestions (empty for inputs shorter than 2 characters, which never
// produce a backend call).
func (s *LocationSuggester) Input(text string, deliver func(input string, suggestions []string)) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if !s.isCurrent(gen) {
			return
		}
		suggestions := s.analyzer.SuggestLocations(context.Background(), text)
		// Re-check: the input may have changed while the request was in flight.
		if !s.isCurrent(gen) {
			return
		}
		deliver(text, suggestions)
	})
	s.mu.Unlock()
}

// Stop cancels any pending lookup.
func (s *LocationSuggester) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *LocationSuggester) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}
