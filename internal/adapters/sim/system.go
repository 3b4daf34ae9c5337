package sim

import (
	"sync"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// SystemEventSource is a simulated session/power/display notification
// source.
type SystemEventSource struct {
	mu       sync.RWMutex
	running  bool
	observer adapters.SystemObserver
}

// NewSystemEventSource creates a stopped simulated source.
func NewSystemEventSource() *SystemEventSource {
	return &SystemEventSource{}
}

// Start begins delivering injected events.
func (s *SystemEventSource) Start() error {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	return nil
}

// Stop halts delivery.
func (s *SystemEventSource) Stop() error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return nil
}

// Watch registers the observer receiving system notifications.
func (s *SystemEventSource) Watch(observer adapters.SystemObserver) {
	s.mu.Lock()
	s.observer = observer
	s.mu.Unlock()
}

// Running reports whether the source is delivering events.
func (s *SystemEventSource) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Emit injects a system event. Events are dropped while stopped.
func (s *SystemEventSource) Emit(event types.SystemEvent) {
	s.mu.RLock()
	running := s.running
	observer := s.observer
	s.mu.RUnlock()
	if running && observer != nil {
		observer.SystemEvent(event)
	}
}
