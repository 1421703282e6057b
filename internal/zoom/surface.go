package zoom

import "sync"

// DetachFunc removes a previously installed gesture listener set.
type DetachFunc func()

// AttachFunc installs wheel/drag/pinch listeners on a rendering surface and
// returns the function that removes them again.
type AttachFunc func() DetachFunc

// Surface owns the gesture listener set for exactly one rendering surface.
// Acquire tears down any previous listener set before installing the new one,
// so re-mounting can never leave duplicate handlers behind; Release is
// idempotent and safe to call on teardown paths that may run twice.
type Surface struct {
	mu     sync.Mutex
	detach DetachFunc
}

func (s *Surface) Acquire(attach AttachFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	if attach != nil {
		s.detach = attach()
	}
}

func (s *Surface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

func (s *Surface) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detach != nil
}

// SuppressNativeZoom reports whether the browser's own pinch/wheel page zoom
// must be prevented: exactly while gesture listeners are attached.
func (s *Surface) SuppressNativeZoom() bool {
	return s.Active()
}
