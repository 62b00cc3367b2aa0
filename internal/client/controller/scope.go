package controller

import "sync"

// scope collects cleanups for the lifetime of one panel.
type scope struct {
	mu       sync.Mutex
	closed   bool
	cleanups []func()
}

func newScope() *scope {
	return &scope{}
}

// onClose registers fn. On an already closed scope fn runs immediately.
func (s *scope) onClose(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// close runs the cleanups in reverse order. Later calls do nothing.
func (s *scope) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	fns := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
