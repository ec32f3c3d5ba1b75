package engine

import "fmt"

// Scope tracks whether execution is inside a named room block.
// Rooms do not nest: there is at most one current room.
type Scope struct {
	inRoom  bool
	current string
}

// Inside reports whether a room is open.
func (s *Scope) Inside() bool {
	return s.inRoom
}

// Current returns the open room's name.
func (s *Scope) Current() (string, bool) {
	return s.current, s.inRoom
}

// Enter opens a room. It fails when a room is already open.
func (s *Scope) Enter(name string) error {
	if s.inRoom {
		return fmt.Errorf("room %s is still open", s.current)
	}
	s.inRoom = true
	s.current = name
	return nil
}

// Close leaves the open room and returns its name.
func (s *Scope) Close() (string, error) {
	if !s.inRoom {
		return "", fmt.Errorf("no room is open")
	}
	name := s.current
	s.inRoom = false
	s.current = ""
	return name, nil
}
