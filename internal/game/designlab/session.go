package designlab

// Session owns the evolving state of one Design Lab run.
type Session struct {
	machine *Machine
	state   State
}

func NewSession(m *Machine) *Session {
	return &Session{machine: m, state: m.Initial()}
}

func (s *Session) State() State { return s.state }
func (s *Session) Machine() *Machine { return s.machine }

// Dispatch applies ev and reports whether the state changed.
func (s *Session) Dispatch(ev Event) bool {
	next, changed := s.machine.Apply(s.state, ev)
	s.state = next
	return changed
}

func (s *Session) Advance() bool { return s.Dispatch(Advance{}) }
func (s *Session) SelectSpecialty(name string) bool { return s.Dispatch(SelectSpecialty{Name: name}) }
func (s *Session) ToggleTool(name string) bool { return s.Dispatch(ToggleTool{Name: name}) }
func (s *Session) SelectStyle(name string) bool { return s.Dispatch(SelectStyle{Name: name}) }
func (s *Session) Tick() bool { return s.Dispatch(Tick{}) }
func (s *Session) Restart() { s.Dispatch(Restart{}) }

func (s *Session) HasMoreChallenges() bool {
	return s.machine.HasMoreChallenges(s.state)
}
