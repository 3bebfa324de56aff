package mun

// Session owns the evolving state of one simulator run.
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
func (s *Session) SelectCountry(name string) bool { return s.Dispatch(SelectCountry{Name: name}) }
func (s *Session) SelectOption(id int) bool { return s.Dispatch(SelectOption{ID: id}) }
func (s *Session) SubmitDecision() bool { return s.Dispatch(SubmitDecision{}) }
func (s *Session) Restart() { s.Dispatch(Restart{}) }

// HasMoreCrises reports whether the result screen leads to another crisis.
func (s *Session) HasMoreCrises() bool {
	return s.machine.HasMoreCrises(s.state)
}
