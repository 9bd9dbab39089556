package screen

// Machine holds the current screen and the payload it was entered with
type Machine struct {
	current Screen
	payload Payload
	history []Transition
}

// NewMachine starts at the given screen
func NewMachine(start Screen) *Machine {
	return &Machine{current: start}
}

// Current returns the active screen
func (m *Machine) Current() Screen {
	return m.current
}

// Payload returns the payload the active screen was entered with, if any
func (m *Machine) Payload() Payload {
	return m.payload
}

// Go moves to a new screen; an illegal move leaves the machine unchanged
func (m *Machine) Go(to Screen, payload Payload) error {
	t := Transition{From: m.current, To: to, Payload: payload}
	if err := t.Validate(); err != nil {
		return err
	}
	m.history = append(m.history, t)
	m.current = to
	m.payload = payload
	return nil
}

// Path walks through several screens in order, stopping at the first illegal move
func (m *Machine) Path(steps ...Screen) error {
	for _, s := range steps {
		if s == m.current {
			continue
		}
		if err := m.Go(s, nil); err != nil {
			return err
		}
	}
	return nil
}

// History returns the transitions taken since the machine was created
func (m *Machine) History() []Transition {
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}
