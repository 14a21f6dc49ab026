package label

// Listener is notified after every dispatched action.
type Listener func(prev, next EditorState, a Action)

// Store owns the current EditorState of one editor. It is not safe for
// concurrent use; a single editor owns and mutates it.
type Store struct {
	state     EditorState
	listeners []Listener
}

// NewStore creates a store holding a copy of the initial state.
// It panics if the initial state is invalid.
func NewStore(initial EditorState) *Store {
	if err := ValidateState(initial); err != nil {
		panic(err)
	}
	return &Store{state: initial.Clone()}
}

// State returns the current state. Callers must not modify it.
func (s *Store) State() EditorState {
	return s.state
}

// Dispatch reduces the action into the current state and notifies listeners
// in subscription order. Invalid actions panic, see [Reduce].
func (s *Store) Dispatch(a Action) {
	prev := s.state
	s.state = Reduce(prev, a)
	for _, l := range s.listeners {
		l(prev, s.state, a)
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		if idx < len(s.listeners) {
			s.listeners[idx] = func(EditorState, EditorState, Action) {}
		}
	}
}
