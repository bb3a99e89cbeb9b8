package store

import "sync"

// Store membungkus State dan menerapkan action secara berurutan. Pembaca mendapat
// snapshot yang tidak akan berubah.
type Store struct {
	mu    sync.RWMutex
	state State
}

func New(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = a.Reduce(s.state)
	return s.state
}

// Update membaca state terbaru dan menghasilkan action di bawah lock yang sama,
// supaya cek-lalu-tulis (mis. upsert absensi) tidak balapan dengan request lain.
// Jika fn mengembalikan error, state tidak berubah.
func (s *Store) Update(fn func(State) (Action, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	if a != nil {
		s.state = a.Reduce(s.state)
	}
	return s.state, nil
}
