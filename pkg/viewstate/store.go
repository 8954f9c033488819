// Package viewstate holds what the terminal surfaces show as immutable snapshots. A snapshot is
// never modified, every change produces a new one through a reducer.
package viewstate

import "sync"

type Reducer[S any, A any] func(state S, action A) S

// Store keeps the latest snapshot and notifies subscribers after every dispatched action. Updates
// are applied in dispatch order, the last one wins.
type Store[S any, A any] struct {
	mutex       sync.Mutex
	state       S
	reducer     Reducer[S, A]
	subscribers map[int]func(S)
	nextID      int
}

func NewStore[S any, A any](initial S, reducer Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:       initial,
		reducer:     reducer,
		subscribers: map[int]func(S){},
	}
}

func (s *Store[S, A]) State() S {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Dispatch applies action and returns the new snapshot. Subscribers are called synchronously,
// outside the lock.
func (s *Store[S, A]) Dispatch(action A) S {
	s.mutex.Lock()
	s.state = s.reducer(s.state, action)
	state := s.state
	subscribers := make([]func(S), 0, len(s.subscribers))
	for _, subscriber := range s.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	s.mutex.Unlock()

	for _, subscriber := range subscribers {
		subscriber(state)
	}
	return state
}

// Subscribe registers fn for future snapshots and returns a function that removes it.
func (s *Store[S, A]) Subscribe(fn func(S)) func() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.subscribers, id)
	}
}
