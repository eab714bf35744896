// Package memstore keeps resources, bookings and their history in process memory.
// It backs BOOKING_STORAGE=memory and the command tests.
package memstore

import (
	"maps"
	"sync"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"

	"github.com/google/uuid"
)

type Store struct {
	mu   sync.RWMutex
	data *snapshot
}

type snapshot struct {
	resources    map[uuid.UUID]*resource.Resource
	reservations map[uuid.UUID]*reservation.Reservation
	transitions  map[uuid.UUID][]reservation.Transition
}

func NewStore() *Store {
	return &Store{
		data: &snapshot{
			resources:    make(map[uuid.UUID]*resource.Resource),
			reservations: make(map[uuid.UUID]*reservation.Reservation),
			transitions:  make(map[uuid.UUID][]reservation.Transition),
		},
	}
}

// clone copies the maps. Domain values are replaced on write, never mutated, so sharing them is safe.
func (s *snapshot) clone() *snapshot {
	out := &snapshot{
		resources:    maps.Clone(s.resources),
		reservations: maps.Clone(s.reservations),
		transitions:  make(map[uuid.UUID][]reservation.Transition, len(s.transitions)),
	}
	for id, history := range s.transitions {
		out.transitions[id] = append([]reservation.Transition(nil), history...)
	}
	return out
}
