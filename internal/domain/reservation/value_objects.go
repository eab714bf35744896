package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxPurposeLength = 200

type Purpose struct {
	value string
}

func NewPurpose(s string) (Purpose, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Purpose{}, ErrEmptyPurpose
	}
	if len([]rune(t)) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: t}, nil
}

func (p Purpose) String() string { return p.value }

type PartySize struct {
	value int
}

func NewPartySize(n int) (PartySize, error) {
	if n < 1 {
		return PartySize{}, ErrInvalidPartySize
	}
	return PartySize{value: n}, nil
}

func (p PartySize) Int() int { return p.value }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Transition is one immutable entry of a reservation's history.
type Transition struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Action        Action
	From          Status
	To            Status
	ActorID       uuid.UUID
	Reason        string
	At            time.Time
}
