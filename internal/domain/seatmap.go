package domain

import (
	"fmt"
	"math/bits"
	"sync"
)

// SeatMap is the sole authority over seat occupancy for one showtime. Seats
// are numbered 1..total and tracked as a bitset. Reserve and Release are
// all-or-nothing: every requested seat is checked before any bit is flipped,
// so two overlapping concurrent reservations can never both succeed and a
// failed call never leaves a partial reservation behind.
type SeatMap struct {
	mu    sync.Mutex
	total int
	words []uint64
}

func NewSeatMap(total int) *SeatMap {
	return &SeatMap{
		total: total,
		words: make([]uint64, (total+63)/64),
	}
}

func (m *SeatMap) TotalSeats() int {
	return m.total
}

// Available returns the seat numbers not currently booked, in ascending order.
func (m *SeatMap) Available() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	seats := make([]int, 0, m.total-m.bookedCount())
	for seat := 1; seat <= m.total; seat++ {
		if !m.isBooked(seat) {
			seats = append(seats, seat)
		}
	}

	return seats
}

// Booked returns the seat numbers currently booked, in ascending order.
func (m *SeatMap) Booked() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	seats := make([]int, 0, m.bookedCount())
	for seat := 1; seat <= m.total; seat++ {
		if m.isBooked(seat) {
			seats = append(seats, seat)
		}
	}

	return seats
}

// Reserve marks every seat in seats as booked, or none of them. It fails with
// ErrSeatUnavailable if the set is empty, contains a duplicate, contains a
// seat outside [1, total], or contains a seat that is already booked.
func (m *SeatMap) Reserve(seats []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(seats) == 0 {
		return fmt.Errorf("%w: no seats requested", ErrSeatUnavailable)
	}

	seen := make(map[int]struct{}, len(seats))
	for _, seat := range seats {
		if seat < 1 || seat > m.total {
			return fmt.Errorf("%w: seat %d is out of range", ErrSeatUnavailable, seat)
		}
		if _, ok := seen[seat]; ok {
			return fmt.Errorf("%w: seat %d requested twice", ErrSeatUnavailable, seat)
		}
		if m.isBooked(seat) {
			return fmt.Errorf("%w: seat %d is already booked", ErrSeatUnavailable, seat)
		}
		seen[seat] = struct{}{}
	}

	for _, seat := range seats {
		m.words[(seat-1)/64] |= 1 << uint((seat-1)%64)
	}

	return nil
}

// Release marks every seat in seats as available, or none of them. It fails
// with ErrConflict if any seat is not currently booked; callers releasing the
// seats of a Confirmed booking treat that as an internal consistency fault.
func (m *SeatMap) Release(seats []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, seat := range seats {
		if seat < 1 || seat > m.total || !m.isBooked(seat) {
			return fmt.Errorf("%w: seat %d is not booked", ErrConflict, seat)
		}
	}

	for _, seat := range seats {
		m.words[(seat-1)/64] &^= 1 << uint((seat-1)%64)
	}

	return nil
}

func (m *SeatMap) isBooked(seat int) bool {
	return m.words[(seat-1)/64]&(1<<uint((seat-1)%64)) != 0
}

func (m *SeatMap) bookedCount() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}

	return n
}
