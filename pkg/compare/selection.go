// Package compare holds the two-slot comparison selection and the stat
// table built from two Pokemon.
package compare

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidSlot is returned for a slot name other than A or B.
var ErrInvalidSlot = errors.New("invalid compare slot")

// SlotName identifies one side of a comparison.
type SlotName string

const (
	SlotA SlotName = "A"
	SlotB SlotName = "B"
)

// ParseSlot accepts "a", "A", "b", or "B".
func ParseSlot(s string) (SlotName, error) {
	switch SlotName(strings.ToUpper(strings.TrimSpace(s))) {
	case SlotA:
		return SlotA, nil
	case SlotB:
		return SlotB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
}

// Slot is one side of the selection. Nil fields mean empty.
type Slot struct {
	ID   *int    `json:"id" yaml:"id"`
	Name *string `json:"name" yaml:"name"`
}

// Empty reports whether nothing is selected.
func (s Slot) Empty() bool {
	return s.ID == nil
}

// NewSlot builds a filled slot.
func NewSlot(id int, name string) Slot {
	return Slot{ID: &id, Name: &name}
}

// Selection is session-only compare state. It is never persisted.
type Selection struct {
	mu sync.RWMutex
	a  Slot
	b  Slot
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Set fills a slot.
func (s *Selection) Set(slot SlotName, value Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch slot {
	case SlotA:
		s.a = value
	case SlotB:
		s.b = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// Clear empties a slot.
func (s *Selection) Clear(slot SlotName) error {
	return s.Set(slot, Slot{})
}

// ClearAll empties both slots.
func (s *Selection) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a, s.b = Slot{}, Slot{}
}

// Slots returns both slots.
func (s *Selection) Slots() (a, b Slot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.a, s.b
}

// Ready reports whether both slots are filled.
func (s *Selection) Ready() bool {
	a, b := s.Slots()
	return !a.Empty() && !b.Empty()
}
