package model

import "github.com/google/uuid"

// BuildSelection is the in-progress assignment of components to slots for
// one build session. At most one component occupies a slot.
type BuildSelection struct {
	SessionID uuid.UUID
	Slots     map[Slot]*Component
}

func NewBuildSelection(sessionID uuid.UUID) *BuildSelection {
	return &BuildSelection{
		SessionID: sessionID,
		Slots:     make(map[Slot]*Component),
	}
}

// Occupant returns the component currently in the slot, nil when empty.
func (s *BuildSelection) Occupant(slot Slot) *Component {
	if s == nil {
		return nil
	}
	return s.Slots[slot]
}

// Occupied reports how many slots currently hold a component.
func (s *BuildSelection) Occupied() int {
	n := 0
	for _, c := range s.Slots {
		if c != nil {
			n++
		}
	}
	return n
}

// TotalCents sums the prices of all occupied slots. Empty slots contribute
// zero; recomputed on every call.
func (s *BuildSelection) TotalCents() int64 {
	var total int64
	for _, c := range s.Slots {
		if c != nil {
			total += c.PriceCents
		}
	}
	return total
}

// Clone returns a shallow per-slot copy so callers can hand the selection
// out without exposing the stored map.
func (s *BuildSelection) Clone() *BuildSelection {
	if s == nil {
		return nil
	}
	out := NewBuildSelection(s.SessionID)
	for slot, c := range s.Slots {
		if c != nil {
			cp := *c
			out.Slots[slot] = &cp
		}
	}
	return out
}

// CartLine is one exported build position, ready for the cart/checkout
// collaborator.
type CartLine struct {
	ComponentID    string
	Name           string
	Slot           Slot
	Quantity       int64
	UnitPriceCents int64
}

// BuildExport flattens a selection into cart lines in AllSlots order.
type BuildExport struct {
	SessionID  uuid.UUID
	Lines      []CartLine
	TotalCents int64
}

type SelectComponentParams struct {
	SessionID   uuid.UUID
	ComponentID string
}
