package ecs

import "math/bits"

// MaxTraitSlots is the widest trait ceiling a TraitMask can represent.
const MaxTraitSlots = 64

// TraitMask records trait membership, one bit per registry slot.
type TraitMask uint64

// Set enables the bit for slot.
func (m *TraitMask) Set(slot int) {
	*m |= TraitMask(1) << uint(slot)
}

// Unset disables the bit for slot.
func (m *TraitMask) Unset(slot int) {
	*m &^= TraitMask(1) << uint(slot)
}

// Has checks whether the bit for slot is set.
func (m TraitMask) Has(slot int) bool {
	if slot < 0 || slot >= MaxTraitSlots {
		return false
	}
	return m&(TraitMask(1)<<uint(slot)) != 0
}

// Contains checks if every bit in sub is also set in m.
func (m TraitMask) Contains(sub TraitMask) bool {
	return m&sub == sub
}

// Count returns the number of set bits.
func (m TraitMask) Count() int {
	return bits.OnesCount64(uint64(m))
}
