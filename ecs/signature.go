package ecs

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Signature is an immutable set of component kinds. Entities match a signature
// when every kind in it is attached.
type Signature struct {
	kinds []Kind
	hash  uint64
}

// NewSignature builds a signature from kinds, sorting and de-duplicating them.
func NewSignature(kinds ...Kind) Signature {
	sorted := slices.Clone(kinds)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	buf := make([]byte, 2*len(sorted))
	for i, k := range sorted {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(k))
	}
	return Signature{
		kinds: sorted,
		hash:  xxhash.Sum64(buf),
	}
}

// Kinds returns the kinds in ascending order.
func (s Signature) Kinds() []Kind {
	return slices.Clone(s.kinds)
}

// Len returns the number of kinds.
func (s Signature) Len() int {
	return len(s.kinds)
}

// Contains reports whether kind is part of the signature.
func (s Signature) Contains(kind Kind) bool {
	_, ok := slices.BinarySearch(s.kinds, kind)
	return ok
}

// Hash returns a stable 64-bit hash of the kind set. Signatures with the same
// kinds hash identically regardless of construction order.
func (s Signature) Hash() uint64 {
	return s.hash
}

// Equal reports whether both signatures hold the same kinds.
func (s Signature) Equal(other Signature) bool {
	return s.hash == other.hash && slices.Equal(s.kinds, other.kinds)
}

// Format renders the signature using registered kind names.
func (s Signature) Format(registry *ComponentRegistry) string {
	names := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		names[i] = registry.Name(k)
	}
	return "{" + strings.Join(names, ",") + "}"
}
