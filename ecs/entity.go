package ecs

import "strconv"

// EntityId is an opaque, monotonically issued entity token. Zero is never issued
// and ids are never recycled, so a stale id can only ever miss.
type EntityId uint64

// NoEntity is the zero EntityId.
const NoEntity EntityId = 0

// Valid reports whether the id could have been issued by a store.
func (e EntityId) Valid() bool {
	return e != NoEntity
}

func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
