// Package registry persists validated MIDDS records and hands out the
// opaque u64 identifiers other entities reference.
package registry

import (
	"time"

	"melodie/pkg/midds/codec"
)

// Record is one registered MIDDS entity: the kind-framed SCALE payload
// plus its content address and registration metadata.
type Record struct {
	Kind         codec.Kind `json:"kind"`
	ID           uint64     `json:"id"`
	Payload      []byte     `json:"payload"`
	Digest       string     `json:"digest"`
	RegisteredBy string     `json:"registered_by"`
	RegisteredAt time.Time  `json:"registered_at"`
}
