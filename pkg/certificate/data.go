// Package certificate renders deterministic PDF attestations for
// registered MIDDS records. Output is a pure function of the input
// snapshot: no wall clock, no randomness, no environment.
package certificate

import (
	"sort"
	"strings"
	"time"

	pstrings "melodie/pkg/platform/strings"
)

// Creator is one credited party on the certificate.
type Creator struct {
	Fullname string
	Email    string
	Roles    []string
	IPI      string
	ISNI     string
}

// RolesJoined renders the role set deduplicated, sorted, and
// comma-joined. Sorting keeps the rendered text independent of input
// order.
func (c Creator) RolesJoined() string {
	roles := pstrings.DedupeAndTrim(c.Roles)
	if len(roles) == 0 {
		return ""
	}
	sort.Strings(roles)
	return strings.Join(roles, ", ")
}

// Data is the immutable snapshot the generator consumes. It is the only
// input to Generate; equal snapshots produce byte-identical PDFs.
type Data struct {
	Title         string
	AssetFilename string
	Creators      []Creator
	Hash          string // hex content address, empty when unhashed
	Timestamp     time.Time
	CurrentPage   uint8
	TotalPages    uint8
}

// Equal reports structural equality of two snapshots.
func (d Data) Equal(other Data) bool {
	if d.Title != other.Title ||
		d.AssetFilename != other.AssetFilename ||
		d.Hash != other.Hash ||
		!d.Timestamp.Equal(other.Timestamp) ||
		d.CurrentPage != other.CurrentPage ||
		d.TotalPages != other.TotalPages ||
		len(d.Creators) != len(other.Creators) {
		return false
	}
	for i := range d.Creators {
		if !creatorEqual(d.Creators[i], other.Creators[i]) {
			return false
		}
	}
	return true
}

func creatorEqual(a, b Creator) bool {
	if a.Fullname != b.Fullname || a.Email != b.Email ||
		a.IPI != b.IPI || a.ISNI != b.ISNI || len(a.Roles) != len(b.Roles) {
		return false
	}
	for i := range a.Roles {
		if a.Roles[i] != b.Roles[i] {
			return false
		}
	}
	return true
}
