// Package proving defines the contract with the external proving system.
// The core only assembles witnesses from validated runtime bytes; proof
// generation and verification live outside this module.
package proving

import (
	"context"

	"golang.org/x/crypto/blake2b"
)

// Proof is an opaque proof blob produced by the external prover.
type Proof []byte

// Witness pairs the private payload with its public commitment.
type Witness struct {
	// Payload is the kind-framed SCALE record, private to the prover.
	Payload []byte
	// PublicInput is the blake2b-256 commitment the verifier sees.
	PublicInput []byte
}

// NewWitness assembles a witness from a framed record.
func NewWitness(framed []byte) Witness {
	sum := blake2b.Sum256(framed)
	payload := make([]byte, len(framed))
	copy(payload, framed)
	return Witness{Payload: payload, PublicInput: sum[:]}
}

// Prover is implemented by the external proving system.
type Prover interface {
	Prove(ctx context.Context, circuit string, witness Witness) (Proof, error)
	Verify(ctx context.Context, circuit string, proof Proof, publicInput []byte) (bool, error)
}
