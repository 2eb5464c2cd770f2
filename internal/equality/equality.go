// Package equality exercises the identity, structural and custom equality
// contracts of the person models.
package equality

import (
	"errors"
	"fmt"
)

// ErrContractViolation is returned by CheckContract when Equal and Hash disagree.
var ErrContractViolation = errors.New("equality contract violated")

// Same reports whether a and b point at the same value.
func Same[T any](a, b *T) bool {
	return a == b
}

// Equaler is implemented by types with hand-written equality.
type Equaler[T any] interface {
	Equal(other T) bool
}

// Hasher is an Equaler whose Hash agrees with Equal.
type Hasher[T any] interface {
	Equaler[T]
	Hash() uint64
}

// CheckContract verifies that Equal is symmetric for a and b and that equal
// values hash alike.
func CheckContract[T Hasher[T]](a, b T) error {
	ab, ba := a.Equal(b), b.Equal(a)
	if ab != ba {
		return fmt.Errorf("%w: Equal is not symmetric (%v vs %v)", ErrContractViolation, ab, ba)
	}
	if ab && a.Hash() != b.Hash() {
		return fmt.Errorf("%w: equal values hash to %d and %d", ErrContractViolation, a.Hash(), b.Hash())
	}
	if !a.Equal(a) || !b.Equal(b) {
		return fmt.Errorf("%w: Equal is not reflexive", ErrContractViolation)
	}
	return nil
}
