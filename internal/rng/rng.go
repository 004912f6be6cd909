// Package rng provides an injectable randomness source, per design note
// §9, used by room-code generation so tests can pin the sequence.
package rng

import "math/rand"

// Source is the seam the room directory draws room-code characters from.
type Source interface {
	Intn(n int) int
}

// Real wraps the top-level math/rand functions behind the Source
// interface, seeded from the runtime's default source.
type Real struct{}

func (Real) Intn(n int) int { return rand.Intn(n) }
