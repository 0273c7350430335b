package engine

import "math/rand"

// Dice is the randomness the engine consumes: coin flips for hits and NPC
// wandering, fractions for damage and picks for neighbour rooms.
type Dice interface {
	Coin() bool
	Fraction() float64 // [0, 1)
	Intn(n int) int    // [0, n)
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, so a seed and a position identify a
// point in a session.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Coin returns true half of the time.
func (r *RNG) Coin() bool {
	r.pos++
	return r.src.Intn(2) == 1
}

// Fraction returns a uniform float in [0, 1).
func (r *RNG) Fraction() float64 {
	r.pos++
	return r.src.Float64()
}

// Intn returns a uniform int in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
