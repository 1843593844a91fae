package engine

import "math/rand"

// Rand is the source of uniform draws the simulator consumes. Production
// code uses the shared math/rand source; tests inject a fixed one.
type Rand interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }

// SystemRand returns the default process-wide random source.
func SystemRand() Rand { return systemRand{} }
