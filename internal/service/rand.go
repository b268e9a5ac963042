package service

import "math/rand"

// RandomSource picks draw numbers. It is injected so tests can supply a
// deterministic sequence.
type RandomSource interface {
	// Intn returns a value in [0, n). n is always >= 1.
	Intn(n int) int
}

type systemRandom struct{}

func (systemRandom) Intn(n int) int {
	return rand.Intn(n)
}

// SystemRandom returns the process-wide math/rand source, which is safe for
// concurrent use across games.
func SystemRandom() RandomSource {
	return systemRandom{}
}
