package layout

// Linear-congruential generator constants (classic glibc parameters).
const (
	lcgMultiplier uint64 = 1103515245
	lcgIncrement  uint64 = 12345
	lcgModulus    uint64 = 1 << 31
)

// Rand is a deterministic pseudo-random source backed by a linear
// congruential generator. For a fixed seed it produces an identical
// sequence on every platform, which is what makes seeded layouts
// reproducible bit-for-bit.
//
// Each optimization call owns exactly one Rand; instances are never shared
// across concurrent calls. Rand is not safe for concurrent use.
type Rand struct {
	state uint64
}

// NewRand creates a generator seeded with the given value.
// Any seed is valid; equal seeds yield equal sequences.
func NewRand(seed uint64) *Rand {
	return &Rand{state: seed % lcgModulus}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state = (lcgMultiplier*r.state + lcgIncrement) % lcgModulus
	return float64(r.state) / float64(lcgModulus)
}

// Floats returns the next n values in [0, 1).
func (r *Rand) Floats(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()
	}
	return out
}
