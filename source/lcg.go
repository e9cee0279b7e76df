package source

import (
	"math/bits"

	"github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/simerr"
)

// LCG is a linear congruential generator:
//
//	x ← (a·x + c) mod m,  u = x/m
//
// The product a·x is computed in 128 bits so any uint64 parameters are
// exact.
type LCG struct {
	a, c, m uint64
	x       uint64
}

// LCGParams is a named parameter set for an LCG.
type LCGParams struct {
	A, C, M uint64
}

// Well-known parameter sets.
var (
	// MINSTD is the Park-Miller minimal standard multiplicative generator.
	MINSTD = LCGParams{A: 16807, C: 0, M: 1<<31 - 1}
	// NumericalRecipes is the 32-bit generator from Numerical Recipes.
	NumericalRecipes = LCGParams{A: 1664525, C: 1013904223, M: 1 << 32}
	// Textbook is the small classroom example with period 7.
	Textbook = LCGParams{A: 5, C: 3, M: 7}
)

// Presets maps preset names to their parameters.
var Presets = map[string]LCGParams{
	"minstd":      MINSTD,
	"park-miller": MINSTD,
	"numrecipes":  NumericalRecipes,
	"nr32":        NumericalRecipes,
	"textbook":    Textbook,
}

// Preset returns the parameter set registered under name.
func Preset(name string) (LCGParams, bool) {
	p, ok := Presets[name]
	return p, ok
}

// New builds an LCG with these parameters.
func (p LCGParams) New(seed uint64) (*LCG, error) {
	return NewLCG(seed, p.A, p.C, p.M)
}

// NewLCG validates the parameters and returns a generator seeded with seed.
// The seed is reduced mod m, which leaves the produced stream unchanged.
func NewLCG(seed, a, c, m uint64) (*LCG, error) {
	const op = "source.NewLCG"
	if m <= 1 {
		return nil, simerr.Configf(op, "m", "must be > 1, got %d", m)
	}
	if a == 0 {
		return nil, simerr.Configf(op, "a", "must be positive")
	}
	x := seed % m
	if c == 0 && x == 0 {
		// a multiplicative generator never leaves zero
		return nil, simerr.Configf(op, "seed", "must not be 0 mod m when c = 0")
	}
	return &LCG{a: a, c: c, m: m, x: x}, nil
}

// Next advances the state and returns x/m.
func (g *LCG) Next() float64 {
	hi, lo := bits.Mul64(g.a, g.x)
	var carry uint64
	lo, carry = bits.Add64(lo, g.c, 0)
	hi += carry
	g.x = bits.Rem64(hi, lo, g.m)

	u := float64(g.x) / float64(g.m)
	if u >= 1 {
		// only reachable when m exceeds float64 precision
		u = math.BelowOne
	}
	return u
}

// Modulus returns m.
func (g *LCG) Modulus() uint64 {
	return g.m
}
