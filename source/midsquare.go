package source

import (
	"github.com/nozzle/simstat/simerr"
)

// MaxDigits is the widest middle-square state whose square fits in uint64.
const MaxDigits = 9

// MiddleSquare is von Neumann's middle-square generator with a d-digit
// state. Each step squares the state, left-pads it to 2d digits and keeps
// the middle d digits; the value returned is state/10^d.
//
// Once the middle digits are all zero the stream stays at zero forever.
// This is a property of the method and is left as is.
type MiddleSquare struct {
	d     int
	pow   uint64 // 10^d
	shift uint64 // 10^(d - d/2), divisor dropping the low digits of the square
	x     uint64
}

// NewMiddleSquare returns a generator with a digits-wide state. The seed must
// fit in that many digits.
func NewMiddleSquare(seed uint64, digits int) (*MiddleSquare, error) {
	const op = "source.NewMiddleSquare"
	if digits < 1 || digits > MaxDigits {
		return nil, simerr.Configf(op, "digits", "must be in [1, %d], got %d", MaxDigits, digits)
	}
	pow := pow10(digits)
	if seed >= pow {
		return nil, simerr.Configf(op, "seed", "must have at most %d digits, got %d", digits, seed)
	}
	return &MiddleSquare{
		d:     digits,
		pow:   pow,
		shift: pow10(digits - digits/2),
		x:     seed,
	}, nil
}

// Next advances the state and returns state/10^d.
func (g *MiddleSquare) Next() float64 {
	// The padded square has 2d digits and the middle window starts at
	// offset d/2 from the left, so d - d/2 digits fall off the right.
	sq := g.x * g.x
	g.x = (sq / g.shift) % g.pow
	return float64(g.x) / float64(g.pow)
}

// Digits returns the state width.
func (g *MiddleSquare) Digits() int {
	return g.d
}

func pow10(n int) uint64 {
	p := uint64(1)
	for k := 0; k < n; k++ {
		p *= 10
	}
	return p
}
