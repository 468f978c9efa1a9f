// Package bounds provides box constraints for particle positions.
// Positions that wander outside the box are clipped back onto its
// surface; excursions are corrected silently, never reported as errors.
package bounds

import (
	"fmt"
	"math"

	"github.com/abougouffa/pyswarms"
)

// Box holds per-dimension lower and upper limits.  It is immutable once
// constructed; New copies its arguments.
type Box struct {
	low []float64
	up  []float64
}

// New validates and builds a Box.  It fails with pyswarms.ErrConfig if
// low and up differ in length or any low[i] >= up[i].
func New(low, up []float64) (*Box, error) {
	if len(low) != len(up) {
		return nil, fmt.Errorf("%w: bounds length mismatch %v != %v", pyswarms.ErrConfig, len(low), len(up))
	}
	for i := range low {
		if low[i] >= up[i] {
			return nil, fmt.Errorf("%w: lower bound %v >= upper bound %v at dimension %v", pyswarms.ErrConfig, low[i], up[i], i)
		}
	}
	b := &Box{
		low: make([]float64, len(low)),
		up:  make([]float64, len(up)),
	}
	copy(b.low, low)
	copy(b.up, up)
	return b, nil
}

func (b *Box) Dims() int { return len(b.low) }

// Lower returns a copy of the lower bound vector.
func (b *Box) Lower() []float64 { return append([]float64{}, b.low...) }

// Upper returns a copy of the upper bound vector.
func (b *Box) Upper() []float64 { return append([]float64{}, b.up...) }

// Clip clamps every coordinate of x into [low[i], up[i]] in place and
// returns x.
func (b *Box) Clip(x []float64) []float64 {
	for i := range x {
		x[i] = math.Max(b.low[i], x[i])
		x[i] = math.Min(b.up[i], x[i])
	}
	return x
}

// Contains reports whether every coordinate of x lies inside the box.
func (b *Box) Contains(x []float64) bool {
	for i := range x {
		if x[i] < b.low[i] || x[i] > b.up[i] {
			return false
		}
	}
	return true
}
