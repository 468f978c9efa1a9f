package pop

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	Rand = rand.New(rand.NewSource(1))

	low := []float64{-2, 0, 10}
	up := []float64{2, 1, 20}
	points := New(50, low, up)

	r, c := points.Dims()
	if r != 50 || c != 3 {
		t.Fatalf("got %vx%v matrix, want 50x3", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := points.At(i, j); v < low[j] || v > up[j] {
				t.Errorf("point %v dim %v = %v outside [%v, %v]", i, j, v, low[j], up[j])
			}
		}
	}
}

func TestBits(t *testing.T) {
	Rand = rand.New(rand.NewSource(1))

	points := Bits(40, 8)
	r, c := points.Dims()
	if r != 40 || c != 8 {
		t.Fatalf("got %vx%v matrix, want 40x8", r, c)
	}

	ones := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			switch points.At(i, j) {
			case 1:
				ones++
			case 0:
			default:
				t.Fatalf("entry (%v,%v) = %v is not a bit", i, j, points.At(i, j))
			}
		}
	}
	if ones == 0 || ones == r*c {
		t.Errorf("bit matrix is degenerate: %v ones of %v entries", ones, r*c)
	}
}

func TestNewConstr(t *testing.T) {
	Rand = rand.New(rand.NewSource(1))

	// feasible region: x0 + x1 <= 1 inside the unit box
	lb := []float64{0, 0}
	ub := []float64{1, 1}
	A := mat.NewDense(1, 2, []float64{1, 1})
	low := mat.NewDense(1, 1, []float64{0})
	up := mat.NewDense(1, 1, []float64{1})

	points, nbad, _ := NewConstr(20, 10000, lb, ub, low, A, up)
	if nbad != 0 {
		t.Fatalf("%v infeasible points for a half-box region", nbad)
	}

	r, _ := points.Dims()
	for i := 0; i < r; i++ {
		p := points.RawRowView(i)
		if sum := p[0] + p[1]; sum > 1 || sum < 0 {
			t.Errorf("point %v violates constraint: x0+x1 = %v", i, sum)
		}
	}
}

func TestNewConstrFallback(t *testing.T) {
	Rand = rand.New(rand.NewSource(1))

	// infeasible region: x0 + x1 in [3, 4] cannot happen in the unit box,
	// so all returned points come from the least-violating queue
	lb := []float64{0, 0}
	ub := []float64{1, 1}
	A := mat.NewDense(1, 2, []float64{1, 1})
	low := mat.NewDense(1, 1, []float64{3})
	up := mat.NewDense(1, 1, []float64{4})

	points, nbad, iter := NewConstr(5, 200, lb, ub, low, A, up)
	if nbad != 5 {
		t.Errorf("expected all 5 points infeasible, got %v", nbad)
	}
	if iter != 200 {
		t.Errorf("expected the full iteration budget to be spent, got %v", iter)
	}
	if r, _ := points.Dims(); r != 5 {
		t.Errorf("expected 5 fallback points, got %v", r)
	}
}
