package lda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestDirichletExpectationVector_SymmetricInputGivesEqualComponents(t *testing.T) {
	// BDD: a symmetric Dirichlet parameter vector has a symmetric expectation.
	x := []float64{2, 2, 2, 2}
	got := dirichletExpectationVector(x)
	for i := 1; i < len(got); i++ {
		assert.InDelta(t, got[0], got[i], 1e-12)
	}
}

func TestDirichletExpectationVector_LargerComponentHasLargerExpectation(t *testing.T) {
	got := dirichletExpectationVector([]float64{1, 10})
	assert.Greater(t, got[1], got[0])
}

func TestDirichletExpectationMatrix_MatchesRowwiseVector(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	x := mat.NewDense(2, 3, nil)
	for i, r := range rows {
		x.SetRow(i, r)
	}
	got := dirichletExpectationMatrix(x)
	for i, r := range rows {
		want := dirichletExpectationVector(r)
		for j := range want {
			assert.InDelta(t, want[j], got.At(i, j), 1e-12)
		}
	}
}

func TestTrigamma_MatchesKnownRecurrence(t *testing.T) {
	// BDD: trigamma must satisfy psi'(x) = psi'(x+1) + 1/x^2 for any x.
	for _, x := range []float64{0.5, 1, 2.5, 10} {
		lhs := trigamma(x)
		rhs := trigamma(x+1) + 1/(x*x)
		assert.InDelta(t, lhs, rhs, 1e-9)
	}
}

func TestTrigamma_IsPositiveAndDecreasing(t *testing.T) {
	prev := math.Inf(1)
	for _, x := range []float64{0.1, 1, 5, 20} {
		v := trigamma(x)
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, prev)
		prev = v
	}
}

func TestLgamma_MatchesStdlibMagnitude(t *testing.T) {
	got := lgamma(5)
	want := math.Log(24) // Gamma(5) = 4! = 24
	assert.InDelta(t, want, got, 1e-9)
}

func TestLogSumExp_ReducesToMaxForWidelySeparatedValues(t *testing.T) {
	got := logSumExp([]float64{0, 100})
	assert.InDelta(t, 100, got, 1e-6)
}
