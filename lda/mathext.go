package lda

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

// dirichletExpectationVector returns ψ(x) − ψ(Σx) elementwise, the Dirichlet
// expectation E[log θ] for θ~Dir(x). Precision matches the input slice
// (always float64 here; the source's single/double distinction collapses
// because Go has no float32 vs float64 ambiguity in this call graph).
func dirichletExpectationVector(x []float64) []float64 {
	sum := floats.Sum(x)
	psiSum := mathext.Digamma(sum)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = mathext.Digamma(v) - psiSum
	}
	return out
}

// dirichletExpectationMatrix broadcasts dirichletExpectationVector row-wise
// over a K×W matrix, subtracting ψ(Σ_row x) from every entry in that row.
func dirichletExpectationMatrix(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for k := 0; k < r; k++ {
		mat.Row(row, k, x)
		rowSum := floats.Sum(row)
		psiSum := mathext.Digamma(rowSum)
		for w := 0; w < c; w++ {
			out.Set(k, w, mathext.Digamma(row[w])-psiSum)
		}
	}
	return out
}

// trigamma computes ψ'(x), the derivative of the digamma function, via the
// recurrence ψ'(x) = ψ'(x+1) + 1/x² combined with the asymptotic series for
// large x (Abramowitz & Stegun 6.4.12 / Schneider's Algorithm AS 121). gonum
// does not currently export a trigamma function, so this is the one piece of
// the Dirichlet math utilities built on the standard library instead of the
// example stack; see DESIGN.md.
func trigamma(x float64) float64 {
	var result float64
	for x < 6 {
		result += 1 / (x * x)
		x++
	}
	f := 1 / (x * x)
	result += 0.5*f + (1+f*(1./6.-f*(1./30.-f*(1./42.-f/30.))))/x
	return result
}

// lgamma wraps math.Lgamma, dropping the sign bit: every caller in this
// package only ever evaluates Γ at strictly positive arguments.
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// logSumExp delegates to gonum's numerically stable reduction, matching the
// bound evaluator's `logsumexp(Elogθ_d + Elogβ[:, w])` term.
func logSumExp(s []float64) float64 {
	return floats.LogSumExp(s)
}
