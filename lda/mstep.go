package lda

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// doMstep absorbs other's accumulated sufficient statistics into the model's
// persistent state at step size rho, resyncs expElogbeta, and — when η is
// being auto-optimized — runs one Newton step on η against the refreshed λ.
// extraPass marks an M-step taken during a pass after the first over the
// same corpus: its documents must not be double-counted in numUpdates, since
// they were already counted on the first pass (§4.8).
func (m *Model) doMstep(rho float64, other *State, extraPass bool) error {
	m.Log.Debug("updating topics")
	previousElogbeta := m.state.GetElogBeta()
	m.state.Blend(rho, other)
	currentElogbeta := m.state.GetElogBeta()
	m.syncState()

	diff := meanAbsDiff(previousElogbeta, currentElogbeta)
	m.Log.Infof("topic diff=%f, rho=%f", diff, rho)

	if m.optimizeEta {
		if err := m.OptimizeEta(m.state.GetLambda(), rho); err != nil {
			return err
		}
	}

	if !extraPass {
		m.numUpdates += other.NumDocs()
	}
	return nil
}

func meanAbsDiff(a, b *mat.Dense) float64 {
	r, c := a.Dims()
	var total float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			total += math.Abs(a.At(i, j) - b.At(i, j))
		}
	}
	return total / float64(r*c)
}
