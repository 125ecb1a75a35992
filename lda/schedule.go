package lda

import "math"

// rho computes the stochastic-gradient step size ρ_t = (offset + updatesSoFar) ^ (-decay)
// (Hoffman et al. 2010, eq. 14). Update passes the pass index plus the model's
// numUpdates divided by the chunk size; Update itself resets numUpdates at the
// start of each bound-iteration beyond the first, so repeated bound-iterations
// (maxBoundIterations > 1) see the same ρ_t trajectory.
func rho(offset, decay, updatesSoFar float64) float64 {
	return math.Pow(offset+updatesSoFar, -decay)
}
