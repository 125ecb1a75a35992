package lda

import "gonum.org/v1/gonum/mat"

// State accumulates sufficient statistics for one E-step window: the
// expected n_{dw}·φ_{dwk} totals contributed by every document absorbed
// since the last reset. It is the only document-derived quantity a remote
// worker needs to send back in distributed mode (§4.9).
type State struct {
	eta     Eta
	sstats  *mat.Dense // K×W, always ≥ 0
	numdocs float64
}

// NewState allocates a zeroed K×W sufficient-statistics accumulator sharing
// the model's η.
func NewState(eta Eta, k, w int) *State {
	return &State{
		eta:    eta,
		sstats: mat.NewDense(k, w, nil),
	}
}

// Dims reports the accumulator's (K, W) shape.
func (s *State) Dims() (int, int) {
	return s.sstats.Dims()
}

// NumDocs reports how many documents have contributed to this accumulator.
func (s *State) NumDocs() float64 {
	return s.numdocs
}

// Reset zeroes sstats and numdocs, preparing the accumulator for the next
// E-accumulation window.
func (s *State) Reset() {
	k, w := s.sstats.Dims()
	s.sstats = mat.NewDense(k, w, nil)
	s.numdocs = 0
}

// Merge sums other's sufficient statistics into self exactly — no
// approximation — so that merging every distributed worker's State yields
// the same result as running the same chunks on a single node. Merge is
// commutative and associative.
func (s *State) Merge(other *State) {
	s.sstats.Add(s.sstats, other.sstats)
	s.numdocs += other.numdocs
}

// Blend performs the stochastic-gradient update from Hoffman et al.,
// algorithm 2 (eq. 14): stretch both self and other to a common document
// count (targetSize, defaulting to self.numdocs) and interpolate by rho.
// rho=0 ignores other entirely; rho=1 replaces self with (rescaled) other.
func (s *State) Blend(rho float64, other *State, targetSize ...float64) {
	target := s.numdocs
	if len(targetSize) > 0 {
		target = targetSize[0]
	}

	selfScale := 1.0
	if s.numdocs != 0 && target != s.numdocs {
		selfScale = target / s.numdocs
	}
	s.sstats.Scale((1-rho)*selfScale, s.sstats)

	otherScale := 1.0
	if other.numdocs != 0 && target != other.numdocs {
		otherScale = target / other.numdocs
	}
	var scaled mat.Dense
	scaled.Scale(rho*otherScale, other.sstats)
	s.sstats.Add(s.sstats, &scaled)

	s.numdocs = target
}

// GetLambda returns λ = η + sstats, a fresh K×W matrix.
func (s *State) GetLambda() *mat.Dense {
	k, w := s.sstats.Dims()
	lambda := mat.NewDense(k, w, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < w; j++ {
			lambda.Set(i, j, s.eta.at(i, j)+s.sstats.At(i, j))
		}
	}
	return lambda
}

// GetElogBeta returns the Dirichlet expectation of λ, row-wise.
func (s *State) GetElogBeta() *mat.Dense {
	return dirichletExpectationMatrix(s.GetLambda())
}
