package lda

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

// huangNewtonStep computes the diagonal-plus-rank-one Newton step described
// in Huang, "Maximum Likelihood Estimation of Dirichlet Distribution
// Parameters": g is the gradient, q the Hessian diagonal, c its rank-one
// correction, and b the resulting scalar correction term.
func huangNewtonStep(prior []float64, logphat []float64, n float64) []float64 {
	k := len(prior)
	sumPrior := floats.Sum(prior)
	psiSum := mathext.Digamma(sumPrior)

	g := make([]float64, k)
	q := make([]float64, k)
	for i := 0; i < k; i++ {
		g[i] = n * (psiSum - mathext.Digamma(prior[i]) + logphat[i])
		q[i] = -n * trigamma(prior[i])
	}
	c := n * trigamma(sumPrior)

	var sumGQ, sumInvQ float64
	for i := 0; i < k; i++ {
		sumGQ += g[i] / q[i]
		sumInvQ += 1 / q[i]
	}
	b := sumGQ / (1/c + sumInvQ)

	delta := make([]float64, k)
	for i := 0; i < k; i++ {
		delta[i] = -(g[i] - b) / q[i]
	}
	return delta
}

// OptimizeAlpha runs one Newton step on α given the batch's γ, accepting
// the step only if every resulting α_k stays strictly positive (§4.6,
// §8 invariant 3). A rejected step leaves α unchanged and logs a warning.
func (m *Model) OptimizeAlpha(gamma *mat.Dense, rho float64) {
	nrows, _ := gamma.Dims()
	n := float64(nrows)

	logphat := make([]float64, m.K)
	row := make([]float64, m.K)
	for d := 0; d < nrows; d++ {
		mat.Row(row, d, gamma)
		elog := dirichletExpectationVector(row)
		for k := range logphat {
			logphat[k] += elog[k]
		}
	}
	for k := range logphat {
		logphat[k] /= n
	}

	delta := huangNewtonStep(m.alpha, logphat, n)
	if !acceptsStep(m.alpha, delta, rho) {
		m.Log.Warn("updated alpha not positive; Newton step skipped")
		return
	}
	for k := range m.alpha {
		m.alpha[k] += rho * delta[k]
	}
	m.Log.Infof("optimized alpha %v", m.alpha)
}

// OptimizeEta runs one Newton step on η given the current λ, and requires η
// to be scalar or a K×1 column vector (§4.6). A rejected step leaves η
// unchanged and logs a warning.
func (m *Model) OptimizeEta(lambda *mat.Dense, rho float64) error {
	if m.eta.Kind == EtaFull {
		return &ConfigurationError{Reason: "can't optimize eta matrices, only scalar or K×1 eta"}
	}

	_, w := lambda.Dims()
	n := float64(w)
	logphat := make([]float64, m.K)
	row := make([]float64, w)
	for k := 0; k < m.K; k++ {
		mat.Row(row, k, lambda)
		elog := dirichletExpectationVector(row)
		logphat[k] = floats.Sum(elog) / n
	}

	etaVec := m.currentEtaVector()
	delta := huangNewtonStep(etaVec, logphat, n)
	if !acceptsStep(etaVec, delta, rho) {
		m.Log.Warn("updated eta not positive; Newton step skipped")
		return nil
	}
	for k := range etaVec {
		etaVec[k] += rho * delta[k]
	}
	m.setEtaVector(etaVec)
	m.Log.Infof("optimized eta %v", etaVec)
	return nil
}

func acceptsStep(prior, delta []float64, rho float64) bool {
	for i := range prior {
		if rho*delta[i]+prior[i] <= 0 {
			return false
		}
	}
	return true
}

func (m *Model) currentEtaVector() []float64 {
	switch m.eta.Kind {
	case EtaScalar:
		v := make([]float64, m.K)
		for i := range v {
			v[i] = m.eta.Scalar
		}
		return v
	case EtaPerTopic:
		v := make([]float64, m.K)
		copy(v, m.eta.Vector)
		return v
	default:
		panic("lda: eta optimizer requires scalar or K×1 eta")
	}
}

func (m *Model) setEtaVector(v []float64) {
	m.eta = PerTopicEta(v)
	m.state.eta = m.eta
}
