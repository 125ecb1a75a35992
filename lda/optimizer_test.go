package lda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestHuangNewtonStep_ZeroGradientAtMLE_GivesSmallStep(t *testing.T) {
	// BDD: when logphat already matches the prior's own Dirichlet expectation,
	// the Newton step should be tiny (the prior is already near-optimal).
	prior := []float64{2, 2, 2}
	logphat := dirichletExpectationVector(prior)
	delta := huangNewtonStep(prior, logphat, 1)
	for _, d := range delta {
		assert.InDelta(t, 0, d, 1e-6)
	}
}

func TestOptimizeAlpha_RejectsStepThatWouldGoNonpositive(t *testing.T) {
	m := newTestModel(t, 2, 4)
	m.alpha = []float64{0.001, 0.001}
	before := append([]float64(nil), m.alpha...)

	gamma := mat.NewDense(1, 2, []float64{1000, 0.0001})
	m.OptimizeAlpha(gamma, 1.0)

	// Either the step was accepted (alpha stayed positive) or rejected
	// (alpha unchanged) — it must never go non-positive.
	for i, a := range m.alpha {
		assert.Greater(t, a, 0.0)
		_ = before[i]
	}
}

func TestOptimizeEta_RejectsFullMatrixEta(t *testing.T) {
	m := newTestModel(t, 2, 2)
	m.eta = FullEta(mat.NewDense(2, 2, nil))
	err := m.OptimizeEta(mat.NewDense(2, 2, []float64{1, 1, 1, 1}), 1.0)
	assert.ErrorAs(t, err, new(*ConfigurationError))
}

func TestOptimizeEta_AcceptsScalarEtaAndConvertsToVector(t *testing.T) {
	m := newTestModel(t, 2, 3)
	m.eta = ScalarEta(0.5)
	lambda := mat.NewDense(2, 3, []float64{1, 2, 3, 3, 2, 1})

	err := m.OptimizeEta(lambda, 0.5)
	require.NoError(t, err)
	assert.Equal(t, EtaPerTopic, m.eta.Kind)
	assert.Len(t, m.eta.Vector, 2)
}

func TestAcceptsStep_RejectsWhenAnyComponentGoesNonpositive(t *testing.T) {
	assert.False(t, acceptsStep([]float64{0.1, 0.1}, []float64{-1, 0}, 1))
	assert.True(t, acceptsStep([]float64{1, 1}, []float64{1, 1}, 1))
}
