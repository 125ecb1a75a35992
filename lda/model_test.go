package lda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_EmptyVocabulary_ReturnsError(t *testing.T) {
	_, err := NewModel(ModelConfig{NumTopics: 2, NumTerms: 0})
	assert.ErrorAs(t, err, new(*EmptyVocabularyError))
}

func TestNewModel_ZeroTopics_ReturnsConfigurationError(t *testing.T) {
	_, err := NewModel(ModelConfig{NumTopics: 0, NumTerms: 5})
	assert.ErrorAs(t, err, new(*ConfigurationError))
}

func TestNewModel_Symmetric_SplitsAlphaEvenly(t *testing.T) {
	m, err := NewModel(ModelConfig{NumTopics: 4, NumTerms: 10, AlphaMode: AlphaSymmetric, Eta: ScalarEta(0.1)})
	require.NoError(t, err)
	for _, a := range m.Alpha() {
		assert.InDelta(t, 0.25, a, 1e-12)
	}
}

func TestNewModel_Asymmetric_IsDecreasingAndNormalized(t *testing.T) {
	m, err := NewModel(ModelConfig{NumTopics: 3, NumTerms: 10, AlphaMode: AlphaAsymmetric, Eta: ScalarEta(0.1)})
	require.NoError(t, err)
	alpha := m.Alpha()
	for i := 1; i < len(alpha); i++ {
		assert.Less(t, alpha[i], alpha[i-1])
	}
	assert.InDelta(t, 1.0, sumSlice(alpha), 1e-9)
}

func TestNewModel_Explicit_BroadcastsSingleValue(t *testing.T) {
	m, err := NewModel(ModelConfig{
		NumTopics: 3, NumTerms: 10,
		AlphaMode: AlphaExplicit, AlphaValue: []float64{0.7},
		Eta: ScalarEta(0.1),
	})
	require.NoError(t, err)
	for _, a := range m.Alpha() {
		assert.Equal(t, 0.7, a)
	}
}

func TestNewModel_Explicit_RejectsMismatchedShape(t *testing.T) {
	_, err := NewModel(ModelConfig{
		NumTopics: 3, NumTerms: 10,
		AlphaMode: AlphaExplicit, AlphaValue: []float64{0.1, 0.2},
		Eta: ScalarEta(0.1),
	})
	assert.Error(t, err)
}

func TestNewModel_OptimizeEtaWithFullMatrix_IsRejected(t *testing.T) {
	_, err := NewModel(ModelConfig{
		NumTopics: 2, NumTerms: 2,
		Eta:         FullEta(nil),
		OptimizeEta: true,
	})
	assert.ErrorAs(t, err, new(*ConfigurationError))
}

func TestNewModel_ExpElogbetaIsSyncedAtConstruction(t *testing.T) {
	m, err := NewModel(ModelConfig{NumTopics: 2, NumTerms: 5, Eta: ScalarEta(0.1)})
	require.NoError(t, err)
	r, c := m.expElogbeta.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 5, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Greater(t, m.expElogbeta.At(i, j), 0.0)
		}
	}
}

func TestModel_Alpha_ReturnsDefensiveCopy(t *testing.T) {
	m, err := NewModel(ModelConfig{NumTopics: 2, NumTerms: 5, Eta: ScalarEta(0.1)})
	require.NoError(t, err)
	alpha := m.Alpha()
	alpha[0] = 999
	assert.NotEqual(t, 999.0, m.Alpha()[0])
}
