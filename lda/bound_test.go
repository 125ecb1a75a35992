package lda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBound_InfersGammaWhenNilSupplied(t *testing.T) {
	m := newTestModel(t, 2, 4)
	chunk := Chunk{{IDs: []int32{0, 1}, Counts: []float64{2, 2}}}
	score, err := m.Bound(chunk, nil, 1)
	require.NoError(t, err)
	assert.False(t, isNaNOrInf(score))
}

func TestBound_IncreasesAfterAnMstepOnTheSameChunk(t *testing.T) {
	// BDD: absorbing a chunk's sufficient statistics should move the model's
	// lambda toward explaining that chunk, increasing its bound.
	m := newTestModel(t, 2, 4)
	chunk := Chunk{
		{IDs: []int32{0, 1}, Counts: []float64{5, 5}},
		{IDs: []int32{2, 3}, Counts: []float64{5, 5}},
	}

	before, err := m.Bound(chunk, nil, 1)
	require.NoError(t, err)

	_, sstats, err := m.Inference(chunk, true)
	require.NoError(t, err)
	other := &State{sstats: sstats, numdocs: float64(len(chunk))}
	m.state.numdocs = float64(len(chunk))
	require.NoError(t, m.doMstep(1.0, other, false))

	after, err := m.Bound(chunk, nil, 1)
	require.NoError(t, err)

	assert.Greater(t, after, before)
}

func TestLogPerplexity_EmptyChunk_ReturnsError(t *testing.T) {
	m := newTestModel(t, 2, 4)
	_, err := m.LogPerplexity(Chunk{{}}, 1)
	assert.Error(t, err)
}

func TestLogPerplexity_WholeCorpusChunk_ReturnsFiniteBound(t *testing.T) {
	m := newTestModel(t, 2, 4)
	chunk := Chunk{{IDs: []int32{0, 1}, Counts: []float64{3, 3}}}
	perWord, err := m.LogPerplexity(chunk, len(chunk))
	require.NoError(t, err)
	assert.False(t, isNaNOrInf(perWord))
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e300 || v < -1e300
}
