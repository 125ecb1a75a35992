package lda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDispatcher_UsedBeforeInitialize_ReturnsConfigurationError(t *testing.T) {
	d := NewLocalDispatcher(2)
	err := d.PutJob(Chunk{{IDs: []int32{0}, Counts: []float64{1}}})
	assert.ErrorAs(t, err, new(*ConfigurationError))

	_, err = d.GetState()
	assert.ErrorAs(t, err, new(*ConfigurationError))
}

func TestLocalDispatcher_PutJob_AccumulatesAcrossCalls(t *testing.T) {
	vocab := SliceVocabulary{"a", "b"}
	d := NewLocalDispatcher(3)
	alpha := []float64{0.5, 0.5}
	require.NoError(t, d.Initialize(vocab, 2, 10, alpha, ScalarEta(0.1)))

	chunk1 := Chunk{{IDs: []int32{0}, Counts: []float64{1}}}
	chunk2 := Chunk{{IDs: []int32{1}, Counts: []float64{1}}}
	require.NoError(t, d.PutJob(chunk1))
	require.NoError(t, d.PutJob(chunk2))

	state, err := d.GetState()
	require.NoError(t, err)
	assert.Equal(t, 2.0, state.NumDocs())
}

func TestLocalDispatcher_Reset_ClearsAccumulatorAndResyncsEngine(t *testing.T) {
	vocab := SliceVocabulary{"a", "b"}
	d := NewLocalDispatcher(1)
	require.NoError(t, d.Initialize(vocab, 2, 10, []float64{0.5, 0.5}, ScalarEta(0.1)))

	require.NoError(t, d.PutJob(Chunk{{IDs: []int32{0}, Counts: []float64{1}}}))
	newState := NewState(ScalarEta(0.1), 2, 2)
	require.NoError(t, d.Reset(newState))

	state, err := d.GetState()
	require.NoError(t, err)
	assert.Equal(t, 0.0, state.NumDocs())
}

func TestLocalDispatcher_GetWorkers_ReturnsConfiguredCount(t *testing.T) {
	d := NewLocalDispatcher(4)
	workers, err := d.GetWorkers()
	require.NoError(t, err)
	assert.Len(t, workers, 4)
}
