package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRunConfig_ParsesKnownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: batch\npasses: 3\n"), 0o644))

	cfg, err := loadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "batch", cfg.Algorithm)
	require.NotNil(t, cfg.Passes)
	assert.Equal(t, 3, *cfg.Passes)
}

func TestLoadRunConfig_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algoritm: batch\n"), 0o644))

	_, err := loadRunConfig(path)
	assert.Error(t, err)
}

func TestRunConfigFile_ToTrainOptions_TranslatesChunkSize(t *testing.T) {
	n := 500
	cfg := RunConfigFile{ChunkSize: &n}
	opts := cfg.toTrainOptions()
	require.NotNil(t, opts.ChunkSize)
	assert.Equal(t, 500, opts.ChunkSize.Resolve(10000))
}

func TestRunConfigFile_ToTrainOptions_NonPositiveChunkSizeMeansAll(t *testing.T) {
	n := 0
	cfg := RunConfigFile{ChunkSize: &n}
	opts := cfg.toTrainOptions()
	require.NotNil(t, opts.ChunkSize)
	assert.True(t, opts.ChunkSize.IsAll())
}

func TestMustLoadRunConfig_EmptyPath_ReturnsZeroValue(t *testing.T) {
	opts := mustLoadRunConfig("")
	assert.Equal(t, "", opts.Algorithm)
	assert.Nil(t, opts.ChunkSize)
}
