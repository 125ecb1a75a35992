// cmd/config.go
package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ldavb/ldavb/lda"
)

// RunConfigFile mirrors the subset of lda.TrainOptions a user may override
// from a YAML file, keeping every field optional so strict decoding only
// rejects genuine typos, not omissions.
type RunConfigFile struct {
	Algorithm                 string   `yaml:"algorithm"`
	ChunkSize                 *int     `yaml:"chunk_size"`
	Decay                     *float64 `yaml:"decay"`
	Offset                    *float64 `yaml:"offset"`
	Passes                    *int     `yaml:"passes"`
	UpdateEvery               *int     `yaml:"update_every"`
	EvalEvery                 *int     `yaml:"eval_every"`
	Iterations                *int     `yaml:"iterations"`
	GammaThreshold            *float64 `yaml:"gamma_threshold"`
	MaxBoundIterations        *int     `yaml:"max_bound_iterations"`
	BoundImprovementThreshold *float64 `yaml:"bound_improvement_threshold"`
	MinimumProbability        *float64 `yaml:"minimum_probability"`
}

// loadRunConfig parses path into a RunConfigFile with strict field checking,
// so a misspelled key fails loudly instead of silently falling back to a
// default.
func loadRunConfig(path string) (RunConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfigFile{}, err
	}
	var cfg RunConfigFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return RunConfigFile{}, err
	}
	return cfg, nil
}

// toTrainOptions converts the file's pointer-or-absent fields into an
// lda.TrainOptions, translating the plain integer chunk size into the
// package's ChunkSize tagged union (0 or negative means "whole corpus").
func (c RunConfigFile) toTrainOptions() lda.TrainOptions {
	opts := lda.TrainOptions{
		Algorithm:                 c.Algorithm,
		Decay:                     c.Decay,
		Offset:                    c.Offset,
		Passes:                    c.Passes,
		UpdateEvery:               c.UpdateEvery,
		EvalEvery:                 c.EvalEvery,
		Iterations:                c.Iterations,
		GammaThreshold:            c.GammaThreshold,
		MaxBoundIterations:        c.MaxBoundIterations,
		BoundImprovementThreshold: c.BoundImprovementThreshold,
		MinimumProbability:        c.MinimumProbability,
	}
	if c.ChunkSize != nil {
		var cs lda.ChunkSize
		if *c.ChunkSize <= 0 {
			cs = lda.ChunkSizeAll()
		} else {
			cs = lda.ChunkSizeN(*c.ChunkSize)
		}
		opts.ChunkSize = &cs
	}
	return opts
}

func mustLoadRunConfig(path string) lda.TrainOptions {
	if path == "" {
		return lda.TrainOptions{}
	}
	cfg, err := loadRunConfig(path)
	if err != nil {
		logrus.Fatalf("failed to load run config %s: %v", path, err)
	}
	return cfg.toTrainOptions()
}
