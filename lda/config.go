package lda

// TrainOptions groups the per-call overrides accepted by Model.Update. Every
// field is optional (nil/zero-value sentinel via pointer) so that
// "unspecified" can be distinguished from "explicitly zero" — update_every=0
// is a legitimate request for batch-mode M-steps.
type TrainOptions struct {
	// Algorithm is a macro that defaults the rest of this group: "batch",
	// "online", or "" (unset, no preset applied).
	Algorithm string

	ChunkSize                 *ChunkSize
	Decay                     *float64
	Offset                    *float64
	Passes                    *int
	UpdateEvery               *int
	EvalEvery                 *int
	Iterations                *int
	GammaThreshold            *float64
	MaxBoundIterations        *int
	BoundImprovementThreshold *float64
	MinimumProbability        *float64
}

// RunConfig is the fully-resolved, concrete set of run parameters consumed
// by the orchestrator, after algorithm-preset expansion and defaulting.
type RunConfig struct {
	ChunkSize                 ChunkSize
	Decay                     float64
	Offset                    float64
	Passes                    int
	UpdateEvery               int
	EvalEvery                 int
	Iterations                int
	GammaThreshold            float64
	MaxBoundIterations        int
	BoundImprovementThreshold float64
	MinimumProbability        float64
}

// defaultRunConfig mirrors the online defaults from the original
// implementation: chunksize=2000, iterations=50, gammaThreshold=0.001,
// decay=0.5, offset=1.0, minimumProbability=0.01, updateEvery=1,
// evalEvery=10, maxBoundIterations=1, boundImprovementThreshold=0.001.
func defaultRunConfig() RunConfig {
	return RunConfig{
		ChunkSize:                 ChunkSizeN(2000),
		Decay:                     0.5,
		Offset:                    1.0,
		Passes:                    1,
		UpdateEvery:               1,
		EvalEvery:                 10,
		Iterations:                50,
		GammaThreshold:            0.001,
		MaxBoundIterations:        1,
		BoundImprovementThreshold: 0.001,
		MinimumProbability:        0.01,
	}
}

// ResolveTrainOptions expands an algorithm preset (if any) and fills in
// defaults, returning a *ConfigurationError for any contradiction between
// the chosen preset and an explicitly supplied option.
func ResolveTrainOptions(opts TrainOptions) (RunConfig, error) {
	cfg := defaultRunConfig()

	switch opts.Algorithm {
	case "batch":
		if opts.UpdateEvery != nil && *opts.UpdateEvery != 0 {
			return RunConfig{}, &ConfigurationError{Reason: "the batch algorithm requires updateEvery = 0"}
		}
		cfg.UpdateEvery = 0

		if opts.EvalEvery != nil && *opts.EvalEvery == 0 {
			return RunConfig{}, &ConfigurationError{Reason: "the batch algorithm requires evalEvery > 0"}
		}
		cfg.EvalEvery = 1

		if opts.ChunkSize != nil && !opts.ChunkSize.IsAll() {
			return RunConfig{}, &ConfigurationError{Reason: "the batch algorithm does not use multiple chunks"}
		}
		cfg.ChunkSize = ChunkSizeAll()

		if opts.Passes != nil && *opts.Passes > 1 {
			return RunConfig{}, &ConfigurationError{Reason: "the batch algorithm does not use multiple passes"}
		}
		cfg.Passes = 1

		if opts.MaxBoundIterations != nil && *opts.MaxBoundIterations <= 1 {
			return RunConfig{}, &ConfigurationError{Reason: "the batch algorithm uses multiple bound iterations"}
		}
		cfg.MaxBoundIterations = 1000

	case "online":
		if opts.UpdateEvery != nil && *opts.UpdateEvery <= 0 {
			return RunConfig{}, &ConfigurationError{Reason: "the online algorithm requires updateEvery > 0"}
		}
		cfg.UpdateEvery = 1

		if opts.MaxBoundIterations != nil && *opts.MaxBoundIterations != 1 {
			return RunConfig{}, &ConfigurationError{Reason: "the online algorithm does not use multiple bound iterations"}
		}
		cfg.MaxBoundIterations = 1

	case "":
		// no macro; every field defaults independently below

	default:
		return RunConfig{}, &ConfigurationError{Reason: "unknown algorithm specified: " + opts.Algorithm}
	}

	if opts.ChunkSize != nil {
		cfg.ChunkSize = *opts.ChunkSize
	}
	if opts.Decay != nil {
		cfg.Decay = *opts.Decay
	}
	if opts.Offset != nil {
		cfg.Offset = *opts.Offset
	}
	if opts.Passes != nil {
		cfg.Passes = *opts.Passes
	}
	if opts.UpdateEvery != nil {
		cfg.UpdateEvery = *opts.UpdateEvery
	}
	if opts.EvalEvery != nil {
		cfg.EvalEvery = *opts.EvalEvery
	}
	if opts.Iterations != nil {
		cfg.Iterations = *opts.Iterations
	}
	if opts.GammaThreshold != nil {
		cfg.GammaThreshold = *opts.GammaThreshold
	}
	if opts.MaxBoundIterations != nil {
		cfg.MaxBoundIterations = *opts.MaxBoundIterations
	}
	if opts.BoundImprovementThreshold != nil {
		cfg.BoundImprovementThreshold = *opts.BoundImprovementThreshold
	}
	if opts.MinimumProbability != nil {
		cfg.MinimumProbability = *opts.MinimumProbability
	}

	if cfg.Decay < 0.5 || cfg.Decay > 1 {
		return RunConfig{}, &ConfigurationError{Reason: "decay must be in [0.5, 1]"}
	}
	if cfg.Offset < 0 {
		return RunConfig{}, &ConfigurationError{Reason: "offset must be >= 0"}
	}
	if cfg.MaxBoundIterations < 1 {
		return RunConfig{}, &ConfigurationError{Reason: "maxBoundIterations must be at least 1"}
	}
	if cfg.MaxBoundIterations > 1 && cfg.UpdateEvery > 0 {
		return RunConfig{}, &ConfigurationError{Reason: "it doesn't make sense to use maxBoundIterations > 1 in online mode"}
	}
	if cfg.MaxBoundIterations > 1 && cfg.EvalEvery <= 0 {
		return RunConfig{}, &ConfigurationError{Reason: "evalEvery must be set (usually to 1) for maxBoundIterations > 1"}
	}

	return cfg, nil
}
