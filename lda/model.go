package lda

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// AlphaMode selects how the document-topic Dirichlet prior α is initialized.
type AlphaMode int

const (
	// AlphaSymmetric sets every α_k = 1/K.
	AlphaSymmetric AlphaMode = iota
	// AlphaAsymmetric sets α_k = 1/(k+√K), renormalized to sum to 1.
	AlphaAsymmetric
	// AlphaAuto starts symmetric and optimizes α every chunk thereafter.
	AlphaAuto
	// AlphaExplicit uses a caller-supplied vector or scalar broadcast.
	AlphaExplicit
)

// ModelConfig groups the construction-time parameters of a Model: topic and
// vocabulary cardinality, and the α/η priors. Mirrors the grouped-config
// style used throughout this codebase's option structs.
type ModelConfig struct {
	NumTopics  int
	NumTerms   int
	AlphaMode  AlphaMode
	AlphaValue []float64 // used when AlphaMode == AlphaExplicit; length 1 (broadcast) or NumTopics
	Eta        Eta
	OptimizeEta bool
	Seed       int64
}

// Model holds the persistent LDA parameters (K, W, α, η, λ) and orchestrates
// training. It is read-only during Inference and mutated only by Update (its
// M-steps and, with AlphaAuto, the per-chunk α step).
type Model struct {
	K int
	W int

	alpha       []float64
	optimizeAlpha bool

	eta         Eta
	optimizeEta bool

	state       *State
	expElogbeta *mat.Dense // cached exp(Elogβ); synced after every M-step

	numUpdates float64

	// iterations and gammaThreshold are the E-step controls in effect for
	// the current (or most recent) Update call; Inference reads them.
	iterations     int
	gammaThreshold float64

	rng *PartitionedRNG

	// dispatcher, when non-nil, redirects E-step work for entire chunks to a
	// remote fan-out instead of running Inference locally (§4.9).
	dispatcher Dispatcher

	Log *logrus.Entry
}

// SetDispatcher switches the model into distributed E-step mode: every chunk
// submitted to Update is handed to dispatcher.PutJob instead of being
// inferred locally, and each M-step pulls the merged sufficient statistics
// back via dispatcher.GetState. Pass nil to return to local, single-process mode.
func (m *Model) SetDispatcher(d Dispatcher) {
	m.dispatcher = d
}

// NewModel constructs a Model with K topics over a W-term vocabulary,
// sampling the initial sstats from Γ(100, 0.01) as the source does, and
// performing the first sync so expElogbeta is valid before any Update call.
func NewModel(cfg ModelConfig) (*Model, error) {
	if cfg.NumTerms == 0 {
		return nil, &EmptyVocabularyError{}
	}
	if cfg.NumTopics < 1 {
		return nil, &ConfigurationError{Reason: "numTopics must be >= 1"}
	}

	alpha, optimizeAlpha, err := resolveAlpha(cfg)
	if err != nil {
		return nil, err
	}

	m := &Model{
		K:             cfg.NumTopics,
		W:             cfg.NumTerms,
		alpha:         alpha,
		optimizeAlpha: optimizeAlpha,
		eta:           cfg.Eta,
		optimizeEta:   cfg.OptimizeEta,
		rng:           NewPartitionedRNG(NewEstimationKey(cfg.Seed)),
		Log:           logrus.WithField("component", "lda"),
	}
	defaults := defaultRunConfig()
	m.iterations = defaults.Iterations
	m.gammaThreshold = defaults.GammaThreshold
	if m.optimizeEta && m.eta.Kind == EtaFull {
		return nil, &ConfigurationError{Reason: "eta matrices cannot be auto-optimized, only scalar or K×1 eta"}
	}

	m.state = NewState(m.eta, m.K, m.W)
	rng := m.rng.ForSubsystem(SubsystemGammaInit)
	initial := sampleGammaMatrix(m.K, m.W, 100, 100, rng)
	for k := 0; k < m.K; k++ {
		m.state.sstats.SetRow(k, initial[k])
	}
	m.syncState()

	return m, nil
}

func resolveAlpha(cfg ModelConfig) ([]float64, bool, error) {
	k := cfg.NumTopics
	switch cfg.AlphaMode {
	case AlphaSymmetric:
		alpha := make([]float64, k)
		for i := range alpha {
			alpha[i] = 1.0 / float64(k)
		}
		return alpha, false, nil
	case AlphaAsymmetric:
		alpha := make([]float64, k)
		sqrtK := math.Sqrt(float64(k))
		var sum float64
		for i := range alpha {
			alpha[i] = 1.0 / (float64(i) + sqrtK)
			sum += alpha[i]
		}
		for i := range alpha {
			alpha[i] /= sum
		}
		return alpha, false, nil
	case AlphaAuto:
		alpha := make([]float64, k)
		for i := range alpha {
			alpha[i] = 1.0 / float64(k)
		}
		return alpha, true, nil
	case AlphaExplicit:
		if len(cfg.AlphaValue) == 0 {
			return nil, false, &ConfigurationError{Reason: "AlphaExplicit requires AlphaValue"}
		}
		if len(cfg.AlphaValue) == 1 {
			alpha := make([]float64, k)
			for i := range alpha {
				alpha[i] = cfg.AlphaValue[0]
			}
			return alpha, false, nil
		}
		if len(cfg.AlphaValue) != k {
			return nil, false, &ConfigurationError{Reason: "invalid alpha shape (must match numTopics)"}
		}
		alpha := make([]float64, k)
		copy(alpha, cfg.AlphaValue)
		return alpha, false, nil
	default:
		return nil, false, &ConfigurationError{Reason: "unknown alpha mode"}
	}
}

// syncState recomputes expElogbeta from the current λ, discharging the
// sync obligation (invariant 4 in §3).
func (m *Model) syncState() {
	elogbeta := m.state.GetElogBeta()
	r, c := elogbeta.Dims()
	exp := mat.NewDense(r, c, nil)
	exp.Apply(func(_, _ int, v float64) float64 { return math.Exp(v) }, elogbeta)
	m.expElogbeta = exp
}

// Alpha returns a copy of the current document-topic prior.
func (m *Model) Alpha() []float64 {
	out := make([]float64, len(m.alpha))
	copy(out, m.alpha)
	return out
}

// Eta returns the current topic-word prior.
func (m *Model) Eta() Eta {
	return m.eta
}

// NumUpdates reports the monotonic count of documents absorbed by
// non-extra-pass M-steps, which drives the ρ_t learning-rate schedule.
func (m *Model) NumUpdates() float64 {
	return m.numUpdates
}

// Lambda returns the current variational topic-word Dirichlet parameters.
func (m *Model) Lambda() *mat.Dense {
	return m.state.GetLambda()
}
