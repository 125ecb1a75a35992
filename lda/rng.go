package lda

import (
	"hash/fnv"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// === EstimationKey ===

// EstimationKey uniquely identifies a reproducible training run. Two Models
// constructed with the same EstimationKey and identical configuration MUST
// produce bit-for-bit identical γ initializations and topic-ranking tie-breaking.
type EstimationKey int64

// NewEstimationKey creates an EstimationKey from a seed value.
func NewEstimationKey(seed int64) EstimationKey {
	return EstimationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemGammaInit is the RNG subsystem for γ and initial sstats
	// sampling from Γ(100, 0.01).
	SubsystemGammaInit = "gamma-init"

	// SubsystemTopicJitter is the RNG subsystem for the small random jitter
	// used to break ties when ranking topics by α (show_topics).
	SubsystemTopicJitter = "topic-jitter"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so that enabling topic-jitter logging never perturbs the γ
// initialization sequence (or vice versa).
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe; never share a PartitionedRNG across
// goroutines. inference.go draws every initial γ row on the calling
// goroutine before fanning the E-step out to its workers.
type PartitionedRNG struct {
	key        EstimationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from an EstimationKey.
func NewPartitionedRNG(key EstimationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the EstimationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() EstimationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// sampleGammaMatrix draws an r×c matrix of Γ(shape, rate) variates using
// src as the underlying entropy source, matching the source's
// numpy.random.gamma(100., 1./100., shape) initialization for γ and the
// initial sstats (shape=100, scale=0.01 ⟺ rate=100).
func sampleGammaMatrix(r, c int, shape, rate float64, src *rand.Rand) [][]float64 {
	dist := distuv.Gamma{Alpha: shape, Beta: rate, Source: src}
	out := make([][]float64, r)
	for i := range out {
		row := make([]float64, c)
		for j := range row {
			row[j] = dist.Rand()
		}
		out[i] = row
	}
	return out
}
