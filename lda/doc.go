// Package lda provides the core online/batch variational-Bayes estimation
// engine for Latent Dirichlet Allocation.
//
// # Reading Guide
//
// Start with these files to understand the estimation kernel:
//   - types.go: Document/Chunk representation, the Corpus and Dispatcher collaborator interfaces
//   - state.go: State, the K×W sufficient-statistics accumulator
//   - inference.go: the per-document E-step fixed-point (Lee–Seung implicit φ)
//   - orchestrator.go: Model.Update, the pass/bound-iteration/chunk control loop
//
// # Architecture
//
// The lda package is self-contained: it has no sub-packages. Vocabulary
// mapping, corpus storage, persistence, and cluster dispatch are modeled
// as narrow external collaborator interfaces (Corpus, Dispatcher) rather
// than as concrete sub-packages, per the scope boundary in doc comments
// on types.go.
//
// # Key Types
//
//   - Model: holds K, W, α, η, λ and orchestrates training via Update
//   - State: the mutable K×W sufficient-statistics accumulator (sstats)
//   - Corpus: external collaborator producing Documents on demand
//   - Dispatcher: external collaborator for distributed E-step fan-out
package lda
