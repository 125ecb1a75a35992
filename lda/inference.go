package lda

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// numEstepWorkers bounds the per-chunk parallel-for fan-out. Kept small and
// fixed so it never nests unboundedly with BLAS-internal parallelism inside
// gonum's matrix routines (§5).
const numEstepWorkers = 8

// Inference runs the per-document variational fixed-point over chunk and
// returns the converged γ for every document. It never mutates the model —
// two calls with the same chunk and RNG state produce identical γ — so it
// is safe to call from outside a training Update (e.g. to score new,
// unseen documents).
//
// If collectSstats is true, the second return value holds the chunk's
// contribution to the sufficient statistics, ready to be merged into a
// State; otherwise it is nil.
func (m *Model) Inference(chunk Chunk, collectSstats bool) (*mat.Dense, *mat.Dense, error) {
	// A fresh stream per call, seeded from the model's key, so that γ
	// initialization never advances RNG state held by the model.
	seed := int64(m.rng.Key()) ^ fnv1a64(SubsystemGammaInit)
	return m.inference(chunk, collectSstats, rand.New(rand.NewSource(seed)))
}

func (m *Model) inference(chunk Chunk, collectSstats bool, rng *rand.Rand) (*mat.Dense, *mat.Dense, error) {
	n := len(chunk)
	if n == 0 {
		return mat.NewDense(0, m.K, nil), newSstatsIfNeeded(collectSstats, m.K, m.W), nil
	}

	gamma := mat.NewDense(n, m.K, nil)
	rows := sampleGammaMatrix(n, m.K, 100, 100, rng)
	for d := 0; d < n; d++ {
		gamma.SetRow(d, rows[d])
	}

	expElogbeta := m.expElogbeta // immutable snapshot for the duration of this call

	numWorkers := numEstepWorkers
	if numWorkers > n {
		numWorkers = n
	}
	chunkPerWorker := (n + numWorkers - 1) / numWorkers

	partials := make([]*mat.Dense, numWorkers)
	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		start := w * chunkPerWorker
		end := min(start+chunkPerWorker, n)
		if start >= end {
			continue
		}
		var local *mat.Dense
		if collectSstats {
			local = mat.NewDense(m.K, m.W, nil)
			partials[w] = local
		}
		start, end := start, end
		g.Go(func() error {
			for d := start; d < end; d++ {
				m.inferDoc(chunk[d], gamma.RawRowView(d), expElogbeta, local)
			}
			return nil
		})
	}
	_ = g.Wait() // inferDoc never returns an error

	var sstats *mat.Dense
	if collectSstats {
		sstats = mat.NewDense(m.K, m.W, nil)
		for _, p := range partials {
			if p != nil {
				sstats.Add(sstats, p)
			}
		}
		// Finishes Σ_d n_dw·φ_dwk = Σ_d n_dw·exp{Elogθ_dk + Elogβ_kw}/φnorm_dw.
		sstats.MulElem(sstats, expElogbeta)
	}

	return gamma, sstats, nil
}

func newSstatsIfNeeded(collect bool, k, w int) *mat.Dense {
	if !collect {
		return nil
	}
	return mat.NewDense(k, w, nil)
}

// inferDoc runs the Lee–Seung fixed-point for a single document in place on
// gammad, accumulating its contribution into sstatsLocal when non-nil.
func (m *Model) inferDoc(doc Document, gammad []float64, expElogbeta *mat.Dense, sstatsLocal *mat.Dense) {
	nd := doc.Len()
	if nd == 0 {
		// Trivial convergence: γ_d = α after one (vacuous) iteration.
		copy(gammad, m.alpha)
		return
	}

	K := m.K
	b := make([][]float64, K)
	for k := 0; k < K; k++ {
		row := make([]float64, nd)
		for n, id := range doc.IDs {
			row[n] = expElogbeta.At(k, int(id))
		}
		b[k] = row
	}

	elogthetad := dirichletExpectationVector(gammad)
	expElogthetad := make([]float64, K)
	for k := range expElogthetad {
		expElogthetad[k] = math.Exp(elogthetad[k])
	}

	phinorm := make([]float64, nd)
	recomputePhinorm := func() {
		for n := 0; n < nd; n++ {
			var s float64
			for k := 0; k < K; k++ {
				s += expElogthetad[k] * b[k][n]
			}
			phinorm[n] = s + 1e-100
		}
	}
	recomputePhinorm()

	weighted := make([]float64, nd)
	prev := make([]float64, K)
	for iter := 0; iter < m.iterations; iter++ {
		copy(prev, gammad)
		for n := 0; n < nd; n++ {
			weighted[n] = doc.Counts[n] / phinorm[n]
		}
		for k := 0; k < K; k++ {
			var dot float64
			for n := 0; n < nd; n++ {
				dot += b[k][n] * weighted[n]
			}
			gammad[k] = m.alpha[k] + expElogthetad[k]*dot
		}
		elogthetad = dirichletExpectationVector(gammad)
		for k := range expElogthetad {
			expElogthetad[k] = math.Exp(elogthetad[k])
		}
		recomputePhinorm()

		var meanChange float64
		for k := 0; k < K; k++ {
			meanChange += math.Abs(gammad[k] - prev[k])
		}
		meanChange /= float64(K)
		if meanChange < m.gammaThreshold {
			break
		}
	}

	if sstatsLocal != nil {
		for n := 0; n < nd; n++ {
			weighted[n] = doc.Counts[n] / phinorm[n]
		}
		for k := 0; k < K; k++ {
			for n, id := range doc.IDs {
				col := int(id)
				sstatsLocal.Set(k, col, sstatsLocal.At(k, col)+expElogthetad[k]*weighted[n])
			}
		}
	}
}
