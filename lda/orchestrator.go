package lda

import "math"

// Update absorbs corpus into the model, running the online/batch variational
// Bayes training loop: lencorpus documents are swept in chunks of
// opts.ChunkSize, one E-step per chunk, with M-steps taken every
// opts.UpdateEvery chunks (or once per sweep, in batch mode) and perplexity
// logged every opts.EvalEvery chunks. The whole sweep repeats
// opts.MaxBoundIterations times per pass — used by the batch preset, whose
// single whole-corpus chunk otherwise only sees the model once — stopping
// early once the per-word bound's relative improvement over the previous
// bound-iteration falls below opts.BoundImprovementThreshold. numUpdates is
// reset to its value at pass start before each bound-iteration beyond the
// first, so every bound-iteration sees the same rho trajectory rather than
// one that keeps shrinking across repeated sweeps of the same chunk.
func (m *Model) Update(corpus Corpus, opts TrainOptions) error {
	cfg, err := ResolveTrainOptions(opts)
	if err != nil {
		return err
	}

	lencorpus := corpusLen(corpus)
	if lencorpus == 0 {
		m.Log.Warn("Update called with an empty corpus")
		return nil
	}

	m.iterations = cfg.Iterations
	m.gammaThreshold = cfg.GammaThreshold

	chunksize := cfg.ChunkSize.Resolve(lencorpus)
	if chunksize > lencorpus {
		chunksize = lencorpus
	}
	if chunksize < 1 {
		chunksize = 1
	}

	m.state.numdocs += float64(lencorpus)

	updateAfter := lencorpus
	if cfg.UpdateEvery > 0 {
		updateAfter = min(lencorpus, cfg.UpdateEvery*chunksize)
	}
	evalAfter := 0
	if cfg.EvalEvery > 0 {
		evalAfter = min(lencorpus, cfg.EvalEvery*chunksize)
	}

	updatesPerPass := math.Max(1, float64(lencorpus)/float64(updateAfter))
	m.Log.Infof(
		"running LDA training, %d topics, %d passes over the supplied corpus of %d documents, "+
			"updating model once every %d documents, evaluating perplexity every %d documents, "+
			"iterating %dx with a convergence threshold of %f",
		m.K, cfg.Passes, lencorpus, updateAfter, evalAfter, cfg.Iterations, cfg.GammaThreshold)
	if updatesPerPass*float64(cfg.Passes) < 10 {
		m.Log.Warn("too few updates, training might not converge; " +
			"consider increasing the number of passes or iterations to improve accuracy")
	}

	stepSize := func(pass int) float64 {
		return rho(cfg.Offset, cfg.Decay, float64(pass)+m.numUpdates/float64(chunksize))
	}

	for pass := 0; pass < cfg.Passes; pass++ {
		baseUpdates := m.numUpdates
		var lastBound float64
		haveBound := false
		for boundIter := 0; boundIter < cfg.MaxBoundIterations; boundIter++ {
			if boundIter > 0 {
				m.numUpdates = baseUpdates
			}
			bound, ok, err := m.sweepOnce(corpus, cfg, chunksize, lencorpus, pass, stepSize)
			if err != nil {
				return err
			}
			if cfg.MaxBoundIterations > 1 && ok {
				rel := (lastBound - bound) / lastBound
				converged := haveBound && rel < cfg.BoundImprovementThreshold
				lastBound, haveBound = bound, true
				if converged {
					break
				}
			}
		}
	}
	return nil
}

// sweepOnce runs one full pass over corpus in chunks, returning the last
// per-word bound observed (if any evaluation fired during the sweep).
func (m *Model) sweepOnce(corpus Corpus, cfg RunConfig, chunksize, lencorpus, pass int, stepSize func(int) float64) (float64, bool, error) {
	it := corpus.Documents()
	other := NewState(m.eta, m.K, m.W)
	reallen := 0
	chunkNo := 0
	dirty := false
	var lastBound float64
	haveBound := false

	for {
		chunk, ok := nextChunk(it, chunksize)
		if !ok {
			break
		}
		reallen += len(chunk)
		chunkNo++

		if m.dispatcher != nil {
			if err := m.dispatcher.PutJob(chunk); err != nil {
				return 0, false, &DispatcherError{Op: "PutJob", Err: err}
			}
		} else {
			gammat, sstats, err := m.Inference(chunk, true)
			if err != nil {
				return 0, false, err
			}
			if m.optimizeAlpha {
				m.OptimizeAlpha(gammat, stepSize(pass))
			}
			other.Merge(&State{sstats: sstats, numdocs: float64(len(chunk))})
		}
		dirty = true

		if cfg.UpdateEvery > 0 && chunkNo%cfg.UpdateEvery == 0 {
			next, err := m.flushMstep(stepSize(pass), other, pass > 0)
			if err != nil {
				return 0, false, err
			}
			other = next
			dirty = false
		}

		if cfg.EvalEvery > 0 && (reallen == lencorpus || chunkNo%cfg.EvalEvery == 0) {
			b, err := m.LogPerplexity(chunk, lencorpus)
			if err != nil {
				return 0, false, err
			}
			lastBound, haveBound = b, true
		}
	}

	if reallen != lencorpus {
		return 0, false, &CorpusMutatedError{Reported: lencorpus, Actual: reallen}
	}

	if dirty {
		if _, err := m.flushMstep(stepSize(pass), other, pass > 0); err != nil {
			return 0, false, err
		}
	}

	return lastBound, haveBound, nil
}

// flushMstep absorbs other (or, in distributed mode, the dispatcher's merged
// state) into the model and returns a fresh, empty accumulator to replace it.
func (m *Model) flushMstep(rho float64, other *State, extraPass bool) (*State, error) {
	if m.dispatcher != nil {
		st, err := m.dispatcher.GetState()
		if err != nil {
			return nil, &DispatcherError{Op: "GetState", Err: err}
		}
		if err := m.doMstep(rho, st, extraPass); err != nil {
			return nil, err
		}
		if err := m.dispatcher.Reset(m.state); err != nil {
			return nil, &DispatcherError{Op: "Reset", Err: err}
		}
		return NewState(m.eta, m.K, m.W), nil
	}

	if err := m.doMstep(rho, other, extraPass); err != nil {
		return nil, err
	}
	return NewState(m.eta, m.K, m.W), nil
}

// corpusLen returns the corpus's document count, draining a full iteration
// to count them when the collaborator cannot report it in O(1).
func corpusLen(corpus Corpus) int {
	if n, ok := corpus.Len(); ok {
		return n
	}
	it := corpus.Documents()
	count := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	return count
}

// nextChunk pulls up to size documents off it, returning ok=false only once
// the iterator is exhausted and no documents were collected.
func nextChunk(it DocumentIterator, size int) (Chunk, bool) {
	chunk := make(Chunk, 0, size)
	for len(chunk) < size {
		doc, ok := it.Next()
		if !ok {
			break
		}
		chunk = append(chunk, doc)
	}
	if len(chunk) == 0 {
		return nil, false
	}
	return chunk, true
}
