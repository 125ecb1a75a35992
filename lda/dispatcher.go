package lda

import (
	"fmt"
	"sync"
)

// LocalDispatcher is an in-process Dispatcher: PutJob runs the E-step
// synchronously against a private inference engine and merges the result
// into a shared accumulator under a mutex. It exists as a reference
// implementation of the Dispatcher contract and as a drop-in stand-in for a
// real network-backed fan-out in tests (§4.9).
type LocalDispatcher struct {
	mu      sync.Mutex
	engine  *Model
	partial *State
	workers []string
}

// NewLocalDispatcher creates a LocalDispatcher fronting n named workers.
// n only labels GetWorkers; PutJob always runs inline in the caller's
// goroutine, so n has no effect on actual concurrency.
func NewLocalDispatcher(n int) *LocalDispatcher {
	workers := make([]string, n)
	for i := range workers {
		workers[i] = fmt.Sprintf("local-%d", i)
	}
	return &LocalDispatcher{workers: workers}
}

// Initialize builds the private inference engine used by every subsequent
// PutJob, sharing vocab's term cardinality and the supplied priors.
func (d *LocalDispatcher) Initialize(vocab Vocabulary, k int, chunksize int, alpha []float64, eta Eta) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w := 0
	if lv, ok := vocab.(interface{ Len() int }); ok {
		w = lv.Len()
	}
	engine, err := NewModel(ModelConfig{
		NumTopics:  k,
		NumTerms:   max(w, 1),
		AlphaMode:  AlphaExplicit,
		AlphaValue: alpha,
		Eta:        eta,
	})
	if err != nil {
		return err
	}
	d.engine = engine
	d.partial = NewState(eta, k, max(w, 1))
	return nil
}

// Reset points the dispatcher's engine at state's λ (so every worker's
// expElogβ snapshot matches the coordinator's) and clears the accumulator.
func (d *LocalDispatcher) Reset(state *State) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.engine == nil {
		return &ConfigurationError{Reason: "dispatcher used before Initialize"}
	}
	d.engine.state = state
	d.engine.syncState()
	k, w := state.Dims()
	d.partial = NewState(state.eta, k, w)
	return nil
}

// PutJob runs the E-step for chunk and merges its sufficient statistics into
// the dispatcher's accumulator.
func (d *LocalDispatcher) PutJob(chunk Chunk) error {
	d.mu.Lock()
	engine := d.engine
	d.mu.Unlock()
	if engine == nil {
		return &ConfigurationError{Reason: "dispatcher used before Initialize"}
	}

	_, sstats, err := engine.Inference(chunk, true)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.partial.Merge(&State{sstats: sstats, numdocs: float64(len(chunk))})
	return nil
}

// GetState returns the accumulator built since the last Reset.
func (d *LocalDispatcher) GetState() (*State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.partial == nil {
		return nil, &ConfigurationError{Reason: "dispatcher used before Initialize"}
	}
	return d.partial, nil
}

// GetWorkers reports the dispatcher's configured worker labels.
func (d *LocalDispatcher) GetWorkers() ([]string, error) {
	return d.workers, nil
}
