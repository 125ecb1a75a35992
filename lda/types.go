package lda

import "gonum.org/v1/gonum/mat"

// Document is a sparse term-count vector: ids[i] is a term id in [0, W),
// strictly increasing is not required but ids within one Document must be
// distinct, and counts[i] > 0. Stored struct-of-arrays so the E-step's inner
// loop can pull contiguous columns out of expElogβ without pointer chasing.
type Document struct {
	IDs    []int32
	Counts []float64
}

// Len reports the number of distinct terms in the document.
func (d Document) Len() int { return len(d.IDs) }

// TotalCount sums the document's term counts (its length in tokens).
func (d Document) TotalCount() float64 {
	var total float64
	for _, c := range d.Counts {
		total += c
	}
	return total
}

// Chunk is an eagerly materialized batch of documents, bounded by a
// RunConfig's ChunkSize. Its lifetime is one E-step.
type Chunk []Document

// TotalWords sums term counts across every document in the chunk.
func (c Chunk) TotalWords() float64 {
	var total float64
	for _, d := range c {
		total += d.TotalCount()
	}
	return total
}

// DocumentIterator pulls documents off a Corpus one at a time. A fresh
// iterator must start back at the first document; re-iterability is the
// Corpus collaborator's responsibility whenever passes > 1.
type DocumentIterator interface {
	// Next returns the next document, or ok=false when the corpus is exhausted.
	Next() (Document, bool)
}

// Corpus is the external collaborator that produces sparse documents on
// demand. Implementations are never required to fit in memory at once;
// the orchestrator only ever holds one Chunk at a time.
type Corpus interface {
	// Len reports the corpus size in O(1) when known. When ok is false, the
	// orchestrator counts documents by draining one full iteration, which is
	// allowed to be expensive — but means a single-pass generator-backed
	// Corpus cannot be used with passes > 1 or an unknown Len.
	Len() (n int, ok bool)
	// Documents returns a fresh DocumentIterator positioned at the start of
	// the corpus. Each call must yield every document again from the top.
	Documents() DocumentIterator
}

// Vocabulary maps term ids to display strings. It exists purely for
// pretty-printing topics (TopTerms, PrintTopic, ShowTopics) and is never consulted by the
// estimation engine itself.
type Vocabulary interface {
	Word(termID int32) string
}

// EtaKind tags which of the three shapes a topic-word prior takes.
type EtaKind int

const (
	// EtaScalar is a single value broadcast over every (topic, term) pair.
	EtaScalar EtaKind = iota
	// EtaPerTopic is a K×1 column vector, symmetric per topic but asymmetric
	// across topics. Only this shape (and EtaScalar) may be auto-optimized.
	EtaPerTopic
	// EtaFull is a dense K×W matrix of independent priors.
	EtaFull
)

// Eta is the tagged-variant representation of the topic-word Dirichlet
// prior η. Every consumer switches explicitly on Kind rather than probing
// shape, per the polymorphic-η design note.
type Eta struct {
	Kind   EtaKind
	Scalar float64
	Vector []float64  // length K, used when Kind == EtaPerTopic
	Matrix *mat.Dense // K×W, used when Kind == EtaFull
}

// ScalarEta builds a symmetric scalar η.
func ScalarEta(value float64) Eta {
	return Eta{Kind: EtaScalar, Scalar: value}
}

// PerTopicEta builds a K×1 η from a length-K slice, copying the input.
func PerTopicEta(values []float64) Eta {
	v := make([]float64, len(values))
	copy(v, values)
	return Eta{Kind: EtaPerTopic, Vector: v}
}

// FullEta builds a K×W η from an existing dense matrix (not copied).
func FullEta(m *mat.Dense) Eta {
	return Eta{Kind: EtaFull, Matrix: m}
}

// at returns η_{k,w}, regardless of shape.
func (e Eta) at(k, w int) float64 {
	switch e.Kind {
	case EtaScalar:
		return e.Scalar
	case EtaPerTopic:
		return e.Vector[k]
	case EtaFull:
		return e.Matrix.At(k, w)
	default:
		panic("lda: invalid EtaKind")
	}
}

// ChunkSize is the tagged union All | N(n) for the batch preset's "infinite
// chunk size" sentinel, replacing the source's integer-overflow convention.
type ChunkSize struct {
	all bool
	n   int
}

// ChunkSizeAll requests one chunk per pass (the whole corpus at once).
func ChunkSizeAll() ChunkSize { return ChunkSize{all: true} }

// ChunkSizeN requests chunks of at most n documents.
func ChunkSizeN(n int) ChunkSize { return ChunkSize{n: n} }

// IsAll reports whether this ChunkSize requests the whole corpus as one chunk.
func (c ChunkSize) IsAll() bool { return c.all }

// Resolve returns the concrete chunk size given a corpus of lencorpus documents.
func (c ChunkSize) Resolve(lencorpus int) int {
	if c.all {
		return lencorpus
	}
	return c.n
}

// Dispatcher is the opaque remote actor for distributed E-step fan-out.
// Implementations may block in PutJob when their queue is full (the primary
// backpressure mechanism) and in GetState until all outstanding jobs have
// been merged into the returned snapshot.
type Dispatcher interface {
	Initialize(vocab Vocabulary, k int, chunksize int, alpha []float64, eta Eta) error
	Reset(state *State) error
	PutJob(chunk Chunk) error
	GetState() (*State, error)
	GetWorkers() ([]string, error)
}
