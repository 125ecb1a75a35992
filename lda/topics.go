package lda

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TopicTerm is one entry of a topic's top-words listing.
type TopicTerm struct {
	Term        string
	Probability float64
}

// TopTerms returns the n highest-probability terms of topic under the
// current λ, normalized to a proper distribution over the vocabulary.
func (m *Model) TopTerms(topic, n int, vocab Vocabulary) []TopicTerm {
	lambda := m.state.GetLambda()
	_, w := lambda.Dims()
	row := make([]float64, w)
	mat.Row(row, topic, lambda)
	sum := floats.Sum(row)

	type pair struct {
		id int
		p  float64
	}
	pairs := make([]pair, w)
	for i, v := range row {
		pairs[i] = pair{i, v / sum}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].p > pairs[j].p })

	if n > len(pairs) {
		n = len(pairs)
	}
	out := make([]TopicTerm, n)
	for i := 0; i < n; i++ {
		out[i] = TopicTerm{Term: vocab.Word(int32(pairs[i].id)), Probability: pairs[i].p}
	}
	return out
}

// PrintTopic renders topic's top n terms as "p*term + p*term + ...", the
// conventional human-readable summary of a topic.
func (m *Model) PrintTopic(topic, n int, vocab Vocabulary) string {
	terms := m.TopTerms(topic, n, vocab)
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%.3f*%q", t.Probability, t.Term)
	}
	return strings.Join(parts, " + ")
}

// ShowTopics renders up to numTopics topics (all of them when numTopics <= 0
// or >= K), ranked by α with a small random jitter to break ties
// deterministically given the model's seed, each showing its top numWords
// terms.
func (m *Model) ShowTopics(numTopics, numWords int, vocab Vocabulary) []string {
	if numTopics <= 0 || numTopics > m.K {
		numTopics = m.K
	}
	order := m.rankTopicsByAlpha(numTopics)
	out := make([]string, 0, len(order))
	for _, k := range order {
		out = append(out, m.PrintTopic(k, numWords, vocab))
	}
	return out
}

func (m *Model) rankTopicsByAlpha(numTopics int) []int {
	rng := m.rng.ForSubsystem(SubsystemTopicJitter)

	type scored struct {
		k     int
		score float64
	}
	ranked := make([]scored, m.K)
	for k := 0; k < m.K; k++ {
		ranked[k] = scored{k, m.alpha[k] + rng.Float64()*1e-8}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]int, numTopics)
	for i := 0; i < numTopics; i++ {
		out[i] = ranked[i].k
	}
	return out
}

// TopicProbability is one entry of a document's topic distribution.
type TopicProbability struct {
	Topic       int
	Probability float64
}

// GetDocumentTopics infers doc's γ and returns its normalized topic
// distribution, dropping any topic below minimumProbability and sorting the
// remainder by descending probability.
func (m *Model) GetDocumentTopics(doc Document, minimumProbability float64) ([]TopicProbability, error) {
	gamma, _, err := m.Inference(Chunk{doc}, false)
	if err != nil {
		return nil, err
	}
	row := make([]float64, m.K)
	mat.Row(row, 0, gamma)
	sum := floats.Sum(row)

	out := make([]TopicProbability, 0, m.K)
	for k, v := range row {
		p := v / sum
		if p >= minimumProbability {
			out = append(out, TopicProbability{Topic: k, Probability: p})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Probability > out[j].Probability })
	return out, nil
}
