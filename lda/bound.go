package lda

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Bound evaluates the per-chunk evidence lower bound (ELBO) at the model's
// current α, η, and λ. If gamma is nil, γ is inferred for chunk first
// (without collecting sstats). subsampleRatio scales the document-dependent
// term up to account for chunk being a subsample of a larger corpus (§4.7).
func (m *Model) Bound(chunk Chunk, gamma *mat.Dense, subsampleRatio float64) (float64, error) {
	lambda := m.state.GetLambda()
	elogbeta := dirichletExpectationMatrix(lambda)

	if gamma == nil {
		g, _, err := m.Inference(chunk, false)
		if err != nil {
			return 0, err
		}
		gamma = g
	}

	sumAlpha := sumSlice(m.alpha)
	lgammaSumAlpha := lgamma(sumAlpha)

	var score float64
	gammad := make([]float64, m.K)
	terms := make([]float64, m.K)
	for d, doc := range chunk {
		mat.Row(gammad, d, gamma)
		elogthetad := dirichletExpectationVector(gammad)

		var sumGamma float64
		for k := 0; k < m.K; k++ {
			score += (m.alpha[k] - gammad[k]) * elogthetad[k]
			score += lgamma(gammad[k]) - lgamma(m.alpha[k])
			sumGamma += gammad[k]
		}
		score += lgammaSumAlpha - lgamma(sumGamma)

		for n, id := range doc.IDs {
			for k := 0; k < m.K; k++ {
				terms[k] = elogthetad[k] + elogbeta.At(k, int(id))
			}
			score += doc.Counts[n] * logSumExp(terms)
		}
	}
	score *= subsampleRatio

	for k := 0; k < m.K; k++ {
		var sumLambdaRow, sumEtaRow float64
		for w := 0; w < m.W; w++ {
			etaKW := m.eta.at(k, w)
			lambdaKW := lambda.At(k, w)
			score += (etaKW - lambdaKW) * elogbeta.At(k, w)
			score += lgamma(lambdaKW) - lgamma(etaKW)
			sumLambdaRow += lambdaKW
			sumEtaRow += etaKW
		}
		score += lgamma(sumEtaRow) - lgamma(sumLambdaRow)
	}

	return score, nil
}

// LogPerplexity evaluates the average per-word bound for chunk, a proxy for
// held-out log-likelihood. totalDocs is the size of the corpus chunk is a
// subsample of (equal to len(chunk) when chunk is the whole corpus).
func (m *Model) LogPerplexity(chunk Chunk, totalDocs int) (float64, error) {
	corpusWords := chunk.TotalWords()
	if corpusWords == 0 {
		return 0, &ConfigurationError{Reason: "cannot compute perplexity over an empty chunk"}
	}
	subsampleRatio := float64(totalDocs) / float64(len(chunk))

	bound, err := m.Bound(chunk, nil, subsampleRatio)
	if err != nil {
		return 0, err
	}
	perWordBound := bound / (subsampleRatio * corpusWords)
	m.Log.Infof("per-word bound: %.3f, perplexity estimate: %.3f", perWordBound, perplexityFromBound(perWordBound))
	return perWordBound, nil
}

// perplexityFromBound converts a per-word bound into the usual 2^(-bound)
// perplexity figure quoted in training logs.
func perplexityFromBound(perWordBound float64) float64 {
	return math.Exp2(-perWordBound)
}

func sumSlice(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
