package align

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tkubota/m2malign/token"
)

// TrainingPair is one (surface, phoneme) character-sequence pair
// extracted from a token. Produced once and immutable thereafter.
// The lattice passes convert each visited slice to a string to look it
// up in a ScoreMap, so the score table, the γ accumulator and the
// finalized phoneme map each hold their own string copies of the keys.
type TrainingPair struct {
	Surface []rune
	Phoneme []rune
}

// Trainer holds the dataset and the global substring-pair score
// table, and runs the EM loop described in §4.4. It has exclusive
// mutable access to its score table and scratch grids for the
// duration of an Update() call; nothing suspends or yields mid-call.
type Trainer struct {
	dataset []TrainingPair
	scores  *ScoreMap

	// alpha and beta are resized and reused for every pair within an
	// E-step rather than reallocated, amortizing allocation over the
	// dataset (§9).
	alpha, beta *Grid
}

// NewTrainer builds the training set from sentences (extracting, for
// each token, its surface and the phoneme sequence at tagIndex — a
// missing tag is treated as an empty phoneme sequence), then
// initializes the score table with the flat value s0 = -log(C) where
// C = sum |S|*|P| over the dataset, per §4.4.
//
// Returns ErrEmptyDataset if C == 0 (either no tokens at all, or every
// token has an empty phoneme sequence): the reference behavior rejects
// rather than defining s0 = 0 for this case, per §7.
func NewTrainer(sentences []*token.Sentence, tagIndex int) (*Trainer, error) {
	var dataset []TrainingPair
	for _, sentence := range sentences {
		for i := range sentence.Tokens {
			tok := &sentence.Tokens[i]
			dataset = append(dataset, TrainingPair{
				Surface: tok.Runes(),
				Phoneme: []rune(tok.Tag(tagIndex)),
			})
		}
	}

	var totalMass int
	for _, pair := range dataset {
		totalMass += len(pair.Surface) * len(pair.Phoneme)
	}
	if totalMass == 0 {
		return nil, ErrEmptyDataset
	}
	initScore := -math.Log(float64(totalMass))

	scores := NewScoreMap()
	for _, pair := range dataset {
		n, m := len(pair.Surface), len(pair.Phoneme)
		forEachChunk(n, m, func(i, p, j, q int) {
			scores.Insert(string(pair.Surface[i:p]), string(pair.Phoneme[j:q]), initScore)
		})
	}

	return &Trainer{
		dataset: dataset,
		scores:  scores,
		alpha:   NewGrid(),
		beta:    NewGrid(),
	}, nil
}

// Scores returns the Trainer's current global score table.
func (t *Trainer) Scores() *ScoreMap {
	return t.scores
}

// Update runs one EM iteration (E-step then M-step) and returns
// diff_total, the log-domain aggregate squared error between the old
// and new scores. diff_total is -Inf on a call where γ received no
// mass at all (never happens on a non-empty dataset, since every
// training pair contributes at least one admissible chunk).
//
// The E-step loop below is a legitimate parallelization target (§5):
// each pair writes into gammas independently and logsumexp is a
// commutative-monoid combinator, so per-shard accumulators merged by
// logsumexp would be correct. Left sequential here: nothing in this
// package's scope calls for dataset sizes where that complexity pays
// for itself (see SPEC_FULL.md's Open Questions).
func (t *Trainer) Update() float64 {
	gammas := NewScoreMap()

	for _, pair := range t.dataset {
		Alpha(pair.Surface, pair.Phoneme, t.scores, t.alpha)
		Beta(pair.Surface, pair.Phoneme, t.scores, t.beta)
		Gamma(pair.Surface, pair.Phoneme, t.scores, t.alpha, t.beta, gammas)
	}

	gammaValues := make([]float64, 0, gammas.Len())
	gammas.ForEach(func(_, _ string, value float64) {
		gammaValues = append(gammaValues, value)
	})
	gammaSum := floats.LogSumExp(gammaValues)

	diffs := make([]float64, 0, gammas.Len())
	gammas.ForEach(func(surface, phoneme string, value float64) {
		newScore := value - gammaSum
		oldScore := t.scores.MustGet(surface, phoneme)
		diffs = append(diffs, logSquareError(newScore, oldScore))
		t.scores.Insert(surface, phoneme, newScore)
	})
	if len(diffs) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(diffs)
}

// Finalize consumes the Trainer and returns a Model: per unique
// training pair, the Viterbi best path, then one merge pass over the
// whole phoneme map. Do not call Update after Finalize.
func (t *Trainer) Finalize() *Model {
	phonemeMap := NewAlignmentMap()
	bestNodes := NewBestNodeGrid()

	for _, pair := range t.dataset {
		surfaceKey, phonemeKey := string(pair.Surface), string(pair.Phoneme)
		if phonemeMap.Contains(surfaceKey, phonemeKey) {
			continue
		}
		path, err := bestPath(t.scores, pair.Surface, pair.Phoneme, bestNodes)
		if err != nil {
			panic(err)
		}
		phonemeMap.Insert(surfaceKey, phonemeKey, path)
	}

	mergeAlignments(phonemeMap)

	return &Model{phonemeMap: phonemeMap}
}
