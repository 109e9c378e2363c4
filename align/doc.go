// Package align learns a many-to-many character alignment between a
// word's surface form and its phonetic transcription, and applies the
// learned model to insert sub-word boundaries with phoneme tags.
//
// 🚀 What is this?
//
//	It implements the algorithm of Kubo et al. (INTERSPEECH 2012,
//	"Evaluation of Many-to-Many Alignment Algorithm by Automatic
//	Pronunciation Annotation Using Web Text Mining"), with one
//	deliberate simplification: deletion cost is folded directly into a
//	city-block distance penalty throughout EM, rather than training in
//	two separate phases (EM for substitutions, then n-best Viterbi for
//	deletions).
//
// ✨ Key pieces:
//   - Grid / BestNodeGrid — reusable dense 2-D scratch buffers
//   - ScoreMap / QuadSet   — nested keyed containers over character slices
//   - Alpha / Beta / Gamma — log-domain forward/backward/posterior passes
//   - Trainer              — EM driver (E-step + M-step), one Update() per iteration
//   - Model                — Viterbi-decoded, merge-passed alignments, applied to sentences
//
// ⚙️ Usage:
//
//	import "github.com/tkubota/m2malign/align"
//
//	trainer, err := align.NewTrainer(sentences, tagIndex)
//	for i := 0; i < maxIter; i++ {
//	    if diff := trainer.Update(); diff < threshold {
//	        break
//	    }
//	}
//	model := trainer.Finalize()
//	err = model.MakeAlignment(sentence, tagIndex)
//
// The package does no I/O and has no retry policy: Update either
// completes or a precondition was violated by the caller.
package align
