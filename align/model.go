package align

import (
	"fmt"

	"github.com/tkubota/m2malign/token"
)

// Model is the finalized, immutable phoneme map produced by
// Trainer.Finalize: one merged alignment per unique training pair.
type Model struct {
	phonemeMap *AlignmentMap
}

// MakeAlignment applies the model to an external sentence (§4.6): for
// each token, look up its trained alignment and, for each chunk with
// surface end-position e and phoneme slice p, emit a sub-word boundary
// at code-point offset token.Start+e-1 carrying p as a tag. The
// boundary is written only when that offset is inside Boundaries;
// the sentence's last code point has no boundary slot, so the final
// chunk of the last token writes only its tag. Tags are written for
// every chunk.
//
// The sentence's tag channel is reset before any boundary/tag is
// written. Returns ErrUnknownPair, wrapped with the offending
// surface/phoneme, if a token's (surface, phoneme) pair was never
// trained — a precondition violation by the caller (§7), not silently
// skipped.
func (m *Model) MakeAlignment(sentence *token.Sentence, tagIndex int) error {
	type boundaryWrite struct {
		pos int
		tag string
	}
	var writes []boundaryWrite

	for i := range sentence.Tokens {
		tok := &sentence.Tokens[i]
		surface := tok.Runes()
		phoneme := []rune(tok.Tag(tagIndex))

		alignment, ok := m.phonemeMap.Get(string(surface), string(phoneme))
		if !ok {
			return fmt.Errorf("%w: surface=%q phoneme=%q", ErrUnknownPair, string(surface), string(phoneme))
		}

		phonemeStart := 0
		for _, chunk := range alignment {
			tag := string(phoneme[phonemeStart:chunk.PhonemeEnd])
			writes = append(writes, boundaryWrite{pos: tok.Start + chunk.SurfaceEnd - 1, tag: tag})
			phonemeStart = chunk.PhonemeEnd
		}
	}

	sentence.ResetTags()
	for _, w := range writes {
		if w.pos < len(sentence.Boundaries) {
			sentence.Boundaries[w.pos] = token.WordBoundary
		}
		tag := w.tag
		sentence.Tags[w.pos] = &tag
	}
	return nil
}
