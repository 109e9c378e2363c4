// Package token models the tokenized-sentence shape the alignment core
// consumes and annotates: an ordered list of tokens, each with a
// surface form, a starting code-point offset, and an indexed tag
// channel. This is the concrete type standing in for the tokenizer
// collaborator that spec.md deliberately keeps out of the core's
// scope — the core only ever reaches it through the small surface
// documented in align.NewTrainer and align.Model.MakeAlignment.
package token

// CharacterBoundary marks whether a word-internal sub-boundary exists
// at a given code-point offset within a Sentence.
type CharacterBoundary int

const (
	// NoBoundary is the default: no sub-word split recorded here.
	NoBoundary CharacterBoundary = iota
	// WordBoundary marks a sub-word split inserted by Model.MakeAlignment.
	WordBoundary
)

// Token is one word-like unit within a Sentence.
type Token struct {
	// Surface is the token's written form, as a sequence of Unicode
	// code points (stored as a string; callers index it by rune).
	Surface string

	// Start is this token's code-point offset within its Sentence.
	Start int

	// Tags is the token's indexed tag channel. A nil entry means that
	// channel is absent for this token (treated as an empty phoneme
	// sequence by align.NewTrainer).
	Tags []*string
}

// Runes returns the token's surface form as a code-point slice.
func (t *Token) Runes() []rune {
	return []rune(t.Surface)
}

// Tag returns the tag at tagIndex, or "" if absent or out of range.
func (t *Token) Tag(tagIndex int) string {
	if tagIndex < 0 || tagIndex >= len(t.Tags) || t.Tags[tagIndex] == nil {
		return ""
	}
	return *t.Tags[tagIndex]
}

// Sentence is an ordered sequence of Tokens sharing one code-point
// coordinate space: token i's Start is the number of code points
// contributed by tokens 0..i-1, with no separator code points between
// tokens (tokenization itself is expressed by the boundary markers,
// not by whitespace in the underlying text).
type Sentence struct {
	Tokens []Token

	// Boundaries has one slot per code point except the last: slot p
	// records whether a sub-word boundary exists immediately after
	// code point p. Populated only by Model.MakeAlignment.
	Boundaries []CharacterBoundary

	// Tags holds one phoneme-tag slot per code point (0..Len()-1);
	// slot p is the tag attached to the sub-word chunk ending at
	// code-point offset p+1. Populated only by Model.MakeAlignment.
	Tags []*string
}

// NewSentence builds a Sentence from tokens, computing each Token's
// Start offset from the cumulative code-point length of the tokens
// before it, and sizing Boundaries/Tags to the sentence's total
// code-point length.
func NewSentence(tokens []Token) *Sentence {
	offset := 0
	for i := range tokens {
		tokens[i].Start = offset
		offset += len([]rune(tokens[i].Surface))
	}
	s := &Sentence{Tokens: tokens}
	s.grow(offset)
	return s
}

// Len returns the sentence's total code-point length.
func (s *Sentence) Len() int {
	return len(s.Tags)
}

func (s *Sentence) grow(codepointLen int) {
	boundaryLen := codepointLen - 1
	if boundaryLen < 0 {
		boundaryLen = 0
	}
	s.Boundaries = make([]CharacterBoundary, boundaryLen)
	s.Tags = make([]*string, codepointLen)
}

// ResetTags clears the tag channel (every slot set back to nil) and
// the boundary channel, keeping their lengths. align.Model.MakeAlignment
// calls this before writing boundaries/tags for a fresh pass.
func (s *Sentence) ResetTags() {
	for i := range s.Tags {
		s.Tags[i] = nil
	}
	for i := range s.Boundaries {
		s.Boundaries[i] = NoBoundary
	}
}
