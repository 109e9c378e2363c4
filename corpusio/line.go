package corpusio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tkubota/m2malign/token"
)

// Decode parses one blank-line-delimited block of corpus lines into a
// Sentence. Each line is tab-separated: surface, start (the
// code-point offset the line claims for this token, cross-checked
// against the cumulative surface length and rejected on mismatch),
// then exactly tagCount tag fields ("_" for an absent tag). A trailing
// boundary column, as written by Encode, is accepted and ignored.
func Decode(lines []string, tagCount int) (*token.Sentence, error) {
	tokens := make([]token.Token, 0, len(lines))
	claimedStarts := make([]int, 0, len(lines))

	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) == 3+tagCount {
			fields = fields[:2+tagCount]
		}
		if len(fields) != 2+tagCount {
			return nil, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedLine, 2+tagCount, len(fields))
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: start offset %q: %v", ErrMalformedLine, fields[1], err)
		}

		tags := make([]*string, tagCount)
		for i, f := range fields[2:] {
			if f == "_" {
				continue
			}
			tag := f
			tags[i] = &tag
		}

		tokens = append(tokens, token.Token{Surface: fields[0], Tags: tags})
		claimedStarts = append(claimedStarts, start)
	}

	sentence := token.NewSentence(tokens)
	for i, claimed := range claimedStarts {
		if sentence.Tokens[i].Start != claimed {
			return nil, fmt.Errorf("%w: token %d claims start %d, computed %d",
				ErrMalformedLine, i, claimed, sentence.Tokens[i].Start)
		}
	}
	return sentence, nil
}

// Encode renders a Sentence back into corpus lines. When the sentence
// carries no boundary/tag annotations yet (Model.MakeAlignment not yet
// called), the trailing boundary column is "_" on every line.
// tagCount must match the value Decode was called with, or a nil tag
// beyond a token's own Tags slice is silently rendered as "_".
func Encode(sentence *token.Sentence, tagCount int) []string {
	lines := make([]string, len(sentence.Tokens))
	for i := range sentence.Tokens {
		tok := &sentence.Tokens[i]
		fields := make([]string, 0, 2+tagCount+1)
		fields = append(fields, tok.Surface, strconv.Itoa(tok.Start))
		for ti := 0; ti < tagCount; ti++ {
			if ti < len(tok.Tags) && tok.Tags[ti] != nil {
				fields = append(fields, *tok.Tags[ti])
			} else {
				fields = append(fields, "_")
			}
		}
		fields = append(fields, boundaryColumn(sentence, tok))
		lines[i] = strings.Join(fields, "\t")
	}
	return lines
}

// boundaryColumn renders the space-joined "position:tag" pairs
// Model.MakeAlignment wrote within tok's code-point span, relative to
// the sentence's shared coordinate space.
func boundaryColumn(sentence *token.Sentence, tok *token.Token) string {
	n := len([]rune(tok.Surface))
	var pieces []string
	for pos := tok.Start; pos < tok.Start+n && pos < len(sentence.Tags); pos++ {
		if tag := sentence.Tags[pos]; tag != nil {
			pieces = append(pieces, fmt.Sprintf("%d:%s", pos, *tag))
		}
	}
	if len(pieces) == 0 {
		return "_"
	}
	return strings.Join(pieces, " ")
}

// ReadSentences scans r for blank-line-delimited blocks of corpus
// lines and decodes each into a Sentence.
func ReadSentences(r io.Reader, tagCount int) ([]*token.Sentence, error) {
	scanner := bufio.NewScanner(r)
	var sentences []*token.Sentence
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		sentence, err := Decode(block, tagCount)
		if err != nil {
			return err
		}
		sentences = append(sentences, sentence)
		block = block[:0]
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// WriteSentences writes each sentence's Encode output followed by a
// blank-line separator.
func WriteSentences(w io.Writer, sentences []*token.Sentence, tagCount int) error {
	bw := bufio.NewWriter(w)
	for _, sentence := range sentences {
		for _, line := range Encode(sentence, tagCount) {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}
