// Package corpusio reads and writes the tab-separated corpus line
// format used by cmd/m2malign. It is driver-only: align and token
// never import it, matching spec.md's choice to leave the wire format
// to an external collaborator.
package corpusio

import "errors"

var (
	// ErrMalformedLine indicates a corpus line did not carry the
	// expected number of tab-separated fields, or a field failed to
	// parse (a non-integer start offset, a start offset disagreeing
	// with the cumulative surface length).
	ErrMalformedLine = errors.New("corpusio: malformed line")
)
