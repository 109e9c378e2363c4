// Package align: sentinel error set. All algorithms MUST return these
// sentinels and tests MUST check them via errors.Is rather than string
// matching. Panics are reserved for internal invariant violations that
// the caller has no way to trigger (a missing score-table entry for an
// admissible chunk, an out-of-range grid access from inside the
// lattice loops) — the protocol guarantees these never fire.
package align

import "errors"

var (
	// ErrEmptyDataset indicates the training set carries zero total
	// surface*phoneme mass (C = 0 in §4.4), so no initial score could
	// be assigned. Rejected at construction rather than silently
	// treated as s0 = 0.
	ErrEmptyDataset = errors.New("align: empty training dataset")

	// ErrUnknownPair indicates MakeAlignment was asked to apply the
	// model to a (surface, phoneme) pair that was never trained. This
	// is a precondition violation by the caller, surfaced as an error
	// rather than silently skipped.
	ErrUnknownPair = errors.New("align: pair not present in phoneme map")

	// ErrOutOfRange indicates a scratch-grid access fell outside the
	// grid's current bounds. Never observed when grids are used per
	// protocol (resize-then-fill before every pass).
	ErrOutOfRange = errors.New("align: index out of range")

	// ErrIncompletePath indicates Viterbi backtrace failed to land
	// exactly on (n, m). On admissible lattices this cannot happen;
	// see the decoder-termination open question in SPEC_FULL.md.
	ErrIncompletePath = errors.New("align: decoded path did not reach (n, m)")
)
