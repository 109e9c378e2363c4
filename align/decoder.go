package align

import "math"

// bestPath runs Viterbi best-path decoding for one (surface, phoneme)
// pair, per §4.5. bestNodes is resized and reused across pairs.
//
// bestNodes[i,j] holds (bestScore, nextP, nextQ), initialized to
// (-Inf, 0, 0) except bestNodes[n,m].bestScore = 0. Chunks are folded
// in reverse order; ties are broken by strict '>' so the
// first-encountered chunk in reverse-iteration order wins (a later
// visit only overwrites when it's strictly better).
//
// The path is read out by starting at (0,0) and following next
// pointers until i == n AND j == m (the conjunction from §4.5/§9: an
// admissible lattice's anchoring constraints force the last chunk to
// land exactly on (n,m), so this cannot overshoot one axis while the
// other still advances; bestPath asserts that rather than silently
// truncating, returning ErrIncompletePath if it ever would).
func bestPath(scores *ScoreMap, surface, phoneme []rune, bestNodes *BestNodeGrid) ([]Chunk, error) {
	n, m := len(surface), len(phoneme)
	bestNodes.Resize(n+1, m+1, math.Inf(-1))
	bestNodes.set(n, m, bestNode{score: 0})

	forEachChunkReverse(n, m, func(i, p, j, q int) {
		score := scores.MustGet(string(surface[i:p]), string(phoneme[j:q]))
		weighted := score * cityBlockDistance(i, p, j, q)
		candidate := bestNodes.get(p, q).score + weighted
		if cur := bestNodes.get(i, j); cur.score < candidate {
			bestNodes.set(i, j, bestNode{score: candidate, nextP: p, nextQ: q})
		}
	})

	path := make([]Chunk, 0, n)
	i, j := 0, 0
	for i != n || j != m {
		node := bestNodes.get(i, j)
		if math.IsInf(node.score, -1) {
			// No outgoing chunk was ever recorded from here: the
			// lattice failed to anchor, which admissibility rules out
			// for any (i,j) reachable from (0,0).
			return nil, ErrIncompletePath
		}
		path = append(path, Chunk{SurfaceEnd: node.nextP, PhonemeEnd: node.nextQ})
		i, j = node.nextP, node.nextQ
	}
	return path, nil
}

// chunkPieces expands a decoded alignment for (surface, phoneme) into
// the (surfaceSlice, phonemeSlice) pair of each chunk, used by the
// merge pass to compare adjacent chunks by content.
func chunkPieces(surface, phoneme string, alignment []Chunk) [][2]string {
	pieces := make([][2]string, len(alignment))
	surfaceStart, phonemeStart := 0, 0
	surfaceRunes, phonemeRunes := []rune(surface), []rune(phoneme)
	for idx, c := range alignment {
		pieces[idx] = [2]string{
			string(surfaceRunes[surfaceStart:c.SurfaceEnd]),
			string(phonemeRunes[phonemeStart:c.PhonemeEnd]),
		}
		surfaceStart, phonemeStart = c.SurfaceEnd, c.PhonemeEnd
	}
	return pieces
}

// pieceKey is the composite-string identity of one chunk's
// (surfaceSlice, phonemeSlice), used as a map key in the adjacency
// tally below.
func pieceKey(piece [2]string) string {
	return compositeKey(piece[0], piece[1])
}

// adjTally tracks the single neighbor observed so far for one chunk
// (keyed by its piece identity): piece is that neighbor, and unique
// records whether every observation so far has agreed on it. Once a
// second, different neighbor appears, unique is pinned false and
// never reset — Next(c)/Prev(c) having exactly one element is exactly
// "every observation agreed".
type adjTally struct {
	piece  [2]string
	unique bool
}

// recordAdjacency folds one more observed neighbor into tallies[key].
func recordAdjacency(tallies map[string]adjTally, key string, other [2]string) {
	existing, seen := tallies[key]
	if !seen {
		tallies[key] = adjTally{piece: other, unique: true}
		return
	}
	if existing.unique && existing.piece != other {
		tallies[key] = adjTally{piece: existing.piece, unique: false}
	}
}

// mergeAlignments implements §4.5's merge pass: from the current
// phoneme map, compute Next(c) and Prev(c) for every chunk c across
// all alignments, mark (c, c') mergeable when Next(c) = {c'} or
// Prev(c') = {c}, then rewrite every alignment in one left-to-right,
// greedy, non-iterated pass that fuses mergeable adjacent chunks.
func mergeAlignments(phonemeMap *AlignmentMap) {
	next := make(map[string]adjTally)
	prev := make(map[string]adjTally)

	phonemeMap.ForEach(func(surface, phoneme string, alignment []Chunk) {
		pieces := chunkPieces(surface, phoneme, alignment)
		for idx, piece := range pieces {
			key := pieceKey(piece)
			if idx+1 < len(pieces) {
				recordAdjacency(next, key, pieces[idx+1])
			}
			if idx > 0 {
				recordAdjacency(prev, key, pieces[idx-1])
			}
		}
	})

	mergeable := NewQuadSet()
	phonemeMap.ForEach(func(surface, phoneme string, alignment []Chunk) {
		pieces := chunkPieces(surface, phoneme, alignment)
		for _, piece := range pieces {
			key := pieceKey(piece)
			if tally, ok := next[key]; ok && tally.unique {
				mergeable.Insert(piece[0], piece[1], tally.piece[0], tally.piece[1])
			}
			if tally, ok := prev[key]; ok && tally.unique {
				mergeable.Insert(tally.piece[0], tally.piece[1], piece[0], piece[1])
			}
		}
	})

	phonemeMap.ForEachMut(func(surface, phoneme string, alignment *[]Chunk) {
		*alignment = mergeOne(surface, phoneme, *alignment, mergeable)
	})
}

// mergeOne rewrites one alignment left-to-right: whenever the
// last-emitted chunk and the current chunk form a mergeable pair
// (per the quadruples gathered above), the last chunk's endpoints are
// extended to cover both and the current chunk is dropped; otherwise
// the current chunk is appended. After a merge, the extended chunk's
// combined slices are what is checked against the next chunk. This is
// a single greedy pass over the mergeable set computed before the
// rewrite; that set is not recomputed and the pass is not iterated to a
// fixed point (§9, "merge pass unidirectionality").
func mergeOne(surface, phoneme string, alignment []Chunk, mergeable *QuadSet) []Chunk {
	if len(alignment) == 0 {
		return alignment
	}
	pieces := chunkPieces(surface, phoneme, alignment)

	merged := make([]Chunk, 0, len(alignment))
	merged = append(merged, alignment[0])
	lastPiece := pieces[0]

	for idx := 1; idx < len(alignment); idx++ {
		curPiece := pieces[idx]
		if mergeable.Contains(lastPiece[0], lastPiece[1], curPiece[0], curPiece[1]) {
			last := &merged[len(merged)-1]
			last.SurfaceEnd = alignment[idx].SurfaceEnd
			last.PhonemeEnd = alignment[idx].PhonemeEnd
			lastPiece = [2]string{lastPiece[0] + curPiece[0], lastPiece[1] + curPiece[1]}
			continue
		}
		merged = append(merged, alignment[idx])
		lastPiece = curPiece
	}
	return merged
}
