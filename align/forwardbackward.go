package align

import "math"

// Alpha computes the forward log-probability grid for one training
// pair. grid is resized to (n+1) x (m+1) and reused across pairs to
// amortize allocation over the dataset (§9, "scratch reuse").
//
// alpha[0,0] = 0; every other cell starts at -Inf. For every
// admissible chunk (i..p, j..q), in forward order:
//
//	alpha[p,q] <- logsumexp(alpha[p,q], alpha[i,j] + Score(.)*distance)
func Alpha(surface, phoneme []rune, scores *ScoreMap, grid *Grid) {
	n, m := len(surface), len(phoneme)
	grid.Resize(n+1, m+1, math.Inf(-1))
	grid.set(0, 0, 0)

	forEachChunk(n, m, func(i, p, j, q int) {
		score := scores.MustGet(string(surface[i:p]), string(phoneme[j:q]))
		weighted := score * cityBlockDistance(i, p, j, q)
		grid.set(p, q, logsumexp(grid.get(p, q), grid.get(i, j)+weighted))
	})
}

// Beta computes the backward log-probability grid for one training
// pair, the mirror image of Alpha: beta[n,m] = 0, every other cell
// starts at -Inf, and every admissible chunk is folded in reverse
// order:
//
//	beta[i,j] <- logsumexp(beta[i,j], beta[p,q] + Score(.)*distance)
func Beta(surface, phoneme []rune, scores *ScoreMap, grid *Grid) {
	n, m := len(surface), len(phoneme)
	grid.Resize(n+1, m+1, math.Inf(-1))
	grid.set(n, m, 0)

	forEachChunkReverse(n, m, func(i, p, j, q int) {
		score := scores.MustGet(string(surface[i:p]), string(phoneme[j:q]))
		weighted := score * cityBlockDistance(i, p, j, q)
		grid.set(i, j, logsumexp(grid.get(i, j), grid.get(p, q)+weighted))
	})
}

// Gamma accumulates the log-domain posterior mass of every admissible
// chunk of one training pair into gammas, which is shared (and summed
// into) across every pair processed within one E-step. Z is the
// pair's total log-partition, alpha[n,m] (equivalently beta[0,0]).
func Gamma(surface, phoneme []rune, scores *ScoreMap, alpha, beta *Grid, gammas *ScoreMap) {
	n, m := len(surface), len(phoneme)
	z := beta.get(0, 0)

	forEachChunkReverse(n, m, func(i, p, j, q int) {
		surfaceKey := string(surface[i:p])
		phonemeKey := string(phoneme[j:q])
		score := scores.MustGet(surfaceKey, phonemeKey)
		weighted := score * cityBlockDistance(i, p, j, q)

		prior, ok := gammas.Get(surfaceKey, phonemeKey)
		if !ok {
			prior = math.Inf(-1)
		}
		posterior := logsumexp(prior, alpha.get(i, j)+beta.get(p, q)+weighted-z)
		gammas.Insert(surfaceKey, phonemeKey, posterior)
	})
}
