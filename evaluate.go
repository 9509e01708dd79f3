package corelike

import (
	"bytes"
)

// MatchRow reports whether row satisfies plan. It is a pure function: it
// never allocates after Pattern construction and always returns, never
// erroring.
func MatchRow(plan *Pattern, row []byte) bool {
	if len(row) < plan.TotalLiteralLen {
		return false
	}

	// Cheap necessary condition for a multi-literal plan: every literal
	// must occur somewhere in row, found in one linear pass instead of
	// one sequential kernel call per literal. It never changes the
	// verdict, only short-circuits rows that cannot possibly match.
	if plan.multiLiteral != nil && !plan.multiLiteral.ContainsAll(row) {
		return false
	}

	if fast, handled := matchFastPath(plan, row); handled {
		return fast
	}

	return matchGeneral(plan, row)
}

// matchFastPath implements spec.md §4.3's three short-circuits. It returns
// handled=false when none apply, deferring to the general walk — which
// produces the identical result for every input the fast paths also cover.
func matchFastPath(plan *Pattern, row []byte) (result, handled bool) {
	tokens := plan.Tokens

	if len(tokens) == 1 && tokens[0].Kind == TokenFreeGap && tokens[0].MinSkip == 0 {
		return true, true
	}

	if plan.Anchor != AnchoredBoth {
		return false, false
	}

	allLiteralOrGap := true
	for _, t := range tokens {
		if t.Kind == TokenFreeGap {
			allLiteralOrGap = false
			break
		}
	}
	if !allLiteralOrGap {
		return false, false
	}

	onlyLiteral := len(tokens) == 1 && tokens[0].Kind == TokenLiteral
	if onlyLiteral {
		return bytes.Equal(row, tokens[0].Literal), true
	}

	if len(row) != plan.TotalLiteralLen {
		return false, true
	}
	c := 0
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			if !bytes.Equal(row[c:c+len(t.Literal)], t.Literal) {
				return false, true
			}
			c += len(t.Literal)
		case TokenOneGap:
			c += t.K
		}
	}
	return true, true
}

// blockLen returns the total row width a contiguous run of Literal/OneGap
// tokens (a "rigid block": no wildcard gap inside it) occupies once matched.
func blockLen(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == TokenLiteral {
			n += len(t.Literal)
		} else {
			n += t.K
		}
	}
	return n
}

// blockMatchesAt reports whether a rigid block aligns exactly against row
// starting at pos: every Literal sub-token is checked at its fixed offset
// from pos, every OneGap just advances past pos. Because a block has no
// internal wildcard, once pos is fixed the whole block's alignment is fixed
// too — no further search is needed past this point.
func blockMatchesAt(tokens []Token, row []byte, pos int) bool {
	c := pos
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			end := c + len(t.Literal)
			if end > len(row) || !bytes.Equal(row[c:end], t.Literal) {
				return false
			}
			c = end
		case TokenOneGap:
			c += t.K
		}
	}
	return true
}

// matchGeneral walks plan's tokens as a sequence of rigid blocks separated
// by FreeGap tokens. A block that opens the pattern (no leading '%') must
// sit at row offset 0; a block that closes it (no trailing '%') must end
// exactly at len(row) — both positions are fixed by the block's length, so
// no search is needed there. An interior block searches for the leftmost
// occurrence of its leading literal at or after the current offset, but a
// single occurrence is not enough: if the rest of the block fails to align
// behind it, the walk retries the leading literal's next occurrence rather
// than failing outright (spec.md §9's greedy-left semantics with a bounded
// retry, needed whenever a block has more than one token).
func matchGeneral(plan *Pattern, row []byte) bool {
	tokens := plan.Tokens
	n := len(tokens)
	rowLen := len(row)

	c := 0
	tIdx := 0
	for tIdx < n {
		runStart := tIdx
		for tIdx < n && tokens[tIdx].Kind != TokenFreeGap {
			tIdx++
		}
		run := tokens[runStart:tIdx]
		hasTrailingFreeGap := tIdx < n

		if len(run) > 0 {
			switch {
			case runStart == 0:
				// No leading '%': this block opens the row.
				if !blockMatchesAt(run, row, 0) {
					return false
				}
				c = blockLen(run)

			case !hasTrailingFreeGap:
				// No trailing '%': this block must close the row exactly.
				length := blockLen(run)
				start := rowLen - length
				if start < c || !blockMatchesAt(run, row, start) {
					return false
				}
				c = rowLen

			default:
				// Interior block: search the leading literal leftmost at
				// or after c, retrying its next occurrence whenever the
				// rest of the block fails to line up behind it.
				length := blockLen(run)
				k := plan.kernels[runStart]
				searchFrom := c
				for {
					p, ok := k.FindFirst(row, searchFrom)
					if !ok {
						return false
					}
					if blockMatchesAt(run, row, p) {
						c = p + length
						break
					}
					searchFrom = p + 1
				}
			}
		}

		if hasTrailingFreeGap {
			gap := tokens[tIdx]
			if rowLen-c < gap.MinSkip {
				return false
			}
			if tIdx == n-1 {
				c = rowLen
			} else {
				c += gap.MinSkip
			}
			tIdx++
		}
	}

	if plan.Anchor == AnchoredEnd || plan.Anchor == AnchoredBoth {
		return c == rowLen
	}
	return true
}
