package corelike

import (
	"log/slog"

	"github.com/corelike/corelike/kernel"
)

// AnchorMode records whether a compiled pattern is implicitly prefixed or
// suffixed by an unbounded wildcard.
type AnchorMode int

const (
	// AnchoredBoth requires the pattern to match the entire row: no
	// leading or trailing '%'.
	AnchoredBoth AnchorMode = iota
	// AnchoredStart requires the pattern to match from the row's first
	// byte, but may match a prefix of it: no leading '%', trailing '%'.
	AnchoredStart
	// AnchoredEnd requires the pattern to match through the row's last
	// byte: leading '%', no trailing '%'.
	AnchoredEnd
	// Floating allows the pattern to match anywhere inside the row:
	// leading and trailing '%'.
	Floating
)

func (a AnchorMode) String() string {
	switch a {
	case AnchoredBoth:
		return "anchored-both"
	case AnchoredStart:
		return "anchored-start"
	case AnchoredEnd:
		return "anchored-end"
	case Floating:
		return "floating"
	default:
		return "unknown"
	}
}

// TokenKind discriminates a compiled pattern's token variants.
type TokenKind int

const (
	// TokenLiteral is a non-empty byte run with no wildcards.
	TokenLiteral TokenKind = iota
	// TokenOneGap is exactly K consecutive '_', a fixed-width skip.
	TokenOneGap
	// TokenFreeGap is one or more '%' collapsed into a single token,
	// absorbing any interleaved '_' into MinSkip.
	TokenFreeGap
)

// Token is one element of a compiled pattern's token list.
type Token struct {
	Kind    TokenKind
	Literal []byte // set iff Kind == TokenLiteral
	K       int    // set iff Kind == TokenOneGap: exact gap width
	MinSkip int    // set iff Kind == TokenFreeGap: minimum bytes the gap must skip
}

// Pattern is an immutable compiled LIKE plan: an anchor mode, an ordered
// token list, and the precomputed search state needed to evaluate it
// against any row.
type Pattern struct {
	Anchor AnchorMode
	Tokens []Token

	// TotalLiteralLen is the sum of every Literal token's length, every
	// OneGap's width, and every FreeGap's MinSkip — the minimum row
	// length any match requires.
	TotalLiteralLen int

	// primaryLiteral is the index into Tokens of the longest Literal
	// token (ties broken by earliest position), or -1 if there is none.
	primaryLiteral int
	primaryKernel  kernel.Kind
	kernels        map[int]kernel.Kernel // Tokens index -> kernel for that literal

	multiLiteral *kernel.AhoCorasickKernel // non-nil when >= 2 Literal tokens
}

// Compile lowers a LIKE source string into an executable Pattern. It never
// fails: any byte sequence is a legal pattern, and malformed-looking
// patterns (repeated '%') are normalized per the tokenization rules below.
func Compile(patternBytes []byte) *Pattern {
	tokens := tokenize(patternBytes)
	anchor := deriveAnchor(tokens)
	p := &Pattern{Anchor: anchor, Tokens: tokens, kernels: make(map[int]kernel.Kernel)}
	p.computeTotalLen()
	p.selectKernels()

	slog.Debug("corelike: pattern compiled", "anchor", anchor.String(), "tokens", len(tokens), "primary_kernel", p.primaryKernel.String())
	return p
}

// tokenize implements spec rules 1-2: scan left to right accumulating
// literal bytes, emitting/extending OneGap on '_' and FreeGap on '%', then
// collapsing adjacent FreeGaps and absorbing adjacent OneGaps into them.
func tokenize(pattern []byte) []Token {
	var raw []Token
	var lit []byte

	flushLiteral := func() {
		if len(lit) > 0 {
			raw = append(raw, Token{Kind: TokenLiteral, Literal: lit})
			lit = nil
		}
	}

	for _, b := range pattern {
		switch b {
		case '_':
			flushLiteral()
			if n := len(raw); n > 0 && raw[n-1].Kind == TokenOneGap {
				raw[n-1].K++
			} else {
				raw = append(raw, Token{Kind: TokenOneGap, K: 1})
			}
		case '%':
			flushLiteral()
			if n := len(raw); n > 0 && raw[n-1].Kind == TokenFreeGap {
				// already collapsed
			} else {
				raw = append(raw, Token{Kind: TokenFreeGap})
			}
		default:
			lit = append(lit, b)
		}
	}
	flushLiteral()

	return collapseGaps(raw)
}

// collapseGaps absorbs a OneGap immediately adjacent to a FreeGap into the
// FreeGap's MinSkip, on either side, and merges adjacent Literal tokens
// (defensive: tokenize above never emits adjacent literals, but Compile's
// invariant is stated independently of that implementation detail).
func collapseGaps(raw []Token) []Token {
	out := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.Kind == TokenLiteral && len(t.Literal) == 0 {
			continue // "An empty literal after tokenization is discarded"
		}

		if t.Kind == TokenOneGap && len(out) > 0 && out[len(out)-1].Kind == TokenFreeGap {
			out[len(out)-1].MinSkip += t.K
			continue
		}
		if t.Kind == TokenFreeGap && len(out) > 0 && out[len(out)-1].Kind == TokenOneGap {
			absorbed := out[len(out)-1].K
			out = out[:len(out)-1]
			t.MinSkip += absorbed
		}
		if t.Kind == TokenFreeGap && len(out) > 0 && out[len(out)-1].Kind == TokenFreeGap {
			out[len(out)-1].MinSkip += t.MinSkip
			continue
		}
		if t.Kind == TokenLiteral && len(out) > 0 && out[len(out)-1].Kind == TokenLiteral {
			out[len(out)-1].Literal = append(out[len(out)-1].Literal, t.Literal...)
			continue
		}
		out = append(out, t)
	}
	return out
}

func deriveAnchor(tokens []Token) AnchorMode {
	startFree := len(tokens) > 0 && tokens[0].Kind == TokenFreeGap
	endFree := len(tokens) > 0 && tokens[len(tokens)-1].Kind == TokenFreeGap

	switch {
	case startFree && endFree:
		return Floating
	case startFree:
		return AnchoredEnd
	case endFree:
		return AnchoredStart
	default:
		return AnchoredBoth
	}
}

func (p *Pattern) computeTotalLen() {
	total := 0
	for _, t := range p.Tokens {
		switch t.Kind {
		case TokenLiteral:
			total += len(t.Literal)
		case TokenOneGap:
			total += t.K
		case TokenFreeGap:
			total += t.MinSkip
		}
	}
	p.TotalLiteralLen = total
}

// selectKernels implements rule 4-5: the longest Literal becomes the
// primary needle (ties to earliest position); auxiliary tables are built
// once, at compile time, for the primary needle and every other literal
// the evaluator will search positionally. When two or more literals exist,
// a multi-literal Aho-Corasick kernel is also built as an evaluator
// optimization (§4.3).
func (p *Pattern) selectKernels() {
	p.primaryLiteral = -1
	bestLen := -1
	var literalIdxs []int

	for i, t := range p.Tokens {
		if t.Kind != TokenLiteral {
			continue
		}
		literalIdxs = append(literalIdxs, i)
		if len(t.Literal) > bestLen {
			bestLen = len(t.Literal)
			p.primaryLiteral = i
		}
	}

	if p.primaryLiteral == -1 {
		p.primaryKernel = kernel.StdFind
		return
	}

	p.primaryKernel = choosePrimaryKernel(p.Tokens[p.primaryLiteral].Literal)
	for _, i := range literalIdxs {
		needle := p.Tokens[i].Literal
		kind := p.primaryKernel
		if i != p.primaryLiteral {
			kind = choosePrimaryKernel(needle)
		}
		p.kernels[i] = kernel.New(kind, needle)
	}

	if len(literalIdxs) >= 2 {
		literals := make([][]byte, len(literalIdxs))
		for j, i := range literalIdxs {
			literals[j] = p.Tokens[i].Literal
		}
		if ac, err := kernel.NewAhoCorasick(literals); err == nil {
			p.multiLiteral = ac
		}
	}
}

// choosePrimaryKernel picks a single-needle kernel kind by length and
// availability, matching spec.md §4.1's "needle length, alphabet density"
// selection signal in its simplest workable form: prefer Short-LUT when the
// needle is small enough and the feature is present, Boyer-Moore for longer
// needles where its sub-linear skips pay off, KMP otherwise.
func choosePrimaryKernel(needle []byte) kernel.Kind {
	switch {
	case len(needle) == 0:
		return kernel.StdFind
	case len(needle) <= 8 && kernel.Available(kernel.ShortLUT):
		return kernel.ShortLUT
	case len(needle) >= 4:
		return kernel.BoyerMoore
	default:
		return kernel.KMP
	}
}
