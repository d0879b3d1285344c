// Package regexgen produces strings matching a regular expression by walking
// its parsed syntax tree.
package regexgen

import (
	"regexp/syntax"
	"strings"

	"github.com/speakeasy-api/schemafaker/errors"
)

const (
	// ErrUnsupported is returned for patterns that cannot be parsed or use
	// constructs no string can be generated for.
	ErrUnsupported errors.Error = "unsupported pattern"
)

// MaxRepeat bounds how many times an unbounded repetition (*, + or {n,}) is
// expanded past its minimum.
const MaxRepeat = 8

const (
	printableLo = 0x20
	printableHi = 0x7e
)

// Rand is the randomness the generator draws from.
type Rand interface {
	IntN(n int) int
}

// Generate returns a string that the whole of pattern matches.
func Generate(r Rand, pattern string) (string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", ErrUnsupported.Wrap(err)
	}

	var b strings.Builder
	if err := generate(r, re, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func generate(r Rand, re *syntax.Regexp, b *strings.Builder) error {
	switch re.Op {
	case syntax.OpEmptyMatch,
		syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText:
		return nil
	case syntax.OpNoMatch:
		return ErrUnsupported.Wrapf("%s: matches nothing", re)
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return ErrUnsupported.Wrapf("%s: word boundaries are not supported", re)
	case syntax.OpLiteral:
		for _, c := range re.Rune {
			b.WriteRune(c)
		}
		return nil
	case syntax.OpCharClass:
		c, ok := pickFromClass(r, re.Rune)
		if !ok {
			return ErrUnsupported.Wrapf("%s: empty character class", re)
		}
		b.WriteRune(c)
		return nil
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		b.WriteRune(rune(printableLo + r.IntN(printableHi-printableLo+1)))
		return nil
	case syntax.OpCapture:
		return generate(r, re.Sub[0], b)
	case syntax.OpStar:
		return repeat(r, re.Sub[0], 0, -1, b)
	case syntax.OpPlus:
		return repeat(r, re.Sub[0], 1, -1, b)
	case syntax.OpQuest:
		return repeat(r, re.Sub[0], 0, 1, b)
	case syntax.OpRepeat:
		return repeat(r, re.Sub[0], re.Min, re.Max, b)
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if err := generate(r, sub, b); err != nil {
				return err
			}
		}
		return nil
	case syntax.OpAlternate:
		return generate(r, re.Sub[r.IntN(len(re.Sub))], b)
	default:
		return ErrUnsupported.Wrapf("%s: unknown operator %v", re, re.Op)
	}
}

func repeat(r Rand, re *syntax.Regexp, lo, hi int, b *strings.Builder) error {
	if hi < 0 {
		hi = lo + MaxRepeat
	}
	n := lo + r.IntN(hi-lo+1)
	for range n {
		if err := generate(r, re, b); err != nil {
			return err
		}
	}
	return nil
}

// pickFromClass chooses a rune from the [lo, hi] pairs of a character class,
// staying within printable ASCII whenever the class allows it.
func pickFromClass(r Rand, ranges []rune) (rune, bool) {
	if c, ok := pickFromRanges(r, clip(ranges, printableLo, printableHi)); ok {
		return c, true
	}
	return pickFromRanges(r, ranges)
}

func clip(ranges []rune, lo, hi rune) []rune {
	var out []rune
	for i := 0; i+1 < len(ranges); i += 2 {
		a, z := max(ranges[i], lo), min(ranges[i+1], hi)
		if a <= z {
			out = append(out, a, z)
		}
	}
	return out
}

func pickFromRanges(r Rand, ranges []rune) (rune, bool) {
	total := 0
	for i := 0; i+1 < len(ranges); i += 2 {
		total += int(ranges[i+1]-ranges[i]) + 1
	}
	if total == 0 {
		return 0, false
	}

	n := r.IntN(total)
	for i := 0; i+1 < len(ranges); i += 2 {
		size := int(ranges[i+1]-ranges[i]) + 1
		if n < size {
			return ranges[i] + rune(n), true
		}
		n -= size
	}
	return 0, false
}
