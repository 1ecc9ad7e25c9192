// Package regex implements a small regular-expression surface syntax and
// compiles it to a tagged NFA via Thompson construction (component A/B of
// the scanner pipeline). There is no precedence-climbing parser here: the
// grammar is unambiguous by construction — alternation is always written
// `(r+r)`, parenthesised, with `+` as the OR token; juxtaposition is
// concatenation; postfix `*` binds to the atom directly before it — so a
// single left-to-right scan with an explicit paren-depth counter suffices.
package regex

import "fmt"

type Kind int

const (
	KindEmpty Kind = iota // matches no string at all
	KindEpsilon
	KindChar
	KindConcat
	KindOr
	KindStar
)

// Regex is the parsed AST of a regular expression. Only the fields relevant
// to Kind are populated: Char for KindChar, Left/Right for KindConcat and
// KindOr, Inner for KindStar.
type Regex struct {
	Kind  Kind
	Char  rune
	Left  *Regex
	Right *Regex
	Inner *Regex
}

func Empty() *Regex   { return &Regex{Kind: KindEmpty} }
func Eps() *Regex     { return &Regex{Kind: KindEpsilon} }
func Char(r rune) *Regex {
	return &Regex{Kind: KindChar, Char: r}
}

func Concat(l, r *Regex) *Regex {
	if l.Kind == KindEpsilon {
		return r
	}
	if r.Kind == KindEpsilon {
		return l
	}
	return &Regex{Kind: KindConcat, Left: l, Right: r}
}

func Or(l, r *Regex) *Regex {
	return &Regex{Kind: KindOr, Left: l, Right: r}
}

func Star(inner *Regex) *Regex {
	return &Regex{Kind: KindStar, Inner: inner}
}

func (r *Regex) String() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case KindEmpty:
		return "∅"
	case KindEpsilon:
		return "ε"
	case KindChar:
		return fmt.Sprintf("%c", r.Char)
	case KindConcat:
		return r.Left.String() + r.Right.String()
	case KindOr:
		return "(" + r.Left.String() + "+" + r.Right.String() + ")"
	case KindStar:
		return "(" + r.Inner.String() + ")*"
	default:
		return "?"
	}
}
