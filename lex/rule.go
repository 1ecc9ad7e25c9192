package lex

// Action controls what a Scan does with a rule's matched lexeme.
type Action int

const (
	// Store emits a Token for a match of this rule.
	Store Action = iota
	// Discard drops the matched text (whitespace, comments) without
	// producing a Token.
	Discard
)

// Rule is one named lexical rule: match Pattern, and on the longest match
// either Store a Token of Class or Discard the text and keep scanning.
//
// Rules are tried in the order given to New; when two rules match the same
// longest lexeme, the earlier rule in the slice wins. This is what lets a
// keyword rule be written ahead of a general identifier rule instead of
// requiring negative lookahead.
type Rule struct {
	Class   TokenClass
	Pattern string
	Action  Action
}

func StoreRule(class TokenClass, pattern string) Rule {
	return Rule{Class: class, Pattern: pattern, Action: Store}
}

func DiscardRule(pattern string) Rule {
	return Rule{Class: Class("", "discarded text"), Pattern: pattern, Action: Discard}
}
