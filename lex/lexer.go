package lex

import (
	"fmt"

	"github.com/RosieBaish/compilerkit/automaton"
	"github.com/RosieBaish/compilerkit/regex"
	"github.com/RosieBaish/compilerkit/util"
)

// noRule marks a DFA state that accepts under no rule.
const noRule = -1

// Lexer scans an input string into a stream of Tokens by running all of a
// grammar's lexical Rules at once through a single DFA, in longest-match
// mode, with earlier rules breaking ties.
type Lexer struct {
	rules []Rule
	dfa   automaton.DFA[int]
}

// New compiles rules into a Lexer. Rules are tried in priority order: on a
// tie in match length, the rule appearing earlier in rules wins.
func New(rules []Rule) (*Lexer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("lex: no rules given")
	}

	machines := make([]automaton.NFA[int], len(rules))
	for i, r := range rules {
		ast, err := regex.Parse(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lex: rule %d (%q): %w", i, r.Pattern, err)
		}
		machines[i] = regex.ToNFA(ast, i)
	}

	merged := automaton.MergeNFAs(machines...)
	subsetDFA := merged.ToDFA()

	ruleDFA := reduceToWinningRule(merged, subsetDFA)
	ruleDFA.NumberStates()

	return &Lexer{rules: rules, dfa: ruleDFA}, nil
}

// reduceToWinningRule collapses each DFA state's set of merged NFA states
// down to the single rule index that should win there: the lowest-indexed
// rule whose own accept state is present in the set. A DFA state with no
// accepting NFA state in its set accepts under no rule (noRule).
func reduceToWinningRule(nfa automaton.NFA[int], dfa automaton.DFA[util.SVSet[int]]) automaton.DFA[int] {
	symbols := nfa.InputSymbols().Elements()

	out := automaton.DFA[int]{}
	for _, name := range dfa.States().Elements() {
		out.AddState(name, dfa.IsAccepting(name))
	}
	out.Start = dfa.Start

	for _, name := range dfa.States().Elements() {
		winner := noRule
		if dfa.IsAccepting(name) {
			merged := dfa.GetValue(name)
			for _, nfaState := range merged.Elements() {
				if !nfa.IsAccepting(nfaState) {
					continue
				}
				rule := merged.Get(nfaState)
				if winner == noRule || rule < winner {
					winner = rule
				}
			}
		}
		out.SetValue(name, winner)

		for _, sym := range symbols {
			if next := dfa.Next(name, sym); next != "" {
				out.AddTransition(name, sym, next)
			}
		}
	}

	return out
}

// LexerError reports a position at which no rule could extend a match, or
// at which a match would have consumed zero input.
type LexerError struct {
	Offset int
	Msg    string
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
}

// Scan tokenizes all of input, applying each rule's Action and stopping at
// the first character no rule can consume. Discarded matches (whitespace,
// comments) never appear in the returned slice.
func (l *Lexer) Scan(input string) ([]Token, error) {
	runes := []rune(input)
	var tokens []Token
	pos := 0
	line := 1

	for pos < len(runes) {
		lexeme, ruleIdx, err := l.matchLongest(runes[pos:])
		if err != nil {
			if le, ok := err.(*LexerError); ok {
				le.Offset = pos
			}
			return nil, err
		}

		rule := l.rules[ruleIdx]
		if rule.Action == Store {
			tokens = append(tokens, Token{class: rule.Class, lexeme: lexeme, offset: pos, line: line})
		}
		for _, r := range lexeme {
			if r == '\n' {
				line++
			}
		}
		pos += len([]rune(lexeme))
	}

	tokens = append(tokens, Token{class: EndOfInput, lexeme: "", offset: pos, line: line})
	return tokens, nil
}

// matchLongest delegates to the DFA's own tagged longest-match scan and
// turns its two failure shapes into LexerErrors: no prefix accepted at all,
// or the longest accepted prefix being empty (which would make zero
// progress through the input).
func (l *Lexer) matchLongest(runes []rune) (lexeme string, ruleIdx int, err error) {
	consumed, rule, ok := l.dfa.ScanLongest(string(runes))
	if !ok {
		return "", noRule, &LexerError{Msg: fmt.Sprintf("no rule matches input starting with %q", previewOf(runes))}
	}
	if consumed == 0 {
		return "", noRule, &LexerError{Msg: "rule matched empty input; refusing to make zero progress"}
	}
	return string(runes[:consumed]), rule, nil
}

func previewOf(runes []rune) string {
	const max = 20
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}
