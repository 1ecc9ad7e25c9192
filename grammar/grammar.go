// Package grammar models context-free grammars: symbols, productions, and
// the rule sets built from them, plus the fixed-point analyses (nullable,
// FIRST, FOLLOW) those rules support.
//
// A symbol is a nonterminal when the grammar has a rule for it. A symbol is
// a terminal when it was registered with AddTerminal or, by naming
// convention, when it contains a lowercase letter; a caseless symbol such as
// "+" is a terminal only once registered.
// $ is reserved for end-of-input and is never a symbol a grammar defines.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RosieBaish/compilerkit/util"
)

// Production is the right-hand side of a rule: an ordered list of symbol
// names. Epsilon is the distinguished production meaning "derives the empty
// string" and, per the single-ε-as-whole-RHS invariant, may never appear
// alongside other symbols in the same production.
type Production []string

var (
	Epsilon = Production{""}
)

func (p Production) IsEpsilon() bool {
	return len(p) == 1 && p[0] == ""
}

func (p Production) Copy() Production {
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Rule is all productions for a single nonterminal: A -> β1 | β2 | ...
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) Copy() Rule {
	cp := Rule{NonTerminal: r.NonTerminal, Productions: make([]Production, len(r.Productions))}
	for i := range r.Productions {
		cp.Productions[i] = r.Productions[i].Copy()
	}
	return cp
}

// CFG is a context-free grammar: a set of nonterminals N (the keys of
// rulesByName), a set of terminals T, a set of productions P (the Rules'
// Productions), and a start symbol E.
type CFG struct {
	rulesByName map[string]int
	rules       []Rule
	terminals   util.StringSet
	Start       string
}

// GrammarError reports a malformed grammar: an undefined symbol, a mixed
// epsilon production, a missing start symbol.
type GrammarError struct {
	msg string
}

func (e *GrammarError) Error() string { return e.msg }

func errf(format string, args ...any) error {
	return &GrammarError{msg: fmt.Sprintf(format, args...)}
}

// IsTerminal reports whether a symbol name is a terminal by the uppercase
// convention, unless it was explicitly registered as a terminal via
// AddTerminal (needed for single-character or symbolic terminal names that
// don't have a case at all, like "+" or "$").
func (g CFG) IsTerminal(sym string) bool {
	if g.terminals.Has(sym) {
		return true
	}
	if sym == "" {
		return false
	}
	return strings.ToUpper(sym) != strings.ToLower(sym) && strings.ToUpper(sym) != sym
}

func (g CFG) IsNonTerminal(sym string) bool {
	_, ok := g.rulesByName[sym]
	return ok
}

// AddTerminal registers name as a terminal symbol of the grammar.
func (g *CFG) AddTerminal(name string) {
	if g.terminals == nil {
		g.terminals = util.NewStringSet()
	}
	g.terminals.Add(name)
}

// AddRule adds production as an alternative for nonterminal. The first
// nonterminal ever added becomes the grammar's start symbol if one hasn't
// been set explicitly.
func (g *CFG) AddRule(nonterminal string, production []string) {
	if g.rulesByName == nil {
		g.rulesByName = map[string]int{}
	}

	prod := Production(production)

	idx, ok := g.rulesByName[nonterminal]
	if !ok {
		idx = len(g.rules)
		g.rulesByName[nonterminal] = idx
		g.rules = append(g.rules, Rule{NonTerminal: nonterminal})
		if g.Start == "" {
			g.Start = nonterminal
		}
	}

	g.rules[idx].Productions = append(g.rules[idx].Productions, prod)
}

// Rule returns the Rule for nonterminal, or the zero Rule if it has none.
func (g CFG) Rule(nonterminal string) Rule {
	idx, ok := g.rulesByName[nonterminal]
	if !ok {
		return Rule{NonTerminal: nonterminal}
	}
	return g.rules[idx]
}

func (g CFG) NonTerminals() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.NonTerminal
	}
	sort.Strings(names)
	return names
}

func (g CFG) Terminals() []string {
	return util.Alphabetized(g.terminals)
}

func (g CFG) StartSymbol() string {
	return g.Start
}

// Augmented returns a copy of g with a fresh start symbol E' whose sole
// production is E' -> E, where E is g's original start symbol. The new
// symbol name is guaranteed not to collide with any existing nonterminal.
func (g CFG) Augmented() CFG {
	newStart := g.Start + "-P"
	for g.IsNonTerminal(newStart) {
		newStart += "-P"
	}

	aug := g.Copy()
	aug.rulesByName[newStart] = len(aug.rules)
	aug.rules = append(aug.rules, Rule{NonTerminal: newStart, Productions: []Production{{g.Start}}})
	aug.Start = newStart

	return aug
}

func (g CFG) Copy() CFG {
	cp := CFG{
		rulesByName: make(map[string]int, len(g.rulesByName)),
		rules:       make([]Rule, len(g.rules)),
		terminals:   util.NewStringSet(),
		Start:       g.Start,
	}
	for k, v := range g.rulesByName {
		cp.rulesByName[k] = v
	}
	for i := range g.rules {
		cp.rules[i] = g.rules[i].Copy()
	}
	cp.terminals.AddAll(g.terminals)
	return cp
}

// Validate checks that g has at least one rule, at least one terminal, a
// start symbol, and that every symbol referenced in a production is either
// a declared terminal or a defined nonterminal, and that no production mixes
// Epsilon with other symbols.
func (g CFG) Validate() error {
	if len(g.rules) == 0 {
		return errf("grammar has no rules")
	}
	if g.terminals.Empty() {
		return errf("grammar has no terminals")
	}
	if g.Start == "" {
		return errf("grammar has no start symbol")
	}

	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.IsEpsilon() {
				continue
			}
			for _, sym := range p {
				if sym == "" {
					return errf("production %s -> %s mixes epsilon with other symbols", r.NonTerminal, p)
				}
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					return errf("production %s -> %s references undefined symbol %q", r.NonTerminal, p, sym)
				}
			}
		}
	}

	return nil
}

// IsLeftRecursive reports whether nonterminal can derive a string beginning
// with itself (directly or indirectly), via depth-first search over the
// leading symbols of each production, looking past any leading symbols that
// can derive ε.
func (g CFG) IsLeftRecursive(nonterminal string) bool {
	a := Analysis{g: g}
	a.computeFirst()
	visited := util.NewStringSet()
	var visit func(sym string) bool
	visit = func(sym string) bool {
		if sym == nonterminal && visited.Len() > 0 {
			return true
		}
		if visited.Has(sym) {
			return false
		}
		visited.Add(sym)
		if !g.IsNonTerminal(sym) {
			return false
		}
		for _, p := range g.Rule(sym).Productions {
			if p.IsEpsilon() || len(p) == 0 {
				continue
			}
			for _, x := range p {
				if x == nonterminal {
					return true
				}
				if g.IsNonTerminal(x) && visit(x) {
					return true
				}
				if !a.Nullable(x) {
					break
				}
			}
		}
		return false
	}
	return visit(nonterminal)
}
