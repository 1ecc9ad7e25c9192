package grammar

import "github.com/RosieBaish/compilerkit/util"

// Analysis holds the memoized results of running the grammar's fixed-point
// analyses once: FIRST and FOLLOW for every symbol. Nullability is not its
// own fixpoint; nullable(X) is read directly off FIRST(X)'s ε membership,
// which both avoids a second fixed point and keeps the two facts from ever
// disagreeing with each other.
type Analysis struct {
	g      CFG
	first  map[string]util.StringSet
	follow map[string]util.StringSet
}

// Analyze runs FIRST- and FOLLOW-set construction over g and returns the
// memoized result. Symbols are always visited in sorted order within each
// pass, so two calls over the same grammar produce byte-identical sets.
func Analyze(g CFG) Analysis {
	a := Analysis{g: g}
	a.computeFirst()
	a.computeFollow()
	return a
}

// Nullable reports whether sym can derive the empty string.
func (a Analysis) Nullable(sym string) bool {
	return a.FIRST(sym).Has("")
}

// FIRST returns the FIRST set of a single symbol (terminal, nonterminal, or
// ""/epsilon, whose FIRST set is {ε}).
func (a Analysis) FIRST(sym string) util.StringSet {
	if sym == "" {
		return util.StringSetOf([]string{""})
	}
	if a.g.IsTerminal(sym) {
		return util.StringSetOf([]string{sym})
	}
	if s, ok := a.first[sym]; ok {
		return s
	}
	return util.NewStringSet()
}

// FirstOfString computes FIRST(X1 X2 ... Xn) per the standard extension of
// FIRST from symbols to strings: the union of FIRST(Xi) for each prefix of
// symbols that nullable symbols allow reaching, plus ε if every symbol in
// the string is nullable (or the string is empty).
func (a Analysis) FirstOfString(symbols []string) util.StringSet {
	result := util.NewStringSet()
	allNullable := true

	for _, sym := range symbols {
		first := a.FIRST(sym)
		for _, t := range first.Elements() {
			if t != "" {
				result.Add(t)
			}
		}
		if !first.Has("") {
			allNullable = false
			break
		}
	}

	if allNullable {
		result.Add("")
	}

	return result
}

func (a *Analysis) computeFirst() {
	a.first = map[string]util.StringSet{}
	for _, nt := range a.g.NonTerminals() {
		a.first[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range a.g.NonTerminals() {
			rule := a.g.Rule(nt)
			for _, p := range rule.Productions {
				var add util.StringSet
				if p.IsEpsilon() {
					add = util.StringSetOf([]string{""})
				} else {
					add = a.FirstOfString(p)
				}
				for _, t := range add.Elements() {
					if !a.first[nt].Has(t) {
						a.first[nt].Add(t)
						changed = true
					}
				}
			}
		}
	}
}

// edge records a dependency "FOLLOW(to) gets a copy of FOLLOW(from)",
// discovered while scanning productions for trailing nonterminals.
type edge struct {
	from, to string
}

func (a *Analysis) computeFollow() {
	a.follow = map[string]util.StringSet{}
	for _, nt := range a.g.NonTerminals() {
		a.follow[nt] = util.NewStringSet()
	}
	a.follow[a.g.Start].Add("$")

	var edges []edge

	// Phase 1: add FIRST-based contributions and collect dependency edges
	// for the nullable-suffix case, per the standard two production rules:
	//   A -> αBβ       : FOLLOW(B) += FIRST(β) - {ε}
	//   A -> αBβ, β =>* ε (or β empty): FOLLOW(B) += FOLLOW(A)  (an edge)
	for _, nt := range a.g.NonTerminals() {
		rule := a.g.Rule(nt)
		for _, p := range rule.Productions {
			if p.IsEpsilon() {
				continue
			}
			for i, sym := range p {
				if !a.g.IsNonTerminal(sym) {
					continue
				}
				beta := p[i+1:]
				firstBeta := a.FirstOfString(beta)
				for _, t := range firstBeta.Elements() {
					if t != "" {
						a.follow[sym].Add(t)
					}
				}
				if firstBeta.Has("") {
					edges = append(edges, edge{from: nt, to: sym})
				}
			}
		}
	}

	// Phase 2: iterate the dependency edges to a fixed point.
	changed := true
	for changed {
		changed = false
		for _, e := range edges {
			for _, t := range a.follow[e.from].Elements() {
				if !a.follow[e.to].Has(t) {
					a.follow[e.to].Add(t)
					changed = true
				}
			}
		}
	}
}

// FOLLOW returns the FOLLOW set of a nonterminal.
func (a Analysis) FOLLOW(nt string) util.StringSet {
	if s, ok := a.follow[nt]; ok {
		return s
	}
	return util.NewStringSet()
}
