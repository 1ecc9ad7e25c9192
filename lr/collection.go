// Package lr builds the canonical collection of LR(0) item sets for a
// grammar and constructs an SLR(1) ACTION/GOTO table from it.
package lr

import (
	"github.com/RosieBaish/compilerkit/automaton"
	"github.com/RosieBaish/compilerkit/grammar"
	"github.com/RosieBaish/compilerkit/util"
)

// ViablePrefixNFA builds the NFA whose states are the LR(0) items of g
// (already augmented) and whose edges are CLOSURE's ε-moves (from
// A -> α.Xβ to every X -> .γ when X is a nonterminal) and GOTO's
// symbol-labeled moves (from A -> α.Xβ to A -> αX.β on X). Subset-
// constructing this NFA (see Collection) gives exactly the canonical
// collection of sets of LR(0) items, since GOTO on the NFA view is just
// "follow the X edge and take the ε-closure" — which is what subset
// construction already does.
func ViablePrefixNFA(gPrime grammar.CFG) automaton.NFA[grammar.LR0Item] {
	nfa := automaton.NFA[grammar.LR0Item]{}

	start := grammar.LR0Item{NonTerminal: gPrime.StartSymbol(), Right: []string{gPrime.Rule(gPrime.StartSymbol()).Productions[0][0]}}
	nfa.Start = start.String()

	items := gPrime.LR0Items()
	for _, item := range items {
		nfa.AddState(item.String(), true)
		nfa.SetValue(item.String(), item)
	}

	for _, item := range items {
		if len(item.Right) < 1 {
			continue
		}

		X := item.Right[0]
		beta := item.Right[1:]

		alpha := make([]string, len(item.Left)+1)
		copy(alpha, item.Left)
		alpha[len(item.Left)] = X

		toItem := grammar.LR0Item{NonTerminal: item.NonTerminal, Left: alpha, Right: beta}
		nfa.AddTransition(item.String(), X, toItem.String())

		if gPrime.IsNonTerminal(X) {
			for _, gamma := range gPrime.Rule(X).Productions {
				var prodItem grammar.LR0Item
				if gamma.IsEpsilon() {
					prodItem = grammar.LR0Item{NonTerminal: X}
				} else {
					right := make([]string, len(gamma))
					copy(right, gamma)
					prodItem = grammar.LR0Item{NonTerminal: X, Right: right}
				}
				nfa.AddTransition(item.String(), automaton.Epsilon, prodItem.String())
			}
		}
	}

	return nfa
}

// Collection is the canonical collection of sets of LR(0) items for a
// grammar, represented as the DFA produced by subset-constructing the
// viable-prefix NFA: each DFA state IS an item set, and the DFA's
// transitions ARE the GOTO function (component G, GOTO(Ii, X) = Ij).
type Collection struct {
	GPrime grammar.CFG
	DFA    automaton.DFA[util.SVSet[grammar.LR0Item]]
	// itemsByState caches the parsed LR0Item for every "ItemString" seen, so
	// callers don't need to re-parse item.String() output.
	itemsByState map[string]grammar.LR0Item
}

// BuildCollection augments g and computes its canonical LR(0) collection.
func BuildCollection(g grammar.CFG) Collection {
	gPrime := g.Augmented()
	nfa := ViablePrefixNFA(gPrime)
	dfa := nfa.ToDFA()
	dfa.NumberStates()

	cache := map[string]grammar.LR0Item{}
	for _, item := range gPrime.LR0Items() {
		cache[item.String()] = item
	}

	return Collection{GPrime: gPrime, DFA: dfa, itemsByState: cache}
}

// Items returns the LR(0) items making up state (a DFA state name).
func (c Collection) Items(state string) []grammar.LR0Item {
	set := c.DFA.GetValue(state)
	items := make([]grammar.LR0Item, 0, set.Len())
	for _, name := range util.Alphabetized(set) {
		items = append(items, c.itemsByState[name])
	}
	return items
}

// Goto is the GOTO function: the state reached from state on symbol, or ""
// if there is none.
func (c Collection) Goto(state, symbol string) string {
	return c.DFA.Next(state, symbol)
}
