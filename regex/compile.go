package regex

import (
	"fmt"

	"github.com/RosieBaish/compilerkit/automaton"
)

// counter hands out fresh, unique state names within a single ToNFA call.
type counter struct{ n int }

func (c *counter) next() string {
	c.n++
	return fmt.Sprintf("s%d", c.n)
}

// ToNFA compiles r into an NFA via Thompson construction. tag is attached to
// the (single) accepting state of the resulting machine; every other state
// carries the zero value of E. At most two new states and four new edges
// per AST node is the textbook bound; this implementation follows it
// directly rather than special-casing any operator.
func ToNFA[E any](r *Regex, tag E) automaton.NFA[E] {
	c := &counter{}
	nfa, start, accept := build[E](r, c)
	nfa.Start = start
	nfa.SetValue(accept, tag)
	return nfa
}

func build[E any](r *Regex, c *counter) (nfa automaton.NFA[E], start, accept string) {
	switch r.Kind {
	case KindEmpty:
		return createEmptyFA[E](c)
	case KindEpsilon:
		return createEpsilonFA[E](c)
	case KindChar:
		return createSingleSymbolFA[E](c, r.Char)
	case KindConcat:
		return createJuxtapositionFA(c, r.Left, r.Right, build[E])
	case KindOr:
		return createAlternationFA(c, r.Left, r.Right, build[E])
	case KindStar:
		return createKleeneStarFA(c, r.Inner, build[E])
	default:
		panic(fmt.Sprintf("unhandled regex node kind %v", r.Kind))
	}
}

func createEmptyFA[E any](c *counter) (automaton.NFA[E], string, string) {
	var nfa automaton.NFA[E]
	s, a := c.next(), c.next()
	nfa.AddState(s, false)
	nfa.AddState(a, true)
	// no transition from s to a: this machine accepts nothing.
	return nfa, s, a
}

func createEpsilonFA[E any](c *counter) (automaton.NFA[E], string, string) {
	var nfa automaton.NFA[E]
	s, a := c.next(), c.next()
	nfa.AddState(s, false)
	nfa.AddState(a, true)
	nfa.AddTransition(s, automaton.Epsilon, a)
	return nfa, s, a
}

func createSingleSymbolFA[E any](c *counter, ch rune) (automaton.NFA[E], string, string) {
	var nfa automaton.NFA[E]
	s, a := c.next(), c.next()
	nfa.AddState(s, false)
	nfa.AddState(a, true)
	nfa.AddTransition(s, string(ch), a)
	return nfa, s, a
}

// createJuxtapositionFA builds the Thompson construction for concatenation:
// join left's accept to right's start with an ε-move, and no longer treat
// left's old accept (or right's old start) as such.
func createJuxtapositionFA[E any](c *counter, left, right *Regex, rec func(*Regex, *counter) (automaton.NFA[E], string, string)) (automaton.NFA[E], string, string) {
	lNFA, lStart, lAccept := rec(left, c)
	rNFA, rStart, rAccept := rec(right, c)

	merged := mergeDisjoint(lNFA, rNFA)
	demote(&merged, lAccept)
	merged.AddTransition(lAccept, automaton.Epsilon, rStart)

	return merged, lStart, rAccept
}

// createAlternationFA builds the Thompson construction for (r+r): a fresh start
// ε-branches into both operands' starts, and both operands' old accepts
// ε-converge on a fresh shared accept.
func createAlternationFA[E any](c *counter, left, right *Regex, rec func(*Regex, *counter) (automaton.NFA[E], string, string)) (automaton.NFA[E], string, string) {
	lNFA, lStart, lAccept := rec(left, c)
	rNFA, rStart, rAccept := rec(right, c)

	merged := mergeDisjoint(lNFA, rNFA)
	demote(&merged, lAccept)
	demote(&merged, rAccept)

	start, accept := c.next(), c.next()
	merged.AddState(start, false)
	merged.AddState(accept, true)
	merged.AddTransition(start, automaton.Epsilon, lStart)
	merged.AddTransition(start, automaton.Epsilon, rStart)
	merged.AddTransition(lAccept, automaton.Epsilon, accept)
	merged.AddTransition(rAccept, automaton.Epsilon, accept)

	return merged, start, accept
}

// createKleeneStarFA builds the Thompson construction for *: a fresh
// start/accept pair ε-bypasses the inner machine entirely (zero reps) and
// also ε-loops its accept back to its start (more reps).
func createKleeneStarFA[E any](c *counter, inner *Regex, rec func(*Regex, *counter) (automaton.NFA[E], string, string)) (automaton.NFA[E], string, string) {
	iNFA, iStart, iAccept := rec(inner, c)
	demote(&iNFA, iAccept)

	start, accept := c.next(), c.next()
	iNFA.AddState(start, false)
	iNFA.AddState(accept, true)
	iNFA.AddTransition(start, automaton.Epsilon, iStart)
	iNFA.AddTransition(start, automaton.Epsilon, accept)
	iNFA.AddTransition(iAccept, automaton.Epsilon, iStart)
	iNFA.AddTransition(iAccept, automaton.Epsilon, accept)

	return iNFA, start, accept
}

// mergeDisjoint combines two NFAs built from disjoint counter-issued state
// names into one (their state namespaces never collide, so this is a plain
// union of the two state maps).
func mergeDisjoint[E any](a, b automaton.NFA[E]) automaton.NFA[E] {
	merged := automaton.NFA[E]{}
	for _, nfa := range []automaton.NFA[E]{a, b} {
		for _, name := range nfa.States().Elements() {
			merged.AddState(name, nfa.IsAccepting(name))
			merged.SetValue(name, nfa.GetValue(name))
		}
	}
	for _, nfa := range []automaton.NFA[E]{a, b} {
		copyTransitions(nfa, &merged)
	}
	return merged
}

func copyTransitions[E any](from automaton.NFA[E], to *automaton.NFA[E]) {
	for _, name := range from.States().Elements() {
		for sym, edges := range from.TransitionsFrom(name) {
			for _, edge := range edges {
				to.AddTransition(name, sym, edge.Next())
			}
		}
	}
}

// demote removes the "accepting" flag from a state that used to be a
// sub-machine's accept state but is now an interior state once it has been
// spliced into a larger machine by an ε-edge.
func demote[E any](nfa *automaton.NFA[E], state string) {
	nfa.UnsetAccepting(state)
}
