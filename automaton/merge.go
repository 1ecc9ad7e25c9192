package automaton

import "fmt"

// MergeNFAs builds the disjoint union of several tagged NFAs under a fresh
// start state connected to each sub-NFA's start by an ε-move, in the order
// given. Each sub-NFA keeps its own state values; this function does not
// rank the machines. The lexer's priority comes from those values: it tags
// each rule's machine with the rule's index and, when several accept, picks
// the lowest index.
func MergeNFAs[E any](machines ...NFA[E]) NFA[E] {
	merged := NFA[E]{}
	merged.AddState("start", false)
	merged.Start = "start"

	for i, m := range machines {
		prefix := fmt.Sprintf("m%d:", i)
		for _, name := range m.States().Elements() {
			st := m.states[name]
			merged.AddState(prefix+name, st.accepting)
			merged.SetValue(prefix+name, st.value)
		}
		for _, name := range m.States().Elements() {
			st := m.states[name]
			for sym, transitions := range st.transitions {
				for _, t := range transitions {
					merged.AddTransition(prefix+name, sym, prefix+t.next)
				}
			}
		}
		merged.AddTransition("start", Epsilon, prefix+m.Start)
	}

	return merged
}
