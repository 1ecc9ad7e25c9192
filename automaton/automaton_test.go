package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosieBaish/compilerkit/util"
)

func buildAB() NFA[string] {
	var nfa NFA[string]
	nfa.AddState("s0", false)
	nfa.AddState("s1", false)
	nfa.AddState("s2", true)
	nfa.Start = "s0"
	nfa.AddTransition("s0", "a", "s1")
	nfa.AddTransition("s1", "b", "s2")
	nfa.SetValue("s2", "matched")
	return nfa
}

func TestEpsilonClosure_IncludesSelf(t *testing.T) {
	nfa := buildAB()
	closure := nfa.EpsilonClosure("s0")
	assert.True(t, closure.Has("s0"))
	assert.Equal(t, 1, closure.Len())
}

func TestEpsilonClosure_FollowsEpsilonEdges(t *testing.T) {
	var nfa NFA[string]
	nfa.AddState("s0", false)
	nfa.AddState("s1", true)
	nfa.Start = "s0"
	nfa.AddTransition("s0", Epsilon, "s1")

	closure := nfa.EpsilonClosure("s0")
	assert.True(t, closure.Has("s0"))
	assert.True(t, closure.Has("s1"))
}

func TestToDFA_AcceptsSameLanguageAsNFA(t *testing.T) {
	nfa := buildAB()
	dfa := nfa.ToDFA()

	state := dfa.Start
	for _, r := range "ab" {
		next := dfa.Next(state, string(r))
		require.NotEmpty(t, next)
		state = next
	}
	assert.True(t, dfa.IsAccepting(state))
}

func TestToDFA_RejectsStringsOutsideLanguage(t *testing.T) {
	nfa := buildAB()
	dfa := nfa.ToDFA()

	state := dfa.Start
	next := dfa.Next(state, "b")
	assert.Empty(t, next)
}

func TestNumberStates_StartIsAlwaysZero(t *testing.T) {
	nfa := buildAB()
	dfa := nfa.ToDFA()
	dfa.NumberStates()
	assert.Equal(t, "0", dfa.Start)
}

func TestUnsetAccepting(t *testing.T) {
	var nfa NFA[string]
	nfa.AddState("s0", true)
	nfa.UnsetAccepting("s0")
	assert.False(t, nfa.IsAccepting("s0"))
}

func TestTransitionsFrom(t *testing.T) {
	nfa := buildAB()
	transitions := nfa.TransitionsFrom("s0")
	require.Contains(t, transitions, "a")
	assert.Equal(t, "s1", transitions["a"][0].Next())
}

func TestNFA_TestString(t *testing.T) {
	nfa := buildAB()
	assert.True(t, nfa.TestString("ab"))
	assert.False(t, nfa.TestString("a"))
	assert.False(t, nfa.TestString("abc"))
}

func TestDFA_TestString(t *testing.T) {
	nfa := buildAB()
	dfa := nfa.ToDFA()
	assert.True(t, dfa.TestString("ab"))
	assert.False(t, dfa.TestString("a"))
	assert.False(t, dfa.TestString("abc"))
}

// buildPrefixAccepting builds an NFA where both "a" and "ab" are accepted,
// tagged distinctly, so ScanLongest has a real choice to make.
func buildPrefixAccepting() NFA[int] {
	var nfa NFA[int]
	nfa.AddState("s0", false)
	nfa.AddState("s1", true)
	nfa.AddState("s2", true)
	nfa.Start = "s0"
	nfa.AddTransition("s0", "a", "s1")
	nfa.AddTransition("s1", "b", "s2")
	nfa.SetValue("s1", 1)
	nfa.SetValue("s2", 2)
	return nfa
}

func TestDFA_ScanLongest_PrefersLongerMatch(t *testing.T) {
	dfa := buildPrefixAccepting().ToDFA()
	reduced := TransformDFA(&dfa, func(v util.SVSet[int]) int {
		best := 0
		for _, s := range v.Elements() {
			if tag := v.Get(s); tag > best {
				best = tag
			}
		}
		return best
	})

	consumed, tag, ok := reduced.ScanLongest("abc")
	require.True(t, ok)
	assert.Equal(t, 2, consumed)
	assert.Equal(t, 2, tag)
}

func TestDFA_ScanLongest_NoAcceptedPrefixIsNotOK(t *testing.T) {
	dfa := buildPrefixAccepting().ToDFA()
	reduced := TransformDFA(&dfa, func(v util.SVSet[int]) int { return 0 })

	_, _, ok := reduced.ScanLongest("zzz")
	assert.False(t, ok)
}

func TestMergeNFAs_DisjointStartsBranchIntoEachMachine(t *testing.T) {
	m1 := buildAB()
	var m2 NFA[string]
	m2.AddState("x0", true)
	m2.Start = "x0"
	m2.SetValue("x0", "empty-match")

	merged := MergeNFAs(m1, m2)
	closure := merged.EpsilonClosure(merged.Start)
	assert.True(t, closure.Len() >= 2)
}
