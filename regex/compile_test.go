package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosieBaish/compilerkit/automaton"
)

// acceptsViaDFA compiles pattern, subset-constructs its NFA, and reports
// whether the resulting DFA accepts input after consuming it in full.
func acceptsViaDFA(t *testing.T, pattern, input string) bool {
	t.Helper()
	ast, err := Parse(pattern)
	require.NoError(t, err)

	nfa := ToNFA(ast, true)
	dfa := nfa.ToDFA()

	state := dfa.Start
	for _, r := range input {
		next := dfa.Next(state, string(r))
		if next == "" {
			return false
		}
		state = next
	}
	return dfa.IsAccepting(state)
}

func TestToNFA_Concatenation(t *testing.T) {
	assert.True(t, acceptsViaDFA(t, "ab", "ab"))
	assert.False(t, acceptsViaDFA(t, "ab", "a"))
	assert.False(t, acceptsViaDFA(t, "ab", "abc"))
}

func TestToNFA_Alternation(t *testing.T) {
	assert.True(t, acceptsViaDFA(t, "(a+b)", "a"))
	assert.True(t, acceptsViaDFA(t, "(a+b)", "b"))
	assert.False(t, acceptsViaDFA(t, "(a+b)", "c"))
}

func TestToNFA_KleeneStar(t *testing.T) {
	assert.True(t, acceptsViaDFA(t, "a*", ""))
	assert.True(t, acceptsViaDFA(t, "a*", "a"))
	assert.True(t, acceptsViaDFA(t, "a*", "aaaa"))
	assert.False(t, acceptsViaDFA(t, "a*", "aab"))
}

func TestToNFA_CombinedExpression(t *testing.T) {
	// (a+b)*c
	assert.True(t, acceptsViaDFA(t, "(a+b)*c", "c"))
	assert.True(t, acceptsViaDFA(t, "(a+b)*c", "ababbac"))
	assert.False(t, acceptsViaDFA(t, "(a+b)*c", "ababba"))
}

func TestToNFA_Epsilon(t *testing.T) {
	assert.True(t, acceptsViaDFA(t, "''", ""))
	assert.False(t, acceptsViaDFA(t, "''", "a"))
}

func TestToNFA_UnrelatedInputNeverMatches(t *testing.T) {
	assert.False(t, acceptsViaDFA(t, "(a)", "b")) // sanity: unrelated input never matches
}

func TestMergeNFAs_TagsSurviveIntoSubsetStates(t *testing.T) {
	aAst, _ := Parse("a")
	bAst, _ := Parse("b")

	merged := automaton.MergeNFAs(ToNFA(aAst, "rule-a"), ToNFA(bAst, "rule-b"))
	dfa := merged.ToDFA()

	state := dfa.Start
	next := dfa.Next(state, "a")
	require.NotEmpty(t, next)
	require.True(t, dfa.IsAccepting(next))

	values := dfa.GetValue(next)
	found := false
	for _, s := range values.Elements() {
		if values.Get(s) == "rule-a" {
			found = true
		}
	}
	assert.True(t, found)
}
