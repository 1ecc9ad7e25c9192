package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// nullableGrammar is the dragon book's example used to illustrate FOLLOW
// when a nonterminal's suffix can vanish:
//
//	S -> A B C
//	A -> a | ε
//	B -> b | ε
//	C -> c
func nullableGrammar() CFG {
	var g CFG
	for _, t := range []string{"a", "b", "c"} {
		g.AddTerminal(t)
	}
	g.AddRule("S", []string{"A", "B", "C"})
	g.AddRule("A", []string{"a"})
	g.AddRule("A", Production{""})
	g.AddRule("B", []string{"b"})
	g.AddRule("B", Production{""})
	g.AddRule("C", []string{"c"})
	return g
}

func TestAnalyze_Nullable(t *testing.T) {
	g := nullableGrammar()
	a := Analyze(g)

	assert.True(t, a.Nullable("A"))
	assert.True(t, a.Nullable("B"))
	assert.False(t, a.Nullable("C"))
	assert.False(t, a.Nullable("S"))
}

func TestAnalyze_First(t *testing.T) {
	g := nullableGrammar()
	a := Analyze(g)

	assert.True(t, a.FIRST("S").Has("a"))
	assert.True(t, a.FIRST("S").Has("b"))
	assert.True(t, a.FIRST("S").Has("c"))
	assert.False(t, a.FIRST("S").Has(""))
}

func TestAnalyze_FollowPropagatesThroughNullableSuffix(t *testing.T) {
	g := nullableGrammar()
	a := Analyze(g)

	// A's suffix in S -> A B C is "B C"; since B is nullable, FIRST(B)-{ε}
	// and (because B is nullable) FIRST(C) both land in FOLLOW(A).
	assert.True(t, a.FOLLOW("A").Has("b"))
	assert.True(t, a.FOLLOW("A").Has("c"))

	// B's suffix is "C", not nullable, so only FIRST(C) lands in FOLLOW(B).
	assert.True(t, a.FOLLOW("B").Has("c"))

	// C is the grammar's last symbol, so FOLLOW(C) includes end-of-input.
	assert.True(t, a.FOLLOW("C").Has("$"))
}

func TestAnalyze_StartSymbolFollowHasEndMarker(t *testing.T) {
	g := buildArithmeticGrammar()
	a := Analyze(g)
	assert.True(t, a.FOLLOW("E").Has("$"))
	assert.True(t, a.FOLLOW("E").Has(")"))
}

func TestFirstOfString_EpsilonOnlyWhenEveryConstituentIsNullable(t *testing.T) {
	g := nullableGrammar()
	a := Analyze(g)

	assert.True(t, a.FirstOfString([]string{"A", "B"}).Has(""))
	assert.False(t, a.FirstOfString([]string{"A", "B", "C"}).Has(""))
}
