package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildArithmeticGrammar() CFG {
	var g CFG
	for _, t := range []string{"+", "*", "(", ")", "id"} {
		g.AddTerminal(t)
	}
	g.AddRule("E", []string{"E", "+", "T"})
	g.AddRule("E", []string{"T"})
	g.AddRule("T", []string{"T", "*", "F"})
	g.AddRule("T", []string{"F"})
	g.AddRule("F", []string{"(", "E", ")"})
	g.AddRule("F", []string{"id"})
	return g
}

func TestCFG_IsTerminalByCaseConvention(t *testing.T) {
	g := buildArithmeticGrammar()
	assert.True(t, g.IsTerminal("id"))
	assert.False(t, g.IsTerminal("E"))
	assert.True(t, g.IsNonTerminal("E"))
	assert.False(t, g.IsNonTerminal("id"))
}

func TestCFG_FirstRuleAddedIsStartSymbol(t *testing.T) {
	g := buildArithmeticGrammar()
	assert.Equal(t, "E", g.StartSymbol())
}

func TestCFG_Validate(t *testing.T) {
	g := buildArithmeticGrammar()
	require.NoError(t, g.Validate())
}

func TestCFG_ValidateCatchesUndefinedSymbol(t *testing.T) {
	var g CFG
	g.AddTerminal("a")
	g.AddRule("S", []string{"a", "UNDEFINED"})
	require.Error(t, g.Validate())
}

func TestCFG_ValidateCatchesMixedEpsilon(t *testing.T) {
	var g CFG
	g.AddTerminal("a")
	g.AddRule("S", []string{"a", ""})
	require.Error(t, g.Validate())
}

func TestCFG_Augmented(t *testing.T) {
	g := buildArithmeticGrammar()
	aug := g.Augmented()

	assert.NotEqual(t, g.StartSymbol(), aug.StartSymbol())
	rule := aug.Rule(aug.StartSymbol())
	require.Len(t, rule.Productions, 1)
	assert.Equal(t, Production{"E"}, rule.Productions[0])
}

func TestCFG_AugmentedNeverCollides(t *testing.T) {
	var g CFG
	g.AddTerminal("a")
	g.AddRule("E", []string{"a"})
	g.AddRule("E-P", []string{"a"}) // pre-occupy the first candidate name
	aug := g.Augmented()
	assert.NotEqual(t, "E-P", aug.StartSymbol())
}

func TestCFG_IsLeftRecursive(t *testing.T) {
	g := buildArithmeticGrammar()
	assert.True(t, g.IsLeftRecursive("E"))
	assert.False(t, g.IsLeftRecursive("F"))
}

func TestLR0Items_IncludesEpsilonItem(t *testing.T) {
	var g CFG
	g.AddTerminal("a")
	g.AddRule("S", []string{"a"})
	g.AddRule("S", Production{""})

	items := g.LR0Items()
	foundEpsilonItem := false
	for _, it := range items {
		if it.NonTerminal == "S" && len(it.Left) == 0 && len(it.Right) == 0 {
			foundEpsilonItem = true
		}
	}
	assert.True(t, foundEpsilonItem)
}
