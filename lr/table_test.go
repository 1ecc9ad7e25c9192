package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosieBaish/compilerkit/grammar"
)

func arithmeticGrammar() grammar.CFG {
	var g grammar.CFG
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

func TestBuildSLR1_ArithmeticGrammarHasNoConflicts(t *testing.T) {
	g := arithmeticGrammar()
	table, err := BuildSLR1(g)
	require.NoError(t, err)
	assert.NotEmpty(t, table.BuildID)

	shift := table.Action(table.Initial(), "id")
	assert.Equal(t, Shift, shift.Type)
}

func TestBuildSLR1_AcceptsOnAugmentedStartReduction(t *testing.T) {
	g := arithmeticGrammar()
	table, err := BuildSLR1(g)
	require.NoError(t, err)

	// drive id + id through the table by hand and confirm it reaches accept.
	state := table.Initial()
	input := []string{"id", "+", "id", "$"}
	pos := 0

	var stateStack []string
	var symStack []string
	stateStack = append(stateStack, state)

	for {
		act := table.Action(stateStack[len(stateStack)-1], input[pos])
		switch act.Type {
		case Shift:
			symStack = append(symStack, input[pos])
			stateStack = append(stateStack, act.State)
			pos++
		case Reduce:
			n := len(act.Production)
			if act.Production.IsEpsilon() {
				n = 0
			}
			stateStack = stateStack[:len(stateStack)-n]
			symStack = symStack[:len(symStack)-n]
			next, err := table.Goto(stateStack[len(stateStack)-1], act.Symbol)
			require.NoError(t, err)
			stateStack = append(stateStack, next)
			symStack = append(symStack, act.Symbol)
		case Accept:
			return
		default:
			t.Fatalf("unexpected parse error at input[%d]=%q in state %s", pos, input[pos], stateStack[len(stateStack)-1])
		}
	}
}

func TestBuildSLR1_ConflictingGrammarFails(t *testing.T) {
	// classic dangling-else-style ambiguity: S -> A, A -> a A | a
	// is actually SLR(1)-safe; use a genuinely ambiguous grammar instead:
	// S -> A | B, A -> a, B -> a  (reduce/reduce on lookahead "$": after
	// shifting "a" both A -> a. and B -> a. are complete, and
	// FOLLOW(A) = FOLLOW(B) = {$})
	var g grammar.CFG
	g.AddTerminal("a")
	g.AddRule("S", []string{"A"})
	g.AddRule("S", []string{"B"})
	g.AddRule("A", []string{"a"})
	g.AddRule("B", []string{"a"})

	_, err := BuildSLR1(g)
	require.Error(t, err)
	_, ok := err.(*ConflictError)
	assert.True(t, ok)
}
