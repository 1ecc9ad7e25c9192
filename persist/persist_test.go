package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosieBaish/compilerkit/grammar"
	"github.com/RosieBaish/compilerkit/lr"
)

func exprGrammar() grammar.CFG {
	var g grammar.CFG
	g.AddTerminal("+")
	g.AddTerminal("id")
	g.AddRule("E", []string{"E", "+", "id"})
	g.AddRule("E", []string{"id"})
	return g
}

func TestEncodeDecodeCFG_RoundTrips(t *testing.T) {
	g := exprGrammar()

	data := EncodeCFG(g)
	got, err := DecodeCFG(data)
	require.NoError(t, err)

	assert.Equal(t, g.StartSymbol(), got.StartSymbol())
	assert.Equal(t, g.Terminals(), got.Terminals())
	assert.Equal(t, g.NonTerminals(), got.NonTerminals())
	for _, nt := range g.NonTerminals() {
		assert.Equal(t, g.Rule(nt), got.Rule(nt))
	}
}

func TestEncodeDecodeTable_RebuildsEquivalentTable(t *testing.T) {
	g := exprGrammar()
	table, err := lr.BuildSLR1(g)
	require.NoError(t, err)

	data := EncodeTable(g, table)
	got, err := DecodeTable(data)
	require.NoError(t, err)

	assert.Equal(t, table.BuildID, got.BuildID)
	assert.Equal(t, table.String(), got.String())
}
