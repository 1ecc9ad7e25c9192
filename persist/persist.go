// Package persist round-trips compiled grammar artifacts — a CFG and a
// built SLR(1) Table — to and from bytes, so a grammar or table doesn't
// need to be reconstructed from source by every process that wants to
// parse with it.
package persist

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/RosieBaish/compilerkit/grammar"
	"github.com/RosieBaish/compilerkit/lr"
)

// encodedCFG is the rezi-serializable shape of a grammar.CFG: the type's
// real fields are unexported, so persistence goes through a plain struct of
// the data needed to rebuild an equivalent grammar via AddTerminal/AddRule.
type encodedCFG struct {
	Start       string
	Terminals   []string
	NonTerminals []string
	Productions map[string][][]string
}

func toEncodedCFG(g grammar.CFG) encodedCFG {
	enc := encodedCFG{
		Start:        g.StartSymbol(),
		Terminals:    g.Terminals(),
		NonTerminals: g.NonTerminals(),
		Productions:  map[string][][]string{},
	}
	for _, nt := range enc.NonTerminals {
		rule := g.Rule(nt)
		for _, p := range rule.Productions {
			enc.Productions[nt] = append(enc.Productions[nt], []string(p))
		}
	}
	return enc
}

func fromEncodedCFG(enc encodedCFG) (grammar.CFG, error) {
	var g grammar.CFG
	for _, t := range enc.Terminals {
		g.AddTerminal(t)
	}
	for _, nt := range enc.NonTerminals {
		for _, p := range enc.Productions[nt] {
			g.AddRule(nt, p)
		}
	}
	g.Start = enc.Start

	if err := g.Validate(); err != nil {
		return grammar.CFG{}, fmt.Errorf("persist: decoded grammar is invalid: %w", err)
	}
	return g, nil
}

// EncodeCFG serializes g to bytes.
func EncodeCFG(g grammar.CFG) []byte {
	return rezi.EncBinary(toEncodedCFG(g))
}

// DecodeCFG deserializes bytes produced by EncodeCFG back into a CFG.
func DecodeCFG(data []byte) (grammar.CFG, error) {
	var enc encodedCFG
	if _, err := rezi.DecBinary(data, &enc); err != nil {
		return grammar.CFG{}, fmt.Errorf("persist: decoding grammar: %w", err)
	}
	return fromEncodedCFG(enc)
}

// encodedTable is the on-disk shape of a cached Table: the grammar it was
// built from plus the BuildID that was stamped on it. Table construction
// from a grammar is pure and deterministic (same grammar in, same
// ACTION/GOTO content out), so there's nothing to gain from serializing the
// canonical collection itself — DecodeTable rebuilds it with BuildSLR1 and
// only needs the original grammar to do so.
type encodedTable struct {
	Grammar encodedCFG
	BuildID string
}

// EncodeTable serializes enough of t to reconstruct an equal table later:
// the grammar it was built from (g) and its BuildID.
func EncodeTable(g grammar.CFG, t *lr.Table) []byte {
	enc := encodedTable{Grammar: toEncodedCFG(g), BuildID: t.BuildID}
	return rezi.EncBinary(enc)
}

// DecodeTable deserializes bytes produced by EncodeTable, rebuilding the
// Table via BuildSLR1 against the recovered grammar. The returned BuildID
// is the one stamped at the original build, not a fresh one, so a caller
// using BuildID as a cache key sees the same identity as before the
// round-trip.
func DecodeTable(data []byte) (*lr.Table, error) {
	var enc encodedTable
	if _, err := rezi.DecBinary(data, &enc); err != nil {
		return nil, fmt.Errorf("persist: decoding table: %w", err)
	}

	g, err := fromEncodedCFG(enc.Grammar)
	if err != nil {
		return nil, fmt.Errorf("persist: decoding table's grammar: %w", err)
	}

	t, err := lr.BuildSLR1(g)
	if err != nil {
		return nil, fmt.Errorf("persist: rebuilding table: %w", err)
	}
	t.BuildID = enc.BuildID
	return t, nil
}
