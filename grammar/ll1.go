package grammar

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// LL1Table is the (possibly-conflicting) predictive-parse table keyed by
// nonterminal and lookahead terminal. It exists purely as a diagnostic for
// IsLL1; nothing in this module drives a parse from it, since the shift-
// reduce driver (package parse) uses the SLR(1) table instead.
type LL1Table map[string]map[string]Production

// LLParseTable builds the LL(1) table for g: for each production A -> β and
// each terminal a in FIRST(β) (plus every terminal in FOLLOW(A), when β is
// nullable), set M[A][a] = β. A collision (M[A][a] already set to a
// different production) means g is not LL(1); the cell keeps the production
// set first, the later production is not stored in the table, and each
// collision is described in the returned conflict list, which IsLL1 checks.
func LLParseTable(g CFG) (LL1Table, []string) {
	a := Analyze(g)
	table := LL1Table{}
	var conflicts []string

	for _, nt := range g.NonTerminals() {
		table[nt] = map[string]Production{}
		for _, p := range g.Rule(nt).Productions {
			var firstSet []string
			if p.IsEpsilon() {
				firstSet = []string{}
			} else {
				firstSet = a.FirstOfString(p).Elements()
			}

			set := func(term string) {
				if existing, ok := table[nt][term]; ok && !existing.Equal(p) {
					conflicts = append(conflicts, fmt.Sprintf("%s: %s vs %s on lookahead %q", nt, existing, p, term))
					return
				}
				table[nt][term] = p
			}

			nullable := p.IsEpsilon()
			for _, t := range firstSet {
				if t == "" {
					nullable = true
					continue
				}
				set(t)
			}
			if nullable {
				for _, t := range a.FOLLOW(nt).Elements() {
					set(t)
				}
			}
		}
	}

	return table, conflicts
}

// IsLL1 reports whether g's LL(1) table can be built without any cell
// collisions.
func IsLL1(g CFG) bool {
	_, conflicts := LLParseTable(g)
	return len(conflicts) == 0
}

// String renders the table with dekarrin/rosed, one row per nonterminal and
// one column per terminal that appears in any cell.
func (t LL1Table) String() string {
	termSet := map[string]bool{}
	var nts []string
	for nt, row := range t {
		nts = append(nts, nt)
		for term := range row {
			termSet[term] = true
		}
	}

	var terms []string
	for term := range termSet {
		terms = append(terms, term)
	}

	data := [][]string{append([]string{""}, terms...)}
	for _, nt := range nts {
		row := []string{nt}
		for _, term := range terms {
			cell := ""
			if p, ok := t[nt][term]; ok {
				cell = fmt.Sprintf("%s -> %s", nt, p.String())
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{TableHeaders: true, TableBorders: true}).
		String()
}
