package lr

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"

	"github.com/RosieBaish/compilerkit/grammar"
)

// Table is the SLR(1) ACTION/GOTO table for a grammar, plus enough of the
// canonical collection to answer Action/Goto queries and to render itself
// for diagnostics.
type Table struct {
	collection Collection
	analysis   grammar.Analysis

	// BuildID tags this particular construction run; it plays no role in
	// parsing or in the table's content (two builds of the same grammar
	// produce the same Action/Goto results and the same String() output)
	// and exists only so a cache (see package persist) can tell two builds
	// apart without hashing the whole table.
	BuildID string
}

// BuildSLR1 constructs the ACTION/GOTO table for g using algorithm 4.46
// ("Constructing an SLR-parsing table") from the dragon book: the canonical
// collection of LR(0) item sets gives GOTO directly (component G), and
// ACTION is filled in per state using FOLLOW sets for reduce entries
// (component H). Returns a ConflictError (not wrapped further) if any
// ACTION cell would need more than one action — this module never falls
// back to resolving the conflict in favor of shift.
func BuildSLR1(g grammar.CFG) (*Table, error) {
	collection := BuildCollection(g)
	analysis := grammar.Analyze(collection.GPrime)

	t := &Table{collection: collection, analysis: analysis, BuildID: uuid.NewString()}

	// Walk every state and confirm no cell collides; Action() below
	// recomputes the same cell later during parsing, so this pass exists
	// purely to fail fast at construction time instead of mid-parse.
	terms := append(append([]string{}, collection.GPrime.Terminals()...), "$")
	for _, state := range sortedStates(collection.DFA.States().Elements()) {
		for _, term := range terms {
			if _, err := t.actionFor(state, term); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

func sortedStates(states []string) []string {
	sort.Strings(states)
	return states
}

// Initial returns the start state of the table.
func (t *Table) Initial() string {
	return t.collection.DFA.Start
}

// Goto is the GOTO function: the state reached from state on a nonterminal.
func (t *Table) Goto(state, nonterminal string) (string, error) {
	next := t.collection.Goto(state, nonterminal)
	if next == "" {
		return "", fmt.Errorf("GOTO[%s, %s] is undefined", state, nonterminal)
	}
	return next, nil
}

// Action returns the ACTION table entry for (state, terminal). If none
// applies, it returns an Action of Type Error.
func (t *Table) Action(state, terminal string) Action {
	act, err := t.actionFor(state, terminal)
	if err != nil {
		// construction already checked every registered terminal and "$"
		// in every state; a conflict here can only come from a terminal
		// outside that list.
		return Action{Type: Error}
	}
	return act
}

func (t *Table) actionFor(state, terminal string) (Action, error) {
	gPrime := t.collection.GPrime
	var found Action
	var hasAction bool

	for _, item := range t.collection.Items(state) {
		A := item.NonTerminal
		alpha := item.Left
		beta := item.Right

		// (a) [A -> α.aβ] in Ii, GOTO(Ii, a) = Ij  =>  shift j, for a a terminal.
		if gPrime.IsTerminal(terminal) && len(beta) > 0 && beta[0] == terminal {
			if j := t.collection.Goto(state, terminal); j != "" {
				act := Action{Type: Shift, State: j}
				if hasAction && !found.Equal(act) {
					return Action{}, conflict(state, terminal, found, act)
				}
				found, hasAction = act, true
			}
		}

		// (b) [A -> α.] in Ii  =>  reduce A -> α, for every terminal in FOLLOW(A).
		if len(beta) == 0 && A != gPrime.StartSymbol() && t.analysis.FOLLOW(A).Has(terminal) {
			act := Action{Type: Reduce, Symbol: A, Production: grammar.Production(alpha)}
			if hasAction && !found.Equal(act) {
				return Action{}, conflict(state, terminal, found, act)
			}
			found, hasAction = act, true
		}

		// (c) [S' -> S.] in Ii  =>  accept, on $.
		if terminal == "$" && A == gPrime.StartSymbol() && len(alpha) == 1 && len(beta) == 0 {
			act := Action{Type: Accept}
			if hasAction && !found.Equal(act) {
				return Action{}, conflict(state, terminal, found, act)
			}
			found, hasAction = act, true
		}
	}

	if !hasAction {
		return Action{Type: Error}, nil
	}
	return found, nil
}

// String renders the ACTION/GOTO table for diagnostics.
func (t *Table) String() string {
	states := sortedStates(t.collection.DFA.States().Elements())
	for i, s := range states {
		if s == t.Initial() {
			states[0], states[i] = states[i], states[0]
			break
		}
	}

	terms := append(append([]string{}, t.collection.GPrime.Terminals()...), "$")
	nonTerms := t.collection.GPrime.NonTerminals()

	headers := []string{"state"}
	for _, term := range terms {
		headers = append(headers, "A:"+term)
	}
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt)
	}
	data := [][]string{headers}

	for _, s := range states {
		row := []string{s}
		for _, term := range terms {
			act := t.Action(s, term)
			cell := ""
			switch act.Type {
			case Accept:
				cell = "acc"
			case Shift:
				cell = "s" + act.State
			case Reduce:
				cell = fmt.Sprintf("r(%s->%s)", act.Symbol, act.Production)
			}
			row = append(row, cell)
		}
		for _, nt := range nonTerms {
			cell := ""
			if next, err := t.Goto(s, nt); err == nil {
				cell = next
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}).
		String()
}
