// Package parse implements the shift-reduce parser driver (component I): it
// walks an ACTION/GOTO table over a token stream, maintaining a parallel
// state stack and semantic-value stack, and invokes a caller-supplied
// reduction callback per production rather than building any particular
// tree shape itself.
package parse

import (
	"fmt"
	"strings"

	"github.com/RosieBaish/compilerkit/grammar"
	"github.com/RosieBaish/compilerkit/lex"
	"github.com/RosieBaish/compilerkit/lr"
	"github.com/RosieBaish/compilerkit/util"
)

// Table is the subset of lr.Table's surface the driver needs; satisfied by
// *lr.Table.
type Table interface {
	Initial() string
	Action(state, terminal string) lr.Action
	Goto(state, nonterminal string) (string, error)
}

// Reduction produces the semantic value for a reduction A -> β, given the
// semantic values already produced for β's symbols, left to right. For a
// terminal in β its "semantic value" is the lex.Token itself.
type Reduction func(values []any) (any, error)

// Actions maps a production (identified by its left-hand nonterminal and
// right-hand side) to the Reduction that builds its semantic value. Keys
// are produced by ActionKey.
type Actions map[string]Reduction

// ActionKey is the Actions map key for a production A -> β.
func ActionKey(nonterminal string, production grammar.Production) string {
	return nonterminal + " -> " + production.String()
}

// ParseError reports an unexpected token: the driver found no ACTION table
// entry for the current state and lookahead.
type ParseError struct {
	Token    lex.Token
	Expected []string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("unexpected %s", e.Token.Class().Human()))
	if len(e.Expected) > 0 {
		sb.WriteString("; expected ")
		sb.WriteString(expectedList(e.Expected))
	}
	return sb.String()
}

func expectedList(expected []string) string {
	if len(expected) == 0 {
		return ""
	}
	return util.ArticleFor(expected[0], false) + " " + util.MakeTextList(expected, "or")
}

// Parser drives a Table over a token stream, producing a single semantic
// value for the whole input via the supplied Actions.
type Parser struct {
	table   Table
	gram    grammar.CFG
	actions Actions
}

func New(table Table, g grammar.CFG, actions Actions) *Parser {
	return &Parser{table: table, gram: g, actions: actions}
}

// Parse runs Algorithm 4.44 ("LR-parsing algorithm") from the dragon book
// over tokens, calling the Reduction registered for each production as it
// is applied, and returns the semantic value produced for the accepted
// input. The state stack and the semantic-value stack are kept in lockstep:
// len(states) == len(values)+1 is maintained as an invariant throughout.
func (p *Parser) Parse(tokens []lex.Token) (any, error) {
	states := util.Stack[string]{Of: []string{p.table.Initial()}}
	values := util.Stack[any]{}

	pos := 0
	next := func() lex.Token {
		if pos >= len(tokens) {
			// tokens is expected to already end with an EndOfInput token;
			// this only triggers if the driver keeps asking for lookahead
			// past it, which means it never reached Accept or Error.
			if len(tokens) > 0 {
				return tokens[len(tokens)-1]
			}
			return lex.Token{}
		}
		tok := tokens[pos]
		pos++
		return tok
	}

	a := next()

	for {
		s := states.Peek()
		act := p.table.Action(s, a.Class().ID())

		switch act.Type {
		case lr.Shift:
			values.Push(a)
			states.Push(act.State)
			a = next()

		case lr.Reduce:
			A := act.Symbol
			beta := act.Production

			n := len(beta)
			if beta.IsEpsilon() {
				n = 0
			}

			children := make([]any, n)
			for i := n - 1; i >= 0; i-- {
				states.Pop()
				children[i] = values.Pop()
			}

			reduce, ok := p.actions[ActionKey(A, beta)]
			if !ok {
				return nil, fmt.Errorf("parse: no reduction registered for %s", ActionKey(A, beta))
			}
			val, err := reduce(children)
			if err != nil {
				return nil, fmt.Errorf("parse: reducing %s: %w", ActionKey(A, beta), err)
			}
			values.Push(val)

			t := states.Peek()
			toPush, err := p.table.Goto(t, A)
			if err != nil {
				return nil, fmt.Errorf("parse: %w", err)
			}
			states.Push(toPush)

		case lr.Accept:
			if values.Len() != 1 {
				return nil, fmt.Errorf("parse: accepted with %d values on the semantic stack, want 1", values.Len())
			}
			return values.Pop(), nil

		default:
			return nil, &ParseError{Token: a, Expected: p.expectedTerminals(s)}
		}

		if states.Len() != values.Len()+1 {
			panic(fmt.Sprintf("parser stack invariant violated: %d states, %d values", states.Len(), values.Len()))
		}
	}
}

// expectedTerminals lists every terminal with a non-Error ACTION entry in
// state, for building a ParseError's Expected list.
func (p *Parser) expectedTerminals(state string) []string {
	var expected []string
	for _, term := range append(p.gram.Terminals(), "$") {
		if p.table.Action(state, term).Type != lr.Error {
			expected = append(expected, term)
		}
	}
	return expected
}
