package lr

import (
	"fmt"

	"github.com/RosieBaish/compilerkit/grammar"
)

type ActionType int

const (
	Shift ActionType = iota
	Reduce
	Accept
	Error
)

// Action is one cell of the ACTION table: what the driver does when it
// sees a given lookahead terminal in a given state.
type Action struct {
	Type ActionType

	// Production and Symbol are set when Type is Reduce: the rule to
	// reduce by, A -> Production, reducing to Symbol (A).
	Production grammar.Production
	Symbol     string

	// State is set when Type is Shift: the state to shift into.
	State string
}

func (a Action) String() string {
	switch a.Type {
	case Accept:
		return "accept"
	case Reduce:
		return fmt.Sprintf("reduce %s -> %s", a.Symbol, a.Production)
	case Shift:
		return fmt.Sprintf("shift %s", a.State)
	default:
		return "error"
	}
}

func (a Action) Equal(o Action) bool {
	return a.Type == o.Type && a.Production.Equal(o.Production) && a.Symbol == o.Symbol && a.State == o.State
}

// ConflictError reports that two distinct actions were both valid for the
// same (state, lookahead) cell — the grammar is not SLR(1). The driver
// never resolves this by picking one; table construction fails outright.
type ConflictError struct {
	State   string
	Symbol  string
	First   Action
	Second  Action
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func conflict(state, onInput string, act1, act2 Action) error {
	msg := ""
	switch {
	case act1.Type == Reduce && act2.Type == Shift, act1.Type == Shift && act2.Type == Reduce:
		reduceAct := act1
		if act1.Type == Shift {
			reduceAct = act2
		}
		msg = fmt.Sprintf("shift/reduce conflict in state %s on terminal %q (shift, or reduce %s -> %s)",
			state, onInput, reduceAct.Symbol, reduceAct.Production)
	case act1.Type == Reduce && act2.Type == Reduce:
		msg = fmt.Sprintf("reduce/reduce conflict in state %s on terminal %q (reduce %s -> %s, or reduce %s -> %s)",
			state, onInput, act1.Symbol, act1.Production, act2.Symbol, act2.Production)
	case act1.Type == Accept || act2.Type == Accept:
		other := act2
		if act2.Type == Accept {
			other = act1
		}
		msg = fmt.Sprintf("accept/%s conflict in state %s on terminal %q", actionName(other.Type), state, onInput)
	case act1.Type == Shift && act2.Type == Shift:
		msg = fmt.Sprintf("shift/shift conflict in state %s on terminal %q", state, onInput)
	default:
		msg = fmt.Sprintf("LR action conflict in state %s on terminal %q (%s vs %s)", state, onInput, act1, act2)
	}
	return &ConflictError{State: state, Symbol: onInput, First: act1, Second: act2, Message: msg}
}

func actionName(t ActionType) string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}
