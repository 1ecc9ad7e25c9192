package grammar

import "fmt"

// LR0Item is a production with a dot marking how much of it has been
// recognized: NonTerminal -> Left . Right.
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

func (it LR0Item) Equal(o LR0Item) bool {
	if it.NonTerminal != o.NonTerminal || len(it.Left) != len(o.Left) || len(it.Right) != len(o.Right) {
		return false
	}
	for i := range it.Left {
		if it.Left[i] != o.Left[i] {
			return false
		}
	}
	for i := range it.Right {
		if it.Right[i] != o.Right[i] {
			return false
		}
	}
	return true
}

func (it LR0Item) String() string {
	left := joinOrEmpty(it.Left)
	right := joinOrEmpty(it.Right)
	if left != "" {
		left += " "
	}
	if right != "" {
		right = " " + right
	}
	return fmt.Sprintf("%s -> %s.%s", it.NonTerminal, left, right)
}

func joinOrEmpty(symbols []string) string {
	s := ""
	for i, sym := range symbols {
		if i > 0 {
			s += " "
		}
		s += sym
	}
	return s
}

// LR0Items returns every LR(0) item derivable from g's productions: for a
// production A -> X1 X2 ... Xn, the n+1 items with the dot in every
// position (including before X1 and after Xn). A -> ε contributes exactly
// the single item A -> . (dot at the only possible position).
func (g CFG) LR0Items() []LR0Item {
	var items []LR0Item
	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.IsEpsilon() {
				items = append(items, LR0Item{NonTerminal: r.NonTerminal})
				continue
			}
			for dot := 0; dot <= len(p); dot++ {
				left := make([]string, dot)
				copy(left, p[:dot])
				right := make([]string, len(p)-dot)
				copy(right, p[dot:])
				items = append(items, LR0Item{NonTerminal: r.NonTerminal, Left: left, Right: right})
			}
		}
	}
	return items
}
