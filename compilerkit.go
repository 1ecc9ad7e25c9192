// Package compilerkit ties the lexer, grammar analysis, and SLR(1) parser
// packages together into a single compiled Spec: give it token rules, a
// grammar, and a set of reduction callbacks, and it hands back something
// that turns source text into a semantic value.
package compilerkit

import (
	"fmt"

	"github.com/RosieBaish/compilerkit/grammar"
	"github.com/RosieBaish/compilerkit/lex"
	"github.com/RosieBaish/compilerkit/lr"
	"github.com/RosieBaish/compilerkit/parse"
)

// Spec is a compiled lexer+grammar+table, ready to parse source text.
type Spec struct {
	lexer *lex.Lexer
	gram  grammar.CFG
	table *lr.Table
}

// New compiles rules and g into a Spec. It fails if any rule's pattern
// doesn't parse, or if g is not SLR(1) (BuildSLR1 returns a *lr.ConflictError
// in that case).
func New(rules []lex.Rule, g grammar.CFG) (*Spec, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("compilerkit: %w", err)
	}

	l, err := lex.New(rules)
	if err != nil {
		return nil, fmt.Errorf("compilerkit: %w", err)
	}

	table, err := lr.BuildSLR1(g)
	if err != nil {
		return nil, fmt.Errorf("compilerkit: %w", err)
	}

	return &Spec{lexer: l, gram: g, table: table}, nil
}

// Table exposes the built ACTION/GOTO table, e.g. for diagnostics
// (table.String()) or for persist.EncodeTable.
func (s *Spec) Table() *lr.Table {
	return s.table
}

// Grammar returns the grammar this Spec was built from.
func (s *Spec) Grammar() grammar.CFG {
	return s.gram
}

// Parse lexes src and parses the resulting tokens, applying actions'
// reductions to produce a single semantic value.
func (s *Spec) Parse(src string, actions parse.Actions) (any, error) {
	tokens, err := s.lexer.Scan(src)
	if err != nil {
		return nil, fmt.Errorf("compilerkit: %w", err)
	}

	p := parse.New(s.table, s.gram, actions)
	val, err := p.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("compilerkit: %w", err)
	}
	return val, nil
}
