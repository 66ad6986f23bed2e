package sql

import (
	"fmt"
	"strings"
)

// Expr is a node in an engine-owned expression tree. Dialects read
// expression trees during pushdown compilation but never mutate them.
type Expr interface {
	expr()
}

// Column references a column by name.
type Column struct {
	Name string
}

// Literal is a constant value. Supported kinds are strings, booleans,
// integers, floats, time.Time, uuid.UUID and nil.
type Literal struct {
	Value any
}

// Func is a scalar function call.
type Func struct {
	Name string
	Args []Expr
}

// Binary applies an infix operator to two operands.
type Binary struct {
	Op   string
	X, Y Expr
}

// Not negates a boolean expression.
type Not struct {
	X Expr
}

// Raw is pre-rendered SQL text, emitted as-is.
type Raw struct {
	SQL string
}

func (*Column) expr()  {}
func (*Literal) expr() {}
func (*Func) expr()    {}
func (*Binary) expr()  {}
func (*Not) expr()     {}
func (*Raw) expr()     {}

// Sprint returns a compact, human-readable rendering of the tree for
// diagnostics. It is not valid SQL.
func Sprint(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *Column:
		return "col(" + e.Name + ")"
	case *Literal:
		return fmt.Sprintf("lit(%v)", e.Value)
	case *Func:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = Sprint(a)
		}
		return strings.ToUpper(e.Name) + "(" + strings.Join(args, ", ") + ")"
	case *Binary:
		return "(" + Sprint(e.X) + " " + e.Op + " " + Sprint(e.Y) + ")"
	case *Not:
		return "not(" + Sprint(e.X) + ")"
	case *Raw:
		return "raw(" + e.SQL + ")"
	}
	return fmt.Sprintf("<%T>", e)
}

// fingerprint renders a stable identity of the tree for cache keys.
// Unlike Sprint it tags every literal with its Go type, so values of
// distinct kinds that print alike (1 and "1", true and "true") never
// collide on the same key.
func fingerprint(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *Column:
		return "col(" + e.Name + ")"
	case *Literal:
		return fmt.Sprintf("lit(%T:%v)", e.Value, e.Value)
	case *Func:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = fingerprint(a)
		}
		return strings.ToUpper(e.Name) + "(" + strings.Join(args, ", ") + ")"
	case *Binary:
		return "(" + fingerprint(e.X) + " " + e.Op + " " + fingerprint(e.Y) + ")"
	case *Not:
		return "not(" + fingerprint(e.X) + ")"
	case *Raw:
		return "raw(" + e.SQL + ")"
	}
	return fmt.Sprintf("<%T>", e)
}

// ContainsFunc reports whether the tree contains a call to the named
// scalar function. Matching is case-insensitive.
func ContainsFunc(e Expr, name string) bool {
	switch e := e.(type) {
	case *Func:
		if strings.EqualFold(e.Name, name) {
			return true
		}
		for _, a := range e.Args {
			if ContainsFunc(a, name) {
				return true
			}
		}
	case *Binary:
		return ContainsFunc(e.X, name) || ContainsFunc(e.Y, name)
	case *Not:
		return ContainsFunc(e.X, name)
	}
	return false
}
