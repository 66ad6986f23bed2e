package sql

import (
	"strings"
)

// AggregateFunc describes an aggregate invocation: the function name,
// the argument expressions already rendered as SQL text, and whether
// the call is DISTINCT-qualified. The descriptor is engine-owned and
// read-only for dialects.
type AggregateFunc struct {
	Name     string
	Distinct bool
	Args     []string
}

// Standard aggregate function names covered by the generic renderer.
const (
	Count = "COUNT"
	Sum   = "SUM"
	Avg   = "AVG"
	Min   = "MIN"
	Max   = "MAX"
)

// CompileAggregate renders the standard aggregate forms. ok is false
// when the function is not a standard aggregate (or has an unexpected
// shape); dialects then try their extended sets before giving up.
func CompileAggregate(a *AggregateFunc) (string, bool) {
	name := strings.ToUpper(a.Name)
	switch name {
	case Count:
		// COUNT(*) takes no DISTINCT qualifier.
		if !a.Distinct && (len(a.Args) == 0 || (len(a.Args) == 1 && a.Args[0] == "*")) {
			return "COUNT(*)", true
		}
		if len(a.Args) != 1 {
			return "", false
		}
		return render(name, a.Distinct, a.Args[0]), true
	case Sum, Avg, Min, Max:
		if len(a.Args) != 1 {
			return "", false
		}
		return render(name, a.Distinct, a.Args[0]), true
	}
	return "", false
}

// render emits FUNC([DISTINCT ]arg1, ...). The DISTINCT qualifier
// appears once, immediately before the first argument.
func render(name string, distinct bool, args ...string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	if distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(strings.Join(args, ", "))
	b.WriteByte(')')
	return b.String()
}

// RenderAggregate emits FUNC([DISTINCT ]arg1, ...) for dialect-specific
// aggregate forms, preserving the argument order as given.
func RenderAggregate(name string, distinct bool, args ...string) string {
	return render(name, distinct, args...)
}
