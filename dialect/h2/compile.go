package h2

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/minyyy/spark/dialect/sql"
)

// Extended statistical aggregates H2 supports beyond the standard forms.
const (
	varPop     = "VAR_POP"
	varSamp    = "VAR_SAMP"
	stddevPop  = "STDDEV_POP"
	stddevSamp = "STDDEV_SAMP"
	covarPop   = "COVAR_POP"
	covarSamp  = "COVAR_SAMP"
	corr       = "CORR"
)

// widthBucket is unsupported by H2. The generic compiler can render it,
// so the override must reject it before invalid SQL reaches the server.
const widthBucket = "WIDTH_BUCKET"

// CompileExpr renders e as H2 SQL. Compilation is best-effort: any
// rendering fault, including the deliberate rejection of functions H2
// lacks, is logged and reported as a decline so the engine falls back
// to client-side evaluation instead of failing the query plan.
func (d Dialect) CompileExpr(e sql.Expr) (string, bool) {
	c := &sql.Compiler{VisitFunc: visitFunc}
	s, err := c.Compile(e)
	if err != nil {
		slog.Warn("h2: cannot push down expression", "expr", sql.Sprint(e), "err", err)
		return "", false
	}
	return s, true
}

// visitFunc rejects scalar functions H2 cannot express. Every other
// name falls through to the generic rendering unchanged.
func visitFunc(f *sql.Func) (string, bool, error) {
	switch strings.ToUpper(f.Name) {
	case widthBucket:
		return "", false, fmt.Errorf("%w by h2: %s", sql.ErrUnsupported, widthBucket)
	}
	return "", false, nil
}

// CompileAggregate renders the aggregate call as H2 SQL. The standard
// forms are tried first; on decline, H2's extended statistical set is
// matched by name. Unknown names decline so the engine evaluates the
// aggregate client-side.
//
// The engine only requests the extended functions with their fixed
// arity (one child for the variance/stddev family, two for
// covariance/correlation). A mismatch is a contract bug on the engine
// side and panics rather than silently mis-rendering the aggregate.
func (d Dialect) CompileAggregate(a *sql.AggregateFunc) (string, bool) {
	if s, ok := sql.CompileAggregate(a); ok {
		return s, true
	}
	name := strings.ToUpper(a.Name)
	switch name {
	case varPop, varSamp, stddevPop, stddevSamp:
		assertArity(name, a.Args, 1)
		return sql.RenderAggregate(name, a.Distinct, a.Args[0]), true
	case covarPop, covarSamp, corr:
		assertArity(name, a.Args, 2)
		return sql.RenderAggregate(name, a.Distinct, a.Args[0], a.Args[1]), true
	}
	return "", false
}

func assertArity(name string, args []string, want int) {
	if len(args) != want {
		panic(fmt.Sprintf("h2: %s expects %d argument(s), got %d", name, want, len(args)))
	}
}
