// Package sql provides the engine's generic SQL rendering and the
// driver plumbing for executing compiled statements.
//
// # Expression Compilation
//
// Expression trees are engine-owned and immutable; compilation renders
// them into backend SQL text. The generic Compiler handles every node
// shape, and dialects hook scalar function rendering through VisitFunc
// to reject or rewrite functions their backend lacks:
//
//	c := &sql.Compiler{}
//	text, err := c.Compile(&sql.Binary{
//	    Op: ">",
//	    X:  &sql.Column{Name: "price"},
//	    Y:  &sql.Literal{Value: 100},
//	})
//	// (\"price\" > 100)
//
// Compilation is best-effort by design: a dialect that cannot express a
// construct declines (ok=false) and the engine evaluates it
// client-side. A decline is never an error and never aborts the query
// plan.
//
// # Aggregates
//
// AggregateFunc describes an aggregate invocation with pre-rendered
// arguments. CompileAggregate covers the standard forms (COUNT, SUM,
// AVG, MIN, MAX); dialects extend the set with backend-specific
// functions such as H2's statistical aggregates.
//
// # Driver
//
// Driver wraps database/sql with dialect selection from the connection
// URL and classification of every backend error:
//
//	drv, err := sql.Open("postgres", "postgres://localhost/app")
//	_, err = drv.Exec(ctx, "CREATE TABLE t (id INT)")
//	if spark.IsExists(err) {
//	    // table already there
//	}
//
// StatsDriver and DebugDriver wrap a Driver with statistics collection
// and statement logging. A Cache stores compiled pushdown SQL keyed by
// expression fingerprint.
package sql
