// Package dialect provides the database dialect abstraction for the
// spark query engine.
//
// A dialect adapts the engine to one backend's SQL vocabulary: it
// claims connection URLs, maps the engine's portable column types to
// native type names, and classifies backend errors into the engine's
// semantic categories. Dialects that additionally implement the
// sql.Pushdown interface override pushdown compilation of expressions
// and aggregate calls.
//
// # Supported Dialects
//
// The following dialects ship with the engine:
//
//   - h2: H2 database (dialect/h2)
//   - postgres: PostgreSQL (dialect/postgres)
//   - mysql: MySQL/MariaDB (dialect/mysql)
//
// Each dialect package registers itself in init, so importing it for
// side effects is enough:
//
//	import _ "github.com/minyyy/spark/dialect/h2"
//
// # Dialect Selection
//
// The engine selects a dialect once per connection from the URL:
//
//	d := dialect.For("h2:tcp://localhost/~/test")
//	d.Name() // "h2"
//
// URLs no registered dialect claims fall back to Default, an ANSI
// dialect with the engine's generic type mapping and error
// classification.
//
// # Error Classification
//
// Backend errors carry vendor codes. Dialects turn them into the
// engine's semantic categories, so callers branch on meaning instead of
// vendor codes:
//
//	err := d.Classify(msg, &dialect.ServerError{Code: 42101, Message: msg})
//	spark.IsExists(err) // true on H2
//
// Classification is total: errors no dialect recognizes resolve to
// spark.UnclassifiedError with the original error as the cause.
package dialect
