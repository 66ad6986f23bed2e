// Package mysql implements the MySQL/MariaDB backend dialect.
package mysql

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-sql-driver/mysql"

	"github.com/minyyy/spark"
	"github.com/minyyy/spark/dialect"
	"github.com/minyyy/spark/dialect/sql"
	"github.com/minyyy/spark/types"
)

func init() {
	dialect.Register(Dialect{})
}

// MySQL server error numbers this dialect classifies.
const (
	errTableExists = 1050 // table already exists
	errNoSuchTable = 1146 // table doesn't exist
	errBadDB       = 1049 // unknown database
)

// Dialect is the MySQL dialect. It is stateless and safe for
// concurrent use.
type Dialect struct{}

// Name returns the dialect name.
func (Dialect) Name() string { return "mysql" }

// CanHandle reports whether the connection URL designates a MySQL
// backend.
func (Dialect) CanHandle(url string) bool {
	return dialect.HasPrefixFold(url, "mysql://")
}

// NativeType maps engine types to MySQL native types. Text maps to
// LONGTEXT to avoid the row-size limits of bounded varchars, and
// booleans use the conventional TINYINT(1) representation.
func (Dialect) NativeType(t types.DataType) (types.NativeType, bool) {
	switch t := t.(type) {
	case types.String:
		return types.NativeType{Name: "LONGTEXT", Code: types.CodeClob}, true
	case types.Bool:
		return types.NativeType{Name: "TINYINT(1)", Code: types.CodeBoolean}, true
	case types.Bytes:
		return types.NativeType{Name: "LONGBLOB", Code: types.CodeBlob}, true
	case types.Float64:
		return types.NativeType{Name: "DOUBLE", Code: types.CodeDouble}, true
	case types.Decimal:
		return types.NativeType{
			Name: fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale),
			Code: types.CodeNumeric,
		}, true
	}
	return dialect.DefaultNativeType(t)
}

// CompileExpr renders e as MySQL SQL. String literals double
// backslashes because MySQL's default SQL mode treats backslash as an
// escape character inside quoted strings. Rendering faults downgrade
// to a decline so the engine evaluates the expression client-side.
func (Dialect) CompileExpr(e sql.Expr) (string, bool) {
	c := &sql.Compiler{BackslashEscapes: true}
	s, err := c.Compile(e)
	if err != nil {
		slog.Warn("mysql: cannot push down expression", "expr", sql.Sprint(e), "err", err)
		return "", false
	}
	return s, true
}

// CompileAggregate renders the standard aggregate forms.
func (Dialect) CompileAggregate(a *sql.AggregateFunc) (string, bool) {
	return sql.CompileAggregate(a)
}

// Classify reclassifies a MySQL server error into one of the engine's
// semantic categories, falling back to the engine default.
func (Dialect) Classify(message string, err error) error {
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		switch myerr.Number {
		case errTableExists:
			return spark.NewExistsError(message, err)
		case errNoSuchTable:
			return spark.NewNotFoundError(spark.Table, message, err)
		case errBadDB:
			return spark.NewNotFoundError(spark.Namespace, message, err)
		}
	}
	return dialect.DefaultClassify(message, err)
}
