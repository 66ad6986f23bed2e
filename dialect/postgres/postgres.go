// Package postgres implements the PostgreSQL backend dialect.
package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/minyyy/spark"
	"github.com/minyyy/spark/dialect"
	"github.com/minyyy/spark/types"
)

func init() {
	dialect.Register(Dialect{})
}

// PostgreSQL SQLSTATE codes this dialect classifies.
const (
	stateDuplicateTable    = "42P07"
	stateUndefinedTable    = "42P01"
	stateInvalidSchemaName = "3F000"
)

// Dialect is the PostgreSQL dialect. It is stateless and safe for
// concurrent use.
type Dialect struct{}

// Name returns the dialect name.
func (Dialect) Name() string { return "postgres" }

// CanHandle reports whether the connection URL designates a PostgreSQL
// backend.
func (Dialect) CanHandle(url string) bool {
	return dialect.HasPrefixFold(url, "postgres://") || dialect.HasPrefixFold(url, "postgresql://")
}

// NativeType maps engine types to PostgreSQL native types. PostgreSQL
// has no single-byte integer, so Int8 widens to SMALLINT.
func (Dialect) NativeType(t types.DataType) (types.NativeType, bool) {
	switch t := t.(type) {
	case types.String:
		return types.NativeType{Name: "TEXT", Code: types.CodeVarchar}, true
	case types.Bytes:
		return types.NativeType{Name: "BYTEA", Code: types.CodeBlob}, true
	case types.Int8:
		return types.NativeType{Name: "SMALLINT", Code: types.CodeSmallInt}, true
	case types.Decimal:
		return types.NativeType{
			Name: fmt.Sprintf("NUMERIC(%d,%d)", t.Precision, t.Scale),
			Code: types.CodeNumeric,
		}, true
	}
	return dialect.DefaultNativeType(t)
}

// Classify reclassifies a PostgreSQL error into one of the engine's
// semantic categories, falling back to the engine default.
func (Dialect) Classify(message string, err error) error {
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		switch string(pqerr.Code) {
		case stateDuplicateTable:
			return spark.NewExistsError(message, err)
		case stateUndefinedTable:
			return spark.NewNotFoundError(spark.Table, message, err)
		case stateInvalidSchemaName:
			return spark.NewNotFoundError(spark.Namespace, message, err)
		}
	}
	return dialect.DefaultClassify(message, err)
}
