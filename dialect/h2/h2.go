// Package h2 implements the H2 backend dialect: connection URL
// matching, native type mapping, pushdown compilation overrides, and
// classification of H2 server errors into the engine's semantic
// categories.
package h2

import (
	"fmt"

	"github.com/minyyy/spark/dialect"
	"github.com/minyyy/spark/types"
)

func init() {
	dialect.Register(Dialect{})
}

// URLPrefix is the connection URL scheme registered for H2 backends.
const URLPrefix = "h2:"

// Dialect is the H2 dialect. It is stateless and safe for unbounded
// concurrent use.
type Dialect struct{}

// Name returns the dialect name.
func (Dialect) Name() string { return "h2" }

// CanHandle reports whether the connection URL designates an H2
// backend. Matching is case-insensitive on the URL scheme prefix.
func (Dialect) CanHandle(url string) bool {
	return dialect.HasPrefixFold(url, URLPrefix)
}

// NativeType maps engine types to H2 native types. Text maps to CLOB
// rather than a bounded varchar, byte-sized and small integers share
// SMALLINT, and decimals keep their precision and scale exactly.
// Everything else delegates to the engine default; ok=false means "use
// the engine default representation", never an error.
func (Dialect) NativeType(t types.DataType) (types.NativeType, bool) {
	switch t := t.(type) {
	case types.String:
		return types.NativeType{Name: "CLOB", Code: types.CodeClob}, true
	case types.Bool:
		return types.NativeType{Name: "BOOLEAN", Code: types.CodeBoolean}, true
	case types.Int16, types.Int8:
		return types.NativeType{Name: "SMALLINT", Code: types.CodeSmallInt}, true
	case types.Decimal:
		return types.NativeType{
			Name: fmt.Sprintf("NUMERIC(%d,%d)", t.Precision, t.Scale),
			Code: types.CodeNumeric,
		}, true
	}
	return dialect.DefaultNativeType(t)
}
