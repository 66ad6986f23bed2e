package dialect

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/minyyy/spark"
	"github.com/minyyy/spark/types"
)

// Dialect adapts the engine to one backend's SQL vocabulary. Implementations
// are stateless aside from constant lookup tables and must be safe for
// unbounded concurrent use.
type Dialect interface {
	// Name returns the dialect name (e.g. "h2", "postgres").
	Name() string

	// CanHandle reports whether the connection URL designates this backend.
	// Matching is case-insensitive on the URL scheme prefix.
	CanHandle(url string) bool

	// NativeType maps an engine type to the backend's native type.
	// ok is false when the dialect has no mapping; callers then use the
	// engine's default representation. It is never an error.
	NativeType(t types.DataType) (nt types.NativeType, ok bool)

	// Classify turns a backend error into one of the engine's semantic
	// error categories. It is total: the result is never nil for a
	// non-nil err, falling back to an unclassified category.
	Classify(message string, err error) error
}

// ServerError is an error reported by a backend server, carrying the
// vendor-native numeric code alongside the message.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// ServerCode extracts the vendor code from err if a *ServerError is found
// anywhere in its chain. Errors of any other shape report ok=false and
// must skip code-based classification entirely.
func ServerCode(err error) (code int, ok bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// DefaultClassify is the engine's fallback classifier. It always produces
// a category: an unclassified error preserving the message verbatim and
// wrapping err as the cause.
func DefaultClassify(message string, err error) error {
	return spark.NewUnclassifiedError(message, err)
}

// DefaultNativeType is the engine's dialect-agnostic type mapping.
// Dialects delegate here for every type they do not special-case.
func DefaultNativeType(t types.DataType) (types.NativeType, bool) {
	switch t := t.(type) {
	case types.String:
		return types.NativeType{Name: "VARCHAR", Code: types.CodeVarchar}, true
	case types.Bool:
		return types.NativeType{Name: "BOOLEAN", Code: types.CodeBoolean}, true
	case types.Int8:
		return types.NativeType{Name: "TINYINT", Code: types.CodeTinyInt}, true
	case types.Int16:
		return types.NativeType{Name: "SMALLINT", Code: types.CodeSmallInt}, true
	case types.Int32:
		return types.NativeType{Name: "INTEGER", Code: types.CodeInteger}, true
	case types.Int64:
		return types.NativeType{Name: "BIGINT", Code: types.CodeBigInt}, true
	case types.Float32:
		return types.NativeType{Name: "REAL", Code: types.CodeReal}, true
	case types.Float64:
		return types.NativeType{Name: "DOUBLE PRECISION", Code: types.CodeDouble}, true
	case types.Bytes:
		return types.NativeType{Name: "BLOB", Code: types.CodeBlob}, true
	case types.Time:
		return types.NativeType{Name: "TIMESTAMP", Code: types.CodeTimestamp}, true
	case types.Date:
		return types.NativeType{Name: "DATE", Code: types.CodeDate}, true
	case types.UUID:
		return types.NativeType{Name: "UUID", Code: types.CodeUUID}, true
	case types.Decimal:
		return types.NativeType{
			Name: fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale),
			Code: types.CodeNumeric,
		}, true
	}
	return types.NativeType{}, false
}

// registry holds all registered dialects in registration order.
// First CanHandle match wins, so order is preserved.
var registry struct {
	sync.RWMutex
	dialects []Dialect
}

// Register adds a dialect to the engine registry. It is typically called
// from a dialect package's init function.
func Register(d Dialect) {
	registry.Lock()
	defer registry.Unlock()
	registry.dialects = append(registry.dialects, d)
}

// For returns the first registered dialect that can handle the given
// connection URL, or Default if none matches.
func For(url string) Dialect {
	registry.RLock()
	defer registry.RUnlock()
	for _, d := range registry.dialects {
		if d.CanHandle(url) {
			return d
		}
	}
	return Default
}

// Default is the engine's ANSI fallback dialect. It claims no URLs, maps
// types with DefaultNativeType and classifies with DefaultClassify.
var Default Dialect = defaultDialect{}

type defaultDialect struct{}

func (defaultDialect) Name() string { return "default" }

func (defaultDialect) CanHandle(string) bool { return false }

func (defaultDialect) NativeType(t types.DataType) (types.NativeType, bool) {
	return DefaultNativeType(t)
}

func (defaultDialect) Classify(message string, err error) error {
	return DefaultClassify(message, err)
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
// Dialect matchers use it to test URL schemes.
func HasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
