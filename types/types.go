// Package types defines the engine's portable column types and the
// native type descriptors dialects map them to.
//
// A DataType is the engine-side, backend-agnostic description of a column.
// Dialects translate a DataType into a NativeType, the backend's own type
// name and code, during schema generation. The set of variants is closed:
// dialects switch over the concrete types and fall back to the engine
// default for anything they do not special-case.
package types

import "fmt"

// DataType is the engine's portable column type. Implementations are
// value types and safe to share between goroutines.
type DataType interface {
	fmt.Stringer

	// sealed restricts implementations to this package.
	sealed()
}

type (
	// String is a variable-length character type with no declared bound.
	String struct{}

	// Bool is a true/false type.
	Bool struct{}

	// Int8 is a signed 8-bit integer.
	Int8 struct{}

	// Int16 is a signed 16-bit integer.
	Int16 struct{}

	// Int32 is a signed 32-bit integer.
	Int32 struct{}

	// Int64 is a signed 64-bit integer.
	Int64 struct{}

	// Float32 is a single-precision floating point type.
	Float32 struct{}

	// Float64 is a double-precision floating point type.
	Float64 struct{}

	// Bytes is a variable-length binary type.
	Bytes struct{}

	// Time is a timestamp with microsecond precision.
	Time struct{}

	// Date is a calendar date without a time component.
	Date struct{}

	// UUID is a 128-bit universally unique identifier.
	UUID struct{}

	// Interval is an elapsed-time type. Backends disagree on its
	// representation, so no default native mapping exists and columns
	// of this type use the engine's own encoding unless a dialect
	// maps it.
	Interval struct{}

	// Decimal is a fixed-point numeric type. Precision is the total
	// number of digits, Scale the number of digits after the point.
	Decimal struct {
		Precision int
		Scale     int
	}
)

func (String) sealed()   {}
func (Bool) sealed()     {}
func (Int8) sealed()     {}
func (Int16) sealed()    {}
func (Int32) sealed()    {}
func (Int64) sealed()    {}
func (Float32) sealed()  {}
func (Float64) sealed()  {}
func (Bytes) sealed()    {}
func (Time) sealed()     {}
func (Date) sealed()     {}
func (UUID) sealed()     {}
func (Interval) sealed() {}
func (Decimal) sealed()  {}

func (String) String() string   { return "string" }
func (Bool) String() string     { return "bool" }
func (Int8) String() string     { return "int8" }
func (Int16) String() string    { return "int16" }
func (Int32) String() string    { return "int32" }
func (Int64) String() string    { return "int64" }
func (Float32) String() string  { return "float32" }
func (Float64) String() string  { return "float64" }
func (Bytes) String() string    { return "bytes" }
func (Time) String() string     { return "time" }
func (Date) String() string     { return "date" }
func (UUID) String() string     { return "uuid" }
func (Interval) String() string { return "interval" }

func (d Decimal) String() string {
	return fmt.Sprintf("decimal(%d,%d)", d.Precision, d.Scale)
}

// TypeCode identifies the portable SQL type category of a native type.
type TypeCode int

// Portable SQL type codes. The values are stable and may be persisted.
const (
	CodeVarchar TypeCode = iota + 1
	CodeClob
	CodeBoolean
	CodeTinyInt
	CodeSmallInt
	CodeInteger
	CodeBigInt
	CodeReal
	CodeDouble
	CodeNumeric
	CodeBlob
	CodeTimestamp
	CodeDate
	CodeUUID
)

// NativeType describes how a backend physically stores a column: the type
// name as it appears in DDL, plus its portable type code. It is a plain
// value, created on demand and never retained by dialects.
type NativeType struct {
	Name string
	Code TypeCode
}

func (n NativeType) String() string { return n.Name }
