package sql

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minyyy/spark/dialect"
)

// ErrUnsupported indicates a construct the target backend cannot
// express. Dialects return it (wrapped) from their function overrides to
// decline pushdown instead of emitting invalid SQL.
var ErrUnsupported = errors.New("sql: expression not supported")

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// escapeStringValue escapes a string value for safe use in a SQL
// literal. Single quotes are doubled per the standard; backslashes are
// doubled only for backends that treat backslash as an escape
// character.
func escapeStringValue(s string, backslashEscapes bool) string {
	// Fast path: if no escaping needed, return as-is
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	// Escape backslashes first, then single quotes
	if backslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	s = strings.ReplaceAll(s, "'", "''")
	return s
}

// Compiler renders expression trees into backend SQL text. The zero
// value renders generic ANSI syntax; dialects set VisitFunc to override
// scalar function rendering. A Compiler is stateless and safe for
// concurrent use.
type Compiler struct {
	// VisitFunc, if non-nil, is consulted for every scalar function
	// call before generic rendering. ok=false falls through to the
	// generic form; a non-nil error aborts compilation.
	VisitFunc func(f *Func) (sql string, ok bool, err error)

	// BackslashEscapes doubles backslashes in string literals for
	// backends that treat backslash as an escape character, such as
	// MySQL in its default SQL mode. ANSI backends leave it unset.
	BackslashEscapes bool
}

// Compile renders e as SQL text. It returns an error for constructs the
// compiler or the dialect cannot express; callers are expected to treat
// any error as "evaluate client-side" rather than failing the query.
func (c *Compiler) Compile(e Expr) (string, error) {
	switch e := e.(type) {
	case nil:
		return "", errors.New("sql: nil expression")
	case *Column:
		if !isValidIdentifier(e.Name) {
			return "", fmt.Errorf("sql: invalid column name %q", e.Name)
		}
		return `"` + e.Name + `"`, nil
	case *Literal:
		return c.literal(e.Value)
	case *Func:
		return c.fn(e)
	case *Binary:
		x, err := c.Compile(e.X)
		if err != nil {
			return "", err
		}
		y, err := c.Compile(e.Y)
		if err != nil {
			return "", err
		}
		return "(" + x + " " + e.Op + " " + y + ")", nil
	case *Not:
		x, err := c.Compile(e.X)
		if err != nil {
			return "", err
		}
		return "(NOT " + x + ")", nil
	case *Raw:
		return e.SQL, nil
	}
	return "", fmt.Errorf("sql: unknown expression node %T", e)
}

func (c *Compiler) fn(f *Func) (string, error) {
	if c.VisitFunc != nil {
		s, ok, err := c.VisitFunc(f)
		if err != nil {
			return "", err
		}
		if ok {
			return s, nil
		}
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		s, err := c.Compile(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return strings.ToUpper(f.Name) + "(" + strings.Join(args, ", ") + ")", nil
}

func (c *Compiler) literal(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + escapeStringValue(v, c.BackslashEscapes) + "'", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return "TIMESTAMP '" + v.UTC().Format("2006-01-02 15:04:05.000000") + "'", nil
	case uuid.UUID:
		return "'" + v.String() + "'", nil
	}
	return "", fmt.Errorf("sql: cannot render literal of type %T", v)
}

// Pushdown is implemented by dialects that translate expressions and
// aggregate calls into backend-native SQL. Both methods decline with
// ok=false; a decline means "evaluate client-side", never a failure.
type Pushdown interface {
	CompileExpr(e Expr) (sql string, ok bool)
	CompileAggregate(a *AggregateFunc) (sql string, ok bool)
}

// CompileExpr compiles e for dialect d. Dialects implementing Pushdown
// apply their overrides; for any other dialect the generic compiler is
// used, with rendering faults logged and downgraded to a decline.
func CompileExpr(d dialect.Dialect, e Expr) (string, bool) {
	if p, ok := d.(Pushdown); ok {
		return p.CompileExpr(e)
	}
	c := &Compiler{}
	s, err := c.Compile(e)
	if err != nil {
		slog.Warn("cannot push down expression", "dialect", d.Name(), "expr", Sprint(e), "err", err)
		return "", false
	}
	return s, true
}

// CompileAggregateFunc compiles the aggregate call for dialect d,
// falling back to the standard forms for dialects without overrides.
func CompileAggregateFunc(d dialect.Dialect, a *AggregateFunc) (string, bool) {
	if p, ok := d.(Pushdown); ok {
		return p.CompileAggregate(a)
	}
	return CompileAggregate(a)
}
