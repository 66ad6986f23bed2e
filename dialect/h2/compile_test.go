package h2_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/minyyy/spark/dialect/h2"
	"github.com/minyyy/spark/dialect/sql"
)

func TestCompileExpr(t *testing.T) {
	d := h2.Dialect{}

	t.Run("Generic", func(t *testing.T) {
		s, ok := d.CompileExpr(&sql.Binary{
			Op: ">",
			X:  &sql.Column{Name: "price"},
			Y:  &sql.Literal{Value: 100},
		})
		require.True(t, ok)
		assert.Equal(t, `("price" > 100)`, s)
	})

	t.Run("Function", func(t *testing.T) {
		s, ok := d.CompileExpr(&sql.Func{
			Name: "abs",
			Args: []sql.Expr{&sql.Column{Name: "delta"}},
		})
		require.True(t, ok)
		assert.Equal(t, `ABS("delta")`, s)
	})

	t.Run("WidthBucketRejected", func(t *testing.T) {
		// H2 lacks WIDTH_BUCKET: the override declines instead of
		// emitting SQL the server cannot parse.
		for _, name := range []string{"WIDTH_BUCKET", "width_bucket", "Width_Bucket"} {
			s, ok := d.CompileExpr(&sql.Func{
				Name: name,
				Args: []sql.Expr{
					&sql.Column{Name: "v"},
					&sql.Literal{Value: 0},
					&sql.Literal{Value: 10},
					&sql.Literal{Value: 5},
				},
			})
			assert.False(t, ok, "name=%s", name)
			assert.Empty(t, s)
		}
	})

	t.Run("WidthBucketNested", func(t *testing.T) {
		// The rejection applies anywhere in the tree.
		s, ok := d.CompileExpr(&sql.Binary{
			Op: "=",
			X:  &sql.Func{Name: "WIDTH_BUCKET", Args: []sql.Expr{&sql.Column{Name: "v"}}},
			Y:  &sql.Literal{Value: 3},
		})
		assert.False(t, ok)
		assert.Empty(t, s)
	})

	t.Run("RenderingFaultDowngraded", func(t *testing.T) {
		// An unrenderable literal is absorbed as a decline, never
		// propagated.
		s, ok := d.CompileExpr(&sql.Literal{Value: struct{ X int }{1}})
		assert.False(t, ok)
		assert.Empty(t, s)

		s, ok = d.CompileExpr(nil)
		assert.False(t, ok)
		assert.Empty(t, s)
	})

	t.Run("Concurrent", func(t *testing.T) {
		var g errgroup.Group
		for i := 0; i < 64; i++ {
			g.Go(func() error {
				s, ok := d.CompileExpr(&sql.Func{
					Name: "lower",
					Args: []sql.Expr{&sql.Column{Name: "name"}},
				})
				if !ok || s != `LOWER("name")` {
					return fmt.Errorf("unexpected result %q", s)
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
	})
}

func TestCompileAggregate(t *testing.T) {
	d := h2.Dialect{}

	t.Run("Standard", func(t *testing.T) {
		s, ok := d.CompileAggregate(&sql.AggregateFunc{Name: "SUM", Args: []string{`"amount"`}})
		require.True(t, ok)
		assert.Equal(t, `SUM("amount")`, s)

		s, ok = d.CompileAggregate(&sql.AggregateFunc{Name: "COUNT", Args: []string{"*"}})
		require.True(t, ok)
		assert.Equal(t, "COUNT(*)", s)
	})

	t.Run("SingleArg", func(t *testing.T) {
		for _, name := range []string{"VAR_POP", "VAR_SAMP", "STDDEV_POP", "STDDEV_SAMP"} {
			s, ok := d.CompileAggregate(&sql.AggregateFunc{Name: name, Args: []string{"x"}})
			require.True(t, ok, "name=%s", name)
			assert.Equal(t, name+"(x)", s)

			s, ok = d.CompileAggregate(&sql.AggregateFunc{Name: name, Distinct: true, Args: []string{"x"}})
			require.True(t, ok)
			assert.Equal(t, name+"(DISTINCT x)", s)
		}
	})

	t.Run("TwoArg", func(t *testing.T) {
		for _, name := range []string{"COVAR_POP", "COVAR_SAMP", "CORR"} {
			s, ok := d.CompileAggregate(&sql.AggregateFunc{Name: name, Args: []string{"a", "b"}})
			require.True(t, ok, "name=%s", name)
			// Argument order is preserved: first, then second.
			assert.Equal(t, name+"(a, b)", s)

			s, ok = d.CompileAggregate(&sql.AggregateFunc{Name: name, Distinct: true, Args: []string{"a", "b"}})
			require.True(t, ok)
			assert.Equal(t, name+"(DISTINCT a, b)", s)
		}
	})

	t.Run("CaseInsensitiveName", func(t *testing.T) {
		s, ok := d.CompileAggregate(&sql.AggregateFunc{Name: "corr", Args: []string{"a", "b"}})
		require.True(t, ok)
		assert.Equal(t, "CORR(a, b)", s)
	})

	t.Run("Unknown", func(t *testing.T) {
		s, ok := d.CompileAggregate(&sql.AggregateFunc{Name: "PERCENTILE_CONT", Args: []string{"0.5"}})
		assert.False(t, ok)
		assert.Empty(t, s)
	})

	t.Run("ArityViolationPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			d.CompileAggregate(&sql.AggregateFunc{Name: "STDDEV_SAMP", Args: []string{"a", "b"}})
		})
		assert.Panics(t, func() {
			d.CompileAggregate(&sql.AggregateFunc{Name: "CORR", Args: []string{"a"}})
		})
		assert.Panics(t, func() {
			d.CompileAggregate(&sql.AggregateFunc{Name: "VAR_POP"})
		})
	})
}
