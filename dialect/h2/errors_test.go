package h2_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minyyy/spark"
	"github.com/minyyy/spark/dialect"
	"github.com/minyyy/spark/dialect/h2"
)

func TestClassify(t *testing.T) {
	d := h2.Dialect{}

	t.Run("TableExists", func(t *testing.T) {
		cause := &dialect.ServerError{Code: 42101, Message: `Table "T" already exists`}
		err := d.Classify("T exists", cause)
		require.True(t, spark.IsExists(err))

		var exists *spark.ExistsError
		require.True(t, errors.As(err, &exists))
		assert.Equal(t, "T exists", exists.Message())
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("TableNotFound", func(t *testing.T) {
		cause := &dialect.ServerError{Code: 42102, Message: `Table "T" not found`}
		err := d.Classify(`Table "T" not found`, cause)
		require.True(t, spark.IsNotFound(err))

		var nf *spark.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, spark.Table, nf.Kind())
		assert.Equal(t, `Table "T" not found`, nf.Message())
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("SchemaNotFound", func(t *testing.T) {
		cause := &dialect.ServerError{Code: 90079, Message: `Schema "S" not found`}
		err := d.Classify(`Schema "S" not found`, cause)
		require.True(t, spark.IsNotFound(err))

		var nf *spark.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, spark.Namespace, nf.Kind())
	})

	t.Run("WrappedServerError", func(t *testing.T) {
		cause := fmt.Errorf("exec: %w", &dialect.ServerError{Code: 42101, Message: "dup"})
		err := d.Classify("dup", cause)
		assert.True(t, spark.IsExists(err))
	})

	t.Run("UnknownCode", func(t *testing.T) {
		cause := &dialect.ServerError{Code: 90008, Message: "invalid value"}
		err := d.Classify("invalid value", cause)
		require.NotNil(t, err)
		assert.True(t, spark.IsUnclassified(err))
		assert.False(t, spark.IsExists(err))
		assert.False(t, spark.IsNotFound(err))
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("NonServerError", func(t *testing.T) {
		// Errors without a vendor code skip code inspection entirely.
		cause := errors.New("connection refused")
		err := d.Classify("connection refused", cause)
		require.NotNil(t, err)
		assert.True(t, spark.IsUnclassified(err))
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("MessageVerbatim", func(t *testing.T) {
		for _, msg := range []string{"", "T exists", "hello 'quoted' %s"} {
			err := d.Classify(msg, &dialect.ServerError{Code: 42101, Message: msg})
			var exists *spark.ExistsError
			require.True(t, errors.As(err, &exists))
			assert.Equal(t, msg, exists.Message())
		}
	})
}
