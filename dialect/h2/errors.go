package h2

import (
	"github.com/minyyy/spark"
	"github.com/minyyy/spark/dialect"
)

// H2 vendor error codes this dialect classifies.
const (
	codeTableExists    = 42101 // table or view already exists
	codeTableNotFound  = 42102 // table or view not found
	codeSchemaNotFound = 90079 // schema not found
)

// Classify reclassifies an H2 server error into one of the engine's
// semantic categories. Only errors carrying a server code are inspected;
// any other error shape, and any code not special-cased here, falls
// through to the engine default, which always produces a category.
func (Dialect) Classify(message string, err error) error {
	if code, ok := dialect.ServerCode(err); ok {
		switch code {
		case codeTableExists:
			return spark.NewExistsError(message, err)
		case codeTableNotFound:
			return spark.NewNotFoundError(spark.Table, message, err)
		case codeSchemaNotFound:
			return spark.NewNotFoundError(spark.Namespace, message, err)
		}
	}
	return dialect.DefaultClassify(message, err)
}
