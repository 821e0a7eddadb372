package testing

import (
	"testing"

	"github.com/krockxz/taskflow/internal/logger"
	"github.com/krockxz/taskflow/types"
)

// NewTestLogger creates a new logger instance that writes to the testing.T logger.
// This is useful for seeing log output during test runs.
func NewTestLogger(t *testing.T) types.Logger {
	return logger.NewTest(t)
}
