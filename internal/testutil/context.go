package testutil

import (
	"context"
	"testing"
	"time"
)

// SetupContext returns a context cancelled when the test ends or after a minute
func SetupContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)
	return ctx
}
