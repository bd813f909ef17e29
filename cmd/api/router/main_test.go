package router

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain runs goleak after the package tests to catch leaked goroutines.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
