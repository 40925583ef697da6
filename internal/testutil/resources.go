package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyTestMain runs the package tests and fails if goroutines are left
// running afterwards. Call it from TestMain:
//
//	func TestMain(m *testing.M) {
//	    testutil.VerifyTestMain(m)
//	}
func VerifyTestMain(m *testing.M, options ...goleak.Option) {
	goleak.VerifyTestMain(m, append(defaultOptions(), options...)...)
}

// defaultOptions returns common ignore patterns for background goroutines
// started outside the code under test
func defaultOptions() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("go.uber.org/goleak.(*opts).retry"),
		goleak.IgnoreTopFunction("time.Sleep"),
	}
}
