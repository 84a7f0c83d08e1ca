// Package core provides the internal implementation of masque's suite runner,
// expectation engine, and call-recording infrastructure.
package core

import (
	"errors"
	"fmt"
)

// ErrExpectation is the assertion-failure kind. It is raised only by matcher
// operations when an expectation is violated, and it is what separates a
// genuinely failed test from a bug in the test code itself.
var ErrExpectation = errors.New("failed expectation")

// ErrUsage is raised when a matcher is used incorrectly - a non-numeric
// argument to a numeric matcher, a throw-check on a function that takes
// arguments, and so on. It is classified as a test-code failure, never as a
// failed expectation.
var ErrUsage = errors.New("bad matcher usage")

// failf raises an assertion failure. The suite runner recovers it at the test
// boundary and tallies the test as failed.
func failf(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrExpectation, fmt.Sprintf(format, args...)))
}

// usagef raises a matcher-usage failure, which the runner reports as a
// test-code failure rather than a verified expectation violation.
func usagef(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...)))
}

// IsExpectationFailure reports whether a recovered panic value is an assertion
// failure. Anything else - other errors, string panics, usage failures - is a
// test-code failure.
func IsExpectationFailure(recovered any) bool {
	err, ok := recovered.(error)

	return ok && errors.Is(err, ErrExpectation)
}
