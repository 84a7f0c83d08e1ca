// Package masque is a minimal test-authoring toolkit: a suite runner that
// tracks pass/fail tallies, a chainable expectation engine with
// type-specific matcher sets, and a call-recording wrapper (the "masque")
// for verifying how a function was invoked by code the test does not
// directly control - event handlers, callbacks, collaborators.
//
// This is the public API entry point. Implementation lives in internal/core.
package masque

import (
	"github.com/toejough/masque/internal/core"
)

// ErrExpectation is the assertion-failure kind, raised only by a violated
// matcher check. Exposed for authors who want to catch it explicitly or
// assert on it with ToThrow.
var ErrExpectation = core.ErrExpectation

// ErrUsage is the matcher-misuse kind. It is reported as a test-code
// failure, never as a failed expectation.
var ErrUsage = core.ErrUsage

// CallRecord captures one invocation of a recorded function.
type CallRecord = core.CallRecord

// Expectation is a chainable assertion wrapper around a value under test.
type Expectation = core.Expectation

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// Recorder owns the append-only call log for one recorded function.
type Recorder = core.Recorder

// Report is the final tally for one suite run.
type Report = core.Report

// S is one suite's execution context, passed explicitly to the suite body.
type S = core.S

// Sink is the output channel for suite messages.
type Sink = core.Sink

// SuiteOption customizes a suite run.
type SuiteOption = core.SuiteOption

// Any returns a matcher that matches any value.
func Any() Matcher {
	return core.Any()
}

// ConsoleSink returns the default sink: info lines to stdout, error lines to
// stderr.
func ConsoleSink() Sink {
	return core.ConsoleSink()
}

// Expect wraps a value for assertion, selecting the matcher set that fits
// the value's category. Pass a *Recorder to get the recorded-function set.
func Expect(v any) *Expectation {
	return core.Expect(v)
}

// Record wraps fn in a call-recording function with an identical signature,
// returning the wrapper and the Recorder that owns its call log. With no fn,
// the wrapper is a no-op.
func Record[T any](fn ...T) (T, *Recorder) {
	return core.Record(fn...)
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
func Satisfies[T any](predicate func(T) error) Matcher {
	return core.Satisfies(predicate)
}

// Suite runs one labeled, isolated batch of tests and returns its Report
// once every registered test - synchronous or asynchronous - has settled and
// the suite's buffered messages have flushed.
func Suite(label string, body func(*S), options ...SuiteOption) Report {
	return core.Suite(label, body, options...)
}

// Test runs a single test outside any suite. It is tolerated - it never
// crashes and its outcome is written straight to the console - but it
// contributes to no aggregate counts.
func Test(label string, fn func()) {
	core.Detached(nil).Test(label, fn)
}

// TestAsync runs a single asynchronous test outside any suite. Nothing waits
// for it; its outcome is written whenever it settles.
func TestAsync(label string, fn func()) {
	core.Detached(nil).TestAsync(label, fn)
}

// WithSink routes a suite's output somewhere other than the console.
func WithSink(sink Sink) SuiteOption {
	return core.WithSink(sink)
}
