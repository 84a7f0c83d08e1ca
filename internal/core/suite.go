package core

import (
	"fmt"
	"strings"
	"sync"
)

// suiteState tracks a context through its lifecycle. The body runs
// synchronously during stateRunning; stateDraining waits on pending
// asynchronous tests; stateReported is terminal, after messages flush.
type suiteState int

const (
	stateRunning suiteState = iota
	stateDraining
	stateReported
)

// S is one suite's execution context: isolated counters, the pending
// asynchronous test registry, and the deferred message log. It is created by
// Suite and passed explicitly to the body - there is no shared "current
// suite" slot, so concurrently running suites cannot corrupt each other's
// counts.
type S struct {
	label string
	sink  Sink
	buf   buffer

	// detached contexts belong to no suite: messages go straight to the
	// sink and the counters are never reported
	detached bool

	pending sync.WaitGroup

	mu       sync.Mutex
	state    suiteState
	attempts int
	passed   int
	failed   int
}

// SuiteOption customizes a suite run.
type SuiteOption func(*S) *S

// WithSink routes the suite's output somewhere other than the console.
func WithSink(sink Sink) SuiteOption {
	return func(s *S) *S {
		s.sink = sink
		return s
	}
}

// Suite runs one labeled batch of tests. The body executes synchronously and
// registers every test before the suite starts waiting; the suite then joins
// all pending asynchronous tests, buffers its summary, and flushes the
// buffered messages to the sink in order. The returned Report is the
// completion signal: when Suite returns, every registered test has settled
// and attempts == passed + failed.
//
// A test that never settles keeps its suite from ever completing; that is
// the test author's responsibility, not mitigated here.
func Suite(label string, body func(*S), options ...SuiteOption) Report {
	s := &S{label: label, sink: ConsoleSink(), state: stateRunning}
	for _, option := range options {
		s = option(s)
	}

	s.emit(LevelInfo, fmt.Sprintf("suite: %s", label))

	// registration phase: every Test/TestAsync call lands before the join
	s.runBody(body)

	s.setState(stateDraining)
	s.pending.Wait()

	s.mu.Lock()
	report := Report{Label: s.label, Attempts: s.attempts, Passed: s.passed, Failed: s.failed}
	s.mu.Unlock()

	s.emit(LevelInfo, report.Summary())
	s.emit(LevelInfo, "")

	s.setState(stateReported)
	s.buf.flush(s.sink)

	return report
}

// runBody executes the suite body, trapping a panic in the body itself -
// tests already registered still settle and get reported.
func (s *S) runBody(body func(*S)) {
	defer func() {
		if r := recover(); r != nil {
			s.emit(LevelError, fmt.Sprintf("%s suite %q body: %v", failMark("FAIL"), s.label, r))
			s.emit(LevelError, "  "+hintMark("hint: the suite body itself panicked; this is a bug in the test code, not a failed expectation"))
		}
	}()

	body(s)
}

// Test runs fn synchronously, attributing its outcome to this context. An
// assertion failure raised by an expectation inside fn counts the test as
// failed; any other panic counts it as failed and is reported as a test-code
// failure. Nothing escapes.
func (s *S) Test(label string, fn func()) {
	s.addAttempt()
	s.settle(label, runTest(fn))
}

// TestAsync counts the attempt immediately - before the outcome is known -
// registers the test as pending, and runs fn in its own goroutine. The
// outcome is recorded whenever fn settles, in any order relative to other
// asynchronous tests; the suite's summary waits for all of them.
func (s *S) TestAsync(label string, fn func()) {
	s.addAttempt()
	s.pending.Add(1)

	go func() {
		defer s.pending.Done()

		s.settle(label, runTest(fn))
	}()
}

// runTest invokes fn and returns what it panicked with, or nil on success.
func runTest(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()

	fn()

	return nil
}

// settle classifies a test outcome, updates the tally, and buffers the
// per-test messages.
func (s *S) settle(label string, recovered any) {
	switch {
	case recovered == nil:
		s.addOutcome(true)
		s.emit(LevelInfo, fmt.Sprintf("%s %s", passMark("PASS"), label))
	case IsExpectationFailure(recovered):
		s.addOutcome(false)
		s.emit(LevelError, fmt.Sprintf("%s %s", failMark("FAIL"), label))
		s.emitDetail(recovered)
	default:
		s.addOutcome(false)
		s.emit(LevelError, fmt.Sprintf("%s %s (test code failure)", failMark("FAIL"), label))
		s.emit(LevelError, "  "+hintMark("hint: this is not a failed expectation; the bug is in the test or framework code"))
		s.emitDetail(recovered)
	}
}

// emitDetail buffers the underlying error one indented line at a time, so
// multiline diffs stay aligned in line-oriented sinks.
func (s *S) emitDetail(recovered any) {
	for line := range strings.Lines(fmt.Sprintf("%v", recovered)) {
		s.emit(LevelError, "  "+strings.TrimSuffix(line, "\n"))
	}
}

// reported reports whether this context already flushed its summary. A
// stale context held past its suite's completion is tolerated like a
// detached one: messages go straight to the sink and the counts stay
// frozen at what the report said.
func (s *S) reported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == stateReported
}

func (s *S) emit(level Level, text string) {
	if s.detached || s.reported() {
		if level == LevelError {
			s.sink.Error(text)
		} else {
			s.sink.Info(text)
		}

		return
	}

	s.buf.add(level, text)
}

func (s *S) addAttempt() {
	s.mu.Lock()
	if s.state != stateReported {
		s.attempts++
	}
	s.mu.Unlock()
}

func (s *S) addOutcome(passed bool) {
	s.mu.Lock()
	if s.state != stateReported {
		if passed {
			s.passed++
		} else {
			s.failed++
		}
	}
	s.mu.Unlock()
}

func (s *S) setState(state suiteState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Detached returns a context owned by no suite. Tests run against it are
// tolerated - they never crash and their messages go straight to the sink -
// but they contribute to no aggregate counts and no summary is ever
// reported.
func Detached(sink Sink) *S {
	if sink == nil {
		sink = ConsoleSink()
	}

	return &S{sink: sink, detached: true, state: stateRunning}
}
