package core

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Sink is the output channel for suite messages: two line-oriented
// severities, written only once a suite fully settles.
type Sink interface {
	Info(line string)
	Error(line string)
}

// ConsoleSink returns the default sink: info lines to stdout, error lines to
// stderr.
func ConsoleSink() Sink {
	return consoleSink{}
}

type consoleSink struct{}

func (consoleSink) Info(line string) {
	fmt.Fprintln(os.Stdout, line)
}

func (consoleSink) Error(line string) {
	fmt.Fprintln(os.Stderr, line)
}

// Level selects which sink channel a message flushes to.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

type message struct {
	level Level
	text  string
}

// buffer collects a suite's messages in the order they were produced, so
// that suites which settle while another is running do not interleave their
// console output. Messages flush in buffered order.
type buffer struct {
	mu       sync.Mutex
	messages []message
}

func (b *buffer) add(level Level, text string) {
	b.mu.Lock()
	b.messages = append(b.messages, message{level: level, text: text})
	b.mu.Unlock()
}

func (b *buffer) flush(sink Sink) {
	b.mu.Lock()
	messages := b.messages
	b.messages = nil
	b.mu.Unlock()

	for _, m := range messages {
		if m.level == LevelError {
			sink.Error(m.text)
		} else {
			sink.Info(m.text)
		}
	}
}

// Report is the final tally for one suite run, returned once the suite has
// fully settled and flushed its messages.
type Report struct {
	Label    string
	Attempts int
	Passed   int
	Failed   int
}

// OK reports whether every attempted test passed.
func (r Report) OK() bool {
	return r.Failed == 0
}

// Summary renders the tally the way the suite prints it.
func (r Report) Summary() string {
	return fmt.Sprintf("%d/%d passed, %d failed", r.Passed, r.Attempts, r.Failed)
}

// Outcome markers. Color carries through to the sink only when the output
// supports it; fatih/color handles detection.
var (
	passMark = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	hintMark = color.New(color.FgYellow).SprintFunc()
)
