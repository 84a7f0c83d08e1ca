package core

import (
	"reflect"
	"slices"
	"sync"
)

// CallRecord captures a single invocation of a recorded function: the
// arguments it was called with, and either the values it returned or the
// value it panicked with. Exactly one of Results/Panicked is meaningful,
// selected by Returned.
type CallRecord struct {
	Args     []any
	Results  []any
	Panicked any
	Returned bool
}

// Recorder owns the append-only call log for one recorded function. The log
// covers the wrapper's entire lifetime; reading it never counts as a call.
// A Recorder is safe for wrappers invoked from multiple goroutines.
//
// Expectations dispatch on *Recorder directly - pass the Recorder, not the
// wrapper, to Expect.
type Recorder struct {
	mu      sync.Mutex
	calls   []CallRecord
	wrapped reflect.Value
}

// Record wraps fn in a call-recording function with an identical signature.
// Each invocation of the returned wrapper appends a CallRecord, then
// delegates to fn, propagating fn's return values or re-panicking fn's panic
// after recording it. With no fn, the wrapper is a no-op that returns zero
// values.
//
// T must be a function type; anything else is a usage failure.
func Record[T any](fn ...T) (T, *Recorder) {
	funcType := reflect.TypeFor[T]()
	if funcType.Kind() != reflect.Func {
		usagef("Record requires a function type, got %s", funcType)
	}

	var target reflect.Value
	if len(fn) > 0 {
		target = reflect.ValueOf(fn[0])
	}

	recorder := new(Recorder)

	relayer := func(args []reflect.Value) []reflect.Value {
		record := CallRecord{Args: recordedArgs(funcType, args)}

		if !target.IsValid() || target.IsZero() {
			// no-op target: record a normal return of zero values
			out := make([]reflect.Value, funcType.NumOut())
			for i := range out {
				out[i] = reflect.Zero(funcType.Out(i))
			}

			record.Returned = true
			record.Results = unreflectValues(out)
			recorder.append(record)

			return out
		}

		// The delegate may panic; record the outcome before letting it
		// propagate.
		defer func() {
			if r := recover(); r != nil {
				record.Panicked = r
				recorder.append(record)
				panic(r)
			}
		}()

		var out []reflect.Value
		if funcType.IsVariadic() {
			out = target.CallSlice(args)
		} else {
			out = target.Call(args)
		}

		record.Returned = true
		record.Results = unreflectValues(out)
		recorder.append(record)

		return out
	}

	// Ignore the type assertion lint check - we are depending on MakeFunc to
	// return the correct type, as documented.
	wrapper := reflect.MakeFunc(funcType, relayer).Interface().(T) //nolint:forcetypeassert
	recorder.wrapped = reflect.ValueOf(wrapper)

	return wrapper, recorder
}

func (r *Recorder) append(record CallRecord) {
	r.mu.Lock()
	r.calls = append(r.calls, record)
	r.mu.Unlock()
}

// Calls returns a snapshot of the call log in invocation order.
func (r *Recorder) Calls() []CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.calls)
}

// Count returns the number of recorded invocations.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}

// Last returns the most recent record, if any.
func (r *Recorder) Last() (CallRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.calls) == 0 {
		return CallRecord{}, false
	}

	return r.calls[len(r.calls)-1], true
}

// recordedArgs converts the reflected arguments of one call into plain
// values, flattening a variadic tail so the record reads the way the caller
// wrote the call.
func recordedArgs(funcType reflect.Type, args []reflect.Value) []any {
	if !funcType.IsVariadic() || len(args) == 0 {
		return unreflectValues(args)
	}

	flat := unreflectValues(args[:len(args)-1])

	tail := args[len(args)-1]
	for i := range tail.Len() {
		flat = append(flat, tail.Index(i).Interface())
	}

	return flat
}

// unreflectValues returns the actual values of the reflected values.
func unreflectValues(rVals []reflect.Value) []any {
	if len(rVals) == 0 {
		return nil
	}

	vals := make([]any, len(rVals))
	for i := range rVals {
		vals[i] = rVals[i].Interface()
	}

	return vals
}
