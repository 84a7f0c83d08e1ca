package core

import (
	"errors"
	"math"
	"reflect"
	"unicode/utf8"
)

// Expectation is a chainable assertion wrapper around a value under test.
// The value is classified once, at creation, and the category gates which
// matcher operations apply. Every operation returns the expectation itself
// so checks can chain; a violated check raises an assertion failure that the
// suite runner traps at the test boundary.
type Expectation struct {
	value any
	cat   Category
}

// Expect wraps a value for assertion. Pass a *Recorder (not its wrapper) to
// get the recorded-function matcher set.
func Expect(v any) *Expectation {
	return &Expectation{value: v, cat: Classify(v)}
}

// require raises a usage failure when the expectation's category does not
// carry the matcher set the operation belongs to.
func (e *Expectation) require(need capability, op string) {
	if capabilities[e.cat]&need == 0 {
		usagef("%s is not available on a %s value (%v)", op, e.cat, e.value)
	}
}

// Generic matchers - available on every category.

// Equals checks loose equality: mixed numeric kinds compare by value,
// everything else by deep equality. The expected value may also be a Matcher
// (including gomega matchers), in which case its Match method decides.
func (e *Expectation) Equals(expected any) *Expectation {
	if ok, message := MatchValue(e.value, expected); !ok {
		failf("%s", message)
	}

	return e
}

// Is checks strict identity: same pointer, same channel, same map, same
// slice header, or equal comparable value of the same type.
func (e *Expectation) Is(other any) *Expectation {
	if !identical(e.value, other) {
		failf("expected %v to be identical to %v, but it is not", e.value, other)
	}

	return e
}

// IsNot checks strict non-identity.
func (e *Expectation) IsNot(other any) *Expectation {
	if identical(e.value, other) {
		failf("expected %v not to be identical to %v, but it is", e.value, other)
	}

	return e
}

// IsInstanceOf checks the value's dynamic type against kind. Kind may be a
// reflect.Type, a sample value (exact or assignable type match), or a nil
// pointer-to-interface like (*error)(nil) (interface satisfaction).
func (e *Expectation) IsInstanceOf(kind any) *Expectation {
	target := typeOfKind(kind)

	valueType := reflect.TypeOf(e.value)
	if valueType == nil {
		failf("expected an instance of %s, got untyped nil", target)
	}

	if !typeMatches(valueType, target) {
		failf("expected an instance of %s, got %v (%s)", target, e.value, valueType)
	}

	return e
}

// Yields consumes the value as a lazy sequence and asserts that it produces
// exactly count items. Strings yield runes; slices, arrays, and maps yield
// their elements; channels are drained until closed; iterator functions in
// the iter.Seq shape are driven to exhaustion.
func (e *Expectation) Yields(count int) *Expectation {
	produced := countItems(e.value)

	switch {
	case produced > count:
		failf("expected %v to yield %d items, but it yielded %d: too many items", e.value, count, produced)
	case produced < count:
		failf("expected %v to yield %d items, but it yielded %d: too few items", e.value, count, produced)
	}

	return e
}

// Numeric matchers.

// IsGreaterThan asserts the value is strictly greater than other.
func (e *Expectation) IsGreaterThan(other any) *Expectation {
	got, want := e.numericPair(other, "IsGreaterThan")
	if !(got > want) {
		failf("expected %v to be greater than %v", e.value, other)
	}

	return e
}

// IsLessThan asserts the value is strictly less than other.
func (e *Expectation) IsLessThan(other any) *Expectation {
	got, want := e.numericPair(other, "IsLessThan")
	if !(got < want) {
		failf("expected %v to be less than %v", e.value, other)
	}

	return e
}

// IsCloseTo asserts the value and other differ by at most precision
// (default 1e-3). The comparison is non-strict: a difference of exactly
// precision passes.
func (e *Expectation) IsCloseTo(other any, precision ...float64) *Expectation {
	tolerance := defaultPrecision
	if len(precision) > 0 {
		tolerance = precision[0]
	}

	got, want := e.numericPair(other, "IsCloseTo")
	if math.Abs(got-want) > tolerance {
		failf("expected %v to be within %v of %v, but the difference is %v",
			e.value, tolerance, other, math.Abs(got-want))
	}

	return e
}

const defaultPrecision = 1e-3

// numericPair validates both sides of a numeric comparison, raising a usage
// failure (not an assertion failure) on a non-numeric argument.
func (e *Expectation) numericPair(other any, op string) (got, want float64) {
	e.require(capNumeric, op)

	got, _ = numericValue(e.value)

	want, ok := numericValue(other)
	if !ok {
		usagef("%s requires a numeric argument, got %v (%T)", op, other, other)
	}

	return got, want
}

// Function matchers.

// ToThrow invokes the wrapped zero-argument function and asserts that it
// panics. With no kind, any panic passes. An error kind matches via
// errors.Is or by type; a non-error kind matches by type, with the same kind
// forms IsInstanceOf accepts.
//
// An assertion failure raised inside the invoked function propagates
// unchanged rather than being reinterpreted - unless ErrExpectation is
// exactly the kind the caller said to expect.
func (e *Expectation) ToThrow(kind ...any) *Expectation {
	e.require(capFunction, "ToThrow")

	callable := e.callable()
	if callable.Type().NumIn() != 0 {
		usagef("ToThrow requires a function that takes no arguments, got %s", callable.Type())
	}

	var expected any
	if len(kind) > 0 {
		expected = kind[0]
	}

	recovered := capturePanic(callable)
	if recovered == nil {
		failf("expected the function to panic, but it returned normally")
	}

	if IsExpectationFailure(recovered) && !wantsExpectationFailure(expected) {
		panic(recovered)
	}

	if !panicMatches(recovered, expected) {
		failf("expected a panic matching %v, got %v (%T)", expected, recovered, recovered)
	}

	return e
}

// callable resolves the function to invoke: the recorded wrapper for a
// *Recorder, the wrapped value itself otherwise.
func (e *Expectation) callable() reflect.Value {
	if recorder, ok := e.value.(*Recorder); ok {
		return recorder.wrapped
	}

	return reflect.ValueOf(e.value)
}

// Recorded-function matchers - the log belongs to the *Recorder under test.

// WasCalled asserts the recorded function was invoked at least once.
func (e *Expectation) WasCalled() *Expectation {
	if count := e.recorder("WasCalled").Count(); count == 0 {
		failf("expected the recorded function to have been called, but it never was")
	}

	return e
}

// WasCalledOnce asserts exactly one recorded invocation.
func (e *Expectation) WasCalledOnce() *Expectation {
	if count := e.recorder("WasCalledOnce").Count(); count != 1 {
		failf("expected the recorded function to have been called exactly once, but it was called %d times", count)
	}

	return e
}

// WasNotCalled asserts zero recorded invocations.
func (e *Expectation) WasNotCalled() *Expectation {
	if count := e.recorder("WasNotCalled").Count(); count != 0 {
		failf("expected the recorded function never to have been called, but it was called %d times", count)
	}

	return e
}

// LastCalledWithArgs asserts that the most recent recorded invocation was
// made with exactly the given arguments, comparing length first and then
// each position with loose equality.
func (e *Expectation) LastCalledWithArgs(args ...any) *Expectation {
	last, ok := e.recorder("LastCalledWithArgs").Last()
	if !ok {
		failf("expected a call with args %v, but the recorded function was never called", args)
	}

	if len(last.Args) != len(args) {
		failf("expected the last call to have %d args %v, but it had %d: %v",
			len(args), args, len(last.Args), last.Args)
	}

	for i := range args {
		if !looseEqual(last.Args[i], args[i]) {
			failf("wrong value in the last call at position %d: expected %v, got %v",
				i, args[i], last.Args[i])
		}
	}

	return e
}

func (e *Expectation) recorder(op string) *Recorder {
	e.require(capRecorded, op)

	return e.value.(*Recorder) //nolint:forcetypeassert // capRecorded guarantees the type
}

// Sequence matchers.

// AllEqual asserts the wrapped slice or array and other have the same length
// and loosely equal elements at every index, reporting the first mismatch.
func (e *Expectation) AllEqual(other any) *Expectation {
	e.require(capSequence, "AllEqual")

	otherV := reflect.ValueOf(other)
	if otherV.Kind() != reflect.Slice && otherV.Kind() != reflect.Array {
		usagef("AllEqual requires a slice or array argument, got %v (%T)", other, other)
	}

	got := reflect.ValueOf(e.value)
	if got.Len() != otherV.Len() {
		failf("expected sequences of equal length, got %d vs %d", got.Len(), otherV.Len())
	}

	for i := range got.Len() {
		gotItem := got.Index(i).Interface()
		wantItem := otherV.Index(i).Interface()

		if !looseEqual(gotItem, wantItem) {
			failf("sequences differ at index %d: expected %v, got %v", i, wantItem, gotItem)
		}
	}

	return e
}

// Set matchers.

// Has asserts that the wrapped map contains item as a key.
func (e *Expectation) Has(item any) *Expectation {
	e.require(capSet, "Has")

	set := reflect.ValueOf(e.value)

	itemV := reflect.ValueOf(item)
	if !itemV.IsValid() || !itemV.Type().AssignableTo(set.Type().Key()) {
		usagef("Has requires an item assignable to %s, got %v (%T)", set.Type().Key(), item, item)
	}

	if !set.MapIndex(itemV).IsValid() {
		failf("expected %v to contain %v, but it does not", e.value, item)
	}

	return e
}

// Helpers.

// identical implements strict identity. Reference kinds compare by the
// identity of what they point at; comparable values compare with ==;
// uncomparable non-reference values fall back to deep equality, since
// boxing into any copies them and distinct copies cannot be told apart.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	aVal, bVal := reflect.ValueOf(a), reflect.ValueOf(b)
	if aVal.Type() != bVal.Type() {
		return false
	}

	switch aVal.Kind() {
	case reflect.Slice:
		return aVal.Pointer() == bVal.Pointer() && aVal.Len() == bVal.Len()
	case reflect.Map, reflect.Chan, reflect.Func, reflect.Pointer, reflect.UnsafePointer:
		return aVal.Pointer() == bVal.Pointer()
	default:
		if !aVal.Type().Comparable() {
			return reflect.DeepEqual(a, b)
		}

		return a == b
	}
}

// typeOfKind resolves the kind argument of a type check into a reflect.Type.
func typeOfKind(kind any) reflect.Type {
	if t, ok := kind.(reflect.Type); ok {
		return t
	}

	t := reflect.TypeOf(kind)
	if t == nil {
		usagef("a type check requires a kind, got untyped nil")
	}

	// (*I)(nil) names the interface I
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		return t.Elem()
	}

	return t
}

func typeMatches(valueType, target reflect.Type) bool {
	if valueType == target {
		return true
	}

	if target.Kind() == reflect.Interface {
		return valueType.Implements(target)
	}

	return valueType.AssignableTo(target)
}

// capturePanic invokes a zero-argument function and returns its panic value,
// or nil if it returned normally.
func capturePanic(fn reflect.Value) (recovered any) {
	defer func() {
		recovered = recover()
	}()

	fn.Call(nil)

	return nil
}

// wantsExpectationFailure reports whether the caller explicitly named the
// assertion-failure kind as the panic they expect.
func wantsExpectationFailure(expected any) bool {
	err, ok := expected.(error)

	return ok && errors.Is(ErrExpectation, err)
}

// panicMatches checks a recovered panic value against the expected kind.
func panicMatches(recovered, expected any) bool {
	if expected == nil {
		return true
	}

	if expectedErr, ok := expected.(error); ok {
		if recoveredErr, ok := recovered.(error); ok && errors.Is(recoveredErr, expectedErr) {
			return true
		}
	}

	recoveredType := reflect.TypeOf(recovered)
	if recoveredType == nil {
		return false
	}

	return typeMatches(recoveredType, typeOfKind(expected))
}

// countItems consumes v as a lazy sequence and returns how many items it
// produced. Unconsumable values are usage failures.
func countItems(v any) int {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String())
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	case reflect.Chan:
		if rv.IsNil() {
			usagef("Yields cannot drain a nil channel")
		}

		count := 0
		for {
			if _, ok := rv.Recv(); !ok {
				return count
			}

			count++
		}
	case reflect.Func:
		if count, ok := driveSeq(rv); ok {
			return count
		}
	}

	usagef("Yields requires an iterable value, got %v (%T)", v, v)

	panic("unreachable") // usagef always panics
}

// driveSeq drives a function in the iter.Seq or iter.Seq2 shape - a single
// parameter which is itself a func returning bool - counting how many times
// it yields. The yield func is manufactured with reflect.MakeFunc so any
// element type works.
func driveSeq(seq reflect.Value) (int, bool) {
	seqType := seq.Type()
	if seqType.NumIn() != 1 || seqType.NumOut() != 0 {
		return 0, false
	}

	yieldType := seqType.In(0)
	if yieldType.Kind() != reflect.Func || yieldType.NumOut() != 1 || yieldType.Out(0).Kind() != reflect.Bool {
		return 0, false
	}

	count := 0
	yield := reflect.MakeFunc(yieldType, func([]reflect.Value) []reflect.Value {
		count++

		return []reflect.Value{reflect.ValueOf(true)}
	})

	seq.Call([]reflect.Value{yield})

	return count, true
}
