package core

import "reflect"

// Category identifies the matcher set an expectation dispatches to. A value
// is classified exactly once, when the expectation is created.
type Category int

const (
	CatGeneric Category = iota
	CatNumeric
	CatFunction
	CatRecorded
	CatSequence
	CatSet
)

func (c Category) String() string {
	switch c {
	case CatNumeric:
		return "numeric"
	case CatFunction:
		return "function"
	case CatRecorded:
		return "recorded function"
	case CatSequence:
		return "sequence"
	case CatSet:
		return "set"
	case CatGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// capability flags gate which matcher sets apply to a category. The generic
// set applies to every category and has no flag.
type capability uint8

const (
	capNumeric capability = 1 << iota
	capFunction
	capRecorded
	capSequence
	capSet
)

// capabilities is the dispatch table keyed by category. The recorded set
// extends the function set, so recorded values carry both flags.
var capabilities = map[Category]capability{
	CatGeneric:  0,
	CatNumeric:  capNumeric,
	CatFunction: capFunction,
	CatRecorded: capFunction | capRecorded,
	CatSequence: capSequence,
	CatSet:      capSet,
}

// Classify buckets a value into the category that selects its matcher set.
// *Recorder values dispatch to the recorded set; otherwise classification is
// by reflected kind. Strings are deliberately generic, not sequences - they
// get Yields rather than AllEqual.
func Classify(v any) Category {
	if _, ok := v.(*Recorder); ok {
		return CatRecorded
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return CatNumeric
	case reflect.Func:
		return CatFunction
	case reflect.Slice, reflect.Array:
		return CatSequence
	case reflect.Map:
		return CatSet
	default:
		return CatGeneric
	}
}
