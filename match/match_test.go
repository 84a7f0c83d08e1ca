package match_test

import (
	"errors"
	"testing"

	"github.com/toejough/masque/match"
)

// Test the BeAny matcher directly.
func TestBeAny(t *testing.T) {
	t.Parallel()

	ok, err := match.BeAny.Match(42)
	if !ok || err != nil {
		t.Errorf("BeAny.Match(42) = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = match.BeAny.Match(nil)
	if !ok || err != nil {
		t.Errorf("BeAny.Match(nil) = (%v, %v), want (true, nil)", ok, err)
	}

	if msg := match.BeAny.FailureMessage(42); msg != "" {
		t.Errorf("BeAny.FailureMessage(42) = %q, want empty string", msg)
	}
}

// Test the Satisfy matcher's failure path, including its message.
func TestSatisfy_MatchFailure(t *testing.T) {
	t.Parallel()

	matcher := match.Satisfy(func(val int) error {
		if val <= 10 {
			return errors.New("must be greater than 10")
		}

		return nil
	})

	ok, err := matcher.Match(5)
	if ok || err != nil {
		t.Errorf("Satisfy().Match(5) = (%v, %v), want (false, nil)", ok, err)
	}

	msg := matcher.FailureMessage(5)

	expected := "value 5 does not satisfy predicate: must be greater than 10"
	if msg != expected {
		t.Errorf("Satisfy().FailureMessage(5) = %q, want %q", msg, expected)
	}
}

func TestSatisfy_MatchSuccess(t *testing.T) {
	t.Parallel()

	matcher := match.Satisfy(func(val int) error {
		if val <= 10 {
			return errors.New("must be greater than 10")
		}

		return nil
	})

	ok, err := matcher.Match(42)
	if !ok || err != nil {
		t.Errorf("Satisfy().Match(42) = (%v, %v), want (true, nil)", ok, err)
	}
}

// Test the Satisfy matcher's type-mismatch error path.
func TestSatisfy_TypeMismatch(t *testing.T) {
	t.Parallel()

	matcher := match.Satisfy(func(int) error { return nil })

	ok, err := matcher.Match("not an int")
	if ok || err == nil {
		t.Errorf("Satisfy().Match(string) = (%v, %v), want (false, type mismatch)", ok, err)
	}
}

// Test the BeWithin matcher, including its non-strict boundary.
func TestBeWithin(t *testing.T) {
	t.Parallel()

	matcher := match.BeWithin(0.5, 10)

	for _, val := range []any{10, 10.5, 9.5, uint8(10)} {
		ok, err := matcher.Match(val)
		if !ok || err != nil {
			t.Errorf("BeWithin(0.5, 10).Match(%v) = (%v, %v), want (true, nil)", val, ok, err)
		}
	}

	ok, err := matcher.Match(10.51)
	if ok || err != nil {
		t.Errorf("BeWithin(0.5, 10).Match(10.51) = (%v, %v), want (false, nil)", ok, err)
	}

	if _, err := matcher.Match("ten"); err == nil {
		t.Error("BeWithin should reject non-numeric values with an error")
	}
}
