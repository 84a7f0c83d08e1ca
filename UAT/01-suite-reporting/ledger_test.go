package uat01_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/toejough/masque"

	uat01 "github.com/toejough/masque/UAT/01-suite-reporting"
)

// TestUAT_SuiteReporting drives a whole suite through the public API the way
// a test author would, including a slow asynchronous test, and checks the
// completion report.
func TestUAT_SuiteReporting(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	report := masque.Suite("ledger", func(s *masque.S) {
		s.Test("deposits accumulate", func() {
			ledger := &uat01.Ledger{}
			ledger.Deposit(10)
			ledger.Deposit(5)

			masque.Expect(ledger.Balance()).Equals(15).IsGreaterThan(10)
		})

		s.Test("withdrawing too much panics with the overdrawn kind", func() {
			ledger := &uat01.Ledger{}
			ledger.Deposit(1)

			masque.Expect(func() { ledger.Withdraw(2) }).ToThrow(uat01.ErrOverdrawn)
		})

		s.TestAsync("balances settle after slow deposits", func() {
			ledger := &uat01.Ledger{}

			done := make(chan struct{})
			go func() {
				defer close(done)

				time.Sleep(10 * time.Millisecond)
				ledger.Deposit(100)
			}()
			<-done

			masque.Expect(ledger.Balance()).Equals(100)
		})
	}, masque.WithSink(discard{}))

	g.Expect(report.OK()).To(BeTrue())
	g.Expect(report.Attempts).To(Equal(3))
	g.Expect(report.Passed + report.Failed).To(Equal(report.Attempts))
}

type discard struct{}

func (discard) Info(string) {}

func (discard) Error(string) {}
