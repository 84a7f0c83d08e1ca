// Package uat01 is acceptance-test material: a small component exercised
// through the public masque API exactly the way a test author would.
package uat01

import "errors"

// ErrOverdrawn is returned when a withdrawal exceeds the balance.
var ErrOverdrawn = errors.New("overdrawn")

// Ledger tracks a single balance.
type Ledger struct {
	balance int
}

// Deposit adds to the balance.
func (l *Ledger) Deposit(amount int) {
	l.balance += amount
}

// Withdraw subtracts from the balance, panicking with ErrOverdrawn when the
// balance would go negative.
func (l *Ledger) Withdraw(amount int) {
	if amount > l.balance {
		panic(ErrOverdrawn)
	}

	l.balance -= amount
}

// Balance reports the current balance.
func (l *Ledger) Balance() int {
	return l.balance
}
