package accounting

import (
	"fmt"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumDebits returns the total debit amount across lines.
func SumDebits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Debit)
	}
	return total
}

// SumCredits returns the total credit amount across lines.
func SumCredits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Credit)
	}
	return total
}

// ValidateEntryBalance checks that an entry's lines form a valid double-entry
// posting: at least two lines, no negative amounts, no empty lines, and total
// debits equal to total credits. Unbalanced postings are rejected whole rather
// than partially applied.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line amounts must be non-negative for account %s", l.AccountCode)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return fmt.Errorf("line for account %s has neither debit nor credit", l.AccountCode)
		}
	}

	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("entry does not balance: debits %s, credits %s", debits.String(), credits.String())
	}

	return nil
}

// LineNet returns debit minus credit for a single line; statements accumulate
// this value chronologically to produce running balances.
func LineNet(l domain.JournalLine) decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
