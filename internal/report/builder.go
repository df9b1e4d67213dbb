// Package report groups a user's transactions into pay-period weeks.
//
// A pay-period week runs Friday through Thursday and never crosses a month
// boundary: the first and last week of every month are shortened instead.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type Builder struct {
	includeOpen bool
}

type Option func(*Builder)

// WithOpenPeriod makes Build emit the last, still open week as well. Without it
// only weeks closed by a later transaction are reported.
func WithOpenPeriod() Option {
	return func(b *Builder) { b.includeOpen = true }
}

func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build expects txs sorted ascending by date.
func (b *Builder) Build(txs []transaction.Transaction) []transaction.Week {
	weeks := []transaction.Week{}
	if len(txs) == 0 {
		return weeks
	}

	current := openWeek(txs[0].Date, decimal.Zero)

	for _, tx := range txs {
		if within(tx.Date, current.Start, current.End) {
			current.Transactions = append(current.Transactions, tx)
			current.Amount = current.Amount.Add(tx.Amount)

			continue
		}

		weeks = append(weeks, current)

		current = openWeek(tx.Date, current.TotalAmount.Add(current.Amount))
		current.Transactions = []transaction.Transaction{tx}
		current.Amount = tx.Amount
	}

	if b.includeOpen {
		weeks = append(weeks, current)
	}

	return weeks
}

func openWeek(anchor time.Time, total decimal.Decimal) transaction.Week {
	start, end := Period(anchor)

	return transaction.Week{
		Start:        start,
		End:          end,
		WeekdayStart: start.Weekday().String(),
		WeekdayEnd:   end.Weekday().String(),
		Amount:       decimal.Zero,
		TotalAmount:  total,
		Transactions: []transaction.Transaction{},
	}
}

var _ transaction.Reporter = (*Builder)(nil)
