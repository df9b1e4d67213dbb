package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single monetary movement owned by one user.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal // Signed; negative values are outflows
	Description string
	Date        time.Time
}

// UserRecord holds every transaction of one user in insertion order.
type UserRecord struct {
	UserID       string
	Transactions []Transaction
}

// Week is one pay-period bucket of a report.
// TotalAmount is the running total of all earlier buckets and excludes Amount.
type Week struct {
	Start        time.Time
	End          time.Time
	WeekdayStart string
	WeekdayEnd   string
	Amount       decimal.Decimal
	TotalAmount  decimal.Decimal
	Transactions []Transaction
}

// AddParams carries the caller-supplied fields of a new transaction.
// A zero Date is replaced with the creation time.
type AddParams struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

func (r UserRecord) clone() UserRecord {
	return UserRecord{
		UserID:       r.UserID,
		Transactions: append([]Transaction(nil), r.Transactions...),
	}
}
