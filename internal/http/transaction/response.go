package transaction

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

const reportDateLayout = "2006-01-02"

type transactionResponse struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
}

type userRecordResponse struct {
	UserID       string                `json:"userId"`
	Transactions []transactionResponse `json:"transactions"`
}

type sumResponse struct {
	UserID string      `json:"userId"`
	Sum    json.Number `json:"sum"`
}

type weekResponse struct {
	WeekStart   string      `json:"weekStart"`
	WeekEnd     string      `json:"weekEnd"`
	Quantity    int         `json:"quantity"`
	Amount      json.Number `json:"amount"`
	TotalAmount json.Number `json:"totalAmount"`
}

// number renders d as a bare JSON number without float rounding.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      number(tx.Amount),
		Description: tx.Description,
		Date:        tx.Date.UTC(),
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toRecordList(records []transaction.UserRecord) []userRecordResponse {
	resp := make([]userRecordResponse, len(records))
	for i, r := range records {
		resp[i] = userRecordResponse{
			UserID:       r.UserID,
			Transactions: toResponseList(r.Transactions),
		}
	}

	return resp
}

func toWeekList(weeks []transaction.Week) []weekResponse {
	resp := make([]weekResponse, len(weeks))
	for i, w := range weeks {
		resp[i] = weekResponse{
			WeekStart:   w.Start.Format(reportDateLayout) + " " + w.WeekdayStart,
			WeekEnd:     w.End.Format(reportDateLayout) + " " + w.WeekdayEnd,
			Quantity:    len(w.Transactions),
			Amount:      number(w.Amount),
			TotalAmount: number(w.TotalAmount),
		}
	}

	return resp
}
