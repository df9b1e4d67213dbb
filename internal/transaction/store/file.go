package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

// File persists user records as an indented JSON array on local disk.
// A missing file loads as an empty collection.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

type fileRecord struct {
	UserID       userID            `json:"userId"`
	Transactions []fileTransaction `json:"transactions"`
}

type fileTransaction struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

// userID accepts both JSON strings and numbers.
type userID string

func (u *userID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("decoding user id: %w", err)
		}

		*u = userID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding user id: %w", err)
	}

	*u = userID(n.String())

	return nil
}

func (f *File) Load(_ context.Context) ([]transaction.UserRecord, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []transaction.UserRecord{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return []transaction.UserRecord{}, nil
	}

	var stored []fileRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}

	records := make([]transaction.UserRecord, 0, len(stored))

	for _, r := range stored {
		record := transaction.UserRecord{
			UserID:       string(r.UserID),
			Transactions: make([]transaction.Transaction, 0, len(r.Transactions)),
		}

		for _, t := range r.Transactions {
			tx, err := fromFile(t)
			if err != nil {
				return nil, fmt.Errorf("user %q: %w", r.UserID, err)
			}

			record.Transactions = append(record.Transactions, tx)
		}

		records = append(records, record)
	}

	return records, nil
}

func fromFile(t fileTransaction) (transaction.Transaction, error) {
	amount := decimal.Zero

	if t.Amount != "" {
		d, err := decimal.NewFromString(t.Amount.String())
		if err != nil {
			return transaction.Transaction{}, fmt.Errorf("transaction %s: parsing amount: %w", t.ID, err)
		}

		amount = d
	}

	date, err := transaction.ParseDate(t.Date)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("transaction %s: %w", t.ID, err)
	}

	return transaction.Transaction{
		ID:          t.ID,
		Amount:      amount,
		Description: t.Description,
		Date:        date,
	}, nil
}

// Save writes the records to a temporary file next to the target and renames it
// into place, so readers never observe a partially written file.
func (f *File) Save(_ context.Context, records []transaction.UserRecord) error {
	stored := make([]fileRecord, 0, len(records))

	for _, r := range records {
		txs := make([]fileTransaction, 0, len(r.Transactions))
		for _, tx := range r.Transactions {
			txs = append(txs, fileTransaction{
				ID:          tx.ID,
				Amount:      json.Number(tx.Amount.String()),
				Description: tx.Description,
				Date:        tx.Date.UTC().Format(time.RFC3339Nano),
			})
		}

		stored = append(stored, fileRecord{UserID: userID(r.UserID), Transactions: txs})
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".transactions-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")

	if err := enc.Encode(stored); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding records: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}

	return nil
}

var _ transaction.Persister = (*File)(nil)
