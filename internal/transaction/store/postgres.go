package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

// Postgres persists user records in the user_records and transactions tables.
// Record positions and per-user insertion order survive a round trip.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row and the id of the user owning it.
// Expected column order: user_id, id, amount, description, date
func scanTransaction(s scanner) (string, transaction.Transaction, error) {
	var (
		userID string
		tx     transaction.Transaction
	)

	if err := s.Scan(&userID, &tx.ID, &tx.Amount, &tx.Description, &tx.Date); err != nil {
		return "", transaction.Transaction{}, err
	}

	return userID, tx, nil
}

func (s *Postgres) Load(ctx context.Context) ([]transaction.UserRecord, error) {
	records, index, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, id, amount, description, date
		FROM transactions
		ORDER BY user_id, seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		userID, tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		pos, ok := index[userID]
		if !ok {
			return nil, fmt.Errorf("transaction %s references unknown user %q", tx.ID, userID)
		}

		records[pos].Transactions = append(records[pos].Transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return records, nil
}

func (s *Postgres) loadUsers(ctx context.Context) ([]transaction.UserRecord, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM user_records ORDER BY position ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("listing user records: %w", err)
	}
	defer rows.Close()

	records := []transaction.UserRecord{}
	index := make(map[string]int)

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, nil, fmt.Errorf("scanning user record: %w", err)
		}

		index[userID] = len(records)
		records = append(records, transaction.UserRecord{
			UserID:       userID,
			Transactions: []transaction.Transaction{},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return records, index, nil
}

// saveLockKey serialises concurrent Save calls from several processes.
func saveLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("paycycle"))
	h.Write([]byte{0})
	h.Write([]byte("user_records"))

	return int64(h.Sum64())
}

// Save replaces every stored row with records inside one database transaction.
func (s *Postgres) Save(ctx context.Context, records []transaction.UserRecord) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save tx: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", saveLockKey()); err != nil {
		return fmt.Errorf("acquiring save lock: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("deleting transactions: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM user_records`); err != nil {
		return fmt.Errorf("deleting user records: %w", err)
	}

	userStmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO user_records (user_id, position)
		VALUES ($1, $2)
	`)
	if err != nil {
		return fmt.Errorf("preparing user insert: %w", err)
	}
	defer userStmt.Close()

	txStmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (id, user_id, seq, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("preparing transaction insert: %w", err)
	}
	defer txStmt.Close()

	for pos, record := range records {
		if _, err := userStmt.ExecContext(ctx, record.UserID, pos); err != nil {
			return fmt.Errorf("creating user record %q: %w", record.UserID, err)
		}

		for seq, tx := range record.Transactions {
			_, err := txStmt.ExecContext(ctx,
				tx.ID,
				record.UserID,
				seq,
				tx.Amount,
				tx.Description,
				tx.Date,
			)
			if err != nil {
				return fmt.Errorf("creating transaction %s: %w", tx.ID, err)
			}
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}

	return nil
}

var _ transaction.Persister = (*Postgres)(nil)
