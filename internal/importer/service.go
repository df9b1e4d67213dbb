package importer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/paycycle/internal/importer/cgd"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

// Recorder stores imported transactions for a user.
type Recorder interface {
	Add(userID string, params transaction.AddParams) (transaction.Transaction, error)
}

type Service struct {
	recorder  Recorder
	importers map[Bank]Importer
}

func NewService(recorder Recorder) *Service {
	return &Service{
		recorder: recorder,
		importers: map[Bank]Importer{
			BankCGD: cgd.NewParser(),
		},
	}
}

// Parse reads a statement without storing anything.
func (s *Service) Parse(bank Bank, r io.Reader) ([]transaction.AddParams, error) {
	importer, ok := s.importers[bank]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, bank)
	}

	params, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s statement: %w", transaction.ErrValidation, bank, err)
	}

	return params, nil
}

// Import parses the statement and adds every row for userID. Nothing is added
// when the statement cannot be parsed.
func (s *Service) Import(userID string, bank Bank, r io.Reader) ([]transaction.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: a transaction must have a user id", transaction.ErrValidation)
	}

	params, err := s.Parse(bank, r)
	if err != nil {
		return nil, err
	}

	created, err := s.Record(userID, params)
	if err != nil {
		return created, err
	}

	slog.Info("imported statement", "user_id", userID, "bank", bank, "count", len(created))

	return created, nil
}

// Record adds already parsed rows for userID in order. On failure the
// transactions added so far are returned with the error.
func (s *Service) Record(userID string, params []transaction.AddParams) ([]transaction.Transaction, error) {
	created := make([]transaction.Transaction, 0, len(params))

	for _, p := range params {
		tx, err := s.recorder.Add(userID, p)
		if err != nil {
			return created, fmt.Errorf("adding imported transaction: %w", err)
		}

		created = append(created, tx)
	}

	return created, nil
}
