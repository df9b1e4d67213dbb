package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

var ErrUnknownBank = errors.New("unknown bank")

// Importer turns a bank statement into transactions ready to be added.
type Importer interface {
	Parse(r io.Reader) ([]transaction.AddParams, error)
}

// ParseBank accepts bank names case-insensitively.
func ParseBank(s string) (Bank, error) {
	switch b := Bank(strings.ToLower(strings.TrimSpace(s))); b {
	case BankCGD:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBank, s)
	}
}
