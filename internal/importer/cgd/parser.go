package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/paycycle/internal/encoding"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

const dateLayout = "02-01-2006"

var ErrUnknownFormat = errors.New("unrecognised CGD statement: no conta, extrato or cartão header row")

// Parser reads CSV statements exported from Caixa Geral de Depósitos home
// banking. Preamble lines before the header row and footer lines after the
// movements are ignored.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one AddParams per movement, in file order, with debits negative.
func (p *Parser) Parse(r io.Reader) ([]transaction.AddParams, error) {
	decoded, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	st, ok := findHeader(rows)
	if !ok {
		return nil, ErrUnknownFormat
	}

	body := rows[st.header+1:]
	slog.Debug("parsing CGD statement", "layout", st.layout.name, "charset", charset, "rows", len(body))

	return st.movements(body)
}

type colIndex map[string]int

// statement is a detected header row and the layout it matched.
type statement struct {
	layout layout
	cols   colIndex
	header int
}

func findHeader(rows [][]string) (statement, bool) {
	for n, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for _, l := range layouts {
			if l.matches(cols) {
				return statement{layout: l, cols: cols, header: n}, true
			}
		}
	}

	return statement{}, false
}

// movements skips rows without a parsable date or a non-zero amount. Row
// numbers in errors are 1-based file lines.
func (st statement) movements(rows [][]string) ([]transaction.AddParams, error) {
	dateIdx := st.cols[st.layout.date]
	descIdx := st.cols[st.layout.description]

	out := []transaction.AddParams{}

	for i, row := range rows {
		date, err := time.Parse(dateLayout, cellValue(row, dateIdx))
		if err != nil {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", st.header+i+2)
		}

		amount, ok := st.layout.amount.read(row, st.cols)
		if !ok {
			continue
		}

		out = append(out, transaction.AddParams{
			Amount:      amount,
			Description: desc,
			Date:        date,
		})
	}

	return out, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
