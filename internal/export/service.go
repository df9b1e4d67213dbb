package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

const (
	SheetTransactions = "Transactions"
	SheetReport       = "Report"

	dateLayout = "2006-01-02"
	// ContentType is the media type of the workbook written by WriteXLSX.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Source supplies a user's transactions and report.
type Source interface {
	GetByUserID(userID string) []transaction.Transaction
	GetReportByUserID(userID string) []transaction.Week
}

// Service renders a user's transactions for consumption outside the API.
type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// WriteXLSX writes a workbook with a Transactions sheet and a Report sheet.
func (s *Service) WriteXLSX(w io.Writer, userID string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetTransactions); err != nil {
		return fmt.Errorf("naming transactions sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetReport); err != nil {
		return fmt.Errorf("creating report sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeTransactions(f, header, s.source.GetByUserID(userID)); err != nil {
		return err
	}

	if err := writeReport(f, header, s.source.GetReportByUserID(userID)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeTransactions(f *excelize.File, header int, txs []transaction.Transaction) error {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"Date", "Description", "Amount", "ID"})

	for _, tx := range txs {
		rows = append(rows, []any{
			tx.Date.UTC().Format(dateLayout),
			tx.Description,
			tx.Amount.InexactFloat64(),
			tx.ID,
		})
	}

	return writeRows(f, SheetTransactions, header, rows)
}

func writeReport(f *excelize.File, header int, weeks []transaction.Week) error {
	rows := make([][]any, 0, len(weeks)+1)
	rows = append(rows, []any{"Week start", "Start day", "Week end", "End day", "Quantity", "Amount", "Total before"})

	for _, w := range weeks {
		rows = append(rows, []any{
			w.Start.Format(dateLayout),
			w.WeekdayStart,
			w.End.Format(dateLayout),
			w.WeekdayEnd,
			len(w.Transactions),
			w.Amount.InexactFloat64(),
			w.TotalAmount.InexactFloat64(),
		})
	}

	return writeRows(f, SheetReport, header, rows)
}

func writeRows(f *excelize.File, sheet string, header int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	return nil
}

// Summary renders one line per transaction, oldest first.
func (s *Service) Summary(userID string) string {
	var sb strings.Builder

	for _, tx := range s.source.GetByUserID(userID) {
		sign := ""
		if tx.Amount.IsPositive() {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			tx.Date.UTC().Format(dateLayout), tx.Description, sign, tx.Amount.StringFixed(2), tx.ID)
	}

	return sb.String()
}
