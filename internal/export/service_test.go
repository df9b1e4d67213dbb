package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/paycycle/internal/export"
	"github.com/MrJamesThe3rd/paycycle/internal/report"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

func seededStore(t *testing.T) *transaction.Store {
	t.Helper()

	ids := []string{"tx-1", "tx-2", "tx-3"}
	next := 0

	store := transaction.NewStore(nil, report.New(), transaction.WithIDGenerator(func() string {
		id := ids[next]
		next++

		return id
	}))

	for _, p := range []transaction.AddParams{
		{Amount: decimal.RequireFromString("11"), Description: "groceries", Date: time.Date(2018, 9, 28, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.RequireFromString("10.22"), Description: "fuel", Date: time.Date(2018, 9, 29, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.RequireFromString("-10.22"), Description: "refund", Date: time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC)},
	} {
		_, err := store.Add("1", p)
		require.NoError(t, err)
	}

	return store
}

func TestService_WriteXLSX(t *testing.T) {
	svc := export.NewService(seededStore(t))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteXLSX(&buf, "1"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetTransactions, export.SheetReport}, f.GetSheetList())

	txRows, err := f.GetRows(export.SheetTransactions, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Description", "Amount", "ID"},
		{"2018-09-28", "groceries", "11", "tx-1"},
		{"2018-09-29", "fuel", "10.22", "tx-2"},
		{"2018-10-01", "refund", "-10.22", "tx-3"},
	}, txRows)

	reportRows, err := f.GetRows(export.SheetReport, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Week start", "Start day", "Week end", "End day", "Quantity", "Amount", "Total before"},
		{"2018-09-28", "Friday", "2018-09-30", "Sunday", "2", "21.22", "0"},
	}, reportRows)
}

func TestService_WriteXLSX_UnknownUser(t *testing.T) {
	svc := export.NewService(seededStore(t))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteXLSX(&buf, "nobody"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetTransactions)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestService_Summary(t *testing.T) {
	svc := export.NewService(seededStore(t))

	want := "* 2018-09-28 | groceries | +11.00 | tx-1\n" +
		"* 2018-09-29 | fuel | +10.22 | tx-2\n" +
		"* 2018-10-01 | refund | -10.22 | tx-3\n"

	assert.Equal(t, want, svc.Summary("1"))
	assert.Empty(t, svc.Summary("nobody"))
}
