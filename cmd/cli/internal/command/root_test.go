package command_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/paycycle/cmd/cli/internal/command"
)

func run(t *testing.T, dataFile string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := command.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--backend", "file", "--file", dataFile}, args...))

	err := root.Execute()

	return out.String(), err
}

func TestCLI_AddSumReport(t *testing.T) {
	data := filepath.Join(t.TempDir(), "transactions.json")

	for _, args := range [][]string{
		{"add", "1", "--amount", "11", "--description", "groceries", "--date", "2018-09-28"},
		{"add", "1", "--amount", "10.22", "--date", "2018-09-29"},
		{"add", "1", "--amount", "10.22", "--date", "2018-10-01"},
	} {
		_, err := run(t, data, args...)
		require.NoError(t, err, args)
	}

	out, err := run(t, data, "sum", "1")
	require.NoError(t, err)
	assert.Equal(t, "31.44\n", out)

	out, err = run(t, data, "report", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2018-09-28 Friday")
	assert.Contains(t, out, "2018-09-30 Sunday")
	assert.NotContains(t, out, "2018-10-01 Monday")

	out, err = run(t, data, "report", "1", "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "2018-10-01 Monday")
	assert.Contains(t, out, "2018-10-04 Thursday")

	out, err = run(t, data, "list", "1")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, "* 2018-09-28 | groceries | +11.00 |"))

	out, err = run(t, data, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USER")
	assert.Contains(t, out, "1 ")
}

func TestCLI_AddErrors(t *testing.T) {
	data := filepath.Join(t.TempDir(), "transactions.json")

	_, err := run(t, data, "add", " ", "--amount", "1")
	assert.Error(t, err)

	_, err = run(t, data, "add", "1", "--amount", "lots")
	assert.Error(t, err)

	_, err = run(t, data, "add", "1", "--amount", "1", "--date", "soon")
	assert.Error(t, err)

	_, statErr := os.Stat(data)
	assert.True(t, os.IsNotExist(statErr), "failed adds must not write the data file")
}

func TestCLI_ImportExportClear(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "transactions.json")
	statement := filepath.Join(dir, "statement.csv")

	require.NoError(t, os.WriteFile(statement, []byte("Data mov.;Descrição;Montante\n30-01-2026;RENT;-588,74\n09-01-2026;SALARY;8.608,52\n"), 0o600))

	out, err := run(t, data, "import", "1", "--csv", statement)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 transactions\n", out)

	out, err = run(t, data, "sum", "1")
	require.NoError(t, err)
	assert.Equal(t, "8019.78\n", out)

	workbook := filepath.Join(dir, "out.xlsx")
	_, err = run(t, data, "export", "1", "-o", workbook)
	require.NoError(t, err)

	f, err := excelize.OpenFile(workbook)
	require.NoError(t, err)
	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	require.NoError(t, f.Close())

	_, err = run(t, data, "clear")
	assert.Error(t, err, "clear requires confirmation")

	out, err = run(t, data, "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "store cleared\n", out)

	out, err = run(t, data, "sum", "1")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestCLI_UnknownBackend(t *testing.T) {
	var out bytes.Buffer

	root := command.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--backend", "redis", "sum", "1"})

	assert.Error(t, root.Execute())
}
