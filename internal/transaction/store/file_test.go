package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction/store"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFile_Load(t *testing.T) {
	type testCase struct {
		name    string
		content *string
		want    []transaction.UserRecord
		wantErr bool
	}

	tests := []testCase{
		{
			name: "MissingFileIsEmpty",
			want: []transaction.UserRecord{},
		},
		{
			name:    "BlankFileIsEmpty",
			content: ptr("  \n"),
			want:    []transaction.UserRecord{},
		},
		{
			name:    "NullIsEmpty",
			content: ptr("null"),
			want:    []transaction.UserRecord{},
		},
		{
			name: "NumericUserIDAndDateOnly",
			content: ptr(`[
				{"userId": 1, "transactions": [
					{"id": "a", "amount": 10.22, "description": "groceries", "date": "2018-09-28"}
				]}
			]`),
			want: []transaction.UserRecord{
				{
					UserID: "1",
					Transactions: []transaction.Transaction{
						{
							ID:          "a",
							Amount:      decimal.RequireFromString("10.22"),
							Description: "groceries",
							Date:        time.Date(2018, 9, 28, 0, 0, 0, 0, time.UTC),
						},
					},
				},
			},
		},
		{
			name: "StringUserIDAndTimestamp",
			content: ptr(`[
				{"userId": "alice", "transactions": [
					{"id": "b", "amount": -5, "description": "", "date": "2018-10-01T10:00:00Z"}
				]},
				{"userId": "bob", "transactions": []}
			]`),
			want: []transaction.UserRecord{
				{
					UserID: "alice",
					Transactions: []transaction.Transaction{
						{ID: "b", Amount: decimal.NewFromInt(-5), Date: time.Date(2018, 10, 1, 10, 0, 0, 0, time.UTC)},
					},
				},
				{UserID: "bob", Transactions: []transaction.Transaction{}},
			},
		},
		{
			name:    "MalformedJSON",
			content: ptr(`[{"userId": `),
			wantErr: true,
		},
		{
			name:    "BadDate",
			content: ptr(`[{"userId": "a", "transactions": [{"id": "x", "amount": 1, "date": "yesterday"}]}]`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "transactions.json")
			if tt.content != nil {
				path = writeFile(t, *tt.content)
			}

			got, err := store.NewFile(path).Load(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i := range tt.want {
				assert.Equal(t, tt.want[i].UserID, got[i].UserID)
				require.Len(t, got[i].Transactions, len(tt.want[i].Transactions))

				for j, want := range tt.want[i].Transactions {
					gotTx := got[i].Transactions[j]

					assert.Equal(t, want.ID, gotTx.ID)
					assert.Equal(t, want.Description, gotTx.Description)
					assert.True(t, want.Amount.Equal(gotTx.Amount), "amount: got %s", gotTx.Amount)
					assert.True(t, want.Date.Equal(gotTx.Date), "date: got %s", gotTx.Date)
				}
			}
		})
	}
}

func TestFile_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "transactions.json")
	f := store.NewFile(path)

	records := []transaction.UserRecord{
		{
			UserID: "2",
			Transactions: []transaction.Transaction{
				{ID: "b", Amount: decimal.RequireFromString("0.1"), Description: "second", Date: time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "a", Amount: decimal.RequireFromString("-3.50"), Description: "first", Date: time.Date(2018, 9, 28, 12, 30, 0, 0, time.UTC)},
			},
		},
		{UserID: "1", Transactions: []transaction.Transaction{}},
	}

	require.NoError(t, f.Save(context.Background(), records))

	got, err := f.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].UserID)
	assert.Equal(t, "1", got[1].UserID)
	assert.Empty(t, got[1].Transactions)

	require.Len(t, got[0].Transactions, 2)
	assert.Equal(t, "b", got[0].Transactions[0].ID)
	assert.Equal(t, "a", got[0].Transactions[1].ID)
	assert.True(t, decimal.RequireFromString("-3.5").Equal(got[0].Transactions[1].Amount))
	assert.True(t, records[0].Transactions[1].Date.Equal(got[0].Transactions[1].Date))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFile_SaveWritesIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")

	err := store.NewFile(path).Save(context.Background(), []transaction.UserRecord{
		{
			UserID: "1",
			Transactions: []transaction.Transaction{
				{ID: "a", Amount: decimal.RequireFromString("10.22"), Description: "x", Date: time.Date(2018, 9, 28, 0, 0, 0, 0, time.UTC)},
			},
		},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[
  {
    "userId": "1",
    "transactions": [
      {
        "id": "a",
        "amount": 10.22,
        "description": "x",
        "date": "2018-09-28T00:00:00Z"
      }
    ]
  }
]
`
	assert.Equal(t, want, string(raw))
}

func TestFile_SaveEmpty(t *testing.T) {
	path := writeFile(t, `[{"userId": "1", "transactions": []}]`)
	f := store.NewFile(path)

	require.NoError(t, f.Save(context.Background(), []transaction.UserRecord{}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func ptr[T any](v T) *T { return &v }
