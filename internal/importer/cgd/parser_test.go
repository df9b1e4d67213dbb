package cgd_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/paycycle/internal/importer/cgd"
)

const contaStatement = `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JANE ROE
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;RENDA JANEIRO;-588,74;48.825,46
09-01-2026;09-01-2026;SALARIO;8.608,52;52.532,78
`

const extratoStatement = `Consultar extrato - 15-02-2026 : 0000
Conta ;0000 - EUR - Conta Extracto
Intervalo de ;01-02-2026 a 14-02-2026

Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-02-2026;13-02-2026;"=""0003""";SEGURANCA SOCIAL ;-608,13;  ;41.393,66;
04-02-2026;04-02-2026;SIBS ;TRANSFERENCIA ;4.324,06;  ;51.302,85;
`

const cartaoStatement = `Consultar saldos e movimentos de cartões - 15-02-2026
Conta cartão ;4163 **** **** 0000 - EUR - Débito

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;MERCEARIA     LISBOA ;64,00 ; ;
18-12-2025 ;17-12-2025 ;DEVOLUCAO LOJA ;  ;25,00 ;
31-12-2025 ;29-12-2025 ;COMBUSTIVEL ;-47,91 ; ;
 ; ; ; ;Página 1/2 ;
`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type movement struct {
	date        time.Time
	description string
	amount      string
}

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  []movement
	}

	tests := []testCase{
		{
			name:  "Conta",
			input: contaStatement,
			want: []movement{
				{date(2026, 1, 30), "RENDA JANEIRO", "-588.74"},
				{date(2026, 1, 9), "SALARIO", "8608.52"},
			},
		},
		{
			name:  "Extrato",
			input: extratoStatement,
			want: []movement{
				{date(2026, 2, 13), "SEGURANCA SOCIAL", "-608.13"},
				{date(2026, 2, 4), "TRANSFERENCIA", "4324.06"},
			},
		},
		{
			name:  "CartaoDebitsAreOutflowsWhateverTheSign",
			input: cartaoStatement,
			want: []movement{
				{date(2025, 12, 16), "MERCEARIA     LISBOA", "-64"},
				{date(2025, 12, 18), "DEVOLUCAO LOJA", "25"},
				{date(2025, 12, 31), "COMBUSTIVEL", "-47.91"},
			},
		},
		{
			name:  "ColumnsInAnyOrder",
			input: "Exportado;hoje\nMontante;Descrição;Data mov.;Extra\n-10,00;CAFE;30-01-2026;x\n",
			want:  []movement{{date(2026, 1, 30), "CAFE", "-10"}},
		},
		{
			name:  "ThousandsSeparators",
			input: "Data mov.;Descrição;Montante\n30-01-2026;CASA;-1.234.567,89\n",
			want:  []movement{{date(2026, 1, 30), "CASA", "-1234567.89"}},
		},
		{
			name:  "ZeroAmountsAndFootersSkipped",
			input: "Data mov.;Descrição;Montante\n30-01-2026;ACERTO;0,00\n31-01-2026;CAFE;-1,50\nTotais;;;;\n",
			want:  []movement{{date(2026, 1, 31), "CAFE", "-1.5"}},
		},
		{
			name:  "HeaderOnly",
			input: "Data mov.;Data-valor;Descrição;Montante",
			want:  []movement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cgd.NewParser().Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, len(tt.want))

			for i, w := range tt.want {
				assert.Equal(t, w.date, got[i].Date, "row %d date", i)
				assert.Equal(t, w.description, got[i].Description, "row %d description", i)
				assert.Equal(t, w.amount, got[i].Amount.String(), "row %d amount", i)
			}
		})
	}
}

func TestParser_Parse_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"))
	require.NoError(t, err)

	got, err := cgd.NewParser().Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "CAFÉ CENTRAL", got[0].Description)
	assert.Equal(t, "-10", got[0].Amount.String())
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		_, err := cgd.NewParser().Parse(strings.NewReader(""))
		assert.ErrorIs(t, err, cgd.ErrUnknownFormat)
	})

	t.Run("NoKnownHeader", func(t *testing.T) {
		_, err := cgd.NewParser().Parse(strings.NewReader("date,amount\n2026-01-01,10\n"))
		assert.ErrorIs(t, err, cgd.ErrUnknownFormat)
	})

	t.Run("MissingDescription", func(t *testing.T) {
		_, err := cgd.NewParser().Parse(strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;;-10,00\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2: missing description")
	})
}
