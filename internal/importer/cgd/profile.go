package cgd

import "github.com/shopspring/decimal"

// amountColumns knows which header cells carry the amount and how to sign it.
type amountColumns interface {
	names() []string
	read(row []string, cols colIndex) (decimal.Decimal, bool)
}

// signedColumn is a single column that already carries the sign, e.g. "-10,00".
type signedColumn string

func (c signedColumn) names() []string { return []string{string(c)} }

func (c signedColumn) read(row []string, cols colIndex) (decimal.Decimal, bool) {
	return readAmount(row, cols[string(c)])
}

// debitCredit splits outflows and inflows into two unsigned columns. The debit
// column wins when both are filled and is always an outflow.
type debitCredit struct {
	debit, credit string
}

func (c debitCredit) names() []string { return []string{c.debit, c.credit} }

func (c debitCredit) read(row []string, cols colIndex) (decimal.Decimal, bool) {
	if d, ok := readAmount(row, cols[c.debit]); ok {
		return d.Abs().Neg(), true
	}

	if d, ok := readAmount(row, cols[c.credit]); ok {
		return d.Abs(), true
	}

	return decimal.Zero, false
}

// layout is the column set of one CGD export variant.
type layout struct {
	name        string
	date        string
	description string
	amount      amountColumns
}

func (l layout) matches(cols colIndex) bool {
	required := append([]string{l.date, l.description}, l.amount.names()...)

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// layouts are tried in order, most specific first.
var layouts = []layout{
	{name: "cartão", date: "Data", description: "Descrição", amount: debitCredit{debit: "Débito", credit: "Crédito"}},
	{name: "extrato", date: "Data mov.", description: "Descrição", amount: signedColumn("Movimento")},
	{name: "conta", date: "Data mov.", description: "Descrição", amount: signedColumn("Montante")},
}
