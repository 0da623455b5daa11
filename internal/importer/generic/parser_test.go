package generic_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/dkrasnov/kopilka/internal/importer/generic"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Parse(t *testing.T) {
	csv := `date;amount;category;description;kind
2026-01-09;8608,52;salary;January payroll;income
30-01-2026;588.74;taxes;Quarterly prepayment;expense
15/02/2026;12;groceries;;expense
`

	p := generic.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, date(2026, 1, 9), txs[0].Date)
	assert.Equal(t, 8608.52, txs[0].Amount)
	assert.Equal(t, "salary", txs[0].Category)
	assert.Equal(t, "January payroll", txs[0].Description)
	assert.Equal(t, transaction.TypeIncome, txs[0].Type)

	assert.Equal(t, date(2026, 1, 30), txs[1].Date)
	assert.Equal(t, 588.74, txs[1].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[1].Type)

	assert.Equal(t, date(2026, 2, 15), txs[2].Date)
	assert.Equal(t, 12.0, txs[2].Amount)
	assert.Empty(t, txs[2].Description)
}

func TestParser_HeaderOrderIrrelevant(t *testing.T) {
	csv := `kind;description;amount;date;category
income;Refund;30,00;2026-03-01;shopping
`

	p := generic.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, 30.0, txs[0].Amount)
	assert.Equal(t, "shopping", txs[0].Category)
}

func TestParser_Windows1252(t *testing.T) {
	csv := "date;amount;category;description;kind\n2026-01-05;9,90;café;Crème brûlée;expense\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	p := generic.NewParser()
	txs, err := p.Parse(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "café", txs[0].Category)
	assert.Equal(t, "Crème brûlée", txs[0].Description)
}

func TestParser_Errors(t *testing.T) {
	p := generic.NewParser()

	t.Run("EmptyFile", func(t *testing.T) {
		_, err := p.Parse(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		_, err := p.Parse(strings.NewReader("date;amount;category;kind\n"))
		assert.ErrorContains(t, err, "description")
	})

	t.Run("BadDate", func(t *testing.T) {
		csv := "date;amount;category;description;kind\nyesterday;10;misc;;expense\n"

		_, err := p.Parse(strings.NewReader(csv))
		assert.ErrorContains(t, err, "row 2")
	})

	t.Run("BadAmount", func(t *testing.T) {
		csv := "date;amount;category;description;kind\n2026-01-01;lots;misc;;expense\n"

		_, err := p.Parse(strings.NewReader(csv))
		assert.ErrorContains(t, err, "amount")
	})

	t.Run("UnknownKind", func(t *testing.T) {
		csv := "date;amount;category;description;kind\n2026-01-01;10;misc;;transfer\n"

		_, err := p.Parse(strings.NewReader(csv))
		assert.ErrorContains(t, err, "kind")
	})
}
