// Package generic parses the importer's own CSV statement layout:
// a header row with date, amount, category, description and kind columns,
// semicolon separated. Input may arrive in any encoding a bank export uses;
// the parser normalizes to UTF-8 first.
package generic

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/dkrasnov/kopilka/internal/encoding"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var requiredCols = []string{"date", "amount", "category", "description", "kind"}

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	cols, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	params := make([]transaction.CreateParams, 0, len(rows)-1)

	for i, row := range rows[1:] {
		p, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func indexHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))

	for i, cell := range header {
		cols[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}

	return cols, nil
}

func parseRow(cols map[string]int, row []string) (transaction.CreateParams, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	amount, err := parseAmount(field("amount"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	kind, err := parseKind(field("kind"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		Amount:      amount,
		Category:    field("category"),
		Date:        date,
		Description: field("description"),
		Type:        kind,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseAmount accepts both dot and comma decimal separators.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", s)
	}

	return amount, nil
}

func parseKind(s string) (transaction.Type, error) {
	switch strings.ToLower(s) {
	case "income":
		return transaction.TypeIncome, nil
	case "expense":
		return transaction.TypeExpense, nil
	}

	return "", fmt.Errorf("unknown kind %q", s)
}
