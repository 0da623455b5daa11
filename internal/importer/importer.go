package importer

import (
	"io"

	"github.com/dkrasnov/kopilka/internal/transaction"
)

// Format names a supported statement layout.
type Format string

const (
	// FormatGeneric is a semicolon-separated CSV with a
	// date;amount;category;description;kind header.
	FormatGeneric Format = "generic"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
