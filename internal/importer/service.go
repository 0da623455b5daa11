package importer

import (
	"fmt"
	"io"

	"github.com/dkrasnov/kopilka/internal/importer/generic"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

type Service struct {
	genericImporter Importer
}

func NewService() *Service {
	return &Service{
		genericImporter: generic.NewParser(),
	}
}

// Import parses the statement into transaction params. Owner assignment is
// the caller's business; parsed params carry no owner.
func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	var importer Importer

	switch format {
	case FormatGeneric:
		importer = s.genericImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
