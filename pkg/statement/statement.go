// Package statement reads the bank's transaction listing CSV export into
// raw rows. No row-level validation happens here; a malformed row fails
// later in the classifier with its own context.
package statement

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/actau-dev/actau/pkg/models"
)

// Header names of the bank export. Column order is whatever the header row
// says; fields are keyed by name.
const (
	colAccountNumber = "Account Number"
	colType          = "Transaction Type"
	colEffectiveDate = "Effective Date"
	colDebit         = "Debit Amount"
	colCredit        = "Credit Amount"
	colShortDesc     = "Short Description"
	colLongDesc      = "Long Description"
	colMerchantName  = "Merchant Name"
	colCategories    = "Categories"
)

type Reader struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadFile reads one export file into rows, in file order.
func (r *Reader) ReadFile(path string) ([]models.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.FormatError{Input: path, Reason: err.Error()}
	}
	rows, err := r.Read(bytes.NewReader(data))
	if err != nil {
		return nil, &models.FormatError{Input: path, Reason: err.Error()}
	}
	return rows, nil
}

// Read parses delimited text with a header row into rows.
func (r *Reader) Read(src io.Reader) ([]models.Row, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // short rows pass through and fail in the classifier

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, io.ErrUnexpectedEOF
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}
	field := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]models.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, models.Row{
			AccountNumber: field(rec, colAccountNumber),
			Type:          models.TxType(field(rec, colType)),
			EffectiveDate: field(rec, colEffectiveDate),
			DebitAmount:   field(rec, colDebit),
			CreditAmount:  field(rec, colCredit),
			ShortDesc:     field(rec, colShortDesc),
			LongDesc:      field(rec, colLongDesc),
			MerchantName:  field(rec, colMerchantName),
			Categories:    field(rec, colCategories),
		})
	}

	r.logger.Debug("read statement rows", "count", len(rows))
	return rows, nil
}
