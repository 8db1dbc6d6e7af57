package models

import (
	"fmt"
	"strings"
	"time"
)

// Candidate is a normalized transaction ready for import. Values are never
// mutated after construction; classifier branches layer fields on with the
// With* copy methods.
//
// Exactly one of PayeeName or PayeeID is set: PayeeName imports a free-text
// payee, PayeeID links the ledger's existing transfer payee for an
// intra-ledger transfer.
type Candidate struct {
	AccountID  string
	Date       time.Time
	Amount     int64 // minor units, credit minus debit
	Cleared    bool
	Notes      string
	PayeeName  string
	PayeeID    string
	CategoryID string
	ImportID   string
}

// NewCandidate builds the base candidate every classifier branch starts from.
// Notes keeps a verbatim archival dump of the fields the heuristics consume.
func NewCandidate(accountID string, date time.Time, amount int64, row Row) Candidate {
	return Candidate{
		AccountID: accountID,
		Date:      date,
		Amount:    amount,
		Cleared:   true,
		Notes:     strings.Join([]string{row.LongDesc, row.MerchantName, row.Categories}, "|"),
	}
}

func (c Candidate) WithPayeeName(name string) Candidate {
	c.PayeeName = name
	return c
}

func (c Candidate) WithPayeeID(id string) Candidate {
	c.PayeeID = id
	return c
}

func (c Candidate) WithCategoryID(id string) Candidate {
	c.CategoryID = id
	return c
}

func (c Candidate) WithImportID(id string) Candidate {
	c.ImportID = id
	return c
}

// Uncleared flags the candidate for manual review.
func (c Candidate) Uncleared() Candidate {
	c.Cleared = false
	return c
}

func (c Candidate) String() string {
	payee := c.PayeeName
	if payee == "" && c.PayeeID != "" {
		payee = "payee:" + c.PayeeID
	}
	return fmt.Sprintf("%s %-30s %10.2f", c.Date.Format("2006-01-02"), payee, float64(c.Amount)/100)
}
