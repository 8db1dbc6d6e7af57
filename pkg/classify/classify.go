// Package classify turns raw statement rows into normalized transaction
// candidates. Each transaction type gets its own extraction strategy over
// the narrative text; the type set is closed and dispatch is exhaustive.
package classify

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/actau-dev/actau/pkg/models"
	"github.com/actau-dev/actau/pkg/reconcile"
)

type Classifier struct {
	accounts models.AccountMap
	taxonomy *reconcile.Reconciler
	logger   *log.Logger
}

func New(accounts models.AccountMap, taxonomy *reconcile.Reconciler, logger *log.Logger) *Classifier {
	return &Classifier{accounts: accounts, taxonomy: taxonomy, logger: logger}
}

// Classify maps one row to a candidate. A nil candidate with a nil error
// means the row is deliberately not imported (balance-only rows and the
// receiving side of transfers).
func (c *Classifier) Classify(row models.Row) (*models.Candidate, error) {
	debit, err := parseAmount(row.DebitAmount)
	if err != nil {
		return nil, &models.ParseError{Row: row, Reason: "unparseable debit amount"}
	}
	credit, err := parseAmount(row.CreditAmount)
	if err != nil {
		return nil, &models.ParseError{Row: row, Reason: "unparseable credit amount"}
	}
	if debit.IsZero() && credit.IsZero() {
		c.logger.Debug("suppressing zero-amount row", "narrative", row.LongDesc)
		return nil, nil
	}

	accountID, err := c.accounts.Resolve(row.AccountNumber, row)
	if err != nil {
		return nil, err
	}
	date, err := NormalizeDate(row.EffectiveDate)
	if err != nil {
		return nil, err
	}
	cents := credit.Sub(debit).Shift(2).IntPart()
	base := models.NewCandidate(accountID, date, cents, row)

	switch row.Type {
	case models.TxAll:
		return c.classifyAll(base, row)
	case models.TxWithdrawals:
		return c.classifyWithdrawal(base, row)
	case models.TxDeposits:
		return c.classifyDeposit(base, row)
	case models.TxBPay:
		return c.classifyBPay(base, row)
	case models.TxCard:
		return c.classifyCard(base, row)
	default:
		return nil, &models.ParseError{Row: row, Reason: "unknown transaction type"}
	}
}

// interestLabels are narratives the bank emits for its own interest and fee
// postings. The narrative doubles as the payee name.
var interestLabels = map[string]bool{
	"Interest Credit":      true,
	"Credit Card Interest": true,
	"Cash Advance Fee":     true,
}

func (c *Classifier) classifyAll(base models.Candidate, row models.Row) (*models.Candidate, error) {
	n := row.Narrative()

	switch {
	case strings.HasPrefix(n, "Transfer to"):
		m := transferToPattern.FindStringSubmatch(n)
		if m == nil {
			return nil, &models.ParseError{Row: row, Reason: "transfer narrative has no destination account"}
		}
		cand, err := c.resolveTransfer(base, m[1], row)
		if err != nil {
			return nil, err
		}
		return &cand, nil

	case strings.HasPrefix(n, "Transfer from"),
		row.ShortDesc == "Internet Transfer" && strings.Contains(n, "Received from"):
		// The paired "to" side on the counterparty account is the single
		// source of truth for transfers.
		c.logger.Debug("suppressing received transfer", "narrative", n)
		return nil, nil

	case interestLabels[n]:
		categoryID, err := c.taxonomy.EnsureCategory(reconcile.InterestCategory)
		if err != nil {
			return nil, err
		}
		cand := base.WithPayeeName(n).WithCategoryID(categoryID)
		return &cand, nil

	case row.ShortDesc == "Internet Ext Transfer":
		m := extTransferPattern.FindStringSubmatch(n)
		if m == nil {
			return nil, &models.ParseError{Row: row, Reason: "unrecognized external transfer narrative"}
		}
		cand := base.WithPayeeName(strings.TrimSpace(m[3])).WithImportID(m[1])
		return &cand, nil

	case strings.HasPrefix(n, "Net tfr received from"):
		c.logger.Debug("suppressing received net transfer", "narrative", n)
		return nil, nil

	case strings.HasPrefix(n, "Net tfr to"):
		m := netTransferPattern.FindStringSubmatch(n)
		if m == nil {
			return nil, &models.ParseError{Row: row, Reason: "unrecognized net transfer narrative"}
		}
		cand, err := c.resolveTransfer(base, m[1], row)
		if err != nil {
			return nil, err
		}
		cand = cand.WithImportID(m[2])
		return &cand, nil

	default:
		// Too heterogeneous to enumerate. Import anyway, flagged for
		// manual review.
		c.logger.Debug("unrecognized ALL narrative, importing uncleared", "narrative", n)
		cand := base.Uncleared()
		return &cand, nil
	}
}

// resolveTransfer maps an 8-digit destination account number to the ledger's
// pre-existing transfer payee for that account.
func (c *Classifier) resolveTransfer(base models.Candidate, destNumber string, row models.Row) (models.Candidate, error) {
	destID, err := c.accounts.Resolve(destNumber, row)
	if err != nil {
		return base, err
	}
	payee, err := c.taxonomy.TransferPayee(destID)
	if err != nil {
		return base, err
	}
	return base.WithPayeeID(payee.ID), nil
}

func (c *Classifier) classifyWithdrawal(base models.Candidate, row models.Row) (*models.Candidate, error) {
	n := row.Narrative()

	if m := oskoToPattern.FindStringSubmatch(n); m != nil {
		cand := base.WithPayeeName(strings.TrimSpace(m[1])).WithImportID(m[2])
		return &cand, nil
	}
	if m := directDebitPattern.FindStringSubmatch(n); m != nil {
		cand := base.WithPayeeName(strings.TrimSpace(m[1]))
		return &cand, nil
	}
	return nil, &models.ParseError{Row: row, Reason: "unrecognized withdrawal narrative"}
}

func (c *Classifier) classifyDeposit(base models.Candidate, row models.Row) (*models.Candidate, error) {
	n := row.Narrative()

	if m := oskoFromPattern.FindStringSubmatch(n); m != nil {
		cand := base.WithPayeeName(strings.TrimSpace(m[1]))
		return &cand, nil
	}
	if m := directCreditPattern.FindStringSubmatch(n); m != nil {
		cand := base.WithPayeeName(strings.TrimSpace(m[1]))
		return &cand, nil
	}
	if strings.HasPrefix(n, "SWIFT") {
		// SWIFT narratives carry no usable structure; the short
		// description is the best payee available.
		cand := base.WithPayeeName(row.ShortDesc)
		return &cand, nil
	}
	return nil, &models.ParseError{Row: row, Reason: "unrecognized deposit narrative"}
}

func (c *Classifier) classifyBPay(base models.Candidate, row models.Row) (*models.Candidate, error) {
	m := bpayPattern.FindStringSubmatch(row.Narrative())
	if m == nil {
		return nil, &models.ParseError{Row: row, Reason: "unrecognized BPAY narrative"}
	}
	cand := base.WithPayeeName(strings.TrimSpace(m[1])).WithImportID(m[2] + "-" + m[3])
	return &cand, nil
}

// parseAmount reads a bank amount string into a decimal. Empty means zero;
// currency symbols and thousands separators are tolerated.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}
