// Package importer drives a run: read each statement file, classify its
// rows, group candidates by destination account, submit the batches, sync.
// Files are processed strictly one after another; the taxonomy snapshot in
// the reconciler persists across all of them.
package importer

import (
	"github.com/charmbracelet/log"

	"github.com/actau-dev/actau/pkg/classify"
	"github.com/actau-dev/actau/pkg/ledger"
	"github.com/actau-dev/actau/pkg/models"
	"github.com/actau-dev/actau/pkg/statement"
)

// Ledger is the slice of the client the importer needs.
type Ledger interface {
	ImportTransactions(accountID string, txs []ledger.Transaction) (ledger.ImportResult, error)
	Sync() error
}

type Importer struct {
	reader     *statement.Reader
	classifier *classify.Classifier
	ledger     Ledger
	logger     *log.Logger
	dryRun     bool
}

func New(reader *statement.Reader, classifier *classify.Classifier, lg Ledger, logger *log.Logger, dryRun bool) *Importer {
	return &Importer{reader: reader, classifier: classifier, ledger: lg, logger: logger, dryRun: dryRun}
}

// Run processes the files in the given order. Any error aborts the run; no
// retries are attempted anywhere.
func (i *Importer) Run(paths []string) error {
	for _, path := range paths {
		if err := i.runFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (i *Importer) runFile(path string) error {
	i.logger.Info("processing statement", "file", path)

	rows, err := i.reader.ReadFile(path)
	if err != nil {
		return err
	}

	var candidates []models.Candidate
	suppressed := 0
	for _, row := range rows {
		cand, err := i.classifier.Classify(row)
		if err != nil {
			return err
		}
		if cand == nil {
			suppressed++
			continue
		}
		candidates = append(candidates, *cand)
	}
	i.logger.Info("classified rows", "file", path, "candidates", len(candidates), "suppressed", suppressed)

	order, groups := groupByAccount(candidates)
	if i.dryRun {
		printPlan(order, groups)
		return nil
	}

	for _, accountID := range order {
		batch := toPayload(groups[accountID])
		res, err := i.ledger.ImportTransactions(accountID, batch)
		if err != nil {
			return err
		}
		i.logger.Info("imported batch", "account", accountID,
			"added", len(res.Added), "updated", len(res.Updated), "errored", len(res.Errors))
	}

	return i.ledger.Sync()
}

// groupByAccount buckets candidates by destination account, keeping accounts
// in first-seen order and candidates in file order within each bucket.
func groupByAccount(candidates []models.Candidate) ([]string, map[string][]models.Candidate) {
	var order []string
	groups := make(map[string][]models.Candidate)
	for _, cand := range candidates {
		if _, ok := groups[cand.AccountID]; !ok {
			order = append(order, cand.AccountID)
		}
		groups[cand.AccountID] = append(groups[cand.AccountID], cand)
	}
	return order, groups
}

func toPayload(candidates []models.Candidate) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, ledger.Transaction{
			Date:       c.Date.Format("2006-01-02"),
			Amount:     c.Amount,
			PayeeName:  c.PayeeName,
			PayeeID:    c.PayeeID,
			CategoryID: c.CategoryID,
			Notes:      c.Notes,
			Cleared:    c.Cleared,
			ImportID:   c.ImportID,
		})
	}
	return out
}
