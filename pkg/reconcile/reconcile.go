// Package reconcile resolves extracted category and payee names against the
// budget server's existing taxonomy. It keeps a session-lifetime snapshot of
// categories, payees and accounts, fetched on first use and kept across every
// file processed in the run. Categories can be appended (local cache plus
// remote create); payees are read-only.
package reconcile

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/actau-dev/actau/pkg/ledger"
	"github.com/actau-dev/actau/pkg/models"
)

// InterestCategory is the one category name that lands in the income group
// when created; everything else goes to the default expense group.
const InterestCategory = "Interest"

// Remote is the slice of the ledger client the reconciler needs.
type Remote interface {
	Accounts() ([]ledger.Account, error)
	Payees() ([]ledger.Payee, error)
	Categories() ([]ledger.Category, error)
	CategoryGroups() ([]ledger.CategoryGroup, error)
	CreateCategory(name, groupID string) (string, error)
}

type Reconciler struct {
	remote Remote
	logger *log.Logger
	dryRun bool

	loaded           bool
	accounts         map[string]ledger.Account // by id
	categoriesByName map[string]ledger.Category
	transferPayees   map[string]ledger.Payee // by transfer account id
	incomeGroupID    string
	defaultGroupID   string
}

func New(remote Remote, logger *log.Logger, dryRun bool) *Reconciler {
	return &Reconciler{remote: remote, logger: logger, dryRun: dryRun}
}

// ensureLoaded pulls the taxonomy snapshot once per session. Execution is
// strictly sequential, so no locking is needed around the maps.
func (r *Reconciler) ensureLoaded() error {
	if r.loaded {
		return nil
	}

	accounts, err := r.remote.Accounts()
	if err != nil {
		return err
	}
	payees, err := r.remote.Payees()
	if err != nil {
		return err
	}
	categories, err := r.remote.Categories()
	if err != nil {
		return err
	}
	groups, err := r.remote.CategoryGroups()
	if err != nil {
		return err
	}

	r.accounts = make(map[string]ledger.Account, len(accounts))
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	r.categoriesByName = make(map[string]ledger.Category, len(categories))
	for _, c := range categories {
		r.categoriesByName[c.Name] = c
	}
	r.transferPayees = make(map[string]ledger.Payee)
	for _, p := range payees {
		if p.TransferAccountID != "" {
			r.transferPayees[p.TransferAccountID] = p
		}
	}
	for _, g := range groups {
		if g.IsIncome && r.incomeGroupID == "" {
			r.incomeGroupID = g.ID
		}
		if !g.IsIncome && r.defaultGroupID == "" {
			r.defaultGroupID = g.ID
		}
	}
	if r.incomeGroupID == "" || r.defaultGroupID == "" {
		return fmt.Errorf("budget has no income or no expense category group")
	}

	r.logger.Debug("loaded taxonomy snapshot",
		"accounts", len(accounts), "payees", len(payees),
		"categories", len(categories), "groups", len(groups))
	r.loaded = true
	return nil
}

// HasAccount reports whether the ledger knows the account id.
func (r *Reconciler) HasAccount(id string) (bool, error) {
	if err := r.ensureLoaded(); err != nil {
		return false, err
	}
	_, ok := r.accounts[id]
	return ok, nil
}

// CategoryByName looks up a category by exact name in the snapshot.
func (r *Reconciler) CategoryByName(name string) (ledger.Category, bool, error) {
	if err := r.ensureLoaded(); err != nil {
		return ledger.Category{}, false, err
	}
	c, ok := r.categoriesByName[name]
	return c, ok, nil
}

// EnsureCategory returns the id of the named category, creating it remotely
// if the snapshot has no match. The cache is consulted first, so repeated
// calls within a session are idempotent. In dry-run mode creation is
// cache-local with a placeholder id and nothing is written remotely.
func (r *Reconciler) EnsureCategory(name string) (string, error) {
	if err := r.ensureLoaded(); err != nil {
		return "", err
	}
	if c, ok := r.categoriesByName[name]; ok {
		return c.ID, nil
	}

	groupID := r.defaultGroupID
	if name == InterestCategory {
		groupID = r.incomeGroupID
	}

	var id string
	if r.dryRun {
		id = "dry-run:" + name
		r.logger.Info("would create category", "name", name, "group", groupID)
	} else {
		created, err := r.remote.CreateCategory(name, groupID)
		if err != nil {
			return "", err
		}
		id = created
	}
	r.categoriesByName[name] = ledger.Category{ID: id, Name: name, GroupID: groupID}
	return id, nil
}

// TransferPayee finds the existing transfer payee bound to a destination
// account. Transfer payees come from account onboarding and are never
// created here.
func (r *Reconciler) TransferPayee(accountID string) (ledger.Payee, error) {
	if err := r.ensureLoaded(); err != nil {
		return ledger.Payee{}, err
	}
	p, ok := r.transferPayees[accountID]
	if !ok {
		return ledger.Payee{}, &models.TransferPayeeNotFoundError{AccountID: accountID}
	}
	return p, nil
}
