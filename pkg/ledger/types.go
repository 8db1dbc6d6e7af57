package ledger

// Types mirror the budget server's REST payloads. Responses come wrapped in
// a data envelope.

type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

type Payee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// TransferAccountID links the payee to the account it represents for
	// intra-ledger transfers. Empty for ordinary payees.
	TransferAccountID string `json:"transfer_acct,omitempty"`
}

type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id"`
}

type CategoryGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

// Transaction is one row of an import batch. Amount is in minor units,
// credit positive. ImportID is the server's duplicate-suppression key:
// importing the same id twice must not create a second transaction.
type Transaction struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Amount     int64  `json:"amount"`
	PayeeName  string `json:"payee_name,omitempty"`
	PayeeID    string `json:"payee,omitempty"`
	CategoryID string `json:"category,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Cleared    bool   `json:"cleared"`
	ImportID   string `json:"imported_id,omitempty"`
}

// ImportResult reports what the server did with a batch. The importer only
// logs the counts; interpretation of updates and duplicates is the server's
// business.
type ImportResult struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
	Errors  []string `json:"errors"`
}
