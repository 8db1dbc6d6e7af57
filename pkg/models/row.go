package models

// TxType is the bank's transaction-type tag, the third column of the
// transaction listing export. The set is closed; the classifier dispatches
// on it and rejects anything it does not know.
type TxType string

const (
	TxAll         TxType = "ALL"
	TxWithdrawals TxType = "ALL_WITHDRAWALS"
	TxDeposits    TxType = "ALL_DEPOSITS"
	TxBPay        TxType = "BPAY"
	TxCard        TxType = "CARD"
)

// Row is one record of the bank's CSV export, untouched. Amounts and dates
// stay strings here; parsing them is the classifier's job so that a bad row
// fails with its own context instead of killing the whole file read.
type Row struct {
	AccountNumber string
	Type          TxType
	EffectiveDate string
	DebitAmount   string
	CreditAmount  string
	ShortDesc     string
	LongDesc      string
	MerchantName  string
	Categories    string
}

// Narrative returns the free-text long description, the primary source for
// payee and reference extraction.
func (r Row) Narrative() string { return r.LongDesc }
