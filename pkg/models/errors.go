package models

import "fmt"

// FormatError means an input file or date string is not in the shape the
// bank export promises. It aborts the current file.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed input %q: %s", e.Input, e.Reason)
}

// AccountNotFoundError means a row, or a transfer destination inside a
// narrative, names a bank account absent from the account mapping. Skipping
// it would misrepresent the account's history, so it aborts the run.
type AccountNotFoundError struct {
	AccountNumber string
	Row           Row
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("bank account %s not in account mapping (narrative: %q)", e.AccountNumber, e.Row.LongDesc)
}

// TransferPayeeNotFoundError means the ledger has no transfer payee bound to
// a mapped destination account. Transfer payees are created when an account
// is onboarded, never here, so this points at a setup problem and aborts
// the run.
type TransferPayeeNotFoundError struct {
	AccountID string
}

func (e *TransferPayeeNotFoundError) Error() string {
	return fmt.Sprintf("no transfer payee bound to ledger account %s", e.AccountID)
}

// ParseError means a narrative did not match any recognized shape for its
// transaction type. A silently dropped real transaction is worse than a loud
// crash demanding a pattern-table fix, so this aborts the run. The full row
// is carried so the pattern tables can be extended from the message alone.
type ParseError struct {
	Row    Row
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: type=%s short=%q narrative=%q", e.Reason, e.Row.Type, e.Row.ShortDesc, e.Row.LongDesc)
}
