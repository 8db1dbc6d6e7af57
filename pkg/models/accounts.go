package models

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var bankAccountPattern = regexp.MustCompile(`^\d{8}$`)

// AccountMap is the caller-supplied one-to-one mapping from bank account
// numbers to ledger account ids. It is fixed for the whole run.
type AccountMap map[string]string

// NewAccountMap validates every pair before anything touches the network:
// bank account numbers are exactly eight digits, ledger ids are UUIDs.
func NewAccountMap(pairs map[string]string) (AccountMap, error) {
	m := make(AccountMap, len(pairs))
	for number, id := range pairs {
		if !bankAccountPattern.MatchString(number) {
			return nil, fmt.Errorf("invalid bank account number %q: must be exactly 8 digits", number)
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid ledger account id %q for account %s: %w", id, number, err)
		}
		m[number] = id
	}
	return m, nil
}

// Resolve maps a bank account number to its ledger account id.
func (m AccountMap) Resolve(number string, row Row) (string, error) {
	id, ok := m[number]
	if !ok {
		return "", &AccountNotFoundError{AccountNumber: number, Row: row}
	}
	return id, nil
}
