package coa

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AccountType classifies an account within the chart of accounts
type AccountType string

const (
	TypeAsset     AccountType = "ASSET"
	TypeLiability AccountType = "LIABILITY"
	TypeEquity    AccountType = "EQUITY"
	TypeRevenue   AccountType = "REVENUE"
	TypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is one of the known classifications
func (t AccountType) IsValid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense:
		return true
	}
	return false
}

// NormalBalance is the side an account naturally grows on
type NormalBalance string

const (
	BalanceDebit  NormalBalance = "DEBIT"
	BalanceCredit NormalBalance = "CREDIT"
)

// IntBool decodes the API's bool-as-int flags (0/1) while also accepting
// plain JSON booleans, since the envelope is not uniform across endpoints.
type IntBool bool

// UnmarshalJSON implements json.Unmarshaler
func (b *IntBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "0", "false", `"0"`, "null":
		*b = false
		return nil
	case "1", "true", `"1"`:
		*b = true
		return nil
	}
	return fmt.Errorf("invalid bool-as-int value: %s", string(data))
}

// MarshalJSON implements json.Marshaler
func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return json.Marshal(1)
	}
	return json.Marshal(0)
}

// Account mirrors a chart-of-accounts row from the platform listing endpoint.
// The listing includes parent_id but no children array; nesting is rebuilt
// client-side by BuildTree.
type Account struct {
	ID            int64         `json:"id"`
	ParentID      *int64        `json:"parent_id"`
	AccountCode   string        `json:"account_code"`
	AccountName   string        `json:"account_name"`
	AccountType   AccountType   `json:"account_type"`
	NormalBalance NormalBalance `json:"normal_balance"`
	IsActive      IntBool       `json:"is_active"`
}

// IsRoot reports whether the account has no parent. A zero parent id counts
// as a root as well: some endpoints return 0 instead of null.
func (a Account) IsRoot() bool {
	return a.ParentID == nil || *a.ParentID == 0
}
