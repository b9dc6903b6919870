package journal

// EntryType marks which side of the ledger a detail row sits on
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// Detail is one posted line of a journal entry as returned by the API.
// Amount arrives as a decimal string.
type Detail struct {
	ID             int64     `json:"id"`
	AccountChartID int64     `json:"account_chart_id"`
	EntryType      EntryType `json:"entry_type"`
	Amount         string    `json:"amount"`
}

// Entry is a posted journal entry. Entries are immutable once created: the
// edit path renders them read-only and the only other operation is delete.
type Entry struct {
	ID          int64    `json:"id"`
	EntryDate   string   `json:"entry_date"`
	Description string   `json:"description"`
	Details     []Detail `json:"details"`
}

// ItemInput is one line of a create-journal-entry request. Amounts are sent
// as numbers; text that fails the lenient parse becomes 0.
type ItemInput struct {
	ChartOfAccountID int64     `json:"chart_of_account_id"`
	EntryType        EntryType `json:"entry_type"`
	Amount           float64   `json:"amount"`
}

// CreateEntryInput is the single create-journal-entry request body. All form
// lines are serialized into one call, never one request per line.
type CreateEntryInput struct {
	EntryDate   string      `json:"entry_date"`
	Description string      `json:"description"`
	Items       []ItemInput `json:"items"`
}
