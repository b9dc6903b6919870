package journal

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinLines is the double-entry minimum: a form never shrinks below two lines
const MinLines = 2

// Line is one editable row of the journal form. Key is a local identity for
// the row and is never sent upstream. Debit and credit are free-form strings,
// mutually exclusive by the setter coupling rule.
type Line struct {
	Key       string `json:"key"`
	AccountID string `json:"chart_of_account_id"`
	Debit     string `json:"debit"`
	Credit    string `json:"credit"`
}

// Form is the state of one open journal modal: an ordered list of lines plus
// the entry header fields. A read-only form (opened against a posted entry)
// rejects every mutation.
type Form struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Lines       []Line `json:"lines"`

	readOnly bool
}

// NewForm creates an editable form with the minimum two blank lines
func NewForm() *Form {
	f := &Form{}
	for i := 0; i < MinLines; i++ {
		f.Lines = append(f.Lines, newLine())
	}
	return f
}

// NewReadOnlyForm builds a view-mode form from a posted entry. Its only
// permitted action is close; add/remove and field edits all fail.
func NewReadOnlyForm(entry Entry) *Form {
	f := &Form{
		Date:        entry.EntryDate,
		Description: entry.Description,
		readOnly:    true,
	}
	for _, d := range entry.Details {
		line := newLine()
		line.AccountID = strconv.FormatInt(d.AccountChartID, 10)
		if d.EntryType == EntryDebit {
			line.Debit = d.Amount
		} else {
			line.Credit = d.Amount
		}
		f.Lines = append(f.Lines, line)
	}
	return f
}

func newLine() Line {
	return Line{Key: uuid.NewString()}
}

// ReadOnly reports whether the form was opened in view mode
func (f *Form) ReadOnly() bool {
	return f.readOnly
}

// AddLine appends a blank line and returns its key
func (f *Form) AddLine() (string, error) {
	if f.readOnly {
		return "", ErrReadOnly
	}
	line := newLine()
	f.Lines = append(f.Lines, line)
	return line.Key, nil
}

// RemoveLine removes the line with the given key. Removal is a no-op once
// exactly MinLines remain; the return value reports whether a line went away.
func (f *Form) RemoveLine(key string) bool {
	if f.readOnly || len(f.Lines) <= MinLines {
		return false
	}
	for i := range f.Lines {
		if f.Lines[i].Key == key {
			f.Lines = append(f.Lines[:i], f.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetAccount sets the account selection of a line
func (f *Form) SetAccount(key, accountID string) error {
	return f.mutateLine(key, func(l *Line) {
		l.AccountID = accountID
	})
}

// SetDebit sets a line's debit amount. A non-empty debit clears that line's
// credit immediately, the coupling applies on every call, not just on submit.
func (f *Form) SetDebit(key, value string) error {
	return f.mutateLine(key, func(l *Line) {
		l.Debit = value
		if value != "" {
			l.Credit = ""
		}
	})
}

// SetCredit sets a line's credit amount, clearing its debit when non-empty
func (f *Form) SetCredit(key, value string) error {
	return f.mutateLine(key, func(l *Line) {
		l.Credit = value
		if value != "" {
			l.Debit = ""
		}
	})
}

// SetDate sets the entry date header field
func (f *Form) SetDate(date string) error {
	if f.readOnly {
		return ErrReadOnly
	}
	f.Date = date
	return nil
}

// SetDescription sets the description header field
func (f *Form) SetDescription(desc string) error {
	if f.readOnly {
		return ErrReadOnly
	}
	f.Description = desc
	return nil
}

func (f *Form) mutateLine(key string, fn func(*Line)) error {
	if f.readOnly {
		return ErrReadOnly
	}
	for i := range f.Lines {
		if f.Lines[i].Key == key {
			fn(&f.Lines[i])
			return nil
		}
	}
	return ErrLineNotFound
}

// Totals returns the running debit and credit sums over all lines
func (f *Form) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range f.Lines {
		debit = debit.Add(ParseAmount(l.Debit))
		credit = credit.Add(ParseAmount(l.Credit))
	}
	return debit, credit
}

// Balanced reports the double-entry invariant: total debit equals total
// credit and the total is greater than zero.
func (f *Form) Balanced() bool {
	debit, credit := f.Totals()
	return debit.Equal(credit) && debit.IsPositive()
}

// Validate checks the form before submission. The first violated rule is
// returned, with the balance check taking priority over header fields and
// per-line completeness.
func (f *Form) Validate() error {
	if !f.Balanced() {
		return ErrUnbalanced
	}
	if f.Description == "" {
		return ErrMissingDescription
	}
	if f.Date == "" {
		return ErrMissingDate
	}
	for _, l := range f.Lines {
		// The setters keep the sides mutually exclusive, but a form built
		// from decoded input can arrive with both filled. Such a line would
		// serialize as debit only, so the totals here would no longer match
		// the payload.
		if l.Debit != "" && l.Credit != "" {
			return ErrDualSidedLine
		}
		if l.AccountID == "" || (l.Debit == "" && l.Credit == "") {
			return ErrIncompleteLine
		}
	}
	return nil
}

// Payload serializes the form into the single create-journal-entry request.
// Each line becomes one item on the side it carries an amount for; amounts
// are converted to numbers with the lenient parse (invalid text becomes 0).
func (f *Form) Payload() CreateEntryInput {
	input := CreateEntryInput{
		EntryDate:   f.Date,
		Description: f.Description,
		Items:       make([]ItemInput, 0, len(f.Lines)),
	}
	for _, l := range f.Lines {
		accountID, _ := strconv.ParseInt(l.AccountID, 10, 64)
		item := ItemInput{ChartOfAccountID: accountID}
		if l.Debit != "" {
			item.EntryType = EntryDebit
			item.Amount = ParseAmount(l.Debit).InexactFloat64()
		} else {
			item.EntryType = EntryCredit
			item.Amount = ParseAmount(l.Credit).InexactFloat64()
		}
		input.Items = append(input.Items, item)
	}
	return input
}
