package journal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillBalanced populates the two default lines as a balanced entry
func fillBalanced(t *testing.T, f *Form, amount string) {
	t.Helper()
	require.NoError(t, f.SetAccount(f.Lines[0].Key, "11"))
	require.NoError(t, f.SetDebit(f.Lines[0].Key, amount))
	require.NoError(t, f.SetAccount(f.Lines[1].Key, "41"))
	require.NoError(t, f.SetCredit(f.Lines[1].Key, amount))
}

func TestNewForm_StartsWithTwoBlankLines(t *testing.T) {
	f := NewForm()

	require.Len(t, f.Lines, 2)
	for _, l := range f.Lines {
		assert.NotEmpty(t, l.Key)
		assert.Empty(t, l.AccountID)
		assert.Empty(t, l.Debit)
		assert.Empty(t, l.Credit)
	}
	assert.False(t, f.ReadOnly())
}

func TestForm_Balanced(t *testing.T) {
	tests := []struct {
		name     string
		debits   []string
		credits  []string
		balanced bool
	}{
		{
			name:     "equal sides",
			debits:   []string{"100000", ""},
			credits:  []string{"", "100000"},
			balanced: true,
		},
		{
			name:     "unequal sides",
			debits:   []string{"50000", ""},
			credits:  []string{"", "40000"},
			balanced: false,
		},
		{
			name:     "all zero",
			debits:   []string{"", ""},
			credits:  []string{"", ""},
			balanced: false,
		},
		{
			name:     "fractional amounts balance exactly",
			debits:   []string{"0.1", "0.2"},
			credits:  []string{"", "0.3"},
			balanced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm()
			for len(f.Lines) < len(tt.debits) {
				_, err := f.AddLine()
				require.NoError(t, err)
			}
			for i := range tt.debits {
				if tt.debits[i] != "" {
					require.NoError(t, f.SetDebit(f.Lines[i].Key, tt.debits[i]))
				}
				if tt.credits[i] != "" {
					require.NoError(t, f.SetCredit(f.Lines[i].Key, tt.credits[i]))
				}
			}
			assert.Equal(t, tt.balanced, f.Balanced())
		})
	}
}

func TestForm_DebitCreditMutuallyExclusive(t *testing.T) {
	f := NewForm()
	key := f.Lines[0].Key

	require.NoError(t, f.SetCredit(key, "500"))
	assert.Equal(t, "500", f.Lines[0].Credit)

	// Typing into the debit field clears the credit on the same keystroke.
	require.NoError(t, f.SetDebit(key, "300"))
	assert.Equal(t, "300", f.Lines[0].Debit)
	assert.Empty(t, f.Lines[0].Credit)

	require.NoError(t, f.SetCredit(key, "700"))
	assert.Empty(t, f.Lines[0].Debit)
	assert.Equal(t, "700", f.Lines[0].Credit)

	// Clearing a field does not touch the opposite side.
	require.NoError(t, f.SetDebit(key, ""))
	assert.Equal(t, "700", f.Lines[0].Credit)
}

func TestForm_RemoveLineFloor(t *testing.T) {
	f := NewForm()

	// Two lines is the floor: removal is a no-op.
	assert.False(t, f.RemoveLine(f.Lines[0].Key))
	require.Len(t, f.Lines, 2)

	key, err := f.AddLine()
	require.NoError(t, err)
	require.Len(t, f.Lines, 3)

	assert.True(t, f.RemoveLine(key))
	require.Len(t, f.Lines, 2)

	assert.False(t, f.RemoveLine(f.Lines[1].Key))
	require.Len(t, f.Lines, 2)
}

func TestForm_ValidatePriority(t *testing.T) {
	t.Run("imbalance wins over incomplete lines", func(t *testing.T) {
		f := NewForm()
		require.NoError(t, f.SetDescription("penjualan"))
		require.NoError(t, f.SetDate("2026-08-01"))
		// No accounts picked and sides unbalanced: the balance message
		// takes priority.
		require.NoError(t, f.SetDebit(f.Lines[0].Key, "50000"))
		require.NoError(t, f.SetCredit(f.Lines[1].Key, "40000"))

		assert.ErrorIs(t, f.Validate(), ErrUnbalanced)
	})

	t.Run("missing description", func(t *testing.T) {
		f := NewForm()
		fillBalanced(t, f, "100000")
		require.NoError(t, f.SetDate("2026-08-01"))

		assert.ErrorIs(t, f.Validate(), ErrMissingDescription)
	})

	t.Run("missing date", func(t *testing.T) {
		f := NewForm()
		fillBalanced(t, f, "100000")
		require.NoError(t, f.SetDescription("penjualan"))

		assert.ErrorIs(t, f.Validate(), ErrMissingDate)
	})

	t.Run("line without account", func(t *testing.T) {
		f := NewForm()
		fillBalanced(t, f, "100000")
		require.NoError(t, f.SetDescription("penjualan"))
		require.NoError(t, f.SetDate("2026-08-01"))
		require.NoError(t, f.SetAccount(f.Lines[1].Key, ""))

		assert.ErrorIs(t, f.Validate(), ErrIncompleteLine)
	})

	t.Run("valid form", func(t *testing.T) {
		f := NewForm()
		fillBalanced(t, f, "100000")
		require.NoError(t, f.SetDescription("penjualan"))
		require.NoError(t, f.SetDate("2026-08-01"))

		assert.NoError(t, f.Validate())
	})
}

// A form assembled from decoded input can hold a line with both sides
// filled. Totals count both, so the balance check alone would pass, while
// the payload serializes only the debit side: validation must reject the
// line so an unbalanced entry never reaches the upstream.
func TestForm_ValidateRejectsDualSidedLine(t *testing.T) {
	f := &Form{
		Date:        "2026-08-01",
		Description: "penjualan",
		Lines: []Line{
			{Key: "a", AccountID: "11", Debit: "100", Credit: "50"},
			{Key: "b", AccountID: "31", Credit: "50"},
		},
	}

	assert.True(t, f.Balanced())
	assert.ErrorIs(t, f.Validate(), ErrDualSidedLine)

	// The setters cannot produce a dual-sided line in the first place.
	g := NewForm()
	require.NoError(t, g.SetDebit(g.Lines[0].Key, "100"))
	require.NoError(t, g.SetCredit(g.Lines[0].Key, "50"))
	assert.Empty(t, g.Lines[0].Debit)
}

func TestForm_Totals(t *testing.T) {
	f := NewForm()
	_, err := f.AddLine()
	require.NoError(t, err)

	require.NoError(t, f.SetDebit(f.Lines[0].Key, "150000.50"))
	require.NoError(t, f.SetDebit(f.Lines[1].Key, "not a number"))
	require.NoError(t, f.SetCredit(f.Lines[2].Key, "150000.50"))

	debit, credit := f.Totals()
	assert.True(t, debit.Equal(decimal.RequireFromString("150000.50")), "debit = %s", debit)
	assert.True(t, credit.Equal(decimal.RequireFromString("150000.50")), "credit = %s", credit)
}

func TestForm_Payload(t *testing.T) {
	f := NewForm()
	fillBalanced(t, f, "250000")
	require.NoError(t, f.SetDescription("simpanan wajib"))
	require.NoError(t, f.SetDate("2026-08-15"))

	payload := f.Payload()

	assert.Equal(t, "2026-08-15", payload.EntryDate)
	assert.Equal(t, "simpanan wajib", payload.Description)
	require.Len(t, payload.Items, 2)

	assert.Equal(t, int64(11), payload.Items[0].ChartOfAccountID)
	assert.Equal(t, EntryDebit, payload.Items[0].EntryType)
	assert.Equal(t, 250000.0, payload.Items[0].Amount)

	assert.Equal(t, int64(41), payload.Items[1].ChartOfAccountID)
	assert.Equal(t, EntryCredit, payload.Items[1].EntryType)
	assert.Equal(t, 250000.0, payload.Items[1].Amount)
}

func TestForm_ReadOnlyRejectsMutation(t *testing.T) {
	entry := Entry{
		ID:          7,
		EntryDate:   "2026-07-31",
		Description: "penyesuaian stok",
		Details: []Detail{
			{ID: 1, AccountChartID: 11, EntryType: EntryDebit, Amount: "75000"},
			{ID: 2, AccountChartID: 41, EntryType: EntryCredit, Amount: "75000"},
		},
	}

	f := NewReadOnlyForm(entry)
	require.True(t, f.ReadOnly())
	require.Len(t, f.Lines, 2)
	assert.Equal(t, "75000", f.Lines[0].Debit)
	assert.Equal(t, "75000", f.Lines[1].Credit)

	_, err := f.AddLine()
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.False(t, f.RemoveLine(f.Lines[0].Key))
	assert.ErrorIs(t, f.SetDebit(f.Lines[0].Key, "1"), ErrReadOnly)
	assert.ErrorIs(t, f.SetDescription("x"), ErrReadOnly)
	assert.ErrorIs(t, f.SetDate("2026-08-01"), ErrReadOnly)

	// Entered data untouched after rejected mutations.
	assert.Equal(t, "penyesuaian stok", f.Description)
	assert.Equal(t, "75000", f.Lines[0].Debit)
}

func TestForm_SetDebitUnknownLine(t *testing.T) {
	f := NewForm()
	assert.ErrorIs(t, f.SetDebit("no-such-key", "100"), ErrLineNotFound)
}
