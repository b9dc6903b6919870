package journal

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

type fakeGateway struct {
	entries   []Entry
	created   []CreateEntryInput
	createErr error
	deleteErr error
	deleted   []int64
	nextID    int64
}

func (g *fakeGateway) ListJournalEntries(ctx context.Context, token string) ([]Entry, error) {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out, nil
}

func (g *fakeGateway) CreateJournalEntry(ctx context.Context, token string, input CreateEntryInput) (*Entry, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, input)
	g.nextID++
	entry := Entry{ID: g.nextID, EntryDate: input.EntryDate, Description: input.Description}
	for i, item := range input.Items {
		entry.Details = append(entry.Details, Detail{
			ID:             int64(i + 1),
			AccountChartID: item.ChartOfAccountID,
			EntryType:      item.EntryType,
		})
	}
	g.entries = append(g.entries, entry)
	return &entry, nil
}

func (g *fakeGateway) DeleteJournalEntry(ctx context.Context, token string, id int64) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, id)
	for i := range g.entries {
		if g.entries[i].ID == id {
			g.entries = append(g.entries[:i], g.entries[i+1:]...)
			break
		}
	}
	return nil
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *fakeNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func validForm(t *testing.T) *Form {
	t.Helper()
	f := NewForm()
	fillBalanced(t, f, "100000")
	require.NoError(t, f.SetDescription("iuran anggota"))
	require.NoError(t, f.SetDate("2026-08-01"))
	return f
}

func newTestService(gw *fakeGateway, n *fakeNotifier) *Service {
	return NewService(gw, n, logger.New("development", io.Discard))
}

func TestService_SubmitSuccessRefreshesList(t *testing.T) {
	gw := &fakeGateway{}
	n := &fakeNotifier{}
	svc := newTestService(gw, n)

	entries, err := svc.Submit(context.Background(), "tok", validForm(t))
	require.NoError(t, err)

	require.Len(t, gw.created, 1)
	assert.Len(t, gw.created[0].Items, 2)
	require.Len(t, entries, 1)
	assert.Equal(t, "iuran anggota", entries[0].Description)
	assert.Equal(t, []string{"journal entry created"}, n.successes)
	assert.Empty(t, n.errors)
}

func TestService_SubmitBlockedWhenUnbalanced(t *testing.T) {
	gw := &fakeGateway{}
	n := &fakeNotifier{}
	svc := newTestService(gw, n)

	f := NewForm()
	require.NoError(t, f.SetDescription("tidak seimbang"))
	require.NoError(t, f.SetDate("2026-08-01"))
	require.NoError(t, f.SetAccount(f.Lines[0].Key, "11"))
	require.NoError(t, f.SetDebit(f.Lines[0].Key, "50000"))
	require.NoError(t, f.SetAccount(f.Lines[1].Key, "41"))
	require.NoError(t, f.SetCredit(f.Lines[1].Key, "40000"))

	_, err := svc.Submit(context.Background(), "tok", f)
	assert.ErrorIs(t, err, ErrUnbalanced)

	// Nothing reached the gateway; one error toast surfaced.
	assert.Empty(t, gw.created)
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "equal")

	// Entered data survives the failed submit.
	assert.Equal(t, "50000", f.Lines[0].Debit)
	assert.Equal(t, "40000", f.Lines[1].Credit)
}

func TestService_SubmitUpstreamErrorKeepsForm(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("entry_date: The entry date field is required.")}
	n := &fakeNotifier{}
	svc := newTestService(gw, n)

	f := validForm(t)
	_, err := svc.Submit(context.Background(), "tok", f)
	require.Error(t, err)

	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "entry date field is required")
	assert.Equal(t, "100000", f.Lines[0].Debit)
}

func TestService_SubmitReadOnlyForm(t *testing.T) {
	svc := newTestService(&fakeGateway{}, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), "tok", NewReadOnlyForm(Entry{ID: 1}))
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestService_DeleteRefreshesList(t *testing.T) {
	gw := &fakeGateway{entries: []Entry{{ID: 3}, {ID: 4}}}
	n := &fakeNotifier{}
	svc := newTestService(gw, n)

	entries, err := svc.Delete(context.Background(), "tok", 3)
	require.NoError(t, err)

	assert.Equal(t, []int64{3}, gw.deleted)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].ID)
	assert.Equal(t, []string{"journal entry deleted"}, n.successes)
}
