package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rakatama/koperasi-admin/internal/platform/coa"
	"github.com/rakatama/koperasi-admin/internal/platform/journal"
)

const (
	accountsPath = "/manage/finance/chart-of-accounts"
	journalPath  = "/manage/finance/journal-entries"
	reportsPath  = "/manage/finance/reports/"
)

// ListAccounts fetches the flat chart-of-accounts list. The endpoint returns
// parent_id references only; nesting is rebuilt by the coa package.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]coa.Account, error) {
	rows, err := c.ListResource(ctx, token, accountsPath, nil)
	if err != nil {
		return nil, err
	}

	accounts := make([]coa.Account, 0, len(rows))
	for _, row := range rows {
		var a coa.Account
		if err := json.Unmarshal(row, &a); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// ListJournalEntries fetches the journal entry list
func (c *Client) ListJournalEntries(ctx context.Context, token string) ([]journal.Entry, error) {
	rows, err := c.ListResource(ctx, token, journalPath, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]journal.Entry, 0, len(rows))
	for _, row := range rows {
		var e journal.Entry
		if err := json.Unmarshal(row, &e); err != nil {
			return nil, fmt.Errorf("failed to decode journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CreateJournalEntry posts all form lines as one request with nested items
func (c *Client) CreateJournalEntry(ctx context.Context, token string, input journal.CreateEntryInput) (*journal.Entry, error) {
	data, err := c.do(ctx, http.MethodPost, journalPath, token, nil, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	// Some deployments return the created entry, others just the envelope.
	entry := &journal.Entry{EntryDate: input.EntryDate, Description: input.Description}
	if len(data) > 0 {
		if err := json.Unmarshal(data, entry); err != nil {
			c.logger.Debug("create response was not an entry", "error", err)
		}
	}
	return entry, nil
}

// DeleteJournalEntry removes a posted entry
func (c *Client) DeleteJournalEntry(ctx context.Context, token string, id int64) error {
	return c.DeleteResource(ctx, token, journalPath, strconv.FormatInt(id, 10))
}

// Report fetches one precomputed financial report. The panel renders the
// returned structure verbatim, so it stays raw JSON.
func (c *Client) Report(ctx context.Context, token, kind, businessID string, start, end time.Time) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("start_date", start.Format("2006-01-02"))
	query.Set("end_date", end.Format("2006-01-02"))
	if businessID != "" {
		query.Set("business_id", businessID)
	}

	data, err := c.do(ctx, http.MethodGet, reportsPath+kind, token, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s report: %w", kind, err)
	}
	return data, nil
}
