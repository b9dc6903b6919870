package journal

import (
	"context"
	"fmt"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// Gateway is the journal slice of the platform API
type Gateway interface {
	ListJournalEntries(ctx context.Context, token string) ([]Entry, error)
	CreateJournalEntry(ctx context.Context, token string, input CreateEntryInput) (*Entry, error)
	DeleteJournalEntry(ctx context.Context, token string, id int64) error
}

// Notifier receives fire-and-forget toast messages
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Service drives the journal screen: list, validated submission, delete.
// Every successful mutation is followed by an unconditional list re-fetch.
type Service struct {
	gateway  Gateway
	notifier Notifier
	logger   *logger.Logger
}

// NewService creates a new journal service
func NewService(gateway Gateway, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		gateway:  gateway,
		notifier: notifier,
		logger:   log.WithField("component", "journal"),
	}
}

// List fetches the journal entries fresh from the platform
func (s *Service) List(ctx context.Context, token string) ([]Entry, error) {
	entries, err := s.gateway.ListJournalEntries(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// Submit validates the form and posts it as a single create call. On local
// validation failure or an upstream error the form data is untouched, an
// error toast is pushed and the caller may retry. On success a success toast
// is pushed and the refreshed entry list is returned.
func (s *Service) Submit(ctx context.Context, token string, form *Form) ([]Entry, error) {
	if form.ReadOnly() {
		return nil, ErrReadOnly
	}
	if err := form.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, err
	}

	entry, err := s.gateway.CreateJournalEntry(ctx, token, form.Payload())
	if err != nil {
		s.notifier.Error(err.Error())
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	s.logger.Info("journal entry created", "entry_id", entry.ID)
	s.notifier.Success("journal entry created")

	return s.List(ctx, token)
}

// Delete removes a posted entry after the caller's confirmation step and
// returns the refreshed list
func (s *Service) Delete(ctx context.Context, token string, id int64) ([]Entry, error) {
	if err := s.gateway.DeleteJournalEntry(ctx, token, id); err != nil {
		s.notifier.Error(err.Error())
		return nil, fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.notifier.Success("journal entry deleted")

	return s.List(ctx, token)
}
