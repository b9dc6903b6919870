package coa

import (
	"context"
	"fmt"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// AccountLister fetches the flat chart-of-accounts list from the platform API
type AccountLister interface {
	ListAccounts(ctx context.Context, token string) ([]Account, error)
}

// Service provides the account-picker tree for the journal and
// chart-of-accounts screens
type Service struct {
	gateway AccountLister
	logger  *logger.Logger
}

// NewService creates a new chart-of-accounts service
func NewService(gateway AccountLister, log *logger.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  log.WithField("component", "coa"),
	}
}

// Tree fetches the flat account list and returns it as a rooted forest
func (s *Service) Tree(ctx context.Context, token string) ([]*Node, error) {
	accounts, err := s.gateway.ListAccounts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	for _, orphan := range Orphans(accounts) {
		s.logger.Debug("dropping account with unknown parent",
			"account_id", orphan.ID,
			"account_code", orphan.AccountCode,
			"parent_id", *orphan.ParentID,
		)
	}

	return BuildTree(accounts), nil
}

// Rows fetches the account tree flattened into indented display order
func (s *Service) Rows(ctx context.Context, token string) ([]Row, error) {
	roots, err := s.Tree(ctx, token)
	if err != nil {
		return nil, err
	}
	return Flatten(roots), nil
}
