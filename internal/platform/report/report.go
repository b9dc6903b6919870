package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// Kind identifies one of the precomputed financial reports
type Kind string

const (
	IncomeStatement Kind = "income-statement"
	BalanceSheet    Kind = "balance-sheet"
	CashFlow        Kind = "cash-flow"
	EquityChange    Kind = "equity-change"
	FinancialRatio  Kind = "financial-ratio"
)

// IsValid checks if the report kind is known
func (k Kind) IsValid() bool {
	switch k {
	case IncomeStatement, BalanceSheet, CashFlow, EquityChange, FinancialRatio:
		return true
	}
	return false
}

// RequiresBusinessUnit reports whether the kind needs a selected business
// unit. The income statement is generated per unit; the others cover the
// whole cooperative.
func (k Kind) RequiresBusinessUnit() bool {
	return k == IncomeStatement
}

var (
	// ErrUnknownKind is returned for a report kind outside the known set
	ErrUnknownKind = errors.New("unknown report kind")

	// ErrInvalidPeriod is returned when the start date falls after the end
	ErrInvalidPeriod = errors.New("start date must not be after end date")

	// ErrMissingBusinessUnit blocks per-unit reports without a selection
	ErrMissingBusinessUnit = errors.New("report requires a selected business unit")
)

// Period is the inclusive report date range
type Period struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// DefaultPeriod is the screens' default range: first of the current month
// through today.
func DefaultPeriod(now time.Time) Period {
	return Period{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Validate checks the range ordering
func (p Period) Validate() error {
	if p.Start.After(p.End) {
		return ErrInvalidPeriod
	}
	return nil
}

// Gateway is the reporting slice of the platform API
type Gateway interface {
	Report(ctx context.Context, token, kind, businessID string, start, end time.Time) (json.RawMessage, error)
}

// Service fetches precomputed reports. The numbers are computed upstream;
// this layer only validates the requested range and passes the structure
// through for rendering.
type Service struct {
	gateway Gateway
	logger  *logger.Logger
}

// NewService creates a new report service
func NewService(gateway Gateway, log *logger.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  log.WithField("component", "report"),
	}
}

// Generate fetches one report for the given period and optional business
// unit
func (s *Service) Generate(ctx context.Context, token string, kind Kind, businessID string, period Period) (json.RawMessage, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if kind.RequiresBusinessUnit() && businessID == "" {
		return nil, ErrMissingBusinessUnit
	}

	data, err := s.gateway.Report(ctx, token, string(kind), businessID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	s.logger.Debug("report generated",
		"kind", string(kind),
		"start", period.Start.Format("2006-01-02"),
		"end", period.End.Format("2006-01-02"),
	)
	return data, nil
}
