package journal

import "errors"

var (
	// Validation errors, in priority order: the balance check wins over
	// per-line completeness when both fail.
	ErrUnbalanced         = errors.New("total debit and credit must be equal and greater than zero")
	ErrMissingDescription = errors.New("description is required")
	ErrMissingDate        = errors.New("entry date is required")
	ErrIncompleteLine     = errors.New("every line needs an account and a debit or credit amount")
	ErrDualSidedLine      = errors.New("a line may carry a debit or a credit, not both")

	// ErrReadOnly is returned by mutations on a form opened in view mode
	ErrReadOnly = errors.New("journal entry is read-only")

	// ErrLineNotFound is returned when a line key does not exist in the form
	ErrLineNotFound = errors.New("journal line not found")

	// ErrEntryNotFound is returned when the upstream has no such entry
	ErrEntryNotFound = errors.New("journal entry not found")
)
