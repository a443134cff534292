/*
errors.go - Sentinel errors for the engine shells

PURPOSE:
  Business-rule outcomes (invalid leave, rejected candidate, ineligible
  payroll) are never errors - they are structured result values. The errors
  here exist for the collaborator shells: missing records, precondition
  violations, malformed settings.

USAGE:
  if errors.Is(err, engine.ErrNotFound) { ... 404 ... }
*/
package engine

import "errors"

var (
	// ErrNotFound is returned by stores when a requested record is absent.
	ErrNotFound = errors.New("record not found")

	// ErrMissingUserID is a precondition violation: every engine operation
	// is keyed by user and cannot proceed without one.
	ErrMissingUserID = errors.New("user id is required")

	// ErrInvalidSettings is returned by the settings factory when the
	// settings document cannot be parsed at all. Individually absent
	// fields fall back to defaults and are not errors.
	ErrInvalidSettings = errors.New("invalid settings document")
)
