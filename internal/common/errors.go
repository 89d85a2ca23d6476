// Package common defines shared constants and sentinel errors used across
// the PrefKeeper core and its front-ends. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrorAlreadyExists   = errors.New("already exists")
	ErrorInvalidIdentity = errors.New("invalid identity")

	// Auth errors.
	ErrorWrongPassword = errors.New("incorrect password")
	ErrorEmptyPassword = errors.New("empty password")

	// Ledger / export integrity errors.
	ErrorMalformedLedger = errors.New("malformed ledger")
	ErrorIntegrity       = errors.New("data integrity error")
	ErrorUnknownFormat   = errors.New("unknown export format")

	// Survey input errors.
	ErrorInvalidChoice     = errors.New("invalid choice")
	ErrorInvalidConfidence = errors.New("invalid confidence")
	ErrorOutOfRange        = errors.New("question index out of range")
)
