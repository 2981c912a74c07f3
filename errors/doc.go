// Package errors provides the structured error kinds raised while consuming
// seqkit sequences. Every failure is an *AppError carrying a machine-readable
// ErrorCode, so callers can branch on the kind with the Is* predicates or
// HasCode instead of matching message text.
package errors
