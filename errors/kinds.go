package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Error taxonomy for the compliance ontology. Each kind is a sentinel that
// constructors mark onto richer errors, so callers can branch with
// errors.Is(err, errors.ParseError) without losing wrapped context.
var (
	// ParseError indicates a malformed source graph on load.
	ParseError = crdb.New("parse error")

	// FormatError indicates an unsupported or corrupt serialization.
	FormatError = crdb.New("format error")

	// DuplicateIdentifier indicates an identifier collision on create.
	DuplicateIdentifier = crdb.New("duplicate identifier")

	// UnknownReference indicates a dangling reference to a System,
	// Attester, Framework, Baseline or Attestation.
	UnknownReference = crdb.New("unknown reference")

	// InvalidTemporalOrder indicates an expiration date preceding the
	// attestation date.
	InvalidTemporalOrder = crdb.New("invalid temporal order")

	// IOError indicates a persistence failure during save.
	IOError = crdb.New("io error")
)

// Parsef returns a ParseError with a formatted message and stack trace.
func Parsef(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), ParseError)
}

// Formatf returns a FormatError with a formatted message and stack trace.
func Formatf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), FormatError)
}

// Duplicatef returns a DuplicateIdentifier error with a formatted message.
func Duplicatef(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), DuplicateIdentifier)
}

// Unknownf returns an UnknownReference error with a formatted message.
func Unknownf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), UnknownReference)
}

// Temporalf returns an InvalidTemporalOrder error with a formatted message.
func Temporalf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), InvalidTemporalOrder)
}

// IO wraps err as an IOError, preserving the underlying cause.
func IO(err error, msg string) error {
	return crdb.Mark(crdb.Wrap(err, msg), IOError)
}
