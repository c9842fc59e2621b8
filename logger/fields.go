package logger

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Graph entities
	FieldSystemID      = "system_id"
	FieldAttesterID    = "attester_id"
	FieldAttestationID = "attestation_id"
	FieldFramework     = "framework"
	FieldStatus        = "status"

	// Serialization
	FieldFormat = "format"
	FieldPath   = "path"

	// Counts and sizes
	FieldCount      = "count"
	FieldStatements = "statements"

	// Errors
	FieldError = "error"
)
