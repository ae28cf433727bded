package logger

// Standard field names for consistent structured logging across fixturegen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Corpus generation
	FieldLanguage  = "language"
	FieldRoot      = "root"
	FieldPath      = "path"
	FieldSpecID    = "spec_id"
	FieldTag       = "tag"
	FieldMechanism = "mechanism"

	// Counts and sizes
	FieldCount   = "count"
	FieldWritten = "written"
	FieldSkipped = "skipped"

	// Errors
	FieldError = "error"

	// Timing
	FieldDurationMS = "duration_ms"
)
