package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// Pipeline outcomes that produced no links
	ErrNothingToProcess = "NOTHING_TO_PROCESS"
	ErrNothingProduced  = "NOTHING_PRODUCED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnNoteExists     = "NOTE_EXISTS"
	WarnOneOnOneOff    = "ONE_ON_ONE_DISABLED"
	WarnRangeTruncated = "RANGE_TRUNCATED"
)
