package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldFormat     = "format"

	// Highlighting fields.
	FieldLexer     = "lexer"
	FieldLanguage  = "language"
	FieldJobs      = "jobs"
	FieldBytes     = "bytes"
	FieldSpans     = "spans"
	FieldResumeAt  = "resume_at"
	FieldCacheHit  = "cache_hit"
	FieldCachePath = "cache_path"
	FieldTheme     = "theme"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesFailed      = "files_failed"
	FieldSpansTotal       = "spans_total"
	FieldOutlineConflicts = "outline_conflicts"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
