package pdf2db

// Exit codes for semantic error classification, following Unix/GNU
// conventions: 0 success, 1 general error, 2 CLI usage error, 3+ specific.
const (
	ExitSuccess          = 0  // Pipeline completed, rows loaded
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration or parameters
	ExitConnectionError  = 11 // Failed to connect to database
	ExitExtractionError  = 12 // Both extraction engines failed or found no tables
	ExitTransformError   = 13 // Transformation produced no loadable rows
	ExitLoadError        = 14 // Insert rejected (missing table, type mismatch)
)

const (
	// DefaultTargetTable is the destination table when $TARGET_TABLE is unset.
	DefaultTargetTable = "pdf_data"

	// EnvDatabaseURL names the environment variable carrying the
	// PostgreSQL connection string.
	EnvDatabaseURL = "DATABASE_URL"

	// EnvTargetTable names the environment variable carrying the
	// destination table name.
	EnvTargetTable = "TARGET_TABLE"

	// DateLayout is the exact source format of date-typed columns,
	// e.g. 20230115. Values in any other shape fail coercion.
	DateLayout = "20060102"

	// DefaultPreviewRows is how many transformed rows the CLI prints
	// before loading.
	DefaultPreviewRows = 10
)
