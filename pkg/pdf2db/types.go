package pdf2db

// Table is one table extracted from a PDF: an ordered grid of string cells.
// Header may be nil when the engine could not tell a header row apart from
// data; the transformer then promotes the first row.
//
// A Table is immutable once produced by an engine.
type Table struct {
	// Page is the 1-indexed page the table was found on.
	// Zero for engines that operate on the whole document at once.
	Page int

	Header []string
	Rows   [][]string
}

// Dataset is the transformer output: a uniform, ordered grid ready for the
// loader. Every row has exactly len(Columns) values; values for the
// recognized typed columns are int64 or time.Time, everything else is a
// string, and missing or unconvertible cells are nil.
type Dataset struct {
	// Columns holds canonical (normalized) column names in first-seen order.
	Columns []string

	Rows [][]any
}

// Empty reports whether the dataset contains no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// AuthMethod selects how the loader authenticates to PostgreSQL.
type AuthMethod string

const (
	// AuthMethodStandard uses username/password authentication.
	AuthMethodStandard AuthMethod = "standard"

	// AuthMethodAWSIAM uses AWS RDS IAM token authentication.
	AuthMethodAWSIAM AuthMethod = "aws-iam"

	// AuthMethodAzureEntraID uses Azure Entra ID token authentication.
	AuthMethodAzureEntraID AuthMethod = "azure"

	// AuthMethodGoogleIAM uses the Google Cloud SQL connector with IAM auth.
	AuthMethodGoogleIAM AuthMethod = "google-iam"
)

// ConnectionConfig holds everything needed to reach the destination database.
type ConnectionConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string

	AuthMethod AuthMethod

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// Azure service principal fields; all empty means the default
	// credential chain (managed identity, Azure CLI, ...).
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GoogleInstance string

	// AdditionalParams carries unrecognized connection string query
	// parameters through to pgx untouched.
	AdditionalParams map[string]string
}
