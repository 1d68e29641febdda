// Package cli wires the extract → transform → load pipeline into cobra
// commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `           _  __ ___      _ _
 _ __   __| |/ _|__ \  __| | |__
| '_ \ / _` + "`" + ` | |_  ) |/ _` + "`" + ` | '_ \
| |_) | (_| |  _|/ /| (_| | |_) |
| .__/ \__,_|_| |____\__,_|_.__/
|_|`

var rootCmd = &cobra.Command{
	Use:   "pdf2db",
	Short: "Extract tables from a PDF and append them to a database table",
	Long: asciiLogo + `

pdf2db runs a single-shot ETL pipeline: tables are extracted from one PDF
file, column headers are normalized to snake_case, a fixed set of columns
is converted to typed values, and the rows are appended to an existing
PostgreSQL table. The destination table is never created or altered.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - No tables could be extracted from the PDF
  13 - Transformation produced no loadable rows
  14 - Database rejected the insert`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
