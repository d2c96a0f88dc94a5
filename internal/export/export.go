// Package export encodes expense sets as CSV, XLSX and JSON backups, and
// decodes JSON backups back into records. It does no database access; callers
// load and persist the rows.
package export

// Header is the fixed column order shared by the CSV and XLSX exports.
var Header = []string{"Title", "Amount", "Category", "Date", "Notes"}

// Content types and download names for each format.
const (
	CSVContentType    = "text/csv"
	CSVFilename       = "expenses.csv"
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	XLSXFilename      = "expenses.xlsx"
	XLSXSheetName     = "Expenses"
	BackupContentType = "application/json"
	BackupFilename    = "backup.json"
)
