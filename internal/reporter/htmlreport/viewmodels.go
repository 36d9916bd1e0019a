package htmlreport

// CoverageCellViewModel is one coverage figure of a summary row.
type CoverageCellViewModel struct {
	Covered int
	Total   int
	// Percent is formatted for display, "n/a" when nothing is coverable.
	Percent string
	// BarValue is the rounded-down percentage used by the percentage bar, 0 when n/a.
	BarValue int
	// Level is "high", "medium", "low" or "none".
	Level string
}

// FileRowViewModel is a row of the summary table, or its totals.
type FileRowViewModel struct {
	Path       string
	ReportPath string
	Statements CoverageCellViewModel
	Branches   CoverageCellViewModel
	Functions  CoverageCellViewModel
	Lines      CoverageCellViewModel
}

// SummaryPageData holds all data for index.html.
type SummaryPageData struct {
	Title       string
	GeneratedAt string
	ReportFiles []string
	Totals      FileRowViewModel
	Files       []FileRowViewModel
}

// LineViewModel is one line of an annotated source page.
type LineViewModel struct {
	LineNumber      int
	LineContent     string
	Hits            int
	LineVisitStatus string
	IsBranch        bool
	// BranchText reads "covered/total" for lines with branches.
	BranchText string
	Tooltip    string
}

// FunctionViewModel is an entry of the function list of a source page.
type FunctionViewModel struct {
	Name            string
	Line            int
	Hits            int
	LineVisitStatus string
}

// FileDetailData holds all data for the page of one file.
type FileDetailData struct {
	Title           string
	GeneratedAt     string
	Summary         FileRowViewModel
	SourceAvailable bool
	Lines           []LineViewModel
	Functions       []FunctionViewModel
}
