package commander

// ImportCommand asks catalog importer to import spreadsheet (and optional image archive) fetched from URLs.
type ImportCommand struct {
	SpreadsheetURL string `json:"spreadsheetUrl"`
	// SpreadsheetName is file name used to detect spreadsheet format, e.g. products.xlsx.
	SpreadsheetName         string `json:"spreadsheetName"`
	ArchiveURL              string `json:"archiveUrl,omitempty"`
	CategoryID              int    `json:"categoryId,omitempty"`
	ReviewCount             int    `json:"reviewCount,omitempty"`
	ConfirmSyntheticReviews bool   `json:"confirmSyntheticReviews,omitempty"`
	PositionalImages        bool   `json:"positionalImages,omitempty"`
}
