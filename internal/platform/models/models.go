package models

import "time"

// Sheet is decoded spreadsheet. Headers are lower-cased and trimmed.
type Sheet struct {
	Headers []string
	Rows    []SheetRow
}

// SheetRow is single data row of spreadsheet.
type SheetRow struct {
	// Line is 1-based line number in the source file.
	Line  int
	Cells []string
}

// ImportRow is spreadsheet row mapped to logical product fields.
type ImportRow struct {
	Line        int
	Name        string
	Description string
	Price       string
	ImageFiles  string
	ExternalID  string
}

// Image is image file taken from uploaded archive.
type Image struct {
	Name string
	Data []byte
}

// ProductStatus is catalog product publication status.
type ProductStatus string

// Product statuses.
const (
	ProductDraft     ProductStatus = "draft"
	ProductPublished ProductStatus = "published"
	ProductArchived  ProductStatus = "archived"
)

// Category is catalog category model.
type Category struct {
	ID           int
	Name         string
	Slug         string
	Description  *string
	ParentID     *int
	DisplayOrder int
	CreatedAt    time.Time
}

// Product is catalog product model.
type Product struct {
	ID             int
	ExternalID     *string
	Name           string
	Slug           string
	Description    *string
	RegularPrice   int
	SalePrice      int
	CategoryID     int
	Status         ProductStatus
	Featured       bool
	Stock          int
	BlessingTemple *string
	BlessingMaster *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductImage is catalog product image model.
type ProductImage struct {
	ID           int
	ProductID    int
	URL          string
	FileKey      string
	AltText      *string
	DisplayOrder int
	IsPrimary    bool
	CreatedAt    time.Time
}

// Review is product review model.
type Review struct {
	ID        int
	ProductID int
	UserName  string
	Rating    int
	Comment   string
	Location  string
	Language  string
	Verified  bool
	Approved  bool
	CreatedAt time.Time
}
