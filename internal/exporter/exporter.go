package exporter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/lib/pq"
)

//go:generate mockery --name Source --filename source.go

const defaultReviewsPageSize = 5000

// Source is catalog data source.
type Source interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductImages(ctx context.Context) ([]models.ProductImage, error)
	// ListReviews returns at most limit reviews with ID greater than afterID, ordered by ID.
	ListReviews(ctx context.Context, afterID int, limit int) ([]models.Review, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Options are export options.
type Options struct {
	IncludeReviews bool
}

// Option is custom configuration of Exporter.
type Option func(e *Exporter)

// Exporter writes catalog tables as SQL script which can be replayed on another database.
// Export is not a consistent snapshot, rows written during export may be missing or partially included.
type Exporter struct {
	source          Source
	clock           Clock
	reviewsPageSize int
}

// NewExporter returns new Exporter.
func NewExporter(source Source, ops ...Option) *Exporter {
	e := &Exporter{
		source:          source,
		clock:           platform.SystemClock{},
		reviewsPageSize: defaultReviewsPageSize,
	}

	for _, op := range ops {
		op(e)
	}

	return e
}

// Export writes categories, products, product images and optionally reviews to w.
// Every row becomes an INSERT which is skipped when row with the same ID exists.
// Nothing is written to w when reading any table fails.
func (e *Exporter) Export(ctx context.Context, w io.Writer, opts Options) error {
	var body bytes.Buffer

	categories, err := e.source.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("can't export categories: %w", err)
	}
	body.WriteString("-- categories\n")
	for _, c := range categories {
		writeInsert(&body, "category",
			[]string{"id", "name", "slug", "description", "parent_id", "display_order", "created_at"},
			strconv.Itoa(c.ID), quote(c.Name), quote(c.Slug), quoteOpt(c.Description), intOpt(c.ParentID),
			strconv.Itoa(c.DisplayOrder), timestamp(c.CreatedAt),
		)
	}

	products, err := e.source.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("can't export products: %w", err)
	}
	body.WriteString("\n-- products\n")
	for _, p := range products {
		writeInsert(&body, "product",
			[]string{
				"id", "sku", "name", "slug", "description", "regular_price", "sale_price", "category_id", "status",
				"featured", "stock", "blessing_temple", "blessing_master", "created_at", "updated_at",
			},
			strconv.Itoa(p.ID), quoteOpt(p.ExternalID), quote(p.Name), quote(p.Slug), quoteOpt(p.Description),
			strconv.Itoa(p.RegularPrice), strconv.Itoa(p.SalePrice), strconv.Itoa(p.CategoryID), quote(string(p.Status)),
			boolean(p.Featured), strconv.Itoa(p.Stock), quoteOpt(p.BlessingTemple), quoteOpt(p.BlessingMaster),
			timestamp(p.CreatedAt), timestamp(p.UpdatedAt),
		)
	}

	images, err := e.source.ListProductImages(ctx)
	if err != nil {
		return fmt.Errorf("can't export product images: %w", err)
	}
	body.WriteString("\n-- product images\n")
	for _, i := range images {
		writeInsert(&body, "product_image",
			[]string{"id", "product_id", "url", "file_key", "alt_text", "display_order", "is_primary", "created_at"},
			strconv.Itoa(i.ID), strconv.Itoa(i.ProductID), quote(i.URL), quote(i.FileKey), quoteOpt(i.AltText),
			strconv.Itoa(i.DisplayOrder), boolean(i.IsPrimary), timestamp(i.CreatedAt),
		)
	}

	tables := []string{"category", "product", "product_image"}
	reviews := 0
	if opts.IncludeReviews {
		body.WriteString("\n-- reviews\n")
		if reviews, err = e.exportReviews(ctx, &body); err != nil {
			return err
		}
		tables = append(tables, "review")
	}

	body.WriteString("\n-- sequences\n")
	for _, table := range tables {
		fmt.Fprintf(&body,
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 1));\n",
			table,
		)
	}

	header := fmt.Sprintf(
		"-- catalog export\n-- generated at: %s\n-- categories: %d, products: %d, product images: %d",
		e.clock.Now().Format(time.RFC3339), len(categories), len(products), len(images),
	)
	if opts.IncludeReviews {
		header += fmt.Sprintf(", reviews: %d", reviews)
	}
	header += "\n\nSET client_encoding = 'UTF8';\n\n"

	if _, err = io.WriteString(w, header); err != nil {
		return fmt.Errorf("can't write export: %w", err)
	}
	if _, err = body.WriteTo(w); err != nil {
		return fmt.Errorf("can't write export: %w", err)
	}

	return nil
}

// exportReviews pages through reviews by ID and returns number of exported reviews.
func (e *Exporter) exportReviews(ctx context.Context, body *bytes.Buffer) (int, error) {
	exported := 0
	afterID := 0

	for {
		page, err := e.source.ListReviews(ctx, afterID, e.reviewsPageSize)
		if err != nil {
			return exported, fmt.Errorf("can't export reviews: %w", err)
		}

		for _, r := range page {
			writeInsert(body, "review",
				[]string{
					"id", "product_id", "user_name", "rating", "comment", "location", "language",
					"is_verified", "is_approved", "created_at",
				},
				strconv.Itoa(r.ID), strconv.Itoa(r.ProductID), quote(r.UserName), strconv.Itoa(r.Rating),
				quote(r.Comment), quote(r.Location), quote(r.Language), boolean(r.Verified), boolean(r.Approved),
				timestamp(r.CreatedAt),
			)
		}
		exported += len(page)

		if len(page) < e.reviewsPageSize {
			return exported, nil
		}
		afterID = page[len(page)-1].ID
	}
}

func writeInsert(buf *bytes.Buffer, table string, columns []string, values ...string) {
	fmt.Fprintf(buf, "INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING;\n",
		table, strings.Join(columns, ", "), strings.Join(values, ", "))
}

func quote(s string) string {
	return pq.QuoteLiteral(s)
}

func quoteOpt(s *string) string {
	if s == nil {
		return "NULL"
	}
	return quote(*s)
}

func intOpt(i *int) string {
	if i == nil {
		return "NULL"
	}
	return strconv.Itoa(*i)
}

func boolean(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return "NOW()"
	}
	return quote(t.UTC().Format(time.RFC3339Nano))
}

// WithClock sets Exporter's custom Clock.
func WithClock(c Clock) Option {
	return func(e *Exporter) {
		e.clock = c
	}
}

// WithReviewsPageSize sets number of reviews read at once.
func WithReviewsPageSize(size int) Option {
	return func(e *Exporter) {
		if size > 0 {
			e.reviewsPageSize = size
		}
	}
}
