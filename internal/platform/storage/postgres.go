package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

const reviewsInsertBatch = 100

// Clock provides current time.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Option configures Postgres and Tasks.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock sets clock used for updated_at columns.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func newOptions(ops []Option) options {
	o := options{clock: platform.SystemClock{}}
	for _, op := range ops {
		op(&o)
	}
	return o
}

// Postgres is storage for categories, products, product images and reviews.
type Postgres struct {
	db    *sql.DB
	clock Clock
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...Option) Postgres {
	return Postgres{
		db:    db,
		clock: newOptions(ops).clock,
	}
}

// Ping checks database connection.
func (p Postgres) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("can't reach database: %w", err)
	}
	return nil
}

// UpsertProduct updates product matched by its external ID or, when it has none, by its name.
// A product with external ID can also adopt existing product with the same name and no external ID.
// When nothing matches, new product is inserted. Product ID and slug are set to stored values.
// Concurrent upserts of the same key are serialized with transaction-level advisory locks.
// Returns true when product was created.
func (p Postgres) UpsertProduct(ctx context.Context, product *models.Product) (bool, error) {
	created := false

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		for _, key := range lockKeys(product) {
			if err := lockKey(ctx, tx, key); err != nil {
				return fmt.Errorf("can't lock product key: %w", err)
			}
		}

		existing, err := findProduct(ctx, tx, product)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get existing product: %w", err)
		}

		if existing == nil {
			created = true
			return insertProduct(ctx, tx, product)
		}

		return updateProduct(ctx, tx, existing, product, *p.clock.Now())
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// ReplaceProductImages deletes all images of the product and inserts provided ones.
func (p Postgres) ReplaceProductImages(ctx context.Context, productID int, images []models.ProductImage) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		_, err := table.ProductImage.DELETE().
			WHERE(table.ProductImage.ProductID.EQ(pg.Int32(int32(productID)))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't delete product images: %w", err)
		}

		if len(images) == 0 {
			return nil
		}

		dbImages := lo.Map(images, func(image models.ProductImage, _ int) pgmodels.ProductImage {
			image.ProductID = productID
			return *toDBProductImage(&image)
		})

		_, err = table.ProductImage.INSERT(table.ProductImage.AllColumns.Except(
			table.ProductImage.ID,
			table.ProductImage.CreatedAt,
		)).
			MODELS(dbImages).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't insert product images: %w", err)
		}

		return nil
	})
}

// ReplaceReviews deletes all reviews of the product and inserts provided ones in batches.
func (p Postgres) ReplaceReviews(ctx context.Context, productID int, reviews []models.Review) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		_, err := table.Review.DELETE().
			WHERE(table.Review.ProductID.EQ(pg.Int32(int32(productID)))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't delete product reviews: %w", err)
		}

		dbReviews := lo.Map(reviews, func(review models.Review, _ int) pgmodels.Review {
			review.ProductID = productID
			return *toDBReview(&review)
		})

		for _, batch := range lo.Chunk(dbReviews, reviewsInsertBatch) {
			_, err = table.Review.INSERT(table.Review.AllColumns.Except(table.Review.ID)).
				MODELS(batch).
				ExecContext(ctx, tx)
			if err != nil {
				return fmt.Errorf("can't insert reviews: %w", err)
			}
		}

		return nil
	})
}

// ListCategories returns all categories ordered by ID.
func (p Postgres) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []pgmodels.Category
	err := table.Category.SELECT(table.Category.AllColumns).
		ORDER_BY(table.Category.ID.ASC()).
		QueryContext(ctx, p.db, &categories)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get categories: %w", err)
	}

	return lo.Map(categories, func(c pgmodels.Category, _ int) models.Category { return fromDBCategory(&c) }), nil
}

// ListProducts returns all products ordered by ID.
func (p Postgres) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		ORDER_BY(table.Product.ID.ASC()).
		QueryContext(ctx, p.db, &products)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get products: %w", err)
	}

	return lo.Map(products, func(p pgmodels.Product, _ int) models.Product { return fromDBProduct(&p) }), nil
}

// ListProductImages returns all product images ordered by ID.
func (p Postgres) ListProductImages(ctx context.Context) ([]models.ProductImage, error) {
	var images []pgmodels.ProductImage
	err := table.ProductImage.SELECT(table.ProductImage.AllColumns).
		ORDER_BY(table.ProductImage.ID.ASC()).
		QueryContext(ctx, p.db, &images)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get product images: %w", err)
	}

	return lo.Map(images, func(i pgmodels.ProductImage, _ int) models.ProductImage { return fromDBProductImage(&i) }), nil
}

// ListReviews returns at most limit reviews with ID greater than afterID, ordered by ID.
func (p Postgres) ListReviews(ctx context.Context, afterID int, limit int) ([]models.Review, error) {
	var reviews []pgmodels.Review
	err := table.Review.SELECT(table.Review.AllColumns).
		WHERE(table.Review.ID.GT(pg.Int32(int32(afterID)))).
		ORDER_BY(table.Review.ID.ASC()).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &reviews)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get reviews: %w", err)
	}

	return lo.Map(reviews, func(r pgmodels.Review, _ int) models.Review { return fromDBReview(&r) }), nil
}

func lockKeys(product *models.Product) []string {
	keys := make([]string, 0, 2)
	if product.ExternalID != nil {
		keys = append(keys, "product:sku:"+*product.ExternalID)
	}

	return append(keys, "product:name:"+product.Name)
}

func lockKey(ctx context.Context, db qrm.DB, key string) error {
	_, err := pg.RawStatement(
		"SELECT pg_advisory_xact_lock(hashtext(#key))",
		pg.RawArgs{"#key": key},
	).ExecContext(ctx, db)

	return err
}

func findProduct(ctx context.Context, db qrm.DB, product *models.Product) (*pgmodels.Product, error) {
	if product.ExternalID != nil {
		existing, err := selectProduct(ctx, db, table.Product.Sku.EQ(pg.String(*product.ExternalID)))
		if !errors.Is(err, qrm.ErrNoRows) {
			return existing, err
		}

		return selectProduct(ctx, db, pg.AND(
			table.Product.Name.EQ(pg.String(product.Name)),
			table.Product.Sku.IS_NULL(),
		))
	}

	return selectProduct(ctx, db, table.Product.Name.EQ(pg.String(product.Name)))
}

func selectProduct(ctx context.Context, db qrm.DB, condition pg.BoolExpression) (*pgmodels.Product, error) {
	var product pgmodels.Product
	err := table.Product.SELECT(table.Product.ID, table.Product.Slug, table.Product.Sku).
		WHERE(condition).
		ORDER_BY(table.Product.ID.ASC()).
		LIMIT(1).
		QueryContext(ctx, db, &product)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func insertProduct(ctx context.Context, db qrm.DB, product *models.Product) error {
	dbProduct := toDBProduct(product)
	err := table.Product.INSERT(table.Product.AllColumns.Except(
		table.Product.ID,
		table.Product.CreatedAt,
		table.Product.UpdatedAt,
	)).
		MODEL(dbProduct).
		RETURNING(table.Product.ID, table.Product.Slug).
		QueryContext(ctx, db, dbProduct)
	if err != nil {
		return fmt.Errorf("can't insert product: %w", err)
	}

	product.ID = int(dbProduct.ID)
	product.Slug = dbProduct.Slug

	return nil
}

// updateProduct overwrites matched product. Name is display-only, so a product matched by sku takes the row's name.
func updateProduct(ctx context.Context, db qrm.DB, existing *pgmodels.Product, product *models.Product, now time.Time) error {
	dbProduct := toDBProduct(product)
	dbProduct.Sku = lo.Ternary(product.ExternalID != nil, product.ExternalID, existing.Sku)
	dbProduct.UpdatedAt = now

	result, err := table.Product.UPDATE(
		table.Product.Name,
		table.Product.Sku,
		table.Product.Description,
		table.Product.RegularPrice,
		table.Product.SalePrice,
		table.Product.CategoryID,
		table.Product.Status,
		table.Product.UpdatedAt,
	).
		MODEL(dbProduct).
		WHERE(table.Product.ID.EQ(pg.Int32(existing.ID))).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't update product: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update product %d: %w", existing.ID, err)
	}

	product.ID = int(existing.ID)
	product.Slug = existing.Slug

	return nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
