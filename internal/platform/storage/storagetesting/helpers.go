package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. Skips the test when DATABASE_URL is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertCategories is a helper test function to insert categories.
func InsertCategories(t *testing.T, exc qrm.Executable, categories ...pgmodels.Category) {
	t.Helper()

	if len(categories) == 0 {
		return
	}

	_, err := table.Category.INSERT(table.Category.AllColumns.Except(table.Category.CreatedAt)).
		MODELS(categories).
		Exec(exc)
	if err != nil {
		t.Fatal("can't insert categories", err)
	}
}

// InsertProducts is a helper test function to insert products.
func InsertProducts(t *testing.T, db qrm.DB, products ...pgmodels.Product) []pgmodels.Product {
	t.Helper()

	if len(products) == 0 {
		return nil
	}

	inserted := []pgmodels.Product{}
	err := table.Product.INSERT(table.Product.AllColumns.Except(
		table.Product.ID,
		table.Product.CreatedAt,
		table.Product.UpdatedAt,
	)).
		MODELS(products).
		RETURNING(table.Product.AllColumns).
		Query(db, &inserted)
	if err != nil {
		t.Fatal("can't insert products", err)
	}

	return inserted
}

// GetProducts is a helper test function to get all products.
func GetProducts(t *testing.T, queryable qrm.Queryable) []pgmodels.Product {
	t.Helper()

	products := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.IS_NOT_NULL()).
		ORDER_BY(table.Product.ID.ASC()).
		Query(queryable, &products)
	if err != nil {
		t.Fatal("can't get products", err)
	}

	return products
}

// GetProductImages is a helper test function to get images of the product.
func GetProductImages(t *testing.T, queryable qrm.Queryable, productID int) []pgmodels.ProductImage {
	t.Helper()

	images := []pgmodels.ProductImage{}
	err := table.ProductImage.SELECT(table.ProductImage.AllColumns).
		WHERE(table.ProductImage.ProductID.EQ(pg.Int32(int32(productID)))).
		ORDER_BY(table.ProductImage.DisplayOrder.ASC()).
		Query(queryable, &images)
	if err != nil {
		t.Fatal("can't get product images", err)
	}

	return images
}

// GetReviews is a helper test function to get reviews of the product.
func GetReviews(t *testing.T, queryable qrm.Queryable, productID int) []pgmodels.Review {
	t.Helper()

	reviews := []pgmodels.Review{}
	err := table.Review.SELECT(table.Review.AllColumns).
		WHERE(table.Review.ProductID.EQ(pg.Int32(int32(productID)))).
		ORDER_BY(table.Review.ID.ASC()).
		Query(queryable, &reviews)
	if err != nil {
		t.Fatal("can't get reviews", err)
	}

	return reviews
}

// CleanupData is a helper test function to delete all data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	deletes := []struct {
		name string
		stmt pg.Statement
	}{
		{"import task logs", table.ImportTaskLog.DELETE().WHERE(table.ImportTaskLog.ID.IS_NOT_NULL())},
		{"import tasks", table.ImportTask.DELETE().WHERE(table.ImportTask.ID.IS_NOT_NULL())},
		{"reviews", table.Review.DELETE().WHERE(table.Review.ID.IS_NOT_NULL())},
		{"product images", table.ProductImage.DELETE().WHERE(table.ProductImage.ID.IS_NOT_NULL())},
		{"products", table.Product.DELETE().WHERE(table.Product.ID.IS_NOT_NULL())},
		{"categories", table.Category.DELETE().WHERE(table.Category.ID.IS_NOT_NULL())},
	}

	for _, d := range deletes {
		if _, err := d.stmt.Exec(exc); err != nil {
			t.Fatalf("can't delete %s data: %s", d.name, err)
		}
	}
}
