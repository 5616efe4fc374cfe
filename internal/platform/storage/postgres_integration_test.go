package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/platform/models/modelstesting"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage"
	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const categoryID = 90005

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) SetupTest() {
	storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.InsertCategories(s.T(), s.DB, pgmodels.Category{
		ID:   categoryID,
		Name: "Bracelets",
		Slug: "bracelets",
	})
}

func (s *PostgresTestSuite) TestIntegrationUpsertProduct() {
	tests := map[string]struct {
		storedProducts []pgmodels.Product
		product        models.Product
		wantCreated    bool
		wantProducts   int
		wantSku        *string
		wantSlug       string
	}{
		"new product": {
			product:      newProduct("Lucky Bracelet", nil, "lucky-bracelet-1"),
			wantCreated:  true,
			wantProducts: 1,
			wantSlug:     "lucky-bracelet-1",
		},
		"existing product matched by name": {
			storedProducts: []pgmodels.Product{storedProduct("Lucky Bracelet", nil, "lucky-bracelet-old")},
			product:        newProduct("Lucky Bracelet", nil, "lucky-bracelet-new"),
			wantProducts:   1,
			wantSlug:       "lucky-bracelet-old",
		},
		"existing product matched by sku": {
			storedProducts: []pgmodels.Product{storedProduct("Old Name", lo.ToPtr("LB-001"), "old-name")},
			product:        newProduct("Lucky Bracelet", lo.ToPtr("LB-001"), "lucky-bracelet-new"),
			wantProducts:   1,
			wantSku:        lo.ToPtr("LB-001"),
			wantSlug:       "old-name",
		},
		"sku product adopts same name product without sku": {
			storedProducts: []pgmodels.Product{storedProduct("Lucky Bracelet", nil, "lucky-bracelet-old")},
			product:        newProduct("Lucky Bracelet", lo.ToPtr("LB-001"), "lucky-bracelet-new"),
			wantProducts:   1,
			wantSku:        lo.ToPtr("LB-001"),
			wantSlug:       "lucky-bracelet-old",
		},
		"different sku with the same name creates product": {
			storedProducts: []pgmodels.Product{storedProduct("Lucky Bracelet", lo.ToPtr("LB-002"), "lucky-bracelet-old")},
			product:        newProduct("Lucky Bracelet", lo.ToPtr("LB-001"), "lucky-bracelet-new"),
			wantCreated:    true,
			wantProducts:   2,
			wantSku:        lo.ToPtr("LB-001"),
			wantSlug:       "lucky-bracelet-new",
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer s.SetupTest()

			storagetesting.InsertProducts(s.T(), s.DB, tt.storedProducts...)

			post := storage.NewPostgres(s.DB)
			product := tt.product

			created, err := post.UpsertProduct(context.TODO(), &product)

			s.Require().NoError(err, "shouldn't return any error")
			s.Equal(tt.wantCreated, created, "should report whether product was created")
			s.NotZero(product.ID, "should set product ID")
			s.Equal(tt.wantSlug, product.Slug, "should set stored slug")

			products := storagetesting.GetProducts(s.T(), s.DB)
			s.Len(products, tt.wantProducts, "should store correct number of products")

			stored, ok := lo.Find(products, func(p pgmodels.Product) bool { return int(p.ID) == product.ID })
			s.Require().True(ok, "should store upserted product")
			s.Equal(tt.product.Name, stored.Name)
			s.Equal(tt.wantSku, stored.Sku)
			s.Equal(int32(tt.product.SalePrice), stored.SalePrice)
			s.Equal(int32(tt.product.RegularPrice), stored.RegularPrice)
			s.Equal(tt.product.Description, stored.Description)
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationUpsertProductConcurrently() {
	post := storage.NewPostgres(s.DB)

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			product := newProduct("Lucky Bracelet", nil, "lucky-bracelet-"+faker.UUIDDigit())
			_, err := post.UpsertProduct(context.TODO(), &product)
			return err
		})
	}

	s.Require().NoError(g.Wait(), "shouldn't return any error")
	s.Len(storagetesting.GetProducts(s.T(), s.DB), 1, "should store single product")
}

func (s *PostgresTestSuite) TestIntegrationReplaceProductImages() {
	post := storage.NewPostgres(s.DB)
	product := newProduct("Lucky Bracelet", nil, "lucky-bracelet")
	_, err := post.UpsertProduct(context.TODO(), &product)
	s.Require().NoError(err)

	first := []models.ProductImage{
		{URL: "https://cdn.test/a.jpg", FileKey: "products/1/a.jpg", DisplayOrder: 0, IsPrimary: true},
		{URL: "https://cdn.test/b.jpg", FileKey: "products/1/b.jpg", DisplayOrder: 1},
	}
	s.Require().NoError(post.ReplaceProductImages(context.TODO(), product.ID, first))

	second := []models.ProductImage{
		{URL: "https://cdn.test/c.jpg", FileKey: "products/1/c.jpg", DisplayOrder: 0, IsPrimary: true},
	}
	s.Require().NoError(post.ReplaceProductImages(context.TODO(), product.ID, second))

	images := storagetesting.GetProductImages(s.T(), s.DB, product.ID)
	s.Require().Len(images, 1, "should replace previous images")
	s.Equal("https://cdn.test/c.jpg", images[0].URL)
	s.True(images[0].IsPrimary)

	s.Require().NoError(post.ReplaceProductImages(context.TODO(), product.ID, nil))
	s.Empty(storagetesting.GetProductImages(s.T(), s.DB, product.ID), "should delete all images")
}

func (s *PostgresTestSuite) TestIntegrationReplaceReviews() {
	post := storage.NewPostgres(s.DB)
	product := newProduct("Lucky Bracelet", nil, "lucky-bracelet")
	_, err := post.UpsertProduct(context.TODO(), &product)
	s.Require().NoError(err)

	reviews := make([]models.Review, 0, 150)
	for range 150 {
		reviews = append(reviews, modelstesting.FakeReview(func(r *models.Review) { r.ProductID = product.ID }))
	}

	s.Require().NoError(post.ReplaceReviews(context.TODO(), product.ID, reviews))
	s.Len(storagetesting.GetReviews(s.T(), s.DB, product.ID), 150, "should insert all reviews")

	s.Require().NoError(post.ReplaceReviews(context.TODO(), product.ID, reviews[:3]))
	s.Len(storagetesting.GetReviews(s.T(), s.DB, product.ID), 3, "should replace previous reviews")

	page, err := post.ListReviews(context.TODO(), 0, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Less(page[0].ID, page[1].ID, "should order reviews by ID")

	rest, err := post.ListReviews(context.TODO(), page[1].ID, 10)
	s.Require().NoError(err)
	s.Len(rest, 1, "should return reviews after provided ID")
}

func (s *PostgresTestSuite) TestIntegrationListCatalog() {
	post := storage.NewPostgres(s.DB)
	for _, name := range []string{"First", "Second"} {
		product := newProduct(name, nil, faker.Username())
		_, err := post.UpsertProduct(context.TODO(), &product)
		s.Require().NoError(err)
	}

	categories, err := post.ListCategories(context.TODO())
	s.Require().NoError(err)
	s.Require().Len(categories, 1)
	s.Equal(categoryID, categories[0].ID)

	products, err := post.ListProducts(context.TODO())
	s.Require().NoError(err)
	s.Require().Len(products, 2)
	s.Equal("First", products[0].Name)
	s.Equal("Second", products[1].Name)

	images, err := post.ListProductImages(context.TODO())
	s.Require().NoError(err)
	s.Empty(images)
}

func (s *PostgresTestSuite) TestIntegrationTasks() {
	tasks := storage.NewTasks(s.DB)
	createdAt := time.Now().UnixMilli()
	task := models.NewImportTask("import_1_abcdef", createdAt)

	s.Require().NoError(tasks.CreateTask(context.TODO(), task))
	s.Require().NoError(tasks.AppendLog(context.TODO(), task.ID, "first"))
	s.Require().NoError(tasks.AppendLog(context.TODO(), task.ID, "second"))

	task.Status = models.TaskDone
	task.Progress = 100
	task.Message = "done"
	task.Result = &models.ImportResult{
		ProductsCreated: 2,
		ImagesUploaded:  3,
		Errors:          []string{"row 3: missing name"},
	}
	s.Require().NoError(tasks.SaveTask(context.TODO(), task))

	got, err := tasks.GetTask(context.TODO(), task.ID)
	s.Require().NoError(err)
	s.Equal(task.ID, got.ID)
	s.Equal(models.TaskDone, got.Status)
	s.Equal(100, got.Progress)
	s.Equal("done", got.Message)
	s.Equal(createdAt, got.CreatedAt)
	s.Equal([]string{"first", "second"}, got.Logs)
	s.Equal(task.Result, got.Result)

	_, err = tasks.GetTask(context.TODO(), "import_0_missing")
	s.ErrorIs(err, platform.ErrTaskNotFound)

	err = tasks.SaveTask(context.TODO(), models.NewImportTask("import_0_missing", createdAt))
	s.ErrorIs(err, platform.ErrTaskNotFound)
}

func newProduct(name string, sku *string, slug string) models.Product {
	return models.Product{
		ExternalID:   sku,
		Name:         name,
		Slug:         slug,
		Description:  lo.ToPtr(faker.Sentence()),
		RegularPrice: 130,
		SalePrice:    99,
		CategoryID:   categoryID,
		Status:       models.ProductPublished,
		Stock:        999,
	}
}

func storedProduct(name string, sku *string, slug string) pgmodels.Product {
	return pgmodels.Product{
		Sku:          sku,
		Name:         name,
		Slug:         slug,
		RegularPrice: 10,
		SalePrice:    5,
		CategoryID:   categoryID,
		Status:       string(models.ProductDraft),
		Stock:        1,
	}
}
