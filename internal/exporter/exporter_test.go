package exporter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/exporter"
	"github.com/MichalMitros/catalog-importer/internal/exporter/mocks"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	createdAt = time.Date(2025, time.February, 1, 8, 30, 0, 0, time.UTC)
)

type fakeClock struct{}

func (fakeClock) Now() *time.Time {
	t := now
	return &t
}

func TestUnitExport(t *testing.T) {
	source := mocks.NewSource(t)
	source.On("ListCategories", mock.Anything).Return([]models.Category{
		{ID: 90005, Name: "Bracelets", Slug: "bracelets", CreatedAt: createdAt},
		{ID: 90006, Name: "Beads", Slug: "beads", ParentID: lo.ToPtr(90005), DisplayOrder: 2, CreatedAt: createdAt},
	}, nil).Once()
	source.On("ListProducts", mock.Anything).Return([]models.Product{
		{
			ID:             1,
			ExternalID:     lo.ToPtr("LB-001"),
			Name:           "Lucky O'Bracelet",
			Slug:           "lucky-obracelet-ab12",
			RegularPrice:   52,
			SalePrice:      40,
			CategoryID:     90005,
			Status:         models.ProductPublished,
			Stock:          999,
			BlessingTemple: lo.ToPtr("五台山"),
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		},
	}, nil).Once()
	source.On("ListProductImages", mock.Anything).Return([]models.ProductImage{
		{ID: 5, ProductID: 1, URL: "https://cdn.test/a.jpg", FileKey: "products/90005/a.jpg", IsPrimary: true, CreatedAt: createdAt},
	}, nil).Once()

	var out bytes.Buffer
	err := exporter.NewExporter(source, exporter.WithClock(fakeClock{})).Export(context.TODO(), &out, exporter.Options{})
	require.NoError(t, err)

	dump := out.String()
	assert.True(t, strings.HasPrefix(dump, "-- catalog export\n-- generated at: 2025-03-01T10:00:00Z\n"))
	assert.Contains(t, dump, "-- categories: 2, products: 1, product images: 1\n")
	assert.Contains(t, dump, "SET client_encoding = 'UTF8';")
	assert.Contains(t, dump,
		"INSERT INTO category (id, name, slug, description, parent_id, display_order, created_at) "+
			"VALUES (90006, 'Beads', 'beads', NULL, 90005, 2, '2025-02-01T08:30:00Z') ON CONFLICT (id) DO NOTHING;\n")
	assert.Contains(t, dump,
		"VALUES (1, 'LB-001', 'Lucky O''Bracelet', 'lucky-obracelet-ab12', NULL, 52, 40, 90005, 'published', "+
			"FALSE, 999, '五台山', NULL, '2025-02-01T08:30:00Z', '2025-02-01T08:30:00Z') ON CONFLICT (id) DO NOTHING;\n")
	assert.Contains(t, dump,
		"VALUES (5, 1, 'https://cdn.test/a.jpg', 'products/90005/a.jpg', NULL, 0, TRUE, '2025-02-01T08:30:00Z')")
	assert.Contains(t, dump, "SELECT setval(pg_get_serial_sequence('product_image', 'id'), "+
		"COALESCE((SELECT MAX(id) FROM product_image), 1));\n")
	assert.NotContains(t, dump, "-- reviews")

	categoriesAt := strings.Index(dump, "INSERT INTO category")
	productsAt := strings.Index(dump, "INSERT INTO product (")
	imagesAt := strings.Index(dump, "INSERT INTO product_image")
	assert.Less(t, categoriesAt, productsAt, "categories should be exported before products")
	assert.Less(t, productsAt, imagesAt, "products should be exported before images")
}

func TestUnitExportReviewsInPages(t *testing.T) {
	source := mocks.NewSource(t)
	source.On("ListCategories", mock.Anything).Return([]models.Category{}, nil).Once()
	source.On("ListProducts", mock.Anything).Return([]models.Product{}, nil).Once()
	source.On("ListProductImages", mock.Anything).Return([]models.ProductImage{}, nil).Once()
	source.On("ListReviews", mock.Anything, 0, 2).Return([]models.Review{
		{ID: 1, ProductID: 1, UserName: "Anna", Rating: 5, Language: "en", Verified: true, Approved: true},
		{ID: 2, ProductID: 1, UserName: "李明", Rating: 4, Language: "zh", Verified: true, Approved: true},
	}, nil).Once()
	source.On("ListReviews", mock.Anything, 2, 2).Return([]models.Review{
		{ID: 7, ProductID: 2, UserName: "Jean", Rating: 5, Language: "fr", Verified: true, Approved: true},
	}, nil).Once()

	var out bytes.Buffer
	err := exporter.NewExporter(source, exporter.WithReviewsPageSize(2)).
		Export(context.TODO(), &out, exporter.Options{IncludeReviews: true})
	require.NoError(t, err)

	dump := out.String()
	assert.Contains(t, dump, "product images: 0, reviews: 3\n")
	assert.Equal(t, 3, strings.Count(dump, "INSERT INTO review"))
	assert.Contains(t, dump, "VALUES (2, 1, '李明', 4, '', '', 'zh', TRUE, TRUE, NOW())")
	assert.Contains(t, dump, "pg_get_serial_sequence('review', 'id')")
}

func TestUnitExportErrors(t *testing.T) {
	tests := map[string]struct {
		setup   func(source *mocks.Source)
		wantErr string
	}{
		"categories": {
			setup: func(source *mocks.Source) {
				source.On("ListCategories", mock.Anything).Return(nil, assert.AnError).Once()
			},
			wantErr: "can't export categories",
		},
		"products": {
			setup: func(source *mocks.Source) {
				source.On("ListCategories", mock.Anything).Return([]models.Category{{ID: 1}}, nil).Once()
				source.On("ListProducts", mock.Anything).Return(nil, assert.AnError).Once()
			},
			wantErr: "can't export products",
		},
		"images": {
			setup: func(source *mocks.Source) {
				source.On("ListCategories", mock.Anything).Return([]models.Category{{ID: 1}}, nil).Once()
				source.On("ListProducts", mock.Anything).Return([]models.Product{{ID: 1}}, nil).Once()
				source.On("ListProductImages", mock.Anything).Return(nil, assert.AnError).Once()
			},
			wantErr: "can't export product images",
		},
		"reviews": {
			setup: func(source *mocks.Source) {
				source.On("ListCategories", mock.Anything).Return([]models.Category{}, nil).Once()
				source.On("ListProducts", mock.Anything).Return([]models.Product{}, nil).Once()
				source.On("ListProductImages", mock.Anything).Return([]models.ProductImage{}, nil).Once()
				source.On("ListReviews", mock.Anything, 0, 5000).Return(nil, assert.AnError).Once()
			},
			wantErr: "can't export reviews",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			source := mocks.NewSource(t)
			tt.setup(source)

			var out bytes.Buffer
			err := exporter.NewExporter(source).Export(context.TODO(), &out, exporter.Options{IncludeReviews: true})

			assert.ErrorIs(t, err, assert.AnError)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Zero(t, out.Len(), "shouldn't write partial export")
		})
	}
}
