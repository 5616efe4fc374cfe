package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Store --filename store.go
//go:generate mockery --name ObjectStore --filename objectstore.go

const (
	defaultStock             = 999
	defaultUploadConcurrency = 4
	// DefaultBlessingTemple is provenance placeholder set on newly created products.
	DefaultBlessingTemple = "五台山"
	// DefaultBlessingMaster is provenance placeholder set on newly created products.
	DefaultBlessingMaster = "五台山高僧"
)

// Store is catalog products storage.
type Store interface {
	// UpsertProduct updates product with the same external ID (or the same name when external ID is not set)
	// or inserts it when there is no such product. It sets product ID and slug to stored values
	// and returns true when product was created.
	UpsertProduct(ctx context.Context, product *models.Product) (created bool, err error)
	// ReplaceProductImages deletes all product images and inserts provided ones.
	ReplaceProductImages(ctx context.Context, productID int, images []models.ProductImage) error
}

// ObjectStore stores binary objects and returns their public URLs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Input is single row reconciliation input.
type Input struct {
	Row        models.ImportRow
	CategoryID int
	Images     []models.Image
}

// Outcome is reconciliation result. It is filled as far as reconciliation went, also on error.
type Outcome struct {
	Product        models.Product
	Created        bool
	ImagesUploaded int
}

// Option is custom configuration of Reconciler.
type Option func(r *Reconciler)

// Reconciler creates or updates catalog products with their images.
type Reconciler struct {
	store             Store
	objects           ObjectStore
	clock             Clock
	uploadConcurrency int
	blessingTemple    string
	blessingMaster    string
}

// NewReconciler returns new Reconciler.
func NewReconciler(store Store, objects ObjectStore, ops ...Option) *Reconciler {
	r := &Reconciler{
		store:             store,
		objects:           objects,
		clock:             platform.SystemClock{},
		uploadConcurrency: defaultUploadConcurrency,
		blessingTemple:    DefaultBlessingTemple,
		blessingMaster:    DefaultBlessingMaster,
	}

	for _, op := range ops {
		op(r)
	}

	return r
}

// Reconcile upserts product described by input row and, when any images were matched,
// uploads them and replaces product images.
func (r *Reconciler) Reconcile(ctx context.Context, in Input) (Outcome, error) {
	var outcome Outcome
	now := r.clock.Now()

	product := r.toProduct(in, *now)
	created, err := r.store.UpsertProduct(ctx, &product)
	if err != nil {
		return outcome, fmt.Errorf("can't upsert product: %w", err)
	}
	outcome.Product = product
	outcome.Created = created

	if len(in.Images) == 0 {
		return outcome, nil
	}

	images, err := r.uploadImages(ctx, &product, in.Images, now.UnixMilli())
	if err != nil {
		return outcome, fmt.Errorf("can't upload images: %w", err)
	}

	if err = r.store.ReplaceProductImages(ctx, product.ID, images); err != nil {
		return outcome, fmt.Errorf("can't replace product images: %w", err)
	}
	outcome.ImagesUploaded = len(images)

	return outcome, nil
}

func (r *Reconciler) toProduct(in Input, now time.Time) models.Product {
	salePrice := NormalizePrice(in.Row.Price)

	product := models.Product{
		Name:           in.Row.Name,
		Slug:           Slug(in.Row.Name, now),
		SalePrice:      salePrice,
		RegularPrice:   RegularPrice(salePrice),
		CategoryID:     in.CategoryID,
		Status:         models.ProductPublished,
		Stock:          defaultStock,
		BlessingTemple: lo.ToPtr(r.blessingTemple),
		BlessingMaster: lo.ToPtr(r.blessingMaster),
	}
	if in.Row.Description != "" {
		product.Description = lo.ToPtr(in.Row.Description)
	}
	if in.Row.ExternalID != "" {
		product.ExternalID = lo.ToPtr(in.Row.ExternalID)
	}

	return product
}

// uploadImages uploads images concurrently and returns product images in input order.
func (r *Reconciler) uploadImages(
	ctx context.Context,
	product *models.Product,
	images []models.Image,
	millis int64,
) ([]models.ProductImage, error) {
	uploaded := make([]models.ProductImage, len(images))

	errGroup, egCtx := errgroup.WithContext(ctx)
	errGroup.SetLimit(r.uploadConcurrency)

	for ix := range images {
		errGroup.Go(func() error {
			ext, contentType := detectImageType(images[ix].Data)
			key := fmt.Sprintf("products/%d/%s-%d-%d.%s", product.CategoryID, product.Slug, ix+1, millis, ext)

			url, err := r.objects.Put(egCtx, key, images[ix].Data, contentType)
			if err != nil {
				return fmt.Errorf("can't put %q: %w", images[ix].Name, err)
			}

			uploaded[ix] = models.ProductImage{
				ProductID:    product.ID,
				URL:          url,
				FileKey:      key,
				AltText:      lo.ToPtr(product.Name),
				DisplayOrder: ix,
				IsPrimary:    ix == 0,
			}

			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, err
	}

	return uploaded, nil
}

// detectImageType returns file extension and content type of image data. JPEG is assumed for unknown data.
func detectImageType(data []byte) (string, string) {
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") || detected.Extension() == "" {
		return "jpg", "image/jpeg"
	}

	return strings.TrimPrefix(detected.Extension(), "."), detected.String()
}

// WithClock sets Reconciler's custom Clock.
func WithClock(c Clock) Option {
	return func(r *Reconciler) {
		r.clock = c
	}
}

// WithUploadConcurrency sets maximum number of parallel image uploads of single product.
func WithUploadConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.uploadConcurrency = n
		}
	}
}

// WithProvenance sets placeholder provenance fields of newly created products.
func WithProvenance(temple, master string) Option {
	return func(r *Reconciler) {
		r.blessingTemple = temple
		r.blessingMaster = master
	}
}
