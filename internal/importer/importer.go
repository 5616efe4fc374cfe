package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/archive"
	"github.com/MichalMitros/catalog-importer/internal/catalog"
	"github.com/MichalMitros/catalog-importer/internal/decoder"
	"github.com/MichalMitros/catalog-importer/internal/matcher"
	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Registry --filename registry.go
//go:generate mockery --name Catalog --filename catalog.go
//go:generate mockery --name Reconciler --filename reconciler.go

const (
	// EnvironmentProduction is environment name in which synthetic reviews are never generated.
	EnvironmentProduction = "production"
	// DefaultCategoryID is category of imported products when request doesn't specify one.
	DefaultCategoryID = 90005
	// DefaultPositionalImagesPerRow is number of images assigned to a row by positional fallback.
	DefaultPositionalImagesPerRow = 3
)

// Registry stores import tasks.
type Registry interface {
	CreateTask(ctx context.Context, task *models.ImportTask) error
	// GetTask returns task or platform.ErrTaskNotFound.
	GetTask(ctx context.Context, id string) (*models.ImportTask, error)
	// SaveTask saves task status, progress, message and result.
	SaveTask(ctx context.Context, task *models.ImportTask) error
	AppendLog(ctx context.Context, id string, line string) error
}

// Decoder decodes spreadsheet files.
type Decoder interface {
	Decode(name string, data []byte) (*models.Sheet, error)
}

// Catalog is catalog storage used directly by import.
type Catalog interface {
	Ping(ctx context.Context) error
	// ReplaceReviews deletes all reviews of the product and inserts provided ones.
	ReplaceReviews(ctx context.Context, productID int, reviews []models.Review) error
}

// Reconciler creates or updates single product with its images.
type Reconciler interface {
	Reconcile(ctx context.Context, in catalog.Input) (catalog.Outcome, error)
}

// ReviewGenerator generates placeholder reviews.
type ReviewGenerator interface {
	Generate(productID int, count int) []models.Review
}

// Clock provides times.
type Clock interface {
	// Timestamp returns UTC unix timestamp in milliseconds.
	Timestamp() int64
	// Now returns current UTC time.
	Now() *time.Time
}

// Request is batch import submission.
type Request struct {
	SpreadsheetName string
	Spreadsheet     []byte
	// Archive is optional zip archive with product images.
	Archive    []byte
	CategoryID int
	// ReviewCount is number of synthetic reviews generated per product, 0 disables generation.
	ReviewCount             int
	ConfirmSyntheticReviews bool
	// PositionalImages asks for positional image assignment. It is honoured only when enabled on Importer.
	PositionalImages bool
}

// Option is custom configuration of Importer.
type Option func(i *Importer)

// Importer runs batch catalog imports in background and reports their progress through Registry.
type Importer struct {
	registry   Registry
	decoder    Decoder
	catalog    Catalog
	reconciler Reconciler
	reviews    ReviewGenerator
	logger     *zerolog.Logger
	clock      Clock
	metrics    *Metrics

	defaultCategoryID int
	positionalPerRow  int
	taskTimeout       time.Duration
	reviewsEnabled    bool
	environment       string

	wg sync.WaitGroup
}

// NewImporter returns new Importer.
func NewImporter(
	registry Registry,
	dec Decoder,
	store Catalog,
	reconciler Reconciler,
	generator ReviewGenerator,
	logger *zerolog.Logger,
	ops ...Option,
) *Importer {
	imp := &Importer{
		registry:          registry,
		decoder:           dec,
		catalog:           store,
		reconciler:        reconciler,
		reviews:           generator,
		logger:            logger,
		clock:             platform.SystemClock{},
		metrics:           NewMetrics(prometheus.NewRegistry()),
		defaultCategoryID: DefaultCategoryID,
	}

	for _, op := range ops {
		op(imp)
	}

	return imp
}

// Submit validates request, registers pending task and starts processing it in background.
// It returns task ID without waiting for the import. Processing is not cancelled with ctx.
func (i *Importer) Submit(ctx context.Context, req Request) (string, error) {
	if len(req.Spreadsheet) == 0 {
		return "", platform.ErrSpreadsheetRequired
	}

	if err := i.checkReviews(req); err != nil {
		return "", err
	}

	if req.CategoryID <= 0 {
		req.CategoryID = i.defaultCategoryID
	}

	task := models.NewImportTask(i.newTaskID(), i.clock.Timestamp())
	if err := i.registry.CreateTask(ctx, task); err != nil {
		return "", fmt.Errorf("can't create import task: %w", err)
	}

	if req.ReviewCount > 0 {
		i.logger.Warn().
			Str("taskId", task.ID).
			Int("reviewCount", req.ReviewCount).
			Msg("SYNTHETIC REVIEWS REQUESTED: generated reviews are fabricated, verified and pre-approved")
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		runCtx := context.WithoutCancel(ctx)
		if i.taskTimeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, i.taskTimeout)
			defer cancel()
		}

		i.run(runCtx, task, req)
	}()

	return task.ID, nil
}

// Task returns import task or platform.ErrTaskNotFound.
func (i *Importer) Task(ctx context.Context, id string) (*models.ImportTask, error) {
	return i.registry.GetTask(ctx, id)
}

// Wait blocks until all submitted tasks finish.
func (i *Importer) Wait() {
	i.wg.Wait()
}

func (i *Importer) checkReviews(req Request) error {
	if req.ReviewCount <= 0 {
		return nil
	}

	if !i.reviewsEnabled || strings.EqualFold(i.environment, EnvironmentProduction) {
		return platform.ErrSyntheticReviewsNotAllowed
	}

	if !req.ConfirmSyntheticReviews {
		return platform.ErrSyntheticReviewsNotConfirmed
	}

	return nil
}

func (i *Importer) run(ctx context.Context, task *models.ImportTask, req Request) {
	i.metrics.inFlight.Inc()
	defer i.metrics.inFlight.Dec()

	defer func() {
		if r := recover(); r != nil {
			i.fail(ctx, task, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := task.Start(5, "parsing spreadsheet"); err != nil {
		i.logger.Error().Err(err).Str("taskId", task.ID).Msg("can't start import task")
		return
	}
	i.save(ctx, task)

	sheet, err := i.decoder.Decode(req.SpreadsheetName, req.Spreadsheet)
	if err != nil {
		i.fail(ctx, task, fmt.Errorf("can't parse spreadsheet: %w", err))
		return
	}
	i.log(ctx, task, fmt.Sprintf("headers: %s", strings.Join(sheet.Headers, ", ")))
	i.log(ctx, task, fmt.Sprintf("found %d product rows", len(sheet.Rows)))

	task.Advance(15, "extracting images")
	i.save(ctx, task)

	index := i.extractImages(ctx, task, req.Archive)

	task.Advance(25, "processing products")
	i.save(ctx, task)

	if err = i.catalog.Ping(ctx); err != nil {
		i.fail(ctx, task, fmt.Errorf("can't reach catalog: %w", err))
		return
	}

	task.Result = &models.ImportResult{Errors: []string{}}

	match := i.newMatcher(ctx, task, req)
	if !decoder.HasExternalID(sheet.Headers) {
		i.log(ctx, task, "warning: spreadsheet has no sku column, existing products are matched by name")
	}

	total := len(sheet.Rows)
	for ix, sheetRow := range sheet.Rows {
		if err = ctx.Err(); err != nil {
			i.fail(ctx, task, fmt.Errorf("import interrupted: %w", err))
			return
		}

		task.Advance(25+ix*65/total, fmt.Sprintf("processing product %d/%d", ix+1, total))
		i.importRow(ctx, task, req, match, index, decoder.ResolveRow(sheet.Headers, sheetRow), ix)
		i.save(ctx, task)
	}

	result := task.Result
	summary := fmt.Sprintf(
		"import finished: %d products created, %d updated, %d images uploaded, %d reviews generated, %d errors",
		result.ProductsCreated, result.ProductsUpdated, result.ImagesUploaded, result.ReviewsGenerated, len(result.Errors),
	)
	if err = task.Complete(summary); err != nil {
		i.logger.Error().Err(err).Str("taskId", task.ID).Msg("can't complete import task")
		return
	}
	i.log(ctx, task, summary)
	i.save(ctx, task)
	i.metrics.tasks.WithLabelValues(string(models.TaskDone)).Inc()
}

func (i *Importer) extractImages(ctx context.Context, task *models.ImportTask, data []byte) *archive.Index {
	if len(data) == 0 {
		index, _ := archive.Extract(nil)
		return index
	}

	index, err := archive.Extract(data)
	if err != nil {
		i.log(ctx, task, fmt.Sprintf("warning: can't extract images, image upload is skipped: %s", err))
		return index
	}
	i.log(ctx, task, fmt.Sprintf("extracted %d image entries", index.Len()))

	return index
}

func (i *Importer) newMatcher(ctx context.Context, task *models.ImportTask, req Request) *matcher.Matcher {
	if !req.PositionalImages {
		return matcher.NewMatcher()
	}

	if i.positionalPerRow <= 0 {
		i.log(ctx, task, "warning: positional image matching is disabled on this server, request flag ignored")
		return matcher.NewMatcher()
	}

	i.log(ctx, task, fmt.Sprintf(
		"warning: positional image matching enabled, rows without resolved image files get %d images by row order",
		i.positionalPerRow,
	))

	return matcher.NewMatcher(matcher.WithPositionalFallback(i.positionalPerRow))
}

// importRow imports single row. Row failures are recorded in task result and never stop the import.
func (i *Importer) importRow(
	ctx context.Context,
	task *models.ImportTask,
	req Request,
	match *matcher.Matcher,
	index *archive.Index,
	row models.ImportRow,
	rowIndex int,
) {
	defer func() {
		if r := recover(); r != nil {
			i.rowFailed(ctx, task, row, fmt.Errorf("panic: %v", r))
		}
	}()

	if row.Name == "" {
		i.log(ctx, task, fmt.Sprintf("row %d: empty product name, skipped", row.Line))
		i.metrics.rows.WithLabelValues(rowSkipped).Inc()
		return
	}

	matched := match.Match(row, rowIndex, index)
	if len(matched.Missing) > 0 {
		i.log(ctx, task, fmt.Sprintf("row %d: warning: images not found in archive: %s",
			row.Line, strings.Join(matched.Missing, ", ")))
	}
	if matched.Positional {
		i.log(ctx, task, fmt.Sprintf("row %d: %d images assigned by row position", row.Line, len(matched.Images)))
	}

	outcome, err := i.reconciler.Reconcile(ctx, catalog.Input{
		Row:        row,
		CategoryID: req.CategoryID,
		Images:     matched.Images,
	})
	i.count(task.Result, outcome)
	if err != nil {
		i.rowFailed(ctx, task, row, err)
		return
	}

	product := outcome.Product
	i.log(ctx, task, fmt.Sprintf("row %d: product %q %s (id %d, price %d, %d images)",
		row.Line, product.Name, createdOrUpdated(outcome.Created), product.ID, product.SalePrice, outcome.ImagesUploaded))

	if req.ReviewCount > 0 {
		reviews := i.reviews.Generate(product.ID, req.ReviewCount)
		if err = i.catalog.ReplaceReviews(ctx, product.ID, reviews); err != nil {
			i.rowFailed(ctx, task, row, fmt.Errorf("can't save reviews: %w", err))
			return
		}
		task.Result.ReviewsGenerated += len(reviews)
		i.log(ctx, task, fmt.Sprintf("row %d: %d synthetic reviews generated", row.Line, len(reviews)))
	}

	i.metrics.rows.WithLabelValues(createdOrUpdated(outcome.Created)).Inc()
}

// count adds reconciliation outcome to result. Outcome of failed reconciliation is counted as far as it got.
func (i *Importer) count(result *models.ImportResult, outcome catalog.Outcome) {
	if outcome.Product.ID != 0 {
		if outcome.Created {
			result.ProductsCreated++
		} else {
			result.ProductsUpdated++
		}
	}
	result.ImagesUploaded += outcome.ImagesUploaded
	i.metrics.imagesUploaded.Add(float64(outcome.ImagesUploaded))
}

func (i *Importer) rowFailed(ctx context.Context, task *models.ImportTask, row models.ImportRow, err error) {
	message := fmt.Sprintf("row %d (%s): %s", row.Line, row.Name, err)
	task.Result.Errors = append(task.Result.Errors, message)
	i.log(ctx, task, "error: "+message)
	i.metrics.rows.WithLabelValues(rowFailed).Inc()
}

func (i *Importer) fail(ctx context.Context, task *models.ImportTask, err error) {
	if task.Status.IsTerminal() {
		return
	}

	message := fmt.Sprintf("import failed: %s", err)
	_ = task.Fail(message)
	i.log(ctx, task, message)
	i.save(ctx, task)
	i.metrics.tasks.WithLabelValues(string(models.TaskError)).Inc()
}

// log appends line to task logs and writes it to service log.
func (i *Importer) log(ctx context.Context, task *models.ImportTask, line string) {
	task.Log(line)
	i.logger.Info().Str("taskId", task.ID).Msg(line)

	if err := i.registry.AppendLog(saveContext(ctx), task.ID, line); err != nil {
		i.logger.Error().Err(err).Str("taskId", task.ID).Msg("can't append task log")
	}
}

func (i *Importer) save(ctx context.Context, task *models.ImportTask) {
	if err := i.registry.SaveTask(saveContext(ctx), task); err != nil {
		i.logger.Error().Err(err).Str("taskId", task.ID).Msg("can't save task")
	}
}

// newTaskID returns task ID in import_<unix millis>_<random hex> format.
func (i *Importer) newTaskID() string {
	return fmt.Sprintf("import_%d_%s", i.clock.Timestamp(), strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

// saveContext keeps task state writable after processing context expired.
func saveContext(ctx context.Context) context.Context {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return context.WithoutCancel(ctx)
	}
	return ctx
}

func createdOrUpdated(created bool) string {
	if created {
		return rowCreated
	}
	return rowUpdated
}

// WithClock sets Importer's custom Clock.
func WithClock(c Clock) Option {
	return func(i *Importer) {
		i.clock = c
	}
}

// WithMetrics sets Importer's metrics.
func WithMetrics(m *Metrics) Option {
	return func(i *Importer) {
		i.metrics = m
	}
}

// WithDefaultCategory sets category of products imported without explicit category.
func WithDefaultCategory(categoryID int) Option {
	return func(i *Importer) {
		i.defaultCategoryID = categoryID
	}
}

// WithPositionalImages allows requests to use positional image assignment of perRow images.
func WithPositionalImages(perRow int) Option {
	return func(i *Importer) {
		i.positionalPerRow = perRow
	}
}

// WithTaskTimeout limits processing time of single task.
func WithTaskTimeout(timeout time.Duration) Option {
	return func(i *Importer) {
		i.taskTimeout = timeout
	}
}

// WithSyntheticReviews allows synthetic review generation outside of production environment.
func WithSyntheticReviews(enabled bool, environment string) Option {
	return func(i *Importer) {
		i.reviewsEnabled = enabled
		i.environment = environment
	}
}
