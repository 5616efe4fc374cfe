package handler

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/MichalMitros/catalog-importer/internal/decoder"
	"github.com/MichalMitros/catalog-importer/internal/exporter"
	"github.com/MichalMitros/catalog-importer/internal/importer"
	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Importer --filename importer.go
//go:generate mockery --name Exporter --filename exporter.go
//go:generate mockery --name Pinger --filename pinger.go

const (
	// TokenHeader is header carrying admin token.
	TokenHeader = "X-Admin-Token"
	// TokenQuery is query parameter carrying admin token when header is not set.
	TokenQuery = "token"

	// multipart parts above this size are buffered on disk by net/http
	multipartMemory = 32 << 20
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var errUnauthorized = errors.New("unauthorized")

// Importer starts imports and reports their state.
type Importer interface {
	Submit(ctx context.Context, req importer.Request) (string, error)
	// Task returns task or platform.ErrTaskNotFound.
	Task(ctx context.Context, id string) (*models.ImportTask, error)
}

// Exporter writes catalog as SQL script.
type Exporter interface {
	Export(ctx context.Context, w io.Writer, opts exporter.Options) error
}

// Pinger checks that dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Clock provides times.
type Clock interface {
	// Timestamp returns UTC unix timestamp in milliseconds.
	Timestamp() int64
}

// HTTPOption is custom configuration of HTTP handler.
type HTTPOption func(h *HTTP)

// HTTP serves admin import API.
type HTTP struct {
	importer       Importer
	exporter       Exporter
	pinger         Pinger
	token          []byte
	maxUploadBytes int64
	gatherer       prometheus.Gatherer
	clock          Clock
	logger         *zerolog.Logger
}

// NewHTTP returns new HTTP handler. Admin routes accept only requests carrying token,
// empty token rejects every admin request.
func NewHTTP(
	imp Importer,
	exp Exporter,
	pinger Pinger,
	token string,
	maxUploadBytes int64,
	logger *zerolog.Logger,
	ops ...HTTPOption,
) *HTTP {
	h := &HTTP{
		importer:       imp,
		exporter:       exp,
		pinger:         pinger,
		token:          []byte(token),
		maxUploadBytes: maxUploadBytes,
		clock:          platform.SystemClock{},
		logger:         logger,
	}

	for _, op := range ops {
		op(h)
	}

	return h
}

// Register registers all routes on router.
func (h *HTTP) Register(router gin.IRouter) {
	router.GET("/health", h.health)
	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	admin := router.Group("/admin", h.authorize)
	admin.POST("/batch-import", h.submitImport)
	admin.GET("/batch-import/:taskId", h.getTask)
	admin.GET("/export-sql", h.exportSQL)
	admin.GET("/import-template", h.importTemplate)
}

// NewRouter returns gin engine with recovery, request logging and all routes registered.
func (h *HTTP) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.logRequest)
	h.Register(router)

	return router
}

func (h *HTTP) authorize(c *gin.Context) {
	token := c.GetHeader(TokenHeader)
	if token == "" {
		token = c.Query(TokenQuery)
	}

	if len(h.token) == 0 || subtle.ConstantTimeCompare([]byte(token), h.token) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(errUnauthorized))
		return
	}

	c.Next()
}

func (h *HTTP) logRequest(c *gin.Context) {
	c.Next()

	h.logger.Debug().
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Msg("request handled")
}

func (h *HTTP) submitImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorBody(fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit)))
			return
		}
		c.JSON(http.StatusBadRequest, errorBody(fmt.Errorf("can't parse multipart form: %w", err)))
		return
	}

	req, err := h.importRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	taskID, err := h.importer.Submit(c.Request.Context(), req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, errorBody(err))
			return
		}
		h.logger.Error().Err(err).Msg("can't submit import")
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "message": "import task started"})
}

func (h *HTTP) importRequest(c *gin.Context) (importer.Request, error) {
	var req importer.Request

	excel, err := c.FormFile("excel")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, platform.ErrSpreadsheetRequired
		}
		return req, fmt.Errorf("can't read excel file: %w", err)
	}
	req.SpreadsheetName = excel.Filename
	if req.Spreadsheet, err = readFormFile(excel); err != nil {
		return req, fmt.Errorf("can't read excel file: %w", err)
	}

	images, err := c.FormFile("images")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return req, fmt.Errorf("can't read images file: %w", err)
	default:
		if req.Archive, err = readFormFile(images); err != nil {
			return req, fmt.Errorf("can't read images file: %w", err)
		}
	}

	// category that isn't a positive integer falls back to the importer default
	req.CategoryID, _ = strconv.Atoi(c.PostForm("categoryId"))
	if req.ReviewCount, err = formInt(c, "reviewCount"); err != nil {
		return req, err
	}
	if req.ReviewCount < 0 {
		return req, errors.New("reviewCount can't be negative")
	}
	if req.ConfirmSyntheticReviews, err = formBool(c, "confirmSyntheticReviews"); err != nil {
		return req, err
	}
	if req.PositionalImages, err = formBool(c, "positionalImages"); err != nil {
		return req, err
	}

	return req, nil
}

func (h *HTTP) getTask(c *gin.Context) {
	task, err := h.importer.Task(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		if errors.Is(err, platform.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorBody(err))
			return
		}
		h.logger.Error().Err(err).Msg("can't get import task")
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *HTTP) exportSQL(c *gin.Context) {
	includeReviews, err := queryBool(c, "includeReviews")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	// rendered into buffer so failed export never sends partial script
	var buf bytes.Buffer
	if err := h.exporter.Export(c.Request.Context(), &buf, exporter.Options{IncludeReviews: includeReviews}); err != nil {
		h.logger.Error().Err(err).Msg("can't export catalog")
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="products-%d.sql"`, h.clock.Timestamp()))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (h *HTTP) importTemplate(c *gin.Context) {
	template, err := decoder.Template()
	if err != nil {
		h.logger.Error().Err(err).Msg("can't build import template")
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="import-template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, template)
}

func (h *HTTP) health(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isValidationError(err error) bool {
	return errors.Is(err, platform.ErrSpreadsheetRequired) ||
		errors.Is(err, platform.ErrSyntheticReviewsNotAllowed) ||
		errors.Is(err, platform.ErrSyntheticReviewsNotConfirmed)
}

func errorBody(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// formInt returns 0 when field is absent or empty.
func formInt(c *gin.Context, field string) (int, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return v, nil
}

func formBool(c *gin.Context, field string) (bool, error) {
	return parseBool(field, c.PostForm(field))
}

func queryBool(c *gin.Context, field string) (bool, error) {
	return parseBool(field, c.Query(field))
}

func parseBool(field, raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", field)
	}
	return v, nil
}

// WithClock sets custom clock.
func WithClock(c Clock) HTTPOption {
	return func(h *HTTP) {
		h.clock = c
	}
}

// WithMetrics exposes metrics from gatherer on /metrics.
func WithMetrics(gatherer prometheus.Gatherer) HTTPOption {
	return func(h *HTTP) {
		h.gatherer = gatherer
	}
}
