package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/MichalMitros/catalog-importer/e2e/helpers"
	"github.com/MichalMitros/catalog-importer/internal/catalog"
	"github.com/MichalMitros/catalog-importer/internal/decoder"
	"github.com/MichalMitros/catalog-importer/internal/exporter"
	"github.com/MichalMitros/catalog-importer/internal/fetcher"
	"github.com/MichalMitros/catalog-importer/internal/handler"
	"github.com/MichalMitros/catalog-importer/internal/importer"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage"
	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/catalog-importer/internal/reviews"
	"github.com/MichalMitros/catalog-importer/pkg/v1/commander"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

const (
	userAgent  = "catalog-importer-e2e-test/0.0.1"
	exchange   = "catalog-e2e"
	token      = "e2e-token"
	categoryID = 90005
	maxBytes   = int64(10 << 20)
)

var header = []string{"Product Name", "SKU", "Sale Price", "Description", "Image Files"}

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

type E2ETestSuite struct {
	suite.Suite
	connection *amqp.Connection
	channel    *amqp.Channel
	db         *sql.DB

	tasks    storage.Tasks
	importer *importer.Importer
	server   *httptest.Server
}

func (s *E2ETestSuite) SetupSuite() {
	rabbitMQURL := os.Getenv("RABBITMQ_URL")
	if rabbitMQURL == "" {
		s.T().Skip("please provide RabbitMQ URL via RABBITMQ_URL environment variable")
	}
	s.db = storagetesting.Open(s.T())

	var err error
	if s.connection, err = amqp.Dial(rabbitMQURL); err != nil {
		s.Require().FailNow("can't open RabbitMQ connection", err)
	}
	if s.channel, err = s.connection.Channel(); err != nil {
		s.Require().FailNow("can't open RabbitMQ channel", err)
	}

	logger := zerolog.Nop()
	store := storage.NewPostgres(s.db)
	s.tasks = storage.NewTasks(s.db)
	s.importer = importer.NewImporter(
		s.tasks,
		decoder.Decoder{},
		store,
		catalog.NewReconciler(store, helpers.NewMemoryBucket()),
		reviews.NewSynthesizer(),
		&logger,
		importer.WithSyntheticReviews(true, "e2e"),
	)

	httpHandler := handler.NewHTTP(s.importer, exporter.NewExporter(store), store, token, maxBytes, &logger)
	s.server = httptest.NewServer(httpHandler.NewRouter())
}

func (s *E2ETestSuite) SetupTest() {
	storagetesting.CleanupData(s.T(), s.db)
	storagetesting.InsertCategories(s.T(), s.db, pgmodels.Category{
		ID:   categoryID,
		Name: "Amulets",
		Slug: "amulets",
	})
}

func (s *E2ETestSuite) TearDownSuite() {
	s.server.Close()
	s.importer.Wait()

	storagetesting.CleanupData(s.T(), s.db)
	if err := s.db.Close(); err != nil {
		s.FailNow("can't close Postgres connection", err)
	}

	if err := s.channel.Close(); err != nil {
		s.FailNow("can't close RabbitMQ channel", err)
	}

	if err := s.connection.Close(); err != nil {
		s.FailNow("can't close RabbitMQ connection", err)
	}
}

func (s *E2ETestSuite) TestImportOverHTTP() {
	// First import creates three products, one with two images
	firstSheet := helpers.CSV(s.T(),
		header,
		[]string{"Jade Pendant", "E2E-1", "39.9", "green jade", "jade-1.png|jade-2.png"},
		[]string{"Tiger Amulet", "E2E-2", "¥120", "", ""},
		[]string{"Lotus Bracelet", "E2E-3", "abc", "", "missing.png"},
	)
	archive := helpers.Zip(s.T(), "images/Jade-1.png", "images/jade-2.png", "__MACOSX/._jade-1.png")

	taskID := helpers.SubmitImport(s.T(), s.server.URL, token, "products.csv", firstSheet, archive)
	first := helpers.WaitForTask(s.T(), s.server.URL, token, taskID)

	s.Equal(models.TaskDone, first.Status, first.Message)
	s.Equal(100, first.Progress)
	s.Require().NotNil(first.Result)
	s.Equal(3, first.Result.ProductsCreated)
	s.Equal(0, first.Result.ProductsUpdated)
	s.Equal(2, first.Result.ImagesUploaded)
	s.Empty(first.Result.Errors)

	products := storagetesting.GetProducts(s.T(), s.db)
	s.Require().Len(products, 3)
	byName := lo.KeyBy(products, func(p pgmodels.Product) string { return p.Name })
	s.Equal(int32(40), byName["Jade Pendant"].SalePrice)
	s.Equal(int32(52), byName["Jade Pendant"].RegularPrice)
	s.Equal(int32(120), byName["Tiger Amulet"].SalePrice)
	s.Equal(int32(45), byName["Lotus Bracelet"].SalePrice)
	s.Equal(string(models.ProductPublished), byName["Jade Pendant"].Status)
	s.Len(storagetesting.GetProductImages(s.T(), s.db, int(byName["Jade Pendant"].ID)), 2)

	// Second import updates existing products by sku and adds reviews
	secondSheet := helpers.CSV(s.T(),
		header,
		[]string{"Jade Pendant", "E2E-1", "59", "green jade, polished", ""},
		[]string{"Tiger Amulet", "E2E-2", "130", "", ""},
	)
	taskID = s.submitWithReviews(secondSheet, 3)
	second := helpers.WaitForTask(s.T(), s.server.URL, token, taskID)

	s.Equal(models.TaskDone, second.Status, second.Message)
	s.Equal(0, second.Result.ProductsCreated)
	s.Equal(2, second.Result.ProductsUpdated)
	s.Equal(6, second.Result.ReviewsGenerated)

	products = storagetesting.GetProducts(s.T(), s.db)
	s.Require().Len(products, 3)
	byName = lo.KeyBy(products, func(p pgmodels.Product) string { return p.Name })
	s.Equal(int32(59), byName["Jade Pendant"].SalePrice)
	s.Equal(first.Result.ProductsCreated, len(products))
	s.Len(storagetesting.GetReviews(s.T(), s.db, int(byName["Tiger Amulet"].ID)), 3)
	// images are kept when row matched none
	s.Len(storagetesting.GetProductImages(s.T(), s.db, int(byName["Jade Pendant"].ID)), 2)

	// Export contains whole catalog
	script := helpers.ExportSQL(s.T(), s.server.URL, token)
	s.Contains(script, "-- categories: 1, products: 3, product images: 2")
	s.Equal(3, strings.Count(script, "INSERT INTO product ("))
	s.Contains(script, "'Jade Pendant'")
}

func (s *E2ETestSuite) TestImportOverRabbitMQ() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prepare test RMQ queue
	queue := fmt.Sprintf("catalog-e2e-test-%d", rand.Int63n(100000))
	routingKey := fmt.Sprintf("catalog.cmd.e2e.%d", rand.Int63n(100000))
	rmq, err := rabbitmq.NewRabbitMQ(s.connection, exchange)
	s.Require().NoError(err, "can't create RabbitMQ client")
	s.Require().NoError(rmq.Declare(queue, routingKey), "can't declare queue")
	s.T().Cleanup(func() {
		if _, err := s.channel.QueueDelete(queue, false, false, true); err != nil {
			s.FailNow("can't delete queue", queue, err)
		}
	})

	// Files available under URLs
	sheet := helpers.CSV(s.T(),
		header,
		[]string{"Queued Charm", "E2E-Q1", "10", "", "charm.png"},
	)
	files := helpers.ServeFiles(s.T(), map[string][]byte{
		"products.csv": sheet,
		"images.zip":   helpers.Zip(s.T(), "charm.png"),
	}, "application/octet-stream")

	// Prepare and run handler
	logger := zerolog.Nop()
	han := handler.NewRMQHandler(rmq, fetcher.NewFetcher(files.Client(), userAgent), s.importer, maxBytes, &logger)
	s.Require().NoError(han.Start(ctx, queue), "handler shouldn't return any error")

	// Send import command
	publisher := commander.NewImportCommander(commander.NewRabbitMQSender(rmq, routingKey))
	err = publisher.SendImportCommand(ctx, commander.ImportCommand{
		SpreadsheetURL: files.URL + "/products.csv",
		ArchiveURL:     files.URL + "/images.zip",
	})
	s.Require().NoError(err, "can't publish import command")

	// Wait for import to be finished
	task := helpers.WaitForLatestTask(s.T(), s.db, s.tasks)

	s.Equal(models.TaskDone, task.Status, task.Message)
	s.Equal(1, task.Result.ProductsCreated)
	s.Equal(1, task.Result.ImagesUploaded)
	s.NotEmpty(task.Logs)

	products := storagetesting.GetProducts(s.T(), s.db)
	s.Require().Len(products, 1)
	s.Equal("Queued Charm", products[0].Name)
	s.Require().NotNil(products[0].Sku)
	s.Equal("E2E-Q1", *products[0].Sku)

	// Cancel context to stop consumer
	cancel()
	<-rmq.Done()
}

func (s *E2ETestSuite) submitWithReviews(sheet []byte, reviewCount int) string {
	taskID, err := s.importer.Submit(context.Background(), importer.Request{
		SpreadsheetName:         "products.csv",
		Spreadsheet:             sheet,
		ReviewCount:             reviewCount,
		ConfirmSyntheticReviews: true,
	})
	s.Require().NoError(err, "import with reviews should be accepted")

	return taskID
}
