package registry_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/platform/registry"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

func TestRedisIntegration(t *testing.T) {
	suite.Run(t, new(RedisTestSuite))
}

type RedisTestSuite struct {
	suite.Suite
	Client *redis.Client
}

func (s *RedisTestSuite) SetupSuite() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		s.T().Skip("please provide redis URL via REDIS_URL environment variable")
	}

	opts, err := redis.ParseURL(redisURL)
	s.Require().NoError(err, "should parse REDIS_URL")
	s.Client = redis.NewClient(opts)
}

func (s *RedisTestSuite) TearDownSuite() {
	if s.Client != nil {
		s.NoError(s.Client.Close())
	}
}

func (s *RedisTestSuite) TestIntegrationLifecycle() {
	ctx := context.TODO()
	reg := registry.NewRedis(s.Client, time.Minute)
	task := models.NewImportTask("import_test_"+uuid.NewString()[:6], time.Now().UnixMilli())

	s.Require().NoError(reg.CreateTask(ctx, task))
	s.Error(reg.CreateTask(ctx, task), "should refuse duplicated ID")

	s.Require().NoError(reg.AppendLog(ctx, task.ID, "first"))
	s.Require().NoError(task.Start(5, "processing"))
	task.Advance(40, "row 2")
	task.Result = &models.ImportResult{ProductsCreated: 1, Errors: []string{"row 3: boom"}}
	s.Require().NoError(reg.SaveTask(ctx, task))
	s.Require().NoError(reg.AppendLog(ctx, task.ID, "second"))

	got, err := reg.GetTask(ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(models.TaskProcessing, got.Status)
	s.Equal(40, got.Progress)
	s.Equal("row 2", got.Message)
	s.Equal(task.CreatedAt, got.CreatedAt)
	s.Equal([]string{"first", "second"}, got.Logs)
	s.Equal(task.Result, got.Result)

	ttl, err := s.Client.TTL(ctx, "import_task:"+task.ID).Result()
	s.Require().NoError(err)
	s.Positive(ttl, "save should keep task TTL")
}

func (s *RedisTestSuite) TestIntegrationNotFound() {
	ctx := context.TODO()
	reg := registry.NewRedis(s.Client, time.Minute)

	_, err := reg.GetTask(ctx, "import_missing")
	s.ErrorIs(err, platform.ErrTaskNotFound)
	s.ErrorIs(reg.SaveTask(ctx, models.NewImportTask("import_missing", 1)), platform.ErrTaskNotFound)
}
