package config

import (
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform/logger"
	"github.com/MichalMitros/catalog-importer/internal/platform/objectstore"
)

// Task registry drivers.
const (
	RegistryMemory   = "memory"
	RegistryRedis    = "redis"
	RegistryPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string        `env:"DATABASE_URL,required"`
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	// AdminToken guards all admin routes.
	AdminToken     string `env:"ADMIN_IMPORT_TOKEN,required"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`

	Import   Import
	Registry Registry
	Storage  objectstore.Config
	RabbitMQ RabbitMQ
	Log      logger.Config
}

// Import holds batch import configuration.
type Import struct {
	DefaultCategoryID int `env:"DEFAULT_CATEGORY_ID" envDefault:"90005"`
	UploadConcurrency int `env:"UPLOAD_CONCURRENCY" envDefault:"4"`
	// PositionalImageFallback allows requests to assign archive images to rows by position.
	PositionalImageFallback bool          `env:"POSITIONAL_IMAGE_FALLBACK" envDefault:"false"`
	PositionalImagesPerRow  int           `env:"POSITIONAL_IMAGES_PER_ROW" envDefault:"3"`
	TaskTimeout             time.Duration `env:"TASK_TIMEOUT" envDefault:"0s"`
	Environment             string        `env:"ENVIRONMENT" envDefault:"development"`
	SyntheticReviewsEnabled bool          `env:"SYNTHETIC_REVIEWS_ENABLED" envDefault:"false"`
	BlessingTemple          string        `env:"DEFAULT_BLESSING_TEMPLE" envDefault:"五台山"`
	BlessingMaster          string        `env:"DEFAULT_BLESSING_MASTER" envDefault:"五台山高僧"`
}

// Registry holds task registry configuration.
type Registry struct {
	Driver   string        `env:"REGISTRY_DRIVER" envDefault:"memory"`
	RedisURL string        `env:"REDIS_URL"`
	TaskTTL  time.Duration `env:"REDIS_TASK_TTL" envDefault:"168h"`
}

// RabbitMQ holds RabbitMQ configuration. Queue consumer is disabled when URL is empty.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"catalog-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"catalog-importer.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"catalog.cmd.import"`
	Prefetch   int    `env:"RABBITMQ_PREFETCH" envDefault:"1"`
}
