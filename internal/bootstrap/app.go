package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studyprep-api/internal/config"
	"studyprep-api/internal/identity"
	"studyprep-api/internal/model"
	mysqlClient "studyprep-api/internal/platform/mysql"
	rabbitmqClient "studyprep-api/internal/platform/rabbitmq"
	redisClient "studyprep-api/internal/platform/redis"
	"studyprep-api/internal/repository"
	"studyprep-api/internal/search"
	"studyprep-api/internal/worker"
)

// App holds the process-wide clients. Everything is built once in New and
// handed to the components that need it.
type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	MySQL          *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	ActivityWorker *worker.ActivityWorker
	Verifier       identity.Verifier
	Search         *search.Client

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
	}

	a.Verifier = NewVerifier(cfg)
	a.Search = NewSearchClient(cfg)

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), gormLogLevel(cfg.Log.Level))
	if err != nil {
		return nil, err
	}
	a.MySQL = mysqlDB
	if err := mysqlDB.AutoMigrate(&model.Note{}, &model.CareerReport{}, &model.ActivityEvent{}); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Redis = redisCli

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ActivityQueue)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.MQConn = mqConn

	activityRepo := repository.NewActivityRepository(mysqlDB)
	a.ActivityWorker = worker.NewActivityWorker(mqConn, activityRepo, cfg.RabbitMQ.ActivityQueue, logger)
	if err := a.ActivityWorker.Start(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("start activity worker failed: %w", err)
	}

	return a, nil
}

// NewVerifier picks the verification strategy for the process lifetime.
func NewVerifier(cfg *config.Config) identity.Verifier {
	if cfg.Auth.Bypass {
		return identity.NewBypassVerifier(cfg.Auth.BypassIdentity)
	}

	var provider identity.Provider
	switch cfg.Auth.Provider {
	case "jwt":
		provider = identity.NewJWTProvider(cfg.Auth.JWTSecret)
	default:
		provider = identity.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.Auth.ProviderAPIKey, &http.Client{})
	}
	return identity.NewProviderVerifier(provider, identity.DefaultVerifyTimeout)
}

func NewSearchClient(cfg *config.Config) *search.Client {
	return search.NewClient(search.Config{
		InstantAnswerURL: cfg.Search.InstantAnswerURL,
		WikipediaURL:     cfg.Search.WikipediaURL,
		UserAgent:        cfg.Search.UserAgent,
		Timeout:          cfg.SearchTimeout(),
	})
}

func (a *App) AuthMode() string {
	if a.Config.Auth.Bypass {
		return "bypass"
	}
	return a.Config.Auth.Provider
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
