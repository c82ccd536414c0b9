package container

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/config"
	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http"
	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/database"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/mailer"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/mq"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/server"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository/memory"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository/postgres"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository/redisstore"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/auth"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/credential"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/interest"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/profile"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/relationship"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	MQ     *mq.RabbitMQClient
	Server *server.Server
	Gemini *gemini.GeminiClient

	matchConsumer *mq.MatchConsumer
}

type repositories struct {
	accounts  repository.AccountRepository
	sessions  repository.SessionRepository
	interests repository.InterestRepository
	matches   repository.MatchRepository
	messages  repository.MessageRepository
	ratings   repository.RatingRepository
	reports   repository.ReportRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logger.New(cfg.Logging)
	c := &Container{Config: cfg, Logger: log}

	repos, err := c.initRepositories(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	// Optional collaborators. Each one degrades to a local fallback when
	// its settings are absent.
	var mail credential.Mailer = mailer.NewLogMailer(log)
	if cfg.Mail.Enabled() {
		mail = mailer.NewSMTPMailer(cfg.Mail)
	}

	var publisher auth.EventPublisher = mq.NopPublisher{}
	if cfg.RabbitMQ.Enabled() {
		c.MQ, err = mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize rabbitmq: %w", err)
		}
		publisher = mq.NewEventPublisher(c.MQ, cfg.RabbitMQ.EventsQueue)
	}

	var pictures storage.ObjectStorage
	if cfg.Storage.Enabled() {
		minioClient, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		if err := minioClient.EnsureBucket(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to prepare picture bucket: %w", err)
		}
		pictures = minioClient
	}

	var summaries profile.SummaryGenerator
	if cfg.GeminiAPIKey != "" {
		c.Gemini, err = gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, log)
		if err != nil {
			log.Warn("gemini client unavailable, using template summaries", "error", err)
		} else {
			summaries = c.Gemini
		}
	}

	// Initialize use cases
	credentials := credential.NewManager(repos.accounts, mail, log, cfg.Reset.TokenTTL)

	authUseCase := auth.NewAuthUseCase(
		repos.accounts,
		repos.sessions,
		credentials,
		publisher,
		log,
		cfg.JWT.AccessSecret,
		time.Duration(cfg.JWT.AccessExpiryDay)*24*time.Hour,
	)

	profileUseCase := profile.NewProfileUseCase(
		repos.accounts,
		repos.interests,
		publisher,
		summaries,
		pictures,
		log,
	)

	interestUseCase := interest.NewInterestUseCase(repos.interests, repos.accounts)

	relationshipUseCase := relationship.NewRelationshipUseCase(
		repos.accounts,
		repos.matches,
		repos.messages,
		repos.ratings,
		repos.reports,
		log,
	)

	if c.MQ != nil {
		c.matchConsumer = mq.NewMatchConsumer(c.MQ, cfg.RabbitMQ.MatchesQueue, relationshipUseCase, log)
	}

	// Initialize handlers
	resetURL := strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/v1/auth/reset"
	authHandler := handler.NewAuthHandler(authUseCase, credentials, resetURL)
	accountHandler := handler.NewAccountHandler(authUseCase, credentials)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	interestHandler := handler.NewInterestHandler(interestUseCase)
	relationshipHandler := handler.NewRelationshipHandler(relationshipUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := http.NewRouter(
		authHandler,
		accountHandler,
		profileHandler,
		interestHandler,
		relationshipHandler,
		authMiddleware,
		log,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)

	return c, nil
}

func (c *Container) initRepositories(ctx context.Context) (*repositories, error) {
	if c.Config.StoreDriver == config.StoreDriverMemory {
		c.Logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			accounts:  store.Accounts(),
			sessions:  store.Sessions(),
			interests: store.Interests(),
			matches:   store.Matches(),
			messages:  store.Messages(),
			ratings:   store.Ratings(),
			reports:   store.Reports(),
		}, nil
	}

	db, err := database.NewPostgresDB(ctx, &c.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	redisClient, err := database.NewRedisClient(ctx, &c.Config.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	c.Redis = redisClient

	return &repositories{
		accounts:  postgres.NewAccountRepository(db),
		sessions:  redisstore.NewSessionRepository(redisClient),
		interests: postgres.NewInterestRepository(db),
		matches:   postgres.NewMatchRepository(db),
		messages:  postgres.NewMessageRepository(db),
		ratings:   postgres.NewRatingRepository(db),
		reports:   postgres.NewReportRepository(db),
	}, nil
}

// StartConsumers runs background queue consumers until ctx is cancelled.
func (c *Container) StartConsumers(ctx context.Context) {
	if c.matchConsumer == nil {
		return
	}
	go func() {
		if err := c.matchConsumer.Run(ctx); err != nil {
			c.Logger.Error("match consumer stopped", "error", err)
		}
	}()
}

// Close closes all connections
func (c *Container) Close() error {
	var firstErr error
	keep := func(name string, err error) {
		if err == nil {
			return
		}
		c.Logger.Error("failed to close "+name, "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s: %w", name, err)
		}
	}

	if c.MQ != nil {
		keep("rabbitmq", c.MQ.Close())
	}
	if c.Gemini != nil {
		keep("gemini", c.Gemini.Close())
	}
	if c.Redis != nil {
		keep("redis", c.Redis.Close())
	}
	if c.DB != nil {
		keep("database", c.DB.Close())
	}

	return firstErr
}
