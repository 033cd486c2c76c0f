package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"subjectstore-backend/internal/config"
	infraCache "subjectstore-backend/internal/infrastructure/cache"
	"subjectstore-backend/internal/infrastructure/database"
	"subjectstore-backend/internal/infrastructure/storage"
	"subjectstore-backend/pkg/cache"

	subjectHandler "subjectstore-backend/internal/domains/subject/handler"
	subjectRepo "subjectstore-backend/internal/domains/subject/repository"
	subjectService "subjectstore-backend/internal/domains/subject/service"
)

// Container holds every dependency of the application and is the root of the
// dependency graph. All members are singletons living for the process
// lifetime; the store connection is opened once here and shared by all
// requests.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Images storage.Strategy

	SubjectRepo    subjectRepo.RepositoryInterface
	SubjectService subjectService.ServiceInterface
	SubjectHandler *subjectHandler.Handler
}

// NewContainer initializes the dependency graph in order: config,
// infrastructure, repositories, services, handlers. Any failure aborts
// startup; the server never comes up half-connected.
func NewContainer() (*Container, error) {
	c := &Container{}

	log.Println("[CONTAINER] Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	log.Println("[CONTAINER] Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := subjectRepo.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return nil, err
	}

	// Cache failures are non-critical: fall back to a noop cache and serve
	// everything from the store.
	c.Cache = newCache(cfg)

	log.Printf("[CONTAINER] Initializing %s image storage...", cfg.Storage.Strategy)
	images, err := storage.NewStrategy(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init image storage: %w", err)
	}
	c.Images = images

	c.SubjectRepo = subjectRepo.NewPostgresRepository(db.Pool)
	c.SubjectService = subjectService.NewSubjectService(
		c.SubjectRepo,
		c.Images,
		storage.NewValidator(cfg.Storage.MaxUploadSize),
	)
	c.SubjectHandler = subjectHandler.NewHandler(c.SubjectService, c.Cache)

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

func newCache(cfg *config.Config) cache.Cache {
	if !cfg.Redis.Enabled {
		log.Println("[CONTAINER] Caching disabled")
		return cache.NewNoop()
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		return cache.NewNoop()
	}

	return redisCache
}

// Cleanup releases resources during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("[CONTAINER] Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close Redis: %v", err)
		} else {
			log.Println("[CONTAINER] Redis connections closed")
		}
	}
}
