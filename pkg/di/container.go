package di

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-dbentity/cache"
	"github.com/goliatone/go-dbentity/database"
	"github.com/goliatone/go-dbentity/entity"
)

// Container provides dependency injection for entity related components.
// It manages singleton instances of the database pool, executor, cache service and
// key serializer, and provides factory methods for creating entities.
type Container struct {
	pool          *database.Pool
	executor      database.Executor
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	logger        *slog.Logger
	config        cache.Config
}

// ContainerOption customizes a Container.
type ContainerOption func(*Container)

// WithLogger sets the logger handed to every entity built by the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExecutor replaces the bun executor, e.g. with a test double.
func WithExecutor(executor database.Executor) ContainerOption {
	return func(c *Container) {
		if executor != nil {
			c.executor = executor
		}
	}
}

// NewContainer creates a new DI container over pool using the provided cache configuration.
func NewContainer(pool *database.Pool, config cache.Config, opts ...ContainerOption) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	c := &Container{
		pool:          pool,
		executor:      database.NewBunExecutor(pool),
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		config:        config,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewContainerWithDefaults creates a new DI container using the default cache configuration.
func NewContainerWithDefaults(pool *database.Pool, opts ...ContainerOption) (*Container, error) {
	return NewContainer(pool, cache.DefaultConfig(), opts...)
}

// Pool returns the database pool.
func (c *Container) Pool() *database.Pool {
	return c.pool
}

// Executor returns the database executor shared by all entities.
func (c *Container) Executor() database.Executor {
	return c.executor
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewEntity builds an entity for cfg wired to the container's executor, cache and logger.
// Extra options are applied after the container's own.
func (c *Container) NewEntity(cfg entity.Config, opts ...entity.Option) (*entity.Entity, error) {
	return entity.New(cfg, c.executor, c.entityOptions(opts)...)
}

// EntityFor builds the entity that manages m, with m bound to it.
func (c *Container) EntityFor(m entity.Model, opts ...entity.Option) (*entity.Entity, error) {
	return entity.FromModel(m, c.executor, c.entityOptions(opts)...)
}

// Close closes every database in the pool.
func (c *Container) Close() error {
	return c.pool.Close()
}

func (c *Container) entityOptions(extra []entity.Option) []entity.Option {
	opts := []entity.Option{
		entity.WithCache(c.cacheService),
		entity.WithKeySerializer(c.keySerializer),
		entity.WithLogger(c.logger),
	}
	return append(opts, extra...)
}
