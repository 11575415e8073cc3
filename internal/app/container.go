package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/database/migration"
	dbpostgres "devconnector/internal/database/postgres"
	"devconnector/internal/database/seeder"
	"devconnector/internal/domain/post"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"
	"devconnector/internal/infrastructure/cache"
	"devconnector/internal/infrastructure/github"
	"devconnector/internal/infrastructure/persistence/memory"
	"devconnector/internal/infrastructure/persistence/postgres"
	"devconnector/internal/pkg/jwt"
	ucauth "devconnector/internal/usecase/auth"
	ucgithub "devconnector/internal/usecase/github"
	ucpost "devconnector/internal/usecase/post"
	ucprofile "devconnector/internal/usecase/profile"
	"devconnector/internal/ws"
	"devconnector/migrations"
)

const localCacheCleanup = 5 * time.Minute

// Container owns the long-lived dependencies of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service

	Users    user.Repository
	Profiles profile.Repository
	Posts    post.Repository

	Auth    *ucauth.Service
	Profile *ucprofile.Service
	Post    *ucpost.Service
	GitHub  *ucgithub.Service
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}
	if cfg.App.SeedDemo {
		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
		stores := seeder.Stores{Users: c.Users, Profiles: c.Profiles, Posts: c.Posts}
		if err := r.Run(ctx, stores); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	c.Redis = cache.NewRedis(cfg.Redis, logger)
	repoCache := cache.NewTiered(cache.NewLocal(cfg.GitHub.CacheTTL, localCacheCleanup), c.Redis)

	c.Hub = ws.NewHub(logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	ghClient := github.NewClient(cfg.GitHub, cfg.App.AppName, logger)

	c.Auth = ucauth.NewService(c.Users, c.JWT)
	c.Profile = ucprofile.NewService(c.Profiles, c.Users, c.Posts)
	c.Post = ucpost.NewService(c.Posts, c.Users, ws.NewNotifier(c.Hub))
	c.GitHub = ucgithub.NewService(ghClient, repoCache, cfg.GitHub.CacheTTL, logger)

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		c.Users, c.Profiles, c.Posts = store.Users(), store.Profiles(), store.Posts()
		c.Logger.Printf("[Storage] using in-memory store")
		return nil

	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		runner := migration.Runner{FS: migrationsFS(c.Config.Database.MigrationsDir), Logger: c.Logger}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return fmt.Errorf("run migrations: %w", err)
		}

		c.DB = db
		c.Users = postgres.NewUserRepository(db)
		c.Profiles = postgres.NewProfileRepository(db)
		c.Posts = postgres.NewPostRepository(db)
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", c.Config.Database.Driver)
	}
}

// migrationsFS prefers dir when set, falling back to the embedded files.
func migrationsFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
