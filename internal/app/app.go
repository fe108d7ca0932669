package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"yatube/config"
	"yatube/internal/adapter/in/web"
	"yatube/internal/adapter/out/media/localfs"
	mempage "yatube/internal/adapter/out/pagecache/inmemory"
	redispage "yatube/internal/adapter/out/pagecache/redis"
	memstore "yatube/internal/adapter/out/storage/inmemory"
	pgstore "yatube/internal/adapter/out/storage/postgres"
	"yatube/internal/service"
	"yatube/pkg/logger"
)

// Storages is the set of adapters behind the service layer.
type Storages struct {
	Posts    service.PostStorage
	Comments service.CommentStorage
	Groups   service.GroupStorage
	Users    service.UserStorage
	Follows  service.FollowStorage
	Tx       service.TxManager

	pool *pgxpool.Pool
}

func (s Storages) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// NewStorages opens the backend picked by STORAGE_TYPE.
func NewStorages(ctx context.Context, cfg config.Config) (Storages, error) {
	switch cfg.StorageType {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return Storages{}, fmt.Errorf("pgxpool: %w", err)
		}
		getter := trmpgx.DefaultCtxGetter
		return Storages{
			Posts:    pgstore.NewPostStorage(pool, getter),
			Comments: pgstore.NewCommentStorage(pool, getter),
			Groups:   pgstore.NewGroupStorage(pool, getter),
			Users:    pgstore.NewUserStorage(pool, getter),
			Follows:  pgstore.NewFollowStorage(pool, getter),
			Tx:       manager.Must(trmpgx.NewDefaultFactory(pool)),
			pool:     pool,
		}, nil

	case config.StorageMemory:
		users := memstore.NewUserStorage()
		follows := memstore.NewFollowStorage()
		posts := memstore.NewPostStorage(users, follows)
		return Storages{
			Posts:    posts,
			Comments: memstore.NewCommentStorage(users, posts),
			Groups:   memstore.NewGroupStorage(),
			Users:    users,
			Follows:  follows,
			Tx:       memstore.TxManager{},
		}, nil

	default:
		return Storages{}, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}

// PageCache is what the server reads through and the CLI flushes.
type PageCache interface {
	web.PageCache
	Flush(ctx context.Context) error
}

func NewPageCache(cfg config.Config) (PageCache, func(), error) {
	switch cfg.PageCache.Backend {
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redispage.NewPageCache(client, redispage.DefaultPrefix, cfg.PageCache.TTL), func() { _ = client.Close() }, nil

	case config.CacheMemory:
		return mempage.NewPageCache(cfg.PageCache.Size, cfg.PageCache.TTL), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown page cache backend %q", cfg.PageCache.Backend)
	}
}

type App struct {
	cfg        config.Config
	srv        *http.Server
	storages   Storages
	cache      PageCache
	closeCache func()
	groups     *service.GroupService

	// hup receives SIGHUP while Run is serving; each one flushes the page cache.
	hup chan os.Signal
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	st, err := NewStorages(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cache, closeCache, err := NewPageCache(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	media := localfs.NewMediaStorage(cfg.Media.Root)

	var limiter *web.ClientLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = web.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	h := web.NewHandler(web.Deps{
		Feeds:      service.NewFeedService(st.Posts, st.Groups, st.Users, st.Follows, cfg.PerPage),
		Posts:      service.NewPostService(st.Posts, st.Comments, st.Groups, st.Users, media, st.Tx),
		Comments:   service.NewCommentService(st.Comments, st.Posts),
		Follows:    service.NewFollowService(st.Follows, st.Users, st.Tx),
		Auth:       service.NewAuthService(st.Users, cfg.Auth.Secret, cfg.Auth.SessionTTL),
		Cache:      cache,
		MediaRoot:  cfg.Media.Root,
		SessionTTL: int(cfg.Auth.SessionTTL.Seconds()),
		Limiter:    limiter,
	})

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized",
		"addr", addr,
		"storage", cfg.StorageType,
		"page_cache", cfg.PageCache.Backend,
		"per_page", cfg.PerPage,
	)
	return &App{
		cfg:        cfg,
		srv:        srv,
		storages:   st,
		cache:      cache,
		closeCache: closeCache,
		groups:     service.NewGroupService(st.Groups),
		hup:        make(chan os.Signal, 1),
	}, nil
}

// SeedGroups creates the groups that do not exist yet. With memory storage
// this is the only way a server gets groups.
func (a *App) SeedGroups(ctx context.Context, forms []service.GroupForm) error {
	log := logger.FromContext(ctx)

	for _, form := range forms {
		_, err := a.groups.GetGroupBySlug(ctx, form.Slug)
		if err == nil {
			log.Debug("group exists", "slug", form.Slug)
			continue
		}
		if !errors.Is(err, service.ErrNotFound) {
			return fmt.Errorf("seed group %q: %w", form.Slug, err)
		}

		if _, err := a.groups.CreateGroup(ctx, form); err != nil {
			return fmt.Errorf("seed group %q: %w", form.Slug, err)
		}
	}
	return nil
}

// FlushCache drops every page cached by this server.
func (a *App) FlushCache(ctx context.Context) error {
	if err := a.cache.Flush(ctx); err != nil {
		return fmt.Errorf("flush page cache: %w", err)
	}
	logger.FromContext(ctx).Info("page cache flushed", "backend", a.cfg.PageCache.Backend)
	return nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	defer a.closeCache()
	defer a.storages.Close()

	signal.Notify(a.hup, syscall.SIGHUP)
	defer signal.Stop(a.hup)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	for {
		select {
		case <-a.hup:
			if err := a.FlushCache(ctx); err != nil {
				log.Error("sighup", "error", err)
			}

		case <-ctx.Done():
			log.Info("shutdown requested")
			shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return a.srv.Shutdown(shCtx)

		case err := <-errCh:
			return err
		}
	}
}
