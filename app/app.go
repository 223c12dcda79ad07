// Package app wires configuration, storage, the API client and the session
// manager into one explicitly constructed object graph.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/octabyte/becas-client/api"
	"github.com/octabyte/becas-client/config"
	"github.com/octabyte/becas-client/enums"
	"github.com/octabyte/becas-client/models"
	"github.com/octabyte/becas-client/otel"
	"github.com/octabyte/becas-client/otel/metrics"
	"github.com/octabyte/becas-client/session"
	"github.com/octabyte/becas-client/storage"
	"github.com/octabyte/becas-client/utils/logger"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	API     *api.Client
	Session *session.Manager

	closers []func(context.Context) error
}

type options struct {
	navigator  session.Navigator
	httpClient *http.Client
	storage    storage.Storage
}

type Option func(*options)

// WithNavigator sets where LogoutAndNavigateHome sends the user.
func WithNavigator(nav session.Navigator) Option {
	return func(o *options) { o.navigator = nav }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithStorage overrides the backend selected by cfg.Storage.Driver.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage = s }
}

// New builds the application. The session manager restores any persisted
// session before New returns.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		Env:         cfg.Log.Env,
		ServiceName: cfg.Log.ServiceName,
	}); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}

	shutdown, err := otel.Init(ctx, otel.Config{
		Enabled:     cfg.Otel.Enabled,
		Endpoint:    cfg.Otel.Endpoint,
		ServiceName: cfg.Log.ServiceName,
		Headers:     cfg.Otel.Headers,
		Environment: cfg.Log.Env,
		SampleRate:  cfg.Otel.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	if err := metrics.Init(cfg.Log.ServiceName); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	backend := o.storage
	if backend == nil {
		backend, err = a.openStorage(ctx, cfg)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}

	clientOpts := []api.Option{api.WithTimeout(cfg.APITimeout)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(o.httpClient))
	}
	a.API = api.New(cfg.APIURL(), clientOpts...)

	sessionOpts := []session.Option{
		session.WithInvalidator(a.API),
		session.WithInvalidateTimeout(cfg.APITimeout),
	}
	if o.navigator != nil {
		sessionOpts = append(sessionOpts, session.WithNavigator(o.navigator))
	}
	a.Session = session.NewManager(ctx, session.NewStore(backend, cfg.Storage.Prefix), sessionOpts...)

	logger.LogInfo("becas client ready",
		zap.String("api_url", cfg.APIURL()),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("session_active", a.Session.IsActive()),
	)
	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case enums.StorageDriverMemory:
		return storage.NewMemory(), nil
	case enums.StorageDriverFile:
		return storage.NewFile(cfg.Storage.Dir)
	case enums.StorageDriverRedis:
		client, err := storage.NewRedisClient(ctx, storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		backend := storage.NewRedis(client, 0)
		a.closers = append(a.closers, func(context.Context) error { return backend.Close() })
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Login authenticates and, on success, starts the session.
func (a *App) Login(ctx context.Context, req api.LoginRequest) (*models.User, error) {
	resp, err := a.API.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	a.Session.LoginSuccess(ctx, *resp.Data.User, *resp.Data.Tokens)
	return a.Session.User(), nil
}

// Close releases storage connections and flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	logger.Sync()
	return errors.Join(errs...)
}
