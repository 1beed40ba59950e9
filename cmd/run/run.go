// Package run contains the command to run the marketplace server.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/shambalink/shambalink/pkg/logger"
	"github.com/shambalink/shambalink/pkg/server"
	serverconfig "github.com/shambalink/shambalink/pkg/server/config"
	"github.com/shambalink/shambalink/pkg/server/health"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/storage/memory"
	"github.com/shambalink/shambalink/pkg/storage/postgres"
	"github.com/shambalink/shambalink/pkg/storage/sqlcommon"
	"github.com/shambalink/shambalink/pkg/storage/sqlite"
	"github.com/shambalink/shambalink/pkg/storage/storagewrappers"
	"github.com/shambalink/shambalink/pkg/telemetry"
)

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the marketplace server",
		Long:  "Run the marketplace discovery and provenance server.",
		Run:   run,
		Args:  cobra.NoArgs,
	}

	bindRunFlags(cmd)

	return cmd
}

// ReadConfig returns the server configuration based on the values provided
// in the server's 'config.yaml' file. The 'config.yaml' file is loaded from
// '/etc/shambalink', '$HOME/.shambalink', or the current working directory.
// If no configuration file is present, the default values are returned.
func ReadConfig() (*serverconfig.Config, error) {
	config := serverconfig.DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	err := viper.ReadInConfig()
	if err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to load server config: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
	}

	return config, nil
}

func run(_ *cobra.Command, _ []string) {
	config, err := ReadConfig()
	if err != nil {
		panic(err)
	}

	if err := config.Verify(); err != nil {
		panic(err)
	}

	logger := logger.MustNewLogger(config.Log.Format, config.Log.Level)
	serverCtx := &ServerContext{Logger: logger}
	if err := serverCtx.Run(context.Background(), config); err != nil {
		panic(err)
	}
}

type ServerContext struct {
	Logger logger.Logger
}

// telemetryConfig returns the function that must be called to shut down
// tracing. The context provided to this function should be error-free, or
// shut down will be incomplete.
func (s *ServerContext) telemetryConfig(config *serverconfig.Config) func() error {
	if config.Trace.Enabled {
		s.Logger.Info(fmt.Sprintf("🕵 tracing enabled: sampling ratio is %v and sending traces to '%s'", config.Trace.SampleRatio, config.Trace.OTLPEndpoint))

		tp := telemetry.MustNewTracerProvider(
			telemetry.WithOTLPEndpoint(config.Trace.OTLPEndpoint),
			telemetry.WithServiceName(config.Trace.ServiceName),
			telemetry.WithSamplingRatio(config.Trace.SampleRatio),
		)
		return func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
			defer cancel()
			return errors.Join(tp.ForceFlush(ctx), tp.Shutdown(ctx))
		}
	}
	otel.SetTracerProvider(noop.NewTracerProvider())
	return func() error {
		return nil
	}
}

func (s *ServerContext) datastoreConfig(config *serverconfig.Config) (storage.DocumentStore, error) {
	datastoreOptions := []sqlcommon.DatastoreOption{
		sqlcommon.WithLogger(s.Logger),
		sqlcommon.WithMaxOpenConns(config.Datastore.MaxOpenConns),
		sqlcommon.WithMaxIdleConns(config.Datastore.MaxIdleConns),
		sqlcommon.WithConnMaxIdleTime(config.Datastore.ConnMaxIdleTime),
		sqlcommon.WithConnMaxLifetime(config.Datastore.ConnMaxLifetime),
	}

	if config.Datastore.Metrics.Enabled {
		datastoreOptions = append(datastoreOptions, sqlcommon.WithMetrics())
	}

	dsCfg := sqlcommon.NewConfig(datastoreOptions...)

	var datastore storage.DocumentStore
	var err error
	switch config.Datastore.Engine {
	case "memory":
		datastore = memory.New()
	case "sqlite":
		datastore, err = sqlite.New(config.Datastore.URI, dsCfg)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite datastore: %w", err)
		}
	case "postgres":
		datastore, err = postgres.New(config.Datastore.URI, dsCfg)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres datastore: %w", err)
		}
	default:
		return nil, fmt.Errorf("storage engine '%s' is unsupported", config.Datastore.Engine)
	}

	s.Logger.Info(fmt.Sprintf("using '%v' storage engine", config.Datastore.Engine))

	if config.Cache.Enabled {
		datastore, err = storagewrappers.NewCachedDatastore(datastore, int64(config.Cache.Limit))
		if err != nil {
			return nil, fmt.Errorf("initialize datastore cache: %w", err)
		}
	}

	return datastore, nil
}

// Run starts the server with the given configuration and blocks until the
// process receives SIGINT or SIGTERM.
func (s *ServerContext) Run(ctx context.Context, config *serverconfig.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracerProviderCloser := s.telemetryConfig(config)

	datastore, err := s.datastoreConfig(config)
	if err != nil {
		return err
	}
	defer datastore.Close()

	// Wait for the datastore to come up before accepting traffic. A fresh
	// deployment can race its database container.
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 1 * time.Minute
	err = backoff.Retry(func() error {
		ready, err := datastore.IsReady(ctx)
		if err != nil {
			return err
		}
		if !ready {
			return errors.New("datastore is not ready")
		}
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return fmt.Errorf("datastore did not become ready: %w", err)
	}

	svc := server.New(&server.Dependencies{
		Datastore:               datastore,
		Logger:                  s.Logger,
		MaxConcurrentRangeReads: config.MaxConcurrentRangeReads,
	})

	var httpServer *http.Server
	if config.HTTP.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/", svc.Handler())
		mux.Handle("/healthz", health.NewHandler(svc))

		handler := http.Handler(mux)
		if config.RequestTimeout > 0 {
			handler = http.TimeoutHandler(handler, config.RequestTimeout, "request timed out")
		}
		if config.Trace.Enabled {
			handler = otelhttp.NewHandler(handler, "shambalink")
		}

		httpServer = &http.Server{
			Addr: config.HTTP.Addr,
			Handler: cors.New(cors.Options{
				AllowedOrigins:   config.HTTP.CORSAllowedOrigins,
				AllowCredentials: true,
				AllowedHeaders:   config.HTTP.CORSAllowedHeaders,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			}).Handler(handler),
		}

		go func() {
			s.Logger.Info(fmt.Sprintf("🚀 starting HTTP server on '%s'...", httpServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil {
				if !errors.Is(err, http.ErrServerClosed) {
					s.Logger.Fatal("HTTP server closed with unexpected error", zap.Error(err))
				}
			}
			s.Logger.Info("HTTP server shut down.")
		}()
	}

	var metricsServer *http.Server
	if config.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())

		metricsServer = &http.Server{
			Addr:    config.Metrics.Addr,
			Handler: metricsMux,
		}

		go func() {
			s.Logger.Info(fmt.Sprintf("📈 starting metrics server on '%s'...", metricsServer.Addr))
			if err := metricsServer.ListenAndServe(); err != nil {
				if !errors.Is(err, http.ErrServerClosed) {
					s.Logger.Fatal("metrics server closed with unexpected error", zap.Error(err))
				}
			}
		}()
	}

	<-ctx.Done()
	s.Logger.Info("attempting to shutdown gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.Logger.Info("failed to shutdown the http server", zap.Error(err))
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			s.Logger.Info("failed to shutdown the metrics server", zap.Error(err))
		}
	}

	if err := tracerProviderCloser(); err != nil {
		s.Logger.Error("failed to shutdown tracing", zap.Error(err))
	}

	s.Logger.Info("server exited. goodbye 👋")

	return nil
}
