// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/minutes-service/internal/config"
	"github.com/canonical/minutes-service/internal/db"
	"github.com/canonical/minutes-service/internal/identity"
	"github.com/canonical/minutes-service/internal/kratos"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring/prometheus"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/pkg/authentication"
	"github.com/canonical/minutes-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("minutes-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	// The elevated store connects with a role that bypasses row-level
	// security. Without it the service runs read-mostly: deletions and
	// user management answer with 503.
	var elevated storage.StorageInterface
	if specs.AdminDSN != "" {
		adminConfig := dbConfig
		adminConfig.DSN = specs.AdminDSN
		adminDBClient, err := db.NewDBClient(adminConfig, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to create elevated database client: %v", err)
		}
		defer adminDBClient.Close()
		elevated = storage.NewStorage(adminDBClient, tracer, monitor, logger)
		logger.Info("Elevated store access is enabled")
	} else {
		logger.Info("Elevated store access is disabled, deletions and user management unavailable")
	}

	var kratosClient kratos.ClientInterface
	if specs.KratosAdminURL != "" {
		kratosClient = kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger)
		logger.Info("Kratos admin access is enabled")
	} else {
		kratosClient = kratos.NewNoopClient()
		logger.Info("Kratos admin access is disabled, identity management unavailable")
	}

	identityMiddleware := identity.NewMiddleware(tracer, monitor, logger)

	var authnMiddleware *authentication.Middleware
	if specs.AuthenticationEnabled {
		verifier, err := authentication.NewJWTAuthenticator(
			context.Background(),
			specs.OIDCIssuer,
			specs.JWKSURL,
			specs.AllowedSubjects,
			specs.RequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up JWT authentication: %v", err)
		}
		authnMiddleware = authentication.NewMiddleware(verifier, tracer, monitor, logger)
		logger.Info("JWT authentication is enabled")
	} else {
		logger.Info("JWT authentication is disabled, trusting proxy identity headers")
	}

	router := web.NewRouter(
		s,
		elevated,
		kratosClient,
		dbClient,
		authnMiddleware,
		identityMiddleware,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
