// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/db"
	"github.com/canonical/minutes-service/internal/identity"
	"github.com/canonical/minutes-service/internal/kratos"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/pkg/authentication"
	"github.com/canonical/minutes-service/pkg/metrics"
	"github.com/canonical/minutes-service/pkg/minutes"
	"github.com/canonical/minutes-service/pkg/status"
	"github.com/canonical/minutes-service/pkg/users"
	"github.com/canonical/minutes-service/pkg/webhooks"
)

// publicPrefixes are reachable without an authenticated user: operational
// endpoints and the registration hook the identity provider calls before
// the user exists.
var publicPrefixes = []string{
	"/api/v0/status",
	"/api/v0/version",
	"/api/v0/metrics",
	"/api/v0/webhooks/",
}

func NewRouter(
	s storage.StorageInterface,
	elevated storage.StorageInterface,
	kratosClient kratos.ClientInterface,
	dbClient db.DBClientInterface,
	authnMiddleware *authentication.Middleware,
	identityMiddleware *identity.Middleware,
	corsAllowedOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(corsAllowedOrigins),
	)

	if authnMiddleware != nil {
		middlewares = append(middlewares, skipPublicRoutes(authnMiddleware.Authenticate()))
	} else {
		middlewares = append(middlewares, identityMiddleware.HTTPMiddleware)
	}

	middlewares = append(middlewares, db.TransactionMiddleware(dbClient, logger))

	router.Use(middlewares...)

	authorizer := authorization.NewAuthorizer(tracer, monitor, logger)

	minutesService := minutes.NewService(s, elevated, authorizer, tracer, monitor, logger)
	usersService := users.NewService(s, elevated, kratosClient, authorizer, tracer, monitor, logger)
	webhooksService := webhooks.NewService(s, tracer, monitor, logger)

	metrics.NewAPI(tracer, logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	minutes.NewAPI(minutesService, tracer, monitor, logger).RegisterEndpoints(router)
	users.NewAPI(usersService, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(webhooksService, tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func skipPublicRoutes(authenticate func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authenticated := authenticate(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			authenticated.ServeHTTP(w, r)
		})
	}
}
