// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package metrics

import (
	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/tracing"
)

type API struct {
	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewAPI(tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		tracer: tracer,
		logger: logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/metrics", promhttp.Handler().ServeHTTP)
}
