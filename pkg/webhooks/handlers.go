// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/minutes-service/internal/http/types"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/tracing"
)

// RegistrationRequest mirrors the body the identity provider's
// after-registration hook posts.
type RegistrationRequest struct {
	Identity struct {
		ID     string `json:"id"`
		Traits struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"traits"`
	} `json:"identity"`
}

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/webhooks/registration", a.handleRegistration)
}

func (a *API) handleRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "webhooks.API.handleRegistration")
	defer span.End()

	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	profile, err := a.service.HandleRegistration(ctx, req.Identity.ID, req.Identity.Traits.Email, req.Identity.Traits.Name)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			a.writeResponse(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		a.logger.Errorf("registration hook failed: %v", err)
		a.writeResponse(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	a.writeResponse(w, http.StatusOK, "", profile)
}

func (a *API) writeResponse(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(httptypes.Response{Status: status, Message: message, Data: data}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
