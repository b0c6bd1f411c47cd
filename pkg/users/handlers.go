// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/minutes-service/internal/authorization"
	httptypes "github.com/canonical/minutes-service/internal/http/types"
	"github.com/canonical/minutes-service/internal/kratos"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/internal/types"
	"github.com/canonical/minutes-service/pkg/authentication"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=member minute_editor minute_keeper super_admin"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/users", a.handleList)
	mux.Post("/api/v0/users", a.handleCreate)
	mux.Delete("/api/v0/users/{id}", a.handleDelete)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "users.API.handleList")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	profiles, err := a.service.ListUsers(ctx, userID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if profiles == nil {
		profiles = []*types.Profile{}
	}

	a.writeResponse(w, http.StatusOK, "", profiles)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "users.API.handleCreate")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := a.validate.Struct(req); err != nil {
		a.writeResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	profile, err := a.service.CreateUser(ctx, userID, &CreateUserData{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v0/users/%s", profile.ID))
	a.writeResponse(w, http.StatusCreated, "", profile)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "users.API.handleDelete")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	if err := a.service.DeleteUser(ctx, userID, chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	var roleNotSet *RoleNotSetError

	switch {
	case errors.Is(err, authorization.ErrPermissionDenied):
		a.writeResponse(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, ErrSelfDeletion):
		a.writeResponse(w, http.StatusBadRequest, ErrSelfDeletion.Error(), nil)
	case errors.Is(err, ErrInvalidUser):
		a.writeResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, storage.ErrNotFound):
		a.writeResponse(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, storage.ErrElevatedAccessUnavailable):
		a.writeResponse(w, http.StatusServiceUnavailable, "elevated store access is not configured", nil)
	case errors.Is(err, kratos.ErrNotConfigured):
		a.writeResponse(w, http.StatusServiceUnavailable, kratos.ErrNotConfigured.Error(), nil)
	case errors.Is(err, storage.ErrDuplicateKey):
		a.writeResponse(w, http.StatusConflict, "a user with this email already exists", nil)
	case errors.As(err, &roleNotSet):
		a.logger.Errorf("user creation partially failed: %v", err)
		a.writeResponse(w, http.StatusInternalServerError,
			fmt.Sprintf("user %s created but role not set", roleNotSet.IdentityID), nil)
	default:
		a.logger.Errorf("users request failed: %v", err)
		a.writeResponse(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (a *API) writeResponse(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(httptypes.Response{Status: status, Message: message, Data: data}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
