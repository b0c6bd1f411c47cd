// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package minutes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/minutes-service/internal/authorization"
	httptypes "github.com/canonical/minutes-service/internal/http/types"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/internal/types"
	"github.com/canonical/minutes-service/pkg/authentication"
)

type CreateMinuteRequest struct {
	Title       string `json:"title" validate:"required"`
	MeetingDate string `json:"meeting_date" validate:"required,datetime=2006-01-02"`
	MeetingTime string `json:"meeting_time" validate:"required"`
	Attendees   string `json:"attendees"`
	Agenda      string `json:"agenda"`
	Discussion  string `json:"discussion"`
	Decisions   string `json:"decisions"`
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
	mux.Get("/api/v0/minutes", a.handleList)
	mux.Post("/api/v0/minutes", a.handleCreate)
	mux.Get("/api/v0/minutes/stats", a.handleStats)
	mux.Get("/api/v0/minutes/{id}", a.handleDetail)
	mux.Delete("/api/v0/minutes/{id}", a.handleDelete)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "minutes.API.handleList")
	defer span.End()

	if _, ok := authentication.GetUserID(ctx); !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	q := r.URL.Query()
	filter := types.MinuteFilter{
		Query:    q.Get("q"),
		Date:     q.Get("date"),
		Attendee: q.Get("attendee"),
		AuthorID: q.Get("author"),
	}

	minutes, err := a.service.ListMinutes(ctx, filter)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if minutes == nil {
		minutes = []*types.Minute{}
	}

	a.writeResponse(w, http.StatusOK, "", minutes)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "minutes.API.handleCreate")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	var req CreateMinuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := a.validate.Struct(req); err != nil {
		a.writeResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	minute, err := a.service.CreateMinute(ctx, userID, &CreateMinuteData{
		Title:       req.Title,
		MeetingDate: req.MeetingDate,
		MeetingTime: req.MeetingTime,
		Attendees:   req.Attendees,
		Agenda:      req.Agenda,
		Discussion:  req.Discussion,
		Decisions:   req.Decisions,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v0/minutes/%s", minute.ID))
	a.writeResponse(w, http.StatusCreated, "", minute)
}

func (a *API) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "minutes.API.handleDetail")
	defer span.End()

	if _, ok := authentication.GetUserID(ctx); !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	minute, err := a.service.GetMinute(ctx, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeResponse(w, http.StatusOK, "", minute)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "minutes.API.handleDelete")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	if err := a.service.DeleteMinute(ctx, userID, chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "minutes.API.handleStats")
	defer span.End()

	if _, ok := authentication.GetUserID(ctx); !ok {
		a.writeResponse(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	stats, err := a.service.Stats(ctx)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeResponse(w, http.StatusOK, "", stats)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authorization.ErrPermissionDenied):
		a.writeResponse(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, storage.ErrNotFound):
		a.writeResponse(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, storage.ErrElevatedAccessUnavailable):
		a.writeResponse(w, http.StatusServiceUnavailable, "elevated store access is not configured", nil)
	case errors.Is(err, ErrInvalidMinute):
		a.writeResponse(w, http.StatusBadRequest, err.Error(), nil)
	default:
		a.logger.Errorf("minutes request failed: %v", err)
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
