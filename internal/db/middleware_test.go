// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gomock "go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package db -destination ./mock_db.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package db -destination ./mock_logger.go -source=../logging/interfaces.go

func TestTransactionMiddlewareSkipsReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := NewMockDBClientInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	// WithTx is deliberately not expected for GET requests.

	handler := TransactionMiddleware(mockDB, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestTransactionMiddlewareCommitsOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := NewMockDBClientInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)

	handler := TransactionMiddleware(mockDB, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v0/minutes", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, rec.Code)
	}
}

func TestTransactionMiddlewareRollsBackOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := NewMockDBClientInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	var txErr error
	mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			txErr = fn(ctx)
			if txErr != nil {
				return fmt.Errorf("rolled back: %w", txErr)
			}
			return nil
		},
	)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(1)

	handler := TransactionMiddleware(mockDB, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v0/minutes/m1", nil))

	if txErr == nil {
		t.Fatal("expected the transaction callback to report the failed request")
	}
}
