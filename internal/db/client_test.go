// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"testing"

	gomock "go.uber.org/mock/gomock"
)

func TestStatementRunsOnOwnTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := new(DBClient)
	mockTx := NewMockTxInterface(ctrl)
	mockTx.EXPECT().Exec(gomock.Any(), gomock.Any()).Times(1).Return(nil, nil)

	ctx := client.ContextWithTx(context.Background(), mockTx)

	if _, err := client.Statement(ctx).Delete("minutes").Where("id = ?", "x").Exec(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStatementIgnoresForeignTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	regular := new(DBClient)
	elevated := new(DBClient)

	// Exec is deliberately not expected, the foreign transaction must
	// never run the elevated client's statements.
	mockTx := NewMockTxInterface(ctrl)

	ctx := regular.ContextWithTx(context.Background(), mockTx)

	if tx := elevated.TxFromContext(ctx); tx != nil {
		t.Fatalf("expected no transaction for the elevated client, got %v", tx)
	}

	if tx := regular.TxFromContext(ctx); tx != mockTx {
		t.Fatalf("expected the owning client to see its transaction")
	}
}
