package itf

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/constants"
)

// TestContext is a fluent builder for service-level test contexts. It plants
// a no-op transaction so composables.InTenantTx runs the body directly,
// letting tests exercise services against in-memory repositories without a
// database.
type TestContext struct {
	ctx context.Context
}

func NewTestContext() *TestContext {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	ctx := context.WithValue(context.Background(), constants.TxKey, pgx.Tx(noopTx{}))
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger))
	return &TestContext{ctx: ctx}
}

func (tc *TestContext) WithTenant(id uuid.UUID) *TestContext {
	tc.ctx = composables.WithTenantID(tc.ctx, id)
	return tc
}

func (tc *TestContext) WithUser(u user.User) *TestContext {
	tc.ctx = composables.WithUser(tc.ctx, u)
	return tc
}

func (tc *TestContext) Build() context.Context {
	return tc.ctx
}
