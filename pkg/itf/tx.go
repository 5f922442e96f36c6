package itf

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errNoDatabase = errors.New("itf: no database behind test transaction")

// noopTx satisfies pgx.Tx for tests that never reach the database. Every
// query method fails loudly so a test hitting SQL by accident is caught.
type noopTx struct{}

func (noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return noopTx{}, nil }
func (noopTx) Commit(ctx context.Context) error          { return nil }
func (noopTx) Rollback(ctx context.Context) error        { return nil }

func (noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errNoDatabase
}

func (noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic(errNoDatabase)
}

func (noopTx) LargeObjects() pgx.LargeObjects {
	panic(errNoDatabase)
}

func (noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errNoDatabase
}

func (noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoDatabase
}

func (noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errNoDatabase
}

func (noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic(errNoDatabase)
}

func (noopTx) Conn() *pgx.Conn { return nil }
