package db

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

// Loader appends a normalized dataset to a pre-existing destination table.
// A pure append: no upsert, no deduplication, no DDL. The connection is
// opened, used for one bulk insert and released on every exit path.
type Loader struct {
	connectorFactory func(*pdf2db.ConnectionConfig) (Connector, error)
	logger           pdf2db.Logger
}

// NewLoader creates a Loader using the standard connector factory.
func NewLoader(logger pdf2db.Logger) *Loader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{connectorFactory: NewConnector, logger: logger}
}

// Load appends all dataset rows to table, preserving dataset order as
// insertion order, and returns the number of rows written. The table must
// already exist with a compatible schema; a missing table or a type
// mismatch surfaces as ErrLoadFailed from the insert attempt.
func (l *Loader) Load(ctx context.Context, dataset *pdf2db.Dataset, config *pdf2db.ConnectionConfig, table string) (int64, error) {
	if table == "" {
		return 0, fmt.Errorf("target table name is empty: %w", pdf2db.ErrInvalidConfig)
	}
	if dataset.Empty() {
		l.logger.Info("Dataset is empty, nothing to load")
		return 0, nil
	}

	connector, err := l.connectorFactory(config)
	if err != nil {
		return 0, err
	}
	if closer, ok := connector.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	l.logger.Verbose("Appending %d row(s) into %q on %s:%d/%s",
		len(dataset.Rows), table, config.Host, config.Port, config.Database)

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{table},
		dataset.Columns,
		pgx.CopyFromRows(dataset.Rows),
	)
	if err != nil {
		return 0, fmt.Errorf("append %d row(s) to table %q: %v: %w",
			len(dataset.Rows), table, err, pdf2db.ErrLoadFailed)
	}

	l.logger.Info("Loaded %d row(s) into %q", copied, table)
	return copied, nil
}
