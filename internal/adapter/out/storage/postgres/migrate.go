package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"

	"yatube/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every script under migrations/ in name order. Scripts are
// idempotent, so running it against an initialized database is a no-op.
func Migrate(ctx context.Context, db trmpgx.Tr) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		logger.FromContext(ctx).Info("migration applied", "name", name)
	}
	return nil
}
