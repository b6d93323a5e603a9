package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartOrphanedShareSweeper periodically deletes share records whose
// document has been deleted. No operation removes a share explicitly, so
// orphaned rows would otherwise accumulate forever.
func StartOrphanedShareSweeper(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM shares s
                     WHERE NOT EXISTS (
                           SELECT 1 FROM documents d
                            WHERE d.owner = s.owner AND d.name = s.name
                     )
                `)
				if err != nil {
					log.Error("failed to sweep orphaned shares", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("swept orphaned shares", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
