package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/duis-detector/config"
	"github.com/GoSim-25-26J-441/duis-detector/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/repository"
)

// OpenDB connects to PostgreSQL and makes sure the run table exists. It
// returns nil when the database is disabled.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if !cfg.Enabled {
		logrus.Info("database disabled, analysis runs will not be recorded")
		return nil, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := postgres.NewConnection(cctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := repository.NewRunRepository(db).EnsureSchema(cctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db schema: %w", err)
	}

	logrus.WithFields(logrus.Fields{"host": cfg.Host, "db": cfg.Name}).Info("connected to database")
	return db, nil
}
