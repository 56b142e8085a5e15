package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/torneohub/torneo-api/internal/api"
	"github.com/torneohub/torneo-api/internal/cache"
	"github.com/torneohub/torneo-api/internal/config"
	"github.com/torneohub/torneo-api/internal/db"
	"github.com/torneohub/torneo-api/internal/identity"
	"github.com/torneohub/torneo-api/internal/logger"
	"github.com/torneohub/torneo-api/internal/pkg/filestore"
	"github.com/torneohub/torneo-api/internal/repository"
	"github.com/torneohub/torneo-api/internal/repository/dao"
	"github.com/torneohub/torneo-api/internal/worker"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	listCache, err := cache.New(conf.Redis.Addr)
	if err != nil {
		return fmt.Errorf("failed to initialize cache -> %w", err)
	}
	defer listCache.Close()

	files, err := filestore.New(conf.API.UploadsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize file store -> %w", err)
	}

	identityClient := identity.NewClient(conf.Identity.BaseURL, conf.Identity.ServiceKey)

	outboxRepo := repository.NewOutboxRepository(dao.NewOutboxDAO(postgresDB))
	worker.NewOutboxWorker(outboxRepo, identityClient).Start(context.Background())

	s := api.NewServer(conf, postgresDB, listCache, identityClient, files)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
