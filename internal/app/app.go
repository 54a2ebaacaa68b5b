package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/tournament-registry/internal/config"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
	"github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-registry/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/tournament-registry/internal/platform/cache"
	idgen "github.com/riskibarqy/tournament-registry/internal/platform/id"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
	"github.com/riskibarqy/tournament-registry/internal/platform/metrics"
	"github.com/riskibarqy/tournament-registry/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the database handle and must be called after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	seedTeams, err := loadSeedTeams(cfg)
	if err != nil {
		return nil, nil, err
	}

	teamRepo, cleanup, err := newTeamRepository(ctx, cfg, seedTeams, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		teamRepo = cache.NewTeamRepository(teamRepo, basecache.NewStore(cfg.CacheTTL))
		logger.Info("team cache enabled", "ttl", cfg.CacheTTL.String())
	}

	registry := metrics.NewRegistry()
	teamSvc := usecase.NewTeamService(teamRepo, metrics.NewTeamMetrics(registry), logger)
	rosterSvc := usecase.NewRosterImportService(teamSvc, cfg.RosterImportWorkers)

	handler := httpapi.NewHandler(teamSvc, rosterSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		IDGenerator:        idgen.NewUUIDGenerator(),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func loadSeedTeams(cfg config.Config) ([]*team.Team, error) {
	if cfg.SeedFile == "" {
		return memory.SeedTeams(), nil
	}

	teams, err := memory.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed file: %w", err)
	}
	return teams, nil
}

func newTeamRepository(ctx context.Context, cfg config.Config, seedTeams []*team.Team, logger *logging.Logger) (team.Repository, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db, seedTeams); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))
		return postgres.NewTeamRepository(db), db.Close, nil
	default:
		logger.Info("storage ready", "driver", config.StorageMemory, "seed_teams", len(seedTeams))
		return memory.NewTeamRepository(seedTeams), func() error { return nil }, nil
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
