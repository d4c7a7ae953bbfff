package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/omarwf/fantasy-rounds/internal/config"
	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/domain/user"
	cacherepo "github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/cache"
	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/memory"
	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/postgres"
	"github.com/omarwf/fantasy-rounds/internal/interfaces/httpapi"
	basecache "github.com/omarwf/fantasy-rounds/internal/platform/cache"
	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

// Application bundles the HTTP server with the background round processor
// and the resources both share.
type Application struct {
	Server    *http.Server
	Processor *usecase.RoundProcessorService

	db *sqlx.DB
}

func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	authSvc := usecase.NewAuthService(repos.users, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.rosters, logger)
	scoringSvc := usecase.NewScoringService(repos.scoring, repos.rosters, repos.rounds, repos.players, repos.users, logger)
	roundSvc := usecase.NewRoundService(repos.rounds, repos.rosters, repos.matches, repos.scoring, scoringSvc, logger)
	rosterSvc := usecase.NewRosterService(repos.rosters, repos.rounds, repos.players, repos.matches, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.rounds, repos.players, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.users, repos.rosters, repos.rounds, repos.players, repos.scoring, logger)

	handler := httpapi.NewHandler(authSvc, playerSvc, roundSvc, rosterSvc, matchSvc, scoringSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	processor := usecase.NewRoundProcessorService(repos.rounds, scoringSvc, cfg.RoundSweepInterval, logger)

	return &Application{
		Server:    server,
		Processor: processor,
		db:        db,
	}, nil
}

// Close releases resources not owned by the HTTP server.
func (a *Application) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

type repositories struct {
	users   user.Repository
	players player.Repository
	rounds  round.Repository
	rosters roster.Repository
	matches match.Repository
	scoring scoring.Repository
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, *sqlx.DB, error) {
	if cfg.InMemory() {
		logger.Info("using in-memory repositories", "seed_demo_data", cfg.SeedDemoData)
		return memoryRepositories(cfg), nil, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	repos := repositories{
		users:   postgres.NewUserRepository(db),
		players: postgres.NewPlayerRepository(db),
		rounds:  postgres.NewRoundRepository(db),
		rosters: postgres.NewRosterRepository(db),
		matches: postgres.NewMatchRepository(db),
		scoring: postgres.NewScoringRepository(db),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.rounds = cacherepo.NewRoundRepository(repos.rounds, store)
	}

	logger.Info("using postgres repositories",
		"db_name", dbNameFromURL(cfg.DBURL),
		"cache_enabled", cfg.CacheEnabled,
	)

	return repos, db, nil
}

func memoryRepositories(cfg config.Config) repositories {
	var (
		players []player.Player
		rounds  []round.Round
		matches []match.Match
	)
	if cfg.SeedDemoData {
		now := time.Now().UTC()
		players = memory.SeedPlayers()
		rounds = memory.SeedRounds(now)
		matches = memory.SeedMatches(now)
	}

	return repositories{
		users:   memory.NewUserRepository(nil),
		players: memory.NewPlayerRepository(players),
		rounds:  memory.NewRoundRepository(rounds),
		rosters: memory.NewRosterRepository(nil),
		matches: memory.NewMatchRepository(matches),
		scoring: memory.NewScoringRepository(),
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
