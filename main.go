package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/trongtricoder/Footy-Feud/internal/auth"
	"github.com/trongtricoder/Footy-Feud/internal/config"
	"github.com/trongtricoder/Footy-Feud/internal/daily"
	"github.com/trongtricoder/Footy-Feud/internal/database"
	"github.com/trongtricoder/Footy-Feud/internal/httpserver"
	"github.com/trongtricoder/Footy-Feud/internal/logger"
	"github.com/trongtricoder/Footy-Feud/internal/play"
	"github.com/trongtricoder/Footy-Feud/internal/players"
	"github.com/trongtricoder/Footy-Feud/internal/stats"
	"github.com/trongtricoder/Footy-Feud/internal/store"
)

const (
	sessionTTL   = 48 * time.Hour
	pruneEvery   = time.Hour
	memoryDBType = "memory"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("footyfeud exited")
	}
	log.Info().Msg("bye")
}

// run wires the server and blocks until it stops. Deferred cleanup runs
// before main decides the exit status.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	lg, err := logger.Install(cfg.Logger())
	if err != nil {
		return fmt.Errorf("logger setup: %w", err)
	}

	roster, err := players.Open(cfg.PlayersFile)
	if err != nil {
		return fmt.Errorf("load players %q: %w", cfg.PlayersFile, err)
	}
	resolution, err := players.ParseResolution(cfg.Resolution)
	if err != nil {
		return fmt.Errorf("GUESS_RESOLUTION: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := play.Options{
		Salt:     cfg.DailySalt,
		Location: cfg.Location,
		Resolver: roster.Resolver(resolution),
	}
	var (
		statStore stats.Store
		users     auth.Users
	)
	if cfg.DatabaseType == memoryDBType {
		statStore = stats.NewMemoryStore()
		users = auth.NewMemoryUsers()
		lg.Warn().Msg("DATABASE_TYPE=memory: stats and accounts are lost on restart")
	} else {
		db, err := database.Open(ctx, cfg.Database())
		if err != nil {
			return fmt.Errorf("open %s database: %w", cfg.DatabaseType, err)
		}
		defer db.Close()
		statStore = stats.NewSQLStore(db)
		users = auth.NewSQLUsers(db)
		opts.Results = daily.NewStore(db)
	}

	sessions := store.NewMemoryStore()
	tracker := stats.NewTracker(statStore, lg)
	svc := play.New(roster, sessions, tracker, opts, lg)
	authSvc := auth.NewService(users, auth.Options{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL()}, lg)
	srv := httpserver.New(svc, authSvc, httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		CookieName:   cfg.CookieName,
		Secure:       cfg.Production,
	}, lg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info().
			Str("port", cfg.Port).
			Int("players", roster.Len()).
			Str("db", cfg.DatabaseType).
			Str("resolution", string(resolution)).
			Msg("starting footyfeud")
		return srv.Start(ctx, ":"+cfg.Port)
	})
	g.Go(func() error {
		pruneSessions(ctx, sessions, lg)
		return nil
	})
	return g.Wait()
}

// pruneSessions drops in-memory sessions older than sessionTTL until ctx ends.
func pruneSessions(ctx context.Context, sessions *store.Memory, lg zerolog.Logger) {
	t := time.NewTicker(pruneEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := sessions.Prune(now.Add(-sessionTTL)); n > 0 {
				lg.Debug().Int("sessions", n).Msg("pruned")
			}
		}
	}
}
