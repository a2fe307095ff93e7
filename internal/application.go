package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacecowboywalk/tictactoe/internal/config"
	"github.com/spacecowboywalk/tictactoe/internal/observability"
	"github.com/spacecowboywalk/tictactoe/internal/repository"
	"github.com/spacecowboywalk/tictactoe/internal/repository/storage"
	"github.com/spacecowboywalk/tictactoe/internal/usecase"
	"github.com/spacecowboywalk/tictactoe/transport/rest"
	"github.com/spacecowboywalk/tictactoe/transport/websocket"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	broadcaster := websocket.NewBroadcaster(logger)
	observer := observability.NewMultiObserver(
		observability.NewSlogObserver(logger),
		broadcaster,
	)

	gameManager := usecase.NewGameManager(logger, sessionRepo, observer)
	live := websocket.New(logger, gameManager, broadcaster)
	router := rest.NewRouter(logger, gameManager, live)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)

	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newSessionRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRedisSessionRepository(redisStorage.Connection, conf.SessionTTL), closeFn, nil
}
