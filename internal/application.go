package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/connectfour/internal/config"
	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/rocketscienceinc/connectfour/internal/repository"
	"github.com/rocketscienceinc/connectfour/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour/internal/service"
	"github.com/rocketscienceinc/connectfour/internal/usecase"
	"github.com/rocketscienceinc/connectfour/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the game service until SIGINT/SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Game.TTL)
	gameManager := usecase.NewGameManager(logger, gameRepo, newBot, conf.Game.BotDelay)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err = rest.New(logger, gameManager, conf.Game.TTL).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newBot gives every bot its own source, since *rand.Rand is not safe for concurrent use.
func newBot(difficulty entity.Difficulty) service.Bot {
	return service.NewBot(difficulty, rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint: gosec // game moves
}
