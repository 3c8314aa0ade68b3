package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	Reset(ctx context.Context, sessionID string, difficulty entity.Difficulty) (*entity.Game, error)
	State(ctx context.Context, sessionID string) (*entity.Game, error)
	Move(ctx context.Context, sessionID string, col int) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
	game   gameUseCase

	sessionLifetime time.Duration
}

// New - sessionTTL should match the game TTL; zero falls back to a day.
func New(logger *slog.Logger, game gameUseCase, sessionTTL time.Duration) *Server {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionLifetime
	}

	server := &Server{
		logger:          logger.With("component", "rest"),
		echo:            echo.New(),
		game:            game,
		sessionLifetime: sessionTTL,
	}

	server.echo.HideBanner = true
	server.echo.HidePort = true
	server.echo.Server.ReadTimeout = 10 * time.Second
	server.echo.Server.WriteTimeout = 10 * time.Second
	server.echo.Server.IdleTimeout = 30 * time.Second

	server.echo.Use(middleware.Recover())
	server.echo.Use(middleware.CORS())
	server.echo.Use(server.requestLogger())

	ping := NewPingHandler()
	server.echo.GET("/ping", ping.PingHandler)

	server.echo.POST("/reset", server.handleReset, server.session)
	server.echo.GET("/state", server.handleState, server.session)
	server.echo.POST("/move/:col", server.handleMove, server.session)

	return server
}

// Handler exposes the router, mostly for tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- that.echo.Start(":" + port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := that.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

func (that *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				that.logger.Error("request failed",
					"method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
				return nil
			}

			that.logger.Debug("request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	})
}
