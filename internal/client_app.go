package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/connectfour/internal/client"
	"github.com/rocketscienceinc/connectfour/internal/config"
	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/rocketscienceinc/connectfour/internal/frontend"
	"github.com/rocketscienceinc/connectfour/internal/frontend/terminal"
)

// RunClient plays against the game service in the terminal until the player quits.
func RunClient(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "client-app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := client.New(logger, conf.Client.BaseURL)
	if err != nil {
		return fmt.Errorf("could not create game client: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("could not init screen: %w", err)
	}
	defer screen.Fini()

	view := terminal.NewView(screen)
	controller := frontend.NewController(logger, api, view, conf.Client.SettleDelay, conf.Client.ResultDelay)

	go func() {
		if err := controller.Initialize(ctx); err != nil {
			log.Error("could not start a game", "error", err)
		}
	}()

	log.Info("Client started", "url", conf.Client.BaseURL)

	return view.Run(ctx, terminal.Actions{
		Reset: func(difficulty entity.Difficulty) {
			if err := controller.Reset(ctx, difficulty); err != nil {
				log.Error("could not reset game", "error", err)
			}
		},
		Difficulty: controller.Difficulty,
	})
}
