package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"github.com/supchaser/aria2bot/internal/app/delivery"
	"github.com/supchaser/aria2bot/internal/app/delivery/telegram"
	"github.com/supchaser/aria2bot/internal/app/usecase"
	"github.com/supchaser/aria2bot/internal/config"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 30 * time.Second
	pollTimeout     = 60
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var envFlag string

	rootCmd := &cobra.Command{
		Use:           "aria2bot",
		Short:         "Telegram bot for aria2 download daemons",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return run(ctx, envFlag, configFlag)
		},
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path of config toml file")
	rootCmd.Flags().StringVar(&envFlag, "env", ".env", "Path of .env file")

	return rootCmd
}

func run(ctx context.Context, envPath, configPath string) error {
	cfg, err := config.LoadConfig(envPath, configPath)
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	if err := logger.Init(cfg.LogMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully",
		zap.String("config_path", cfg.ConfigPath),
		zap.Bool("multi_server", cfg.Aria2.IsMulti()),
	)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	logger.Info("bot authorized", zap.String("username", bot.Self.UserName))

	router, err := usecase.CreateRouter(usecase.BuildServers(cfg, telegram.CreateNotifier(bot)))
	if err != nil {
		return err
	}
	defer router.Close()

	fetcher := telegram.CreateFileFetcher(bot, &http.Client{Timeout: usecase.OpTimeout})
	downloads, err := usecase.CreateDownloadUsecase(fetcher)
	if err != nil {
		return err
	}
	handler := telegram.CreateHandler(bot, router, downloads)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout
	updates := bot.GetUpdatesChan(updateConfig)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		handler.Run(gctx, updates)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		bot.StopReceivingUpdates()
		router.Close()
		return nil
	})

	if cfg.HTTPPort != "" {
		server := &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
			Handler: delivery.CreateStatusDelivery(usecase.CreateStatusUsecase(router)).Routes(),
		}

		g.Go(func() error {
			logger.Info("starting HTTP server", zap.String("address", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown error", zap.Error(err))
				return err
			}
			logger.Info("server stopped")
			return nil
		})
	}

	err = g.Wait()
	for _, server := range router.Servers() {
		<-server.Done()
	}
	logger.Info("bot is shutting down")
	return err
}
