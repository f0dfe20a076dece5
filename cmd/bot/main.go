package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/guess-the-flag-bot/internal/config"
	"github.com/aliskhannn/guess-the-flag-bot/internal/delivery/telegram"
	"github.com/aliskhannn/guess-the-flag-bot/internal/httpserver"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/redis"
	"github.com/aliskhannn/guess-the-flag-bot/internal/logger"
	"github.com/aliskhannn/guess-the-flag-bot/internal/metrics"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
	"github.com/aliskhannn/guess-the-flag-bot/internal/service"
	"github.com/aliskhannn/guess-the-flag-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "play",
			Description: "Start a new game",
		},
		{
			Command:     "score",
			Description: "Show your score",
		},
		{
			Command:     "help",
			Description: "How to play",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	countryRepo, err := repository.NewCountryRepository(cfg.CountriesJSONPath)
	if err != nil {
		lg.Fatal("failed to load countries", zap.Error(err))
	}

	deck, err := service.NewDeck(countryRepo.GetAll(), rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		lg.Fatal("failed to build deck", zap.Error(err))
	}

	gameRepo, closeStore, err := newGameRepository(ctx, cfg, countryRepo)
	if err != nil {
		lg.Fatal("failed to open game storage",
			zap.String("driver", cfg.Storage.Driver),
			zap.Error(err),
		)
	}
	defer closeStore()
	lg.Info("game storage ready", zap.String("driver", cfg.Storage.Driver))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gameService := service.NewGameService(gameRepo, deck, metrics.NewRecorder(registry), lg)
	handler := telegram.NewHandler(bot, lg, gameService)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer bot.StopReceivingUpdates()
		return handler.Run(gctx)
	})

	if evictor, ok := gameRepo.(service.IdleEvictor); ok {
		janitor := service.NewSessionJanitor(evictor, cfg.Storage.IdleTTL, cfg.Storage.SweepSchedule, lg)
		g.Go(func() error {
			return janitor.Start(gctx)
		})
	}

	if cfg.HTTP.Addr != "" {
		srv := httpserver.New(cfg.HTTP.Addr, httpserver.NewRouter(registry), lg)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}

// newGameRepository opens the session store selected by storage.driver.
func newGameRepository(
	ctx context.Context,
	cfg *config.Config,
	countries *repository.CountryRepository,
) (service.GameRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return pgrepo.NewGameRepository(pool, countries), pool.Close, nil

	case config.StorageRedis:
		client, err := redis.NewClient(ctx, redis.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewGameRepository(client, cfg.Redis.SessionTTL), func() { _ = client.Close() }, nil

	default:
		return storage.NewGameStorage(), func() {}, nil
	}
}
