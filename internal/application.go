package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/Louisaok9487/OOXX-game/internal/config"
	"github.com/Louisaok9487/OOXX-game/internal/repository"
	"github.com/Louisaok9487/OOXX-game/internal/repository/storage"
	"github.com/Louisaok9487/OOXX-game/internal/service"
	"github.com/Louisaok9487/OOXX-game/transport/rest"
)

// RunApp - runs the application.
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

	var (
		gameRepo   repository.GameRepository
		playerRepo repository.PlayerRepository
	)

	if addr := conf.Redis.GetRedisAddr(); addr != "" {
		redisStorage, err := storage.NewRedisStorage(ctx, addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(redisStorage.Connection)
		playerRepo = repository.NewPlayerRepository(redisStorage.Connection)
	} else {
		log.Info("Redis address not configured, using in-memory storage")

		gameRepo = repository.NewMemoryGameRepository()
		playerRepo = repository.NewMemoryPlayerRepository()
	}

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(gameRepo)
	botService := service.NewBotService(rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint: gosec // move selection only
	gamePlayService := service.NewGamePlayService(logger, playerService, gameService, botService)

	analysisService := service.NewAnalysisService(logger, newAnalysisModel(ctx, log, conf))

	handlers := rest.NewHandlers(logger, gamePlayService, analysisService, conf.BotDelay)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newAnalysisModel builds the Gemini client for game commentary. The
// key is optional; without it the analysis endpoint reports itself
// unavailable instead of failing the whole application.
func newAnalysisModel(ctx context.Context, log *slog.Logger, conf *config.Config) llms.Model {
	if conf.Gemini.APIKey == "" {
		log.Warn("Gemini API key not configured, game analysis disabled")
		return nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(conf.Gemini.APIKey),
		googleai.WithDefaultModel(conf.Gemini.Model),
	)
	if err != nil {
		log.Error("Failed to create Gemini client, game analysis disabled", "error", err)
		return nil
	}

	return llm
}
