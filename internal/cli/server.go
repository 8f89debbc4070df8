package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/config"
	"vocab-quiz-service/internal/infra/memory"
	infrapg "vocab-quiz-service/internal/infra/postgres"
	infraredis "vocab-quiz-service/internal/infra/redis"
	"vocab-quiz-service/internal/infra/words"
	transport "vocab-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Word source chain: AI first when configured, built-in lists last.
	static := words.NewStaticSource(words.DefaultLists())
	sources := []app.WordSource{}
	if cfg.Words.Source == "gemini" && os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := words.NewGeminiSource(ctx, log)
		if err != nil {
			log.WithError(err).Warn("gemini source unavailable, falling back to built-in lists")
		} else {
			cacheTTL := config.TTLDuration(cfg.Words.CacheTTL, 10*time.Minute)
			if redisClient != nil {
				sources = append(sources, infraredis.NewCachingSource(gemini, redisClient, cacheTTL))
			} else {
				sources = append(sources, memory.NewCachingSource(gemini, cacheTTL))
			}
		}
	}
	sources = append(sources, static)

	var progression app.ProgressionStore
	if redisClient != nil {
		progression = infraredis.NewProgressionStore(redisClient)
	} else {
		progression = memory.NewProgressionStore()
	}

	var sink app.RecordSink
	if pool != nil {
		sink = infrapg.NewRecordSink(pool)
	} else {
		sink = memory.NewRecordSink()
	}

	preparer := app.NewPreparer(sources, cfg.Words.Distractors)
	service := app.NewGameService(preparer, progression, sink, log)
	wsHandler := transport.NewWSHandler(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("starting vocab quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
