package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"vocab-quiz-service/internal/app"
	infrapg "vocab-quiz-service/internal/infra/postgres"
	pgmigrations "vocab-quiz-service/internal/infra/postgres/migrations"
	infraredis "vocab-quiz-service/internal/infra/redis"
	"vocab-quiz-service/internal/infra/words"
)

func TestLevelPlaythroughEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisAddr, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	runMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	defer redisClient.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)

	source := infraredis.NewCachingSource(words.NewStaticSource(words.DefaultLists()), redisClient, 5*time.Minute)
	preparer := app.NewPreparerWithRand([]app.WordSource{source}, 3, rand.New(rand.NewSource(5)))
	progression := infraredis.NewProgressionStore(redisClient)
	sink := infrapg.NewRecordSink(pool)
	service := app.NewGameService(preparer, progression, sink, log)

	session, err := service.StartLevel(ctx, "p1", 1)
	if err != nil {
		t.Fatalf("start level: %v", err)
	}

	var last app.AnswerResult
	for i := 0; i < session.TotalQuestions(); i++ {
		question, ok := session.CurrentQuestion()
		if !ok {
			t.Fatalf("expected question at position %d", i)
		}
		last, err = service.SubmitAnswer(ctx, "p1", question.CorrectAnswer)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if last.Result == nil || !last.Result.Passed || last.Result.UnlockedLevel != 2 {
		t.Fatalf("expected pass and advance to 2, got %+v", last.Result)
	}

	// Frontier persisted in redis.
	frontier, err := progression.UnlockedLevel(ctx, "p1")
	if err != nil {
		t.Fatalf("frontier: %v", err)
	}
	if frontier != 2 {
		t.Fatalf("expected persisted frontier 2, got %d", frontier)
	}

	// Word list cached in redis by the playthrough.
	exists, err := redisClient.Exists(ctx, "words:level:1").Result()
	if err != nil || exists != 1 {
		t.Fatalf("expected cached word list, exists=%d err=%v", exists, err)
	}

	// Record persisted in postgres.
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM session_records WHERE player_id=$1`, "p1").Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one session record, got %d", count)
	}
}

func runMigrations(t *testing.T, ctx context.Context, pgURL string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(pgURL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("pg host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("pg port: %v", err)
	}
	url := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return url, func() { _ = container.Terminate(ctx) }
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), func() { _ = container.Terminate(ctx) }
}
