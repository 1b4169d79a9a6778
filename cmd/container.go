package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/talentrail/screening/internal/match"
	"github.com/talentrail/screening/internal/pdf"
	"github.com/talentrail/screening/job/jobinfra"
	"github.com/talentrail/screening/pkg/fsx"
	"github.com/talentrail/screening/pkg/fsx/fsxlocal"
	"github.com/talentrail/screening/pkg/fsx/fsxs3"
	"github.com/talentrail/screening/pkg/iam/auth"
	"github.com/talentrail/screening/pkg/logx"
	"github.com/talentrail/screening/screening/screeningapi"
	"github.com/talentrail/screening/screening/screeninginfra"
	"github.com/talentrail/screening/screening/screeningsrv"
	"github.com/talentrail/screening/screening/worker"
)

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig  auth.Config
	WorkerCount int

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Services
	ScreeningService *screeningsrv.Service
	Worker           *worker.ScreeningWorker

	// API Handlers
	ScreeningHandlers *screeningapi.Handlers

	// Middleware
	AuthMiddleware *auth.UnifiedAuthMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File Storage
	// S3 by default; STORAGE_BACKEND=local keeps uploads on disk for development
	if os.Getenv("STORAGE_BACKEND") == "local" {
		dir := os.Getenv("STORAGE_DIR")
		if dir == "" {
			dir = "./data/uploads"
		}
		c.FileSystem = fsxlocal.NewLocalFileSystem(dir)
	} else {
		awsRegion := os.Getenv("AWS_REGION")
		awsBucket := os.Getenv("AWS_BUCKET")
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")
	}

	// 4. Auth Config
	c.AuthConfig = auth.ParseKeys(os.Getenv("API_KEYS"))
	if len(c.AuthConfig.Keys) == 0 {
		logx.Warn("API_KEYS is not set, no client will be able to authenticate")
	}

	// 5. Worker pool size
	c.WorkerCount = 4
	if raw := os.Getenv("WORKER_COUNT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.WorkerCount = n
		}
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	screeningJobRepo := screeninginfra.NewPostgresJobRepository(c.DB)
	resultRepo := screeninginfra.NewPostgresResultRepository(c.DB)

	// --- Queue and Cache ---
	taskQueue := screeninginfra.NewRedisQueue(c.Redis, "screening:tasks")
	reportCache := screeninginfra.NewRedisReportCache(c.Redis, "screening")

	// --- Domain Services ---
	c.ScreeningService = screeningsrv.NewService(
		screeningJobRepo,
		resultRepo,
		jobRepo,
		taskQueue,
		reportCache,
		match.NewKeywordScorer(),
		pdf.NewExtractor(),
		c.FileSystem,
	)

	c.Worker = worker.NewScreeningWorker(c.ScreeningService, taskQueue, c.WorkerCount)

	// --- Handlers ---
	c.ScreeningHandlers = screeningapi.NewHandlers(c.ScreeningService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewAPIKeyMiddleware(c.AuthConfig)
}
