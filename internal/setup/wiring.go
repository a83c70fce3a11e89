package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/isavita/sugai/internal/advisor"
	"github.com/isavita/sugai/internal/analyzer"
	"github.com/isavita/sugai/internal/config"
	"github.com/isavita/sugai/internal/importer"
	"github.com/isavita/sugai/internal/llm"
	"github.com/isavita/sugai/internal/llm/bedrock"
	"github.com/isavita/sugai/internal/llm/gpt"
	"github.com/isavita/sugai/internal/prechecks"
	"github.com/isavita/sugai/internal/store"
	"github.com/isavita/sugai/internal/store/postgres"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion          string
	ClaudeModelID      string
	OpenAIKey          string
	OpenAIModelID      string
	DefaultProvider    string
	EarlyExitThreshold float64

	MinCGMReadings int
	MaxCGMGapHours float64

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDatabase string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	StreamName    string
	StreamGroup   string
	ConsumerName  string
}

type Dependencies struct {
	Analyzer       *analyzer.Analyzer
	SingleAnalyzer *analyzer.SingleAdvisorAnalyzer
	Importer       *importer.Importer
	Reports        store.ReportStore
	Logger         *zerolog.Logger

	db *postgres.DB
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:      getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:          getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:      getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider:    getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		EarlyExitThreshold: getEnvFloat("EARLY_EXIT_THRESHOLD", 0.5),

		MinCGMReadings: getEnvInt("MIN_CGM_READINGS", 48),
		MaxCGMGapHours: getEnvFloat("MAX_CGM_GAP_HOURS", 3),

		PostgresHost:     getEnv("POSTGRES_HOST", ""),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDatabase: getEnv("POSTGRES_DB", "sugai"),
		PostgresSSLMode:  getEnv("POSTGRES_SSL_MODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		StreamName:    getEnv("STREAM_NAME", "analysis-jobs"),
		StreamGroup:   getEnv("STREAM_GROUP", "analyzers"),
		ConsumerName:  getEnv("CONSUMER_NAME", "analyzer-1"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	// Data-quality gates
	stageRunner := prechecks.NewStageRunner([]prechecks.Checker{
		&prechecks.CoverageChecker{MinReadings: cfg.MinCGMReadings},
		&prechecks.GapChecker{MaxGap: hoursToDuration(cfg.MaxCGMGapHours)},
		prechecks.NewSettingsChecker(),
	})

	// Load advisors configuration from YAML
	advisorsConfig, err := config.LoadAdvisorsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load advisors config: %w", err)
	}

	// Create advisor pool and build advisors from config
	advisorPool := advisor.NewAdvisorPool(llmClient, logger)
	advisors, err := advisorPool.BuildFromConfig(advisorsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build advisors from config: %w", err)
	}

	advisorRunner := advisor.NewAdvisorRunner(advisors, logger)
	advisorFactory := advisor.NewAdvisorFactory(advisors)

	deps := &Dependencies{
		Analyzer:       analyzer.NewAnalyzer(stageRunner, advisorRunner, cfg.EarlyExitThreshold, logger),
		SingleAnalyzer: analyzer.NewSingleAdvisorAnalyzer(advisorFactory, logger),
		Importer:       importer.NewImporter(logger),
		Logger:         logger,
	}

	// Report store: Postgres when configured, in-memory otherwise.
	if cfg.PostgresHost != "" {
		db, err := postgres.New(ctx, postgres.Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			Database: cfg.PostgresDatabase,
			SSLMode:  cfg.PostgresSSLMode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}

		deps.db = db
		deps.Reports = postgres.NewReportRepository(db)
		logger.Info().Str("host", cfg.PostgresHost).Msg("Using Postgres report store")
	} else {
		deps.Reports = store.NewMemoryStore()
		logger.Info().Msg("Using in-memory report store")
	}

	return deps, nil
}

// Close releases the database pool when one was opened.
func (d *Dependencies) Close() {
	if d.db != nil {
		d.db.Close()
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
