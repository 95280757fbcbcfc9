package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env  string
	Port string

	DB         DBConfig
	Embedder   EmbedderConfig
	Classifier ClassifierConfig
	Ranking    RankingConfig
	Evaluation EvaluationConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

type EmbedderConfig struct {
	URL       string
	Model     string
	Timeout   int
	Dimension int
}

type ClassifierConfig struct {
	URL     string
	Timeout int
	TopK    int
}

type RankingConfig struct {
	DomainWeight       float64
	DiversityPenalty   float64
	MinDomainScore     float64
	SearchLimit        int
	SearchAlpha        float64
	MaxRecommendations int
	QueryTextLimit     int
}

type EvaluationConfig struct {
	DatasetPath string
	K           int
}

type CacheConfig struct {
	Size int
	// TTL in minutes.
	TTL int
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "jobs-db"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "jobs_user"),
			Password: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "jobs_password"),
			Name:     getEnv("DB_NAME", "jobs_db"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
		Embedder: EmbedderConfig{
			URL:       getEnv("EMBEDDER_URL", "http://embedder:11434"),
			Model:     getEnv("EMBEDDING_MODEL", "bge-large-en-v1.5"),
			Timeout:   getEnvInt("EMBEDDER_TIMEOUT", 30),
			Dimension: getEnvInt("EMBEDDING_DIMENSION", 1024),
		},
		Classifier: ClassifierConfig{
			URL:     getEnv("CLASSIFIER_URL", "http://domain-classifier:8002"),
			Timeout: getEnvInt("CLASSIFIER_TIMEOUT", 30),
			TopK:    getEnvInt("CLASSIFIER_TOP_K", 10),
		},
		Ranking: RankingConfig{
			DomainWeight:       getEnvFloat("RANKING_DOMAIN_WEIGHT", 0.6),
			DiversityPenalty:   getEnvFloat("RANKING_DIVERSITY_PENALTY", 0.1),
			MinDomainScore:     getEnvFloat("RANKING_MIN_DOMAIN_SCORE", 0.05),
			SearchLimit:        getEnvInt("RANKING_SEARCH_LIMIT", 200),
			SearchAlpha:        getEnvFloat("RANKING_SEARCH_ALPHA", 0.7),
			MaxRecommendations: getEnvInt("RANKING_MAX_RECOMMENDATIONS", 10),
			QueryTextLimit:     getEnvInt("RANKING_QUERY_TEXT_LIMIT", 500),
		},
		Evaluation: EvaluationConfig{
			DatasetPath: getEnv("EVALUATION_DATASET_PATH", "jobs.csv"),
			K:           getEnvInt("EVALUATION_K", 10),
		},
		Cache: CacheConfig{
			Size: getEnvInt("RESULT_CACHE_SIZE", 128),
			TTL:  getEnvInt("RESULT_CACHE_TTL_MINUTES", 15),
		},
		RateLimit: RateLimitConfig{
			PerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 10),
			Burst:     getEnvInt("RATE_LIMIT_BURST", 20),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
