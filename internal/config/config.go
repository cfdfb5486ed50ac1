package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Model       string
	TargetCount int
	AITimeout   time.Duration
	SkipAI      bool

	Snapshot SnapshotConfig
}

// SnapshotConfig selects where graph snapshots are persisted. Both backends
// empty means snapshots stay in memory for the duration of the run.
type SnapshotConfig struct {
	PostgresDSN string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	CacheMaxEntries int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Model:       firstNonEmpty(strings.TrimSpace(os.Getenv("CONSOLIDATE_MODEL")), "gemini-2.5-flash"),
		TargetCount: envInt("CONSOLIDATE_TARGET", 50),
		AITimeout:   time.Duration(envInt("CONSOLIDATE_TIMEOUT_MINUTES", 30)) * time.Minute,
		SkipAI:      envBool("CONSOLIDATE_SKIP_AI", false),
		Snapshot: SnapshotConfig{
			PostgresDSN: strings.TrimSpace(os.Getenv("SNAPSHOT_PG_DSN")),
			S3Endpoint:  strings.TrimSpace(os.Getenv("SNAPSHOT_S3_ENDPOINT")),
			S3Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("SNAPSHOT_S3_REGION")), "us-east-1"),
			S3AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("SNAPSHOT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
			S3SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("SNAPSHOT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
			S3Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("SNAPSHOT_S3_BUCKET")), "codeatlas-graphs"),
			S3UseSSL:    envBool("SNAPSHOT_S3_USE_SSL", true),

			CacheMaxEntries: envInt("SNAPSHOT_CACHE_ENTRIES", 256),
		},
	}
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
