package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	SwaggerEnabled     bool
	CORSAllowedOrigins []string

	StorageDriver      string
	DBURL              string
	DBBinaryParameters bool
	StatSchemaPath     string

	StatsSourceBaseURL     string
	StatsSourceTimeout     time.Duration
	StatsSourceMaxRetries  int
	StatsSourceUserAgent   string
	StatsSourceFetchMode   string
	StatsSourceBrowserPath string
	StatsSourcePageTTL     time.Duration
	StatsSourceCircuit     resilience.CircuitBreakerConfig

	ResolverMaxAttempts int
	ResolverPaceMin     time.Duration
	ResolverPaceMax     time.Duration
	RosterPlayerDelay   time.Duration
	NameMatchThreshold  int

	RedisURL          string
	RedisPaceKey      string
	RedisPaceInterval time.Duration

	EnqueueRecentWindow time.Duration
	EnqueueWorkers      int
	EnqueueStagger      time.Duration

	InternalJobToken    string
	QStashEnabled       bool
	QStashBaseURL       string
	QStashToken         string
	QStashTargetBaseURL string
	QStashRetries       int
	QStashCircuit       resilience.CircuitBreakerConfig

	CacheEnabled bool
	CacheTTL     time.Duration

	UptraceEnabled         bool
	UptraceDSN             string
	UptraceLogsEnabled     bool
	BetterStackEnabled     bool
	BetterStackEndpoint    string
	BetterStackToken       string
	BetterStackMinLevel    logging.Level
	BetterStackTimeout     time.Duration
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
	PprofEnabled           bool
	PprofAddr              string
}

// LoadDotEnv reads the given files (".env" when none) into the process
// environment. Missing files are ignored and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "antelope-reconciler"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_ADDR", ":8080"),
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
		StatSchemaPath:         strings.TrimSpace(getEnv("STAT_SCHEMA_PATH", "")),
		StatsSourceBaseURL:     strings.TrimSpace(getEnv("STATS_SOURCE_BASE_URL", "https://www.pro-football-reference.com")),
		StatsSourceUserAgent:   strings.TrimSpace(getEnv("STATS_SOURCE_USER_AGENT", "")),
		StatsSourceBrowserPath: strings.TrimSpace(getEnv("STATS_SOURCE_BROWSER_PATH", "")),
		RedisURL:               strings.TrimSpace(getEnv("REDIS_URL", "")),
		RedisPaceKey:           strings.TrimSpace(getEnv("REDIS_PACE_KEY", "antelope:stats-source:pace")),
		InternalJobToken:       strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		QStashBaseURL:          strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io")),
		QStashToken:            strings.TrimSpace(getEnv("QSTASH_TOKEN", "")),
		QStashTargetBaseURL:    strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", "")),
		UptraceDSN:             strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		BetterStackEndpoint:    strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", "")),
		BetterStackToken:       strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackMinLevel:    parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "warn")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	p := parser{}
	cfg.ReadTimeout = p.positiveDuration("APP_READ_TIMEOUT", "15s")
	cfg.WriteTimeout = p.positiveDuration("APP_WRITE_TIMEOUT", "15s")
	cfg.DBBinaryParameters = p.bool("DB_BINARY_PARAMETERS", "false")

	cfg.StatsSourceTimeout = p.positiveDuration("STATS_SOURCE_TIMEOUT", "20s")
	cfg.StatsSourceMaxRetries = p.intAtLeast("STATS_SOURCE_MAX_RETRIES", 2, 0)
	cfg.StatsSourcePageTTL = p.duration("STATS_SOURCE_PAGE_TTL", "2m")
	cfg.StatsSourceCircuit = p.circuit("STATS_SOURCE")

	cfg.ResolverMaxAttempts = p.intAtLeast("RESOLVER_MAX_ATTEMPTS", 13, 1)
	cfg.ResolverPaceMin = p.duration("RESOLVER_PACE_MIN", "8s")
	cfg.ResolverPaceMax = p.duration("RESOLVER_PACE_MAX", "14s")
	cfg.RosterPlayerDelay = p.duration("ROSTER_PLAYER_DELAY", "3s")
	cfg.NameMatchThreshold = p.intAtLeast("NAME_MATCH_THRESHOLD", 6, 1)
	cfg.RedisPaceInterval = p.duration("REDIS_PACE_INTERVAL", "8s")

	cfg.EnqueueRecentWindow = p.duration("ENQUEUE_RECENT_WINDOW", "72h")
	cfg.EnqueueWorkers = p.intAtLeast("ENQUEUE_WORKERS", 4, 1)
	cfg.EnqueueStagger = p.duration("ENQUEUE_STAGGER", "0s")

	cfg.QStashEnabled = p.bool("QSTASH_ENABLED", "false")
	cfg.QStashRetries = p.intAtLeast("QSTASH_RETRIES", 3, 0)
	cfg.QStashCircuit = p.circuit("QSTASH")

	cfg.CacheEnabled = p.bool("CACHE_ENABLED", "true")
	cfg.CacheTTL = p.positiveDuration("CACHE_TTL", "10m")

	cfg.UptraceEnabled = p.bool("UPTRACE_ENABLED", "false")
	cfg.UptraceLogsEnabled = p.bool("UPTRACE_LOGS_ENABLED", "false")
	cfg.BetterStackEnabled = p.bool("BETTERSTACK_ENABLED", "false")
	cfg.BetterStackTimeout = p.positiveDuration("BETTERSTACK_TIMEOUT", "3s")
	cfg.PyroscopeEnabled = p.bool("PYROSCOPE_ENABLED", "false")
	cfg.PyroscopeUploadRate = p.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	cfg.PprofEnabled = p.bool("PPROF_ENABLED", "false")
	cfg.SwaggerEnabled = p.bool("SWAGGER_ENABLED", strconv.FormatBool(appEnv != EnvProd))
	cfg.CORSAllowedOrigins = parseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if p.err != nil {
		return Config{}, p.err
	}

	storage := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch storage {
	case StorageMemory, StoragePostgres:
		cfg.StorageDriver = storage
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storage, StorageMemory, StoragePostgres)
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}

	mode := strings.ToLower(strings.TrimSpace(getEnv("STATS_SOURCE_FETCH_MODE", FetchModeHTTP)))
	switch mode {
	case FetchModeHTTP, FetchModeBrowser:
		cfg.StatsSourceFetchMode = mode
	default:
		return Config{}, fmt.Errorf("invalid STATS_SOURCE_FETCH_MODE %q: valid values are %s, %s", mode, FetchModeHTTP, FetchModeBrowser)
	}

	if cfg.ResolverPaceMax < cfg.ResolverPaceMin {
		return Config{}, fmt.Errorf("RESOLVER_PACE_MAX must be >= RESOLVER_PACE_MIN")
	}

	if cfg.QStashEnabled {
		if cfg.QStashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if cfg.QStashTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if cfg.InternalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.BetterStackEnabled && cfg.BetterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

// parser keeps the first parse failure so Load reads top to bottom.
type parser struct {
	err error
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
	}
}

func (p *parser) bool(key, fallback string) bool {
	v, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		p.fail(key, err)
	}
	return v
}

func (p *parser) duration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		p.fail(key, err)
		return 0
	}
	if v < 0 {
		p.fail(key, errors.New("must be >= 0"))
	}
	return v
}

func (p *parser) positiveDuration(key, fallback string) time.Duration {
	v := p.duration(key, fallback)
	if v == 0 {
		p.fail(key, errors.New("must be > 0"))
	}
	return v
}

func (p *parser) intAtLeast(key string, fallback, minimum int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	if v < minimum {
		p.fail(key, fmt.Errorf("must be >= %d", minimum))
	}
	return v
}

func (p *parser) circuit(prefix string) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          p.bool(prefix+"_CIRCUIT_ENABLED", "true"),
		FailureThreshold: p.intAtLeast(prefix+"_CIRCUIT_FAILURE_COUNT", 5, 1),
		OpenTimeout:      p.positiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"),
		HalfOpenMaxReq:   p.intAtLeast(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1),
	}
}

func parseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseLogLevel(v string) logging.Level {
	if level, ok := logging.ParseLevel(v); ok {
		return level
	}
	return logging.LevelInfo
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
