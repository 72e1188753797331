package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDB       = "shopfront"
	defaultRedisAddr     = "localhost:6379"
	defaultJWTSecret     = "change-me-in-production"
	defaultAppPort       = "8080"
	defaultAppEnv        = "local"
	defaultAppURL        = "http://localhost:8080"
	defaultRatingWorkers = 4
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Config is a typed view over the loaded values, for components that take
// their settings by value instead of calling the getters.
type Config struct {
	Env          string
	Port         string
	URL          string
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration
	RedisAddr    string
	RedisPass    string
	JWTSecret    string
}

// Load reads config/app.json and .env once. Process environment variables
// win over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

// Snapshot returns the current configuration as a Config.
func Snapshot() Config {
	_ = Load()
	return Config{
		Env:          AppEnv(),
		Port:         AppPort(),
		URL:          AppURL(),
		MongoURI:     MongoURI(),
		MongoDB:      MongoDatabase(),
		MongoTimeout: MongoTimeout(),
		RedisAddr:    RedisAddr(),
		RedisPass:    RedisPassword(),
		JWTSecret:    JWTSecret(),
	}
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":        defaultAppEnv,
		"APP_PORT":       defaultAppPort,
		"APP_URL":        defaultAppURL,
		"MONGODB_URI":    defaultMongoURI,
		"MONGODB_DB":     defaultMongoDB,
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"JWT_SECRET":     defaultJWTSecret,
	}
}

func MongoURI() string {
	_ = Load()
	return get("MONGODB_URI", defaultMongoURI)
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGODB_DB", defaultMongoDB)
}

// MongoTimeout bounds connect and ping at startup.
func MongoTimeout() time.Duration {
	return Duration("MONGODB_TIMEOUT", 10*time.Second)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func AppURL() string {
	_ = Load()
	return strings.TrimRight(get("APP_URL", defaultAppURL), "/")
}

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

func RatingWorkers() int {
	return Int("RATING_WORKERS", defaultRatingWorkers)
}

func CacheTTL() time.Duration {
	return Duration("CACHE_TTL", 5*time.Minute)
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "public")
}
func StorageURL() string {
	_ = Load()
	return strings.TrimRight(get("STORAGE_URL", AppURL()+"/storage"), "/")
}
func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Typed helpers ────────────────────────────────────────────────────────────

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Int reads an integer key. Unparsable or non-positive values yield fallback.
func Int(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Int64 is Int for byte sizes and other large values.
func Int64(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(Get(key, ""), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Bool accepts true/false/1/0/yes/no.
func Bool(key string, fallback bool) bool {
	switch strings.ToLower(Get(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// Duration accepts Go duration strings ("30s") or plain seconds ("30").
func Duration(key string, fallback time.Duration) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// List splits a comma-separated key, dropping blanks.
func List(key string, fallback []string) []string {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// Set overrides a key at runtime. Tests use it to pin secrets and limits.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}

	env, err := godotenv.Read(envPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", envPath, err)
	}
	for k, v := range env {
		if key := strings.ToUpper(strings.TrimSpace(k)); key != "" {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	for key := range knownKeys(loaded) {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = v
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

// knownKeys is every key we might read: defaults, file keys and the
// optional ones the getters ask for.
func knownKeys(loaded map[string]string) map[string]struct{} {
	keys := make(map[string]struct{}, len(loaded)+len(optionalKeys))
	for k := range loaded {
		keys[k] = struct{}{}
	}
	for _, k := range optionalKeys {
		keys[k] = struct{}{}
	}
	return keys
}

var optionalKeys = []string{
	"MONGODB_TIMEOUT", "CACHE_TTL", "RATING_WORKERS",
	"STORAGE_DISK", "STORAGE_LOCAL_ROOT", "STORAGE_URL",
	"S3_BUCKET", "S3_REGION", "S3_KEY", "S3_SECRET", "S3_ENDPOINT", "S3_URL",
	"MAX_BODY_BYTES", "MAX_UPLOAD_BYTES",
	"LOG_LEVEL", "LOG_TO_MONGO",
	"RATE_LIMIT_PER_MINUTE", "CORS_ORIGINS",
	"ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_NAME",
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case float64, bool:
			out[k] = fmt.Sprint(v)
		}
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}
