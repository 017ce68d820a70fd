package config

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

type HTTPServer struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
	// TrustedProxies lists proxy IPs/CIDRs whose forwarding headers are honoured.
	TrustedProxies []string
}

func (h HTTPServer) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

type Catalog struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// Live reports whether the upstream catalog should be used instead of fixtures.
func (c Catalog) Live() bool {
	return c.APIKey != ""
}

type Database struct {
	URL string
}

type RedisCache struct {
	Host      string
	Port      string
	Password  string
	KeyPrefix string
}

func (r RedisCache) Enabled() bool {
	return r.Host != ""
}

type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type Config struct {
	Env       string
	LogLevel  string
	HTTP      HTTPServer
	Catalog   Catalog
	Database  Database
	Redis     RedisCache
	RateLimit RateLimit
}

const logtag = "[config]"

// Load reads an optional env file given by -config (or .env) and builds the config from env.
func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	loadEnvFile(*configPath)
	return FromEnv()
}

func loadEnvFile(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, path)
		return
	}
	log.Printf("%s using env from .env", logtag)
	_ = godotenv.Load()
}

// FromEnv builds the config from the current process environment only.
func FromEnv() *Config {
	cfg := &Config{
		Env:       getenv("ENV", EnvLocal),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		HTTP:      *newHTTP(),
		Catalog:   *newCatalog(),
		Database:  *newDatabase(),
		Redis:     *newRedis(),
		RateLimit: *newRateLimit(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Host:            getenv("HTTP_HOST", "0.0.0.0"),
		Port:            getenv("HTTP_PORT", "8080"),
		ShutdownTimeout: getduration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:  getlist("TRUSTED_PROXIES"),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		APIKey:   getsecret("TMDB_API_KEY"),
		BaseURL:  strings.TrimRight(getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
		Language: getenv("TMDB_LANGUAGE", "en-US"),
		Timeout:  getduration("CATALOG_TIMEOUT", 10*time.Second),
	}
}

func newDatabase() *Database {
	return &Database{
		URL: getsecret("DATABASE_URL"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Host:      getenv("REDIS_HOST", ""),
		Port:      getenv("REDIS_PORT", "6379"),
		Password:  getsecret("REDIS_PASSWORD"),
		KeyPrefix: getenv("REDIS_KEY_PREFIX", "moviematch"),
	}
}

func newRateLimit() *RateLimit {
	return &RateLimit{
		Enabled: getbool("RATE_LIMIT_ENABLED", true),
		RPS:     getfloat("RATE_LIMIT_RPS", 10),
		Burst:   getint("RATE_LIMIT_BURST", 20),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

// getsecret never prints the value.
func getsecret(key string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined\n", logtag, key)
		return ""
	}
	fmt.Printf("%s %s = ***\n", logtag, key)
	return val
}

func getlist(key string) []string {
	var out []string
	for _, v := range strings.Split(getenv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		fmt.Printf("%s %s invalid (%q). Using default value %s\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s invalid (%q). Using default value %d\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getfloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Printf("%s %s invalid (%q). Using default value %v\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s invalid (%q). Using default value %t\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}
