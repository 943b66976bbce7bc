package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/edgar-analytics/edgar-dashboard/internal/db"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver   string // sqlite|postgres
	DBDSN      string // overrides the DB_HOST.. parts when set
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBMaxConns int

	BlobBasePath string // externally supplied payloads (percentages/all-exams.json)

	CORSOrigins    []string
	APIBaseURL     string // prefix the dashboard pages use for fetches; "" = same origin
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string // pretty|json
}

// LoadDotEnv reads .env files into the process environment. Missing files are
// not an error; variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	defDriver := "sqlite"
	if mode == ModeOnline {
		defDriver = "postgres"
	}
	return Config{
		Mode:           mode,
		HTTPAddr:       envOr("HTTP_ADDR", ":4000"),
		DBDriver:       canonicalDriver(envOr("DB_DRIVER", defDriver)),
		DBDSN:          os.Getenv("DB_DSN"),
		DBHost:         envOr("DB_HOST", "localhost"),
		DBPort:         envOr("DB_PORT", "5432"),
		DBUser:         envOr("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         envOr("DB_NAME", "aedgar"),
		DBSSLMode:      envOr("DB_SSLMODE", "disable"),
		DBMaxConns:     envInt("DB_MAX_CONNS", 10),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "*"),
		APIBaseURL:     strings.TrimSuffix(os.Getenv("API_BASE_URL"), "/"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "pretty"),
	}
}

// DSN returns the connection string for the configured driver. DB_DSN wins;
// otherwise postgres is assembled from the DB_* parts and sqlite falls back to
// the driver default.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if canonicalDriver(c.DBDriver) != string(db.DriverPostgres) {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else if c.DBUser != "" {
		u.User = url.User(c.DBUser)
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// canonicalDriver folds aliases (pg, pgx, postgresql, sqlite3) into the
// names db.Open expects. Unknown names pass through for db.ParseDriver to reject.
func canonicalDriver(s string) string {
	d, err := db.ParseDriver(s)
	if err != nil {
		return s
	}
	return string(d)
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
