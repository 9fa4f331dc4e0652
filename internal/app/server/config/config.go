package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mobisync/internal/domain/airquality"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	Env        string
	DB         db
	Server     server
	Sync       jobs
	Activity   activityAPI
	AirQuality airQualityAPI
	Upstream   upstreamPolicy
}

type db struct {
	Driver      string `env:"DATABASE_DRIVER"`
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type jobs struct {
	Secret           string `env:"SYNC_SECRET"`
	BatchSize        int    `env:"BATCH_SIZE"`
	LeaderboardLimit int    `env:"LEADERBOARD_LIMIT"`
}

type activityAPI struct {
	URL   string  `env:"ACTIVITY_API_URL"`
	Token string  `env:"ACTIVITY_API_TOKEN"`
	RPS   float64 `env:"ACTIVITY_API_RPS"`
}

type airQualityAPI struct {
	URL    string  `env:"AIR_QUALITY_API_URL"`
	APIKey string  `env:"AIR_QUALITY_API_KEY"`
	RPS    float64 `env:"AIR_QUALITY_API_RPS"`
	Cities []airquality.City
}

type upstreamPolicy struct {
	Timeout       time.Duration `env:"UPSTREAM_TIMEOUT"`
	RetryAttempts int           `env:"UPSTREAM_RETRY_ATTEMPTS"`
}

// MustLoad читает .env (если есть) и переменные окружения, завершает процесс при ошибке
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// Load собирает конфигурацию из окружения
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 5*time.Minute)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("database_driver", DriverPostgres)
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("batch_size", 500)
	v.SetDefault("leaderboard_limit", 50)
	v.SetDefault("upstream_timeout", 30*time.Second)
	v.SetDefault("upstream_retry_attempts", 3)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: db{
			Driver:      v.GetString("database_driver"),
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:      v.GetString("run_address"),
			ReadTimeout:     v.GetDuration("read_timeout"),
			WriteTimeout:    v.GetDuration("write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Sync: jobs{
			Secret:           v.GetString("sync_secret"),
			BatchSize:        v.GetInt("batch_size"),
			LeaderboardLimit: v.GetInt("leaderboard_limit"),
		},
		Activity: activityAPI{
			URL:   v.GetString("activity_api_url"),
			Token: v.GetString("activity_api_token"),
			RPS:   v.GetFloat64("activity_api_rps"),
		},
		AirQuality: airQualityAPI{
			URL:    v.GetString("air_quality_api_url"),
			APIKey: v.GetString("air_quality_api_key"),
			RPS:    v.GetFloat64("air_quality_api_rps"),
		},
		Upstream: upstreamPolicy{
			Timeout:       v.GetDuration("upstream_timeout"),
			RetryAttempts: v.GetInt("upstream_retry_attempts"),
		},
	}

	cities, err := ParseCities(v.GetString("air_quality_cities"))
	if err != nil {
		return nil, err
	}
	if file := v.GetString("cities_file"); file != "" {
		fromFile, err := LoadCities(file)
		if err != nil {
			return nil, err
		}
		cities = append(cities, fromFile...)
	}
	cfg.AirQuality.Cities = UniqueCities(cities)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of %s, %s, %s", EnvLocal, EnvDev, EnvProd))
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DB.Driver))
	}
	if c.DB.DatabaseURI == "" {
		errs = append(errs, errors.New("DATABASE_URI is required"))
	}
	if c.Sync.BatchSize < 1 {
		errs = append(errs, errors.New("BATCH_SIZE must be positive"))
	}
	return errors.Join(errs...)
}

// UniqueCities убирает повторы по ID, первое вхождение побеждает (AIR_QUALITY_CITIES раньше CITIES_FILE)
func UniqueCities(cities []airquality.City) []airquality.City {
	seen := make(map[string]struct{}, len(cities))
	out := make([]airquality.City, 0, len(cities))
	for _, c := range cities {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ParseCities разбирает список вида "id:code,id2:code2". Без кода город запрашивается по id.
func ParseCities(s string) ([]airquality.City, error) {
	var out []airquality.City
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, code, _ := strings.Cut(part, ":")
		id, code = strings.TrimSpace(id), strings.TrimSpace(code)
		if id == "" {
			return nil, fmt.Errorf("AIR_QUALITY_CITIES: empty city id in %q", part)
		}
		if code == "" {
			code = id
		}
		out = append(out, airquality.City{ID: id, Code: code})
	}
	return out, nil
}
