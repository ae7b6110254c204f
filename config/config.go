package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AllMonths disables the month filter.
	AllMonths = "all"
	// AllDays disables the weekday filter.
	AllDays = "All"
)

// DefaultCities maps each supported city to its trip file under DataDir.
var DefaultCities = map[string]string{
	"chicago":       "chicago.csv",
	"new york city": "new_york_city.csv",
	"washington":    "washington.csv",
}

// DefaultMonths are the months covered by the published trip data, in
// calendar order. The position of a name plus one is its month number.
var DefaultMonths = []string{"january", "february", "march", "april", "may", "june"}

// DefaultDays are the weekday names as derived from trip start times.
var DefaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir    string
	CitiesFile string
	Cities     map[string]string
	Months     []string
	Days       []string

	TripSource     string
	SQLitePath     string
	ConnectRetries int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	CacheSize int
	PageSize  int
	Debug     bool
}

// citiesFile is the on-disk layout of CITIES_FILE.
type citiesFile struct {
	Cities map[string]string `yaml:"cities"`
	Months []string          `yaml:"months"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		DataDir:    getEnv("DATA_DIR", "."),
		CitiesFile: getEnv("CITIES_FILE", ""),
		Cities:     DefaultCities,
		Months:     DefaultMonths,
		Days:       DefaultDays,

		TripSource:     getEnv("TRIP_SOURCE", "csv"),
		SQLitePath:     getEnv("SQLITE_PATH", "./bikeshare.db"),
		ConnectRetries: getEnvInt("CONNECT_RETRIES", 3),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "bikeshare"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "bikeshare"),
		PostgresDB:       getEnv("POSTGRES_DB", "bikeshare"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		CacheSize: getEnvInt("CACHE_SIZE", 3),
		PageSize:  getEnvInt("PAGE_SIZE", 5),
		Debug:     getEnvBool("LOG_DEBUG", false),
	}

	if cfg.CitiesFile != "" {
		if err := cfg.loadCitiesFile(cfg.CitiesFile); err != nil {
			return nil, err
		}
	}

	switch cfg.TripSource {
	case "csv", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("config: unknown TRIP_SOURCE %q (want csv, sqlite or postgres)", cfg.TripSource)
	}

	return cfg, nil
}

func (c *Config) loadCitiesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read cities file %q: %w", path, err)
	}

	var f citiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config: parse cities file %q: %w", path, err)
	}
	if len(f.Cities) == 0 {
		return fmt.Errorf("config: cities file %q lists no cities", path)
	}

	// Prompt answers and filter tokens are lower-case, so the table is too.
	cities := make(map[string]string, len(f.Cities))
	for name, file := range f.Cities {
		key := strings.ToLower(strings.Join(strings.Fields(name), " "))
		if key == "" {
			return fmt.Errorf("config: cities file %q has a blank city name", path)
		}
		if _, dup := cities[key]; dup {
			return fmt.Errorf("config: cities file %q lists %q twice", path, key)
		}
		cities[key] = file
	}
	c.Cities = cities

	if len(f.Months) > 0 {
		if len(f.Months) > 12 {
			return fmt.Errorf("config: cities file %q lists %d months", path, len(f.Months))
		}
		months := make([]string, len(f.Months))
		for i, m := range f.Months {
			months[i] = strings.ToLower(strings.TrimSpace(m))
			if months[i] == "" || months[i] == AllMonths {
				return fmt.Errorf("config: cities file %q has an invalid month %q", path, m)
			}
		}
		c.Months = months
	}
	return nil
}

// CityPath returns the trip file for city, resolved against DataDir.
func (c *Config) CityPath(city string) (string, bool) {
	file, ok := c.Cities[city]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(file) {
		return file, true
	}
	return filepath.Join(c.DataDir, file), true
}

// CityNames returns the configured city names in alphabetical order.
func (c *Config) CityNames() []string {
	names := make([]string, 0, len(c.Cities))
	for name := range c.Cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
