package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order when no explicit config path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Load reads the configuration from path, or from the first of DefaultPaths
// that exists when path is empty. A missing default file is not an error.
// Environment overrides are applied before validation.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := readConfigFile(path)
	if err != nil {
		return Config{}, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return data, nil
	}
	for _, p := range DefaultPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", p, err)
		}
	}
	return nil, nil
}

// LoadDotEnv seeds the process environment from .env files. Variables that
// are already set win, and missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("KAKAO_REST_API_KEY"); ok && v != "" {
		c.Kakao.RestAPIKey = v
	}
	if v, ok := lookup("PLANNER_ENV"); ok && v != "" {
		c.Env = EnvFlagToEnvironment(v)
	}
	if v, ok := lookup("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v, ok := lookup("GTFS_SOURCE"); ok && v != "" {
		c.GTFS.Source = v
	}
	if v, ok := lookup("REGION_HINT"); ok {
		c.Region.Hint = v
	}
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
