package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultBaseChars leaves out symbols that are easy to mistake for one another
// (l, B, I, O, S, 0, 1, 5, 8).
const DefaultBaseChars = "abcdefghijkmnopqrstuvwxyzACDEFGHJKLMNPQRTUVWXYZ234679"

var (
	ErrMissingSection       = errors.New("missing config section")
	ErrInvalidFlushInterval = errors.New("counter flush interval must be positive")
)

// Environment variable names are derived from the field names, e.g.
// Env.DB.BaseChars is read from DB_BASE_CHARS.

type DB struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Name      string `yaml:"name"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	BaseChars string `yaml:"base_chars" split_words:"true"`
}

type Web struct {
	// BaseURL prefixes short ids in the links handed out, e.g. http://example.com/s
	BaseURL string `yaml:"base_url" split_words:"true"`
}

type Cache struct {
	Engine string `yaml:"engine"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
}

type Counter struct {
	FlushInterval time.Duration `yaml:"flush_interval" split_words:"true"`
}

type Env struct {
	AppPort int     `yaml:"app_port" split_words:"true"`
	Debug   bool    `yaml:"debug"`
	DB      DB      `yaml:"db"`
	Web     Web     `yaml:"web"`
	Cache   Cache   `yaml:"cache"`
	Counter Counter `yaml:"counter"`
}

func Default() Env {
	return Env{
		AppPort: 8080,
		DB: DB{
			Host:      "localhost",
			Port:      5555,
			Name:      "short",
			User:      "short",
			Password:  "short",
			BaseChars: DefaultBaseChars,
		},
		Web: Web{
			BaseURL: "http://localhost:8080",
		},
		Cache: Cache{
			Engine: "memory",
			Host:   "localhost",
			Port:   6679,
		},
		Counter: Counter{
			FlushInterval: 5 * time.Second,
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path (if
// path is not empty), a .env file (if any) and the environment, each one
// overriding the previous.
func Load(path string) (env Env, err error) {
	env = Default()
	if path != "" {
		if err = loadFile(path, &env); err != nil {
			return env, err
		}
	}
	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return env, fmt.Errorf("load .env: %w", err)
	}
	if err = Process(&env); err != nil {
		return env, err
	}
	if env.Counter.FlushInterval <= 0 {
		return env, fmt.Errorf("%w: %s", ErrInvalidFlushInterval, env.Counter.FlushInterval)
	}
	return env, nil
}

// Process overrides env with the variables set in the environment.
func Process(env *Env) error {
	return envconfig.Process("", env)
}

func loadFile(path string, env *Env) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decode(data, env)
}

func decode(data []byte, env *Env) error {
	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	for _, name := range []string{"db", "web"} {
		if _, ok := sections[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSection, name)
		}
	}
	if err := yaml.Unmarshal(data, env); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
