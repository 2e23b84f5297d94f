package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BOOKSHELF_LOG_LEVEL.
const EnvPrefix = "BOOKSHELF"

// LibraryConfig says where and how the catalog is persisted
type LibraryConfig struct {
	Path   string `yaml:"path"`
	Driver string `yaml:"driver"`
	Pretty bool   `yaml:"pretty"`
}

// LogConfig уровень, формат и файл журнала
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	Path  string `yaml:"path"` // empty means stderr only
}

// CLIConfig файл истории и цвет для интерактивного меню
type CLIConfig struct {
	HistoryFile string `yaml:"history_file" split_words:"true"`
	NoColor     bool   `yaml:"no_color" split_words:"true"`
}

// MetricsConfig куда выгружать метрики при выходе: textfile и/или pushgateway
type MetricsConfig struct {
	Textfile       string `yaml:"textfile"`
	PushgatewayURL string `yaml:"pushgateway_url" split_words:"true"`
	Job            string `yaml:"job"`
}

// Config все секции bookshelf.yaml.
// Section names form the env key: BOOKSHELF_<SECTION>_<FIELD>.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Log     LogConfig     `yaml:"log"`
	CLI     CLIConfig     `yaml:"cli"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Default is the configuration used when no file is present.
func Default() Config {
	return Config{
		Library: LibraryConfig{Path: "library.txt", Driver: "json"},
		Log:     LogConfig{Level: "warn"},
		CLI:     CLIConfig{HistoryFile: ".bookshelf_history"},
		Metrics: MetricsConfig{Job: "bookshelf"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(f, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("env overrides: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Library.Path == "" {
		return ErrInvalid("library.path is required")
	}
	switch c.Library.Driver {
	case "json", "sqlite":
	default:
		return ErrInvalid(fmt.Sprintf("library.driver must be json or sqlite, got %q", c.Library.Driver))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return ErrInvalid(fmt.Sprintf("log.level: %v", err))
	}
	return nil
}

type invalidErr string

func (e invalidErr) Error() string { return "invalid config: " + string(e) }
func ErrInvalid(msg string) error  { return invalidErr(msg) }

// Path returns the config file location: explicit, then BOOKSHELF_CONFIG, then bookshelf.yaml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return "bookshelf.yaml"
}
