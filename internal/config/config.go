// Package config loads and validates articlescore configuration via Viper.
// Values come from defaults, an optional YAML file, ARTICLESCORE_* environment
// variables and bound command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ARTICLESCORE_FETCH_TIMEOUT.
const EnvPrefix = "ARTICLESCORE"

// Config captures every knob of a run.
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Lexicon   LexiconConfig   `mapstructure:"lexicon"`
	Report    ReportConfig    `mapstructure:"report"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// InputConfig locates the (URL_ID, URL) list.
type InputConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

// FetchConfig controls page retrieval and extraction.
type FetchConfig struct {
	Engine        string        `mapstructure:"engine"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	BodyMode      string        `mapstructure:"body_mode"`
	KeepMarkdown  bool          `mapstructure:"keep_markdown"`
}

// DocumentsConfig names the directory of extracted text files.
type DocumentsConfig struct {
	Dir string `mapstructure:"dir"`
}

// LexiconConfig points at the word lists.
type LexiconConfig struct {
	Positive  string   `mapstructure:"positive"`
	Negative  string   `mapstructure:"negative"`
	Stopwords []string `mapstructure:"stopwords"`
	Strict    bool     `mapstructure:"strict"`
}

// ReportConfig controls the final report.
type ReportConfig struct {
	Path     string         `mapstructure:"path"`
	Format   string         `mapstructure:"format"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig enables the optional report table.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// FlagKeys maps command-line flag names onto configuration keys.
var FlagKeys = map[string]string{
	"input":         "input.path",
	"sheet":         "input.sheet",
	"engine":        "fetch.engine",
	"timeout":       "fetch.timeout",
	"rate":          "fetch.rate_per_second",
	"body-mode":     "fetch.body_mode",
	"keep-markdown": "fetch.keep_markdown",
	"dir":           "documents.dir",
	"positive":      "lexicon.positive",
	"negative":      "lexicon.negative",
	"strict":        "lexicon.strict",
	"report":        "report.path",
	"format":        "report.format",
	"metrics-file":  "metrics.textfile",
	"dev-log":       "logging.development",
}

// Load builds a Config from the file at path (optional), the environment
// and any flags in flags that were set explicitly.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "Input.xlsx")
	v.SetDefault("input.sheet", "")

	v.SetDefault("fetch.engine", "http")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.user_agent", "articlescore/1.0 (+https://github.com/gaurav-prasanna/articlescore)")
	v.SetDefault("fetch.rate_per_second", 0)
	v.SetDefault("fetch.body_mode", "paragraphs")
	v.SetDefault("fetch.keep_markdown", false)

	v.SetDefault("documents.dir", "extracted_articles")

	v.SetDefault("lexicon.positive", "positive-words.txt")
	v.SetDefault("lexicon.negative", "negative-words.txt")
	v.SetDefault("lexicon.stopwords", []string{})
	v.SetDefault("lexicon.strict", false)

	v.SetDefault("report.path", "output_results.csv")
	v.SetDefault("report.format", "csv")
	v.SetDefault("report.postgres.dsn", "")
	v.SetDefault("report.postgres.table", "article_metrics")
	v.SetDefault("report.postgres.max_conns", 2)

	v.SetDefault("metrics.textfile", "")
	v.SetDefault("logging.development", false)
}

// Validate checks for obviously bad configuration values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Fetch.Engine) {
	case "http", "colly":
	default:
		return fmt.Errorf("fetch.engine must be http or colly, got %q", c.Fetch.Engine)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0")
	}
	if c.Fetch.RatePerSecond < 0 {
		return fmt.Errorf("fetch.rate_per_second must be >= 0")
	}
	switch strings.ToLower(c.Fetch.BodyMode) {
	case "paragraphs", "readability":
	default:
		return fmt.Errorf("fetch.body_mode must be paragraphs or readability, got %q", c.Fetch.BodyMode)
	}
	if c.Documents.Dir == "" {
		return fmt.Errorf("documents.dir must be set")
	}
	if c.Report.Path == "" {
		return fmt.Errorf("report.path must be set")
	}
	switch strings.ToLower(c.Report.Format) {
	case "csv", "json", "markdown", "md", "pdf":
	default:
		return fmt.Errorf("report.format must be csv, json, markdown or pdf, got %q", c.Report.Format)
	}
	if c.Report.Postgres.MaxConns < 0 {
		return fmt.Errorf("report.postgres.max_conns must be >= 0")
	}
	return nil
}
