package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL        = "localhost:8081"
	defaultNotesListLimit = 50
	defaultRequestTimeout = 30 * time.Second
)

// Config — общие настройки сервера и клиента.
// Источники по возрастанию приоритета: YAML-файл, .env и окружение, флаги командной строки.
type Config struct {
	// Server-side settings
	DatabaseDSN    string   `env:"DATABASE_URI" yaml:"database_uri"`
	NotesListLimit int      `env:"NOTES_LIST_LIMIT" yaml:"notes_list_limit"`
	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," yaml:"cors_origins"`

	// Shared settings
	BaseURL     string `env:"BASE_URL" yaml:"base_url"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS" yaml:"enable_https"`
	ConfigFile  string `env:"CONFIG_FILE" yaml:"-"`

	// Client-side settings
	ServerURL      string        `env:"-" yaml:"-"`
	TokenFile      string        `env:"TOKEN_FILE" yaml:"token_file"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" yaml:"request_timeout"`
	Version        bool          `env:"-" yaml:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// файл читается до окружения, поэтому путь к нему берём из env или прямо из аргументов
	path := os.Getenv("CONFIG_FILE")
	if p := configFileFromArgs(os.Args[1:]); p != "" {
		path = p
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		}
		cfg.ConfigFile = path
	}

	_ = env.Parse(cfg)

	cors := strings.Join(cfg.CORSOrigins, ",")

	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД: путь к файлу SQLite или postgres://…")
	flag.IntVar(&cfg.NotesListLimit, "notes-limit", cfg.NotesListLimit, "размер списка заметок по умолчанию")
	flag.StringVar(&cors, "cors-origins", cors, "разрешённые CORS origins через запятую")
	// Shared flags
	flag.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "path to YAML config file")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the NoteKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to session token file (client)")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "timeout of one CLI command (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.CORSOrigins = splitList(cors)
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	// BaseURL должен иметь вид "address:port" (без схемы и пути), иначе берём значение по умолчанию
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.NotesListLimit <= 0 {
		cfg.NotesListLimit = defaultNotesListLimit
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, _ = os.UserHomeDir()
		}
		cfg.TokenFile = filepath.Join(dir, "NoteKeeper", "token")
	}
}

// loadFile заполняет конфигурацию из YAML-файла.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// configFileFromArgs находит значение -config/--config до разбора флагов.
func configFileFromArgs(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
