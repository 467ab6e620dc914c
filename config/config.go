package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

type Config struct {
	Executable            string   `json:"executable" validate:"required"`
	Args                  []string `json:"args"`
	Cwd                   string   `json:"cwd"`
	NormalizeTekiyouASCII bool     `json:"normalizeTekiyouAscii"`
	NormalizeHokenASCII   bool     `json:"normalizeHokenAscii"`
	Theme                 string   `json:"theme" validate:"oneof=auto light dark original classic classic-modern"`
	Layout                string   `json:"layout" validate:"oneof=vertical horizontal"`
	ListenAddr            string   `json:"listenAddr" validate:"required"`
	CommandTimeoutSeconds int      `json:"commandTimeoutSeconds" validate:"gte=1,lte=3600"`
}

var (
	cfg      Config
	mu       sync.RWMutex
	validate = validator.New()
)

// ErrInvalid は設定値の検証エラーです。
var ErrInvalid = errors.New("invalid config")

const (
	DefaultConfigFilePath = "./ukeview_config.json"
	envPrefix             = "UKEVIEW_"
)

// Defaults は設定ファイルが無いときの値です。
func Defaults() Config {
	return Config{
		Executable:            "receiptisan",
		Args:                  []string{},
		Theme:                 "auto",
		Layout:                "vertical",
		ListenAddr:            ":8080",
		CommandTimeoutSeconds: 60,
	}
}

func applyDefaults(c *Config) {
	d := Defaults()
	if c.Executable == "" {
		c.Executable = d.Executable
	}
	if c.Args == nil {
		c.Args = d.Args
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.Layout == "" {
		c.Layout = d.Layout
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.CommandTimeoutSeconds == 0 {
		c.CommandTimeoutSeconds = d.CommandTimeoutSeconds
	}
}

// CommandTimeout はCLI実行のタイムアウトです。
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// LoadConfigFrom は .env と設定ファイルを読み込み、UKEVIEW_* 環境変数で上書きします。
// ファイルが無い場合は既定値を使います。
func LoadConfigFrom(path string) (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var tempCfg Config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(file, &tempCfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		tempCfg = Defaults()
	default:
		return Config{}, err
	}

	applyDefaults(&tempCfg)
	if err := applyEnv(&tempCfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := validate.Struct(tempCfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg = tempCfg
	return cfg, nil
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("EXECUTABLE", &c.Executable)
	str("CWD", &c.Cwd)
	str("THEME", &c.Theme)
	str("LAYOUT", &c.Layout)
	str("LISTEN_ADDR", &c.ListenAddr)
	if v, ok := lookup(envPrefix + "ARGS"); ok {
		c.Args = strings.Fields(v)
	}
	if err := boolean("NORMALIZE_TEKIYOU_ASCII", &c.NormalizeTekiyouASCII); err != nil {
		return err
	}
	if err := boolean("NORMALIZE_HOKEN_ASCII", &c.NormalizeHokenASCII); err != nil {
		return err
	}
	if v, ok := lookup(envPrefix + "COMMAND_TIMEOUT_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCOMMAND_TIMEOUT_SECONDS: %w", envPrefix, err)
		}
		c.CommandTimeoutSeconds = n
	}
	return nil
}

// SaveConfigTo は設定を検証して path に保存します。
func SaveConfigTo(path string, newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)
	if err := validate.Struct(newCfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
