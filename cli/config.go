package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "INVENTORY"

// Config holds the settings resolved from flags, environment, .env and an
// optional config file, in that order of precedence.
type Config struct {
	DataFile  string `mapstructure:"data-file"`
	Format    string `mapstructure:"format"`
	Autosave  bool   `mapstructure:"autosave"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	Config    string `mapstructure:"config"`
}

func loadConfig(flags *pflag.FlagSet) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetFs(appFs)
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if strings.TrimSpace(cfg.DataFile) == "" {
		return Config{}, errors.New("data-file must not be empty")
	}
	return cfg, nil
}

// loadDotEnv exports the variables in path that are not already set.
func loadDotEnv(path string) error {
	f, err := appFs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for k, val := range vars {
		if _, ok := os.LookupEnv(k); !ok {
			if err := os.Setenv(k, val); err != nil {
				return err
			}
		}
	}
	return nil
}
