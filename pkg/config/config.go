// Package config assembles a run's configuration from, in order of
// precedence: command-line flags, ACTAU_* environment variables, and an
// optional YAML config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/actau-dev/actau/pkg/models"
)

type Config struct {
	ServerURL string
	Password  string
	SyncID    string
	Accounts  models.AccountMap
}

// accountsFile is the standalone mapping file given with --accounts-file.
type accountsFile struct {
	Accounts map[string]string `yaml:"accounts"`
}

// Build merges the config file, environment, and flags, then validates the
// account mapping. Everything here runs before any network activity so a bad
// mapping pair fails the process early.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ACTAU")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("actau")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		ServerURL: v.GetString("server"),
		Password:  v.GetString("password"),
		SyncID:    v.GetString("sync-id"),
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("no server url configured (--server or ACTAU_SERVER)")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("no server password configured (--password or ACTAU_PASSWORD)")
	}
	if cfg.SyncID == "" {
		return nil, fmt.Errorf("no budget sync id configured (--sync-id or ACTAU_SYNC_ID)")
	}

	pairs := map[string]string{}
	for k, id := range v.GetStringMapString("accounts") {
		pairs[k] = id
	}
	if path := v.GetString("accounts-file"); path != "" {
		filePairs, err := loadAccountsFile(path)
		if err != nil {
			return nil, err
		}
		for k, id := range filePairs {
			pairs[k] = id
		}
	}
	for _, pair := range v.GetStringSlice("account") {
		number, id, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --account %q: want bank-account-number=ledger-account-id", pair)
		}
		pairs[strings.TrimSpace(number)] = strings.TrimSpace(id)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no account mapping configured (--account, --accounts-file, or accounts in the config file)")
	}

	accounts, err := models.NewAccountMap(pairs)
	if err != nil {
		return nil, err
	}
	cfg.Accounts = accounts
	return cfg, nil
}

func loadAccountsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading accounts file: %w", err)
	}
	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing accounts file %s: %w", path, err)
	}
	return f.Accounts, nil
}
