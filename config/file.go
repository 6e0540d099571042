package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads connection string entries from the connectionStrings section
// of a configuration file in any format supported by viper (YAML, JSON,
// TOML etc, determined by the file extension):
//
//	connectionStrings:
//	  reports:
//	    connectionString: "sqlserver://reporter@db/reports"
//	    providerName: sqlserver
func Load(path string) (ConnectionStrings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f struct {
		ConnectionStrings map[string]Entry `mapstructure:"connectionstrings"`
	}
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	cs, err := newConnectionStrings(f.ConnectionStrings)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cs, nil
}
