package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// FromEnv reads connection string entries from environment variables with
// the specified prefix.  A double underscore separates the name of an entry
// from its field:
//
//	APP_REPORTS__CONNECTIONSTRING=sqlserver://reporter@db/reports
//	APP_REPORTS__PROVIDERNAME=sqlserver
//
// FromEnv("APP_") then returns an entry named "reports".  Variables with the
// prefix but no double underscore, such as APP_ENV, are ignored.
func FromEnv(prefix string) (ConnectionStrings, error) {
	k := koanf.New(".")

	// variables without a separator are not entries and are skipped
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, prefix))
		if !strings.Contains(s, "__") {
			return ""
		}
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	entries := map[string]Entry{}
	if err := k.Unmarshal("", &entries); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cs, err := newConnectionStrings(entries)
	if err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	return cs, nil
}

// FromDotEnv loads variables from the specified files (".env" if none)
// into the environment, without overriding variables that are already set,
// then reads entries as FromEnv.
func FromDotEnv(prefix string, files ...string) (ConnectionStrings, error) {
	if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("config: dotenv: %w", err)
	}
	return FromEnv(prefix)
}
