// Package config loads named connection string entries for use with
// dbsession.WithConnectionStrings.
//
// Entries may be loaded from a configuration file (Load) or from
// environment variables (FromEnv).  In both cases an entry has a required
// connection string and an optional provider name; an entry with no
// provider name uses the default provider of the session.
//
// Entry names are not case sensitive.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/blugnu/dbsession"
)

// Entry is a named connection string entry.
type Entry struct {
	ConnectionString string `mapstructure:"connectionstring" koanf:"connectionstring" validate:"required"`
	ProviderName     string `mapstructure:"providername" koanf:"providername"`
}

var _ dbsession.ConnectionStrings = ConnectionStrings{}

// ConnectionStrings is a set of entries, keyed by case-folded name.  It
// implements dbsession.ConnectionStrings.
type ConnectionStrings map[string]Entry

// Lookup implements dbsession.ConnectionStrings.
func (cs ConnectionStrings) Lookup(name string) (dbsession.Connector, bool) {
	e, ok := cs[fold(name)]
	if !ok {
		return nil, false
	}
	return dbsession.NewConnector(e.ConnectionString, e.ProviderName), true
}

// newConnectionStrings validates entries, returning them as
// ConnectionStrings.
func newConnectionStrings(entries map[string]Entry) (ConnectionStrings, error) {
	validate := validator.New()

	cs := make(ConnectionStrings, len(entries))
	for name, e := range entries {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("connection string %q: %w", name, err)
		}
		cs[fold(name)] = e
	}
	return cs, nil
}

// fold returns the case-folded form of an entry name.
func fold(name string) string {
	return cases.Fold().String(name)
}
