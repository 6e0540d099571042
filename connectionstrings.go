package dbsession

import "fmt"

// ConnectionStrings is a source of named connection string entries.
type ConnectionStrings interface {
	Lookup(name string) (Connector, bool)
}

// ConnectionStringMap is an in-memory ConnectionStrings source.
type ConnectionStringMap map[string]Connector

// Lookup implements ConnectionStrings.
func (m ConnectionStringMap) Lookup(name string) (Connector, bool) {
	c, ok := m[name]
	return c, ok
}

type connector struct {
	connectionString string
	providerName     string
}

// NewConnector returns a Connector for a connection string and provider.
func NewConnector(connectionString, providerName string) Connector {
	return connector{connectionString, providerName}
}

func (c connector) ConnectionString() string { return c.connectionString }
func (c connector) ProviderName() string     { return c.providerName }

// String returns the provider name; connection strings commonly contain
// credentials and are not included.
func (c connector) String() string { return fmt.Sprintf("connector(%s)", c.providerName) }

// resolveConnector returns the connector for an identifier.
//
// If the identifier names an entry in the configured connection strings,
// that entry is returned.  Otherwise the identifier is itself the connection
// string, with the name of the configured default provider.  An entry that
// does not name a provider also uses the default provider.
func (s *Session) resolveConnector(nameOrConnectionString string) Connector {
	if s.connectionStrings != nil {
		if c, ok := s.connectionStrings.Lookup(nameOrConnectionString); ok {
			if c.ProviderName() == "" {
				return connector{c.ConnectionString(), s.defaultName()}
			}
			return c
		}
	}
	return connector{nameOrConnectionString, s.defaultName()}
}

// defaultName returns the name of the default provider.
func (s *Session) defaultName() string {
	if s.defaultProvider != nil {
		return s.defaultProvider.Name()
	}
	return s.defaultProviderName
}

// resolveProvider returns the provider identified by a connector, being the
// default provider of the session if it has the same name, otherwise a
// registered provider.
func (s *Session) resolveProvider(c Connector) (Provider, error) {
	name := c.ProviderName()
	if name == "" {
		return nil, ErrNoProvider
	}
	if p := s.defaultProvider; p != nil && p.Name() == name {
		return p, nil
	}
	if p, ok := lookupProvider(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
}
